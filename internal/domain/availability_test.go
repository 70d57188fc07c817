package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, s string) TimeSlot {
	t.Helper()
	slot, err := ParseTimeSlot(s)
	require.NoError(t, err)
	return slot
}

func TestWeeklyAvailability_FromWireDeduplicatesAndSorts(t *testing.T) {
	w, err := WeeklyAvailabilityFromWire(map[string][]string{
		"Monday":  {"14:00-15:00", "10:00-11:00", "14:00-15:00"},
		"tuesday": {},
	})
	require.NoError(t, err)

	wire := w.ToWire()
	assert.Len(t, wire, 7)
	assert.Equal(t, []string{"10:00-11:00", "14:00-15:00"}, wire["monday"])
	assert.Empty(t, wire["sunday"])
	assert.NotNil(t, wire["sunday"])
}

func TestWeeklyAvailability_FromWireErrors(t *testing.T) {
	_, err := WeeklyAvailabilityFromWire(map[string][]string{"funday": {"10:00-11:00"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = WeeklyAvailabilityFromWire(map[string][]string{"monday": {"10-11"}})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestWeeklyAvailability_Validate(t *testing.T) {
	w := WeeklyAvailability{time.Monday: {mustSlot(t, "10:00-11:00")}}
	assert.NoError(t, w.Validate())

	w[time.Friday] = []TimeSlot{mustSlot(t, "21:00-22:00")}
	assert.ErrorIs(t, w.Validate(), ErrInvalidSlot)
}

func TestWeeklyAvailability_Offers(t *testing.T) {
	w := WeeklyAvailability{time.Monday: {mustSlot(t, "10:00-11:00")}}

	assert.True(t, w.Offers(time.Monday, mustSlot(t, "10:00-11:00")))
	assert.False(t, w.Offers(time.Monday, mustSlot(t, "11:00-12:00")))
	assert.False(t, w.Offers(time.Tuesday, mustSlot(t, "10:00-11:00")))
}
