package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: "10:00-11:00", want: "10:00-11:00"},
		{name: "surrounding spaces", input: " 09:00-10:00 ", want: "09:00-10:00"},
		{name: "reversed", input: "11:00-10:00", wantErr: true},
		{name: "empty interval", input: "10:00-10:00", wantErr: true},
		{name: "missing end", input: "10:00", wantErr: true},
		{name: "bad hour", input: "25:00-26:00", wantErr: true},
		{name: "single digit", input: "9:00-10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := ParseTimeSlot(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlot)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, slot.String())
		})
	}
}

func TestCatalogSlots(t *testing.T) {
	slots := CatalogSlots()

	require.Len(t, slots, 12)
	assert.Equal(t, "09:00-10:00", slots[0].String())
	assert.Equal(t, "20:00-21:00", slots[11].String())

	for _, s := range slots {
		assert.True(t, IsCatalogSlot(s), s.String())
		assert.Equal(t, 60, s.DurationMinutes())
	}
}

func TestIsCatalogSlot(t *testing.T) {
	notInCatalog := []string{"08:00-09:00", "21:00-22:00", "10:30-11:30", "10:00-12:00", "10:00-10:30"}
	for _, raw := range notInCatalog {
		slot, err := ParseTimeSlot(raw)
		require.NoError(t, err)
		assert.False(t, IsCatalogSlot(slot), raw)
	}
}
