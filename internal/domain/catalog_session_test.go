package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogSession_IsBookable(t *testing.T) {
	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	s := &CatalogSession{StartsAt: start, DurationMinutes: 90, Capacity: 2, ActiveBookings: 1}

	assert.Equal(t, start.Add(90*time.Minute), s.EndsAt())
	assert.True(t, s.IsBookable(start.Add(-time.Minute)))
	assert.False(t, s.IsBookable(start))

	s.ActiveBookings = 2
	assert.True(t, s.IsFull())
	assert.False(t, s.IsBookable(start.Add(-time.Hour)))
}
