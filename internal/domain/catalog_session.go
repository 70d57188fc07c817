package domain

import "time"

// CatalogSession is a mentor-published session with fixed start and seat capacity
type CatalogSession struct {
	ID              int64
	MentorID        int64
	Title           string
	Description     *string
	StartsAt        time.Time
	DurationMinutes int
	Capacity        int

	// ActiveBookings is derived: pending and confirmed bookings of the session
	ActiveBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt end of the session
func (c *CatalogSession) EndsAt() time.Time {
	return c.StartsAt.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// IsFull returns true when every seat is held by an active booking
func (c *CatalogSession) IsFull() bool {
	return c.ActiveBookings >= c.Capacity
}

// HasStarted returns true once now reaches the start
func (c *CatalogSession) HasStarted(now time.Time) bool {
	return !now.Before(c.StartsAt)
}

// IsBookable returns true if a seat is free and the session has not started
func (c *CatalogSession) IsBookable(now time.Time) bool {
	return !c.IsFull() && !c.HasStarted(now)
}
