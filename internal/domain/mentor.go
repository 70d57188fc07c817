package domain

// MentorStatus approval state maintained by the mentor-profile workflow
type MentorStatus string

const (
	MentorPending  MentorStatus = "PENDING"
	MentorApproved MentorStatus = "APPROVED"
	MentorRejected MentorStatus = "REJECTED"
)

// Mentor is the part of a mentor profile the booking engine relies on
type Mentor struct {
	ID          int64
	DisplayName string
	Status      MentorStatus
}

// IsApproved returns true if the mentor may receive bookings
func (m *Mentor) IsApproved() bool {
	return m.Status == MentorApproved
}
