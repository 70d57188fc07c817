package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const identityPrefix = "user:"

// ParticipantIdentity identity of a user inside a live session
func ParticipantIdentity(userID int64) string {
	return identityPrefix + strconv.FormatInt(userID, 10)
}

// ParseParticipantIdentity returns the user id encoded in a participant identity
func ParseParticipantIdentity(identity string) (int64, error) {
	raw, ok := strings.CutPrefix(identity, identityPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: identity %q", ErrValidation, identity)
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: identity %q", ErrValidation, identity)
	}
	return userID, nil
}

// RoomID live room of a booking
func RoomID(bookingID int64) string {
	return fmt.Sprintf("booking-%d", bookingID)
}

// JoinAuthorization grants a participant access to the meeting of a booking
type JoinAuthorization struct {
	BookingID   int64
	RoomID      string
	MeetingRef  string
	Identity    string
	DisplayName string
	Token       string
	ProviderURL string
	ExpiresAt   time.Time
}

// ChatMessage is an in-meeting chat line. It is never persisted.
type ChatMessage struct {
	ID          string    `json:"id"`
	BookingID   int64     `json:"bookingId"`
	Sender      string    `json:"sender"`
	DisplayName string    `json:"displayName,omitempty"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sentAt"`
}
