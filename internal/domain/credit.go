package domain

import "time"

// CreditReason why a ledger entry was written
type CreditReason string

const (
	CreditReserve CreditReason = "reserve"
	CreditRefund  CreditReason = "refund"
	CreditGrant   CreditReason = "grant"
)

// CreditEntry one row of the mentee credit ledger
type CreditEntry struct {
	ID        int64
	MenteeID  int64
	BookingID *int64
	Delta     int
	Reason    CreditReason
	CreatedAt time.Time
}
