package domain

import "time"

// JoinLeadTime how early before the start participants may join
const JoinLeadTime = 10 * time.Minute

// CanJoin is true for a confirmed booking from JoinLeadTime before start until end (exclusive)
func CanJoin(now, start, end time.Time, status BookingStatus) bool {
	if status != StatusConfirmed {
		return false
	}
	return !now.Before(start.Add(-JoinLeadTime)) && now.Before(end)
}

// IsPast is true once now reaches end
func IsPast(now, end time.Time) bool {
	return !now.Before(end)
}
