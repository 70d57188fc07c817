package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekdays in presentation order
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayName lower-case English name used on the wire
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseWeekday accepts a case-insensitive English weekday name
func ParseWeekday(name string) (time.Weekday, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrValidation, name)
}

// WeeklyAvailability maps each weekday to the slots a mentor offers.
// Values are sets: Normalize removes duplicates and orders them.
type WeeklyAvailability map[time.Weekday][]TimeSlot

// Normalize returns a copy with all seven weekdays, deduplicated and sorted slots
func (w WeeklyAvailability) Normalize() WeeklyAvailability {
	out := make(WeeklyAvailability, len(Weekdays))
	for _, d := range Weekdays {
		seen := make(map[TimeSlot]struct{})
		slots := make([]TimeSlot, 0, len(w[d]))
		for _, s := range w[d] {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			slots = append(slots, s)
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].Less(slots[j]) })
		out[d] = slots
	}
	return out
}

// Validate checks every slot against the catalog
func (w WeeklyAvailability) Validate() error {
	for d, slots := range w {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrValidation, d)
		}
		for _, s := range slots {
			if !IsCatalogSlot(s) {
				return fmt.Errorf("%w: %s on %s is not in the slot catalog", ErrInvalidSlot, s, WeekdayName(d))
			}
		}
	}
	return nil
}

// Offers reports whether slot is offered on weekday d
func (w WeeklyAvailability) Offers(d time.Weekday, slot TimeSlot) bool {
	for _, s := range w[d] {
		if s == slot {
			return true
		}
	}
	return false
}

// ToWire renders {"monday": ["10:00-11:00"], ...} with all seven keys
func (w WeeklyAvailability) ToWire() map[string][]string {
	normalized := w.Normalize()
	out := make(map[string][]string, len(Weekdays))
	for _, d := range Weekdays {
		slots := make([]string, 0, len(normalized[d]))
		for _, s := range normalized[d] {
			slots = append(slots, s.String())
		}
		out[WeekdayName(d)] = slots
	}
	return out
}

// WeeklyAvailabilityFromWire parses the wire form; missing weekdays mean no slots
func WeeklyAvailabilityFromWire(raw map[string][]string) (WeeklyAvailability, error) {
	w := make(WeeklyAvailability, len(raw))
	for name, values := range raw {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			slot, err := ParseTimeSlot(v)
			if err != nil {
				return nil, err
			}
			w[d] = append(w[d], slot)
		}
	}
	return w.Normalize(), nil
}

// MentorAvailability stored weekly availability of a mentor
type MentorAvailability struct {
	MentorID  int64
	Weekly    WeeklyAvailability
	UpdatedAt time.Time
}
