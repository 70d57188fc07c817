package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MentoringService/pkg/types"
)

// TimeSlot is a half-open interval [Start, End) within a day
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeSlot validates both bounds and their order
func NewTimeSlot(start, end types.TimeString) (TimeSlot, error) {
	if err := start.Validate(); err != nil {
		return TimeSlot{}, fmt.Errorf("%w: start %q", ErrInvalidSlot, start)
	}
	if err := end.Validate(); err != nil {
		return TimeSlot{}, fmt.Errorf("%w: end %q", ErrInvalidSlot, end)
	}
	if !start.IsBefore(end) {
		return TimeSlot{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidSlot, start, end)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// ParseTimeSlot parses the "HH:MM-HH:MM" form
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return NewTimeSlot(types.TimeString(parts[0]), types.TimeString(parts[1]))
}

// String renders the slot as "HH:MM-HH:MM"
func (s TimeSlot) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// DurationMinutes length of the slot
func (s TimeSlot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// Less orders slots by start, then by end
func (s TimeSlot) Less(other TimeSlot) bool {
	if s.Start != other.Start {
		return s.Start.IsBefore(other.Start)
	}
	return s.End.IsBefore(other.End)
}

// CatalogSlots returns the fixed catalog of bookable slots in order
func CatalogSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, CatalogLastHour-CatalogFirstHour)
	for m := CatalogFirstHour * 60; m+SlotDurationMinutes <= CatalogLastHour*60; m += SlotDurationMinutes {
		start, _ := types.NewTimeStringFromMinutes(m)
		end, _ := types.NewTimeStringFromMinutes(m + SlotDurationMinutes)
		slots = append(slots, TimeSlot{Start: start, End: end})
	}
	return slots
}

// IsCatalogSlot reports whether s belongs to the slot catalog
func IsCatalogSlot(s TimeSlot) bool {
	start := s.Start.Minutes()
	if start < 0 || s.End.Minutes() != start+SlotDurationMinutes {
		return false
	}
	if start < CatalogFirstHour*60 || start+SlotDurationMinutes > CatalogLastHour*60 {
		return false
	}
	return (start-CatalogFirstHour*60)%SlotDurationMinutes == 0
}

// AvailableSlot a mentor's offered slot on a concrete date
type AvailableSlot struct {
	Slot      TimeSlot
	Available bool
}
