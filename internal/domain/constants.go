package domain

// Slot catalog: hourly slots from 09:00 to 21:00
const (
	CatalogFirstHour    = 9
	CatalogLastHour     = 21
	SlotDurationMinutes = 60
)

// Business validation constants
const (
	MinRejectionReasonLength = 10
	MaxRejectionReasonLength = 500
	MaxMessageLength         = 1000

	MinCatalogDurationMinutes = 15
	MaxCatalogDurationMinutes = 480
	DefaultCatalogCapacity    = 1
	MaxCatalogCapacity        = 100
	MaxCatalogTitleLength     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that hold a slot or a catalog seat
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ActiveStatusStrings returns ActiveStatuses as plain strings for query builders
func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
