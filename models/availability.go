package models

// StylistRef is the minimal stylist identity attached to availability
// responses. Nil in StylistAvailability means the slots are offered
// without a stylist assignment.
type StylistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StylistAvailability is one stylist's bookable slot times on a given day,
// in configured order. Duplicate times are surfaced as configured.
type StylistAvailability struct {
	Stylist *StylistRef `json:"stylist"`
	Slots   []string    `json:"slots"`
}

// Day occupancy classifications for the month view.
const (
	DayPast        = "past"
	DayAvailable   = "available"
	DayGoingFast   = "goingFast"
	DayFullyBooked = "fullyBooked"
)

// DayAvailability classifies one calendar day of the month view.
type DayAvailability struct {
	Day    int    `json:"day"`
	Status string `json:"status"`
}

// MonthAvailability is the calendar overview for a service.
type MonthAvailability struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []DayAvailability `json:"days"`
}
