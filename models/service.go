package models

import "time"

// Calendar days and slot times are stored as plain strings so that two
// configurations of the same day always compare equal, whatever timezone
// the writing client was in.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeBlock is one owner-configured batch of bookable slot times on a
// single calendar day.
type TimeBlock struct {
	Date  string   `bson:"date" json:"date"`
	Label string   `bson:"label" json:"label"`
	Times []string `bson:"times" json:"times"`
}

// StylistBlock groups the time blocks configured for one stylist.
// A nil StylistID means the blocks are offered without a stylist
// assignment ("any stylist").
type StylistBlock struct {
	StylistID  *string     `bson:"stylistId" json:"stylistId"`
	TimeBlocks []TimeBlock `bson:"timeBlocks" json:"timeBlocks"`
}

// Service is something a salon sells: a haircut, a coloring, a manicure.
// Availability lives inline as stylist blocks, the way the salon owner
// configures it.
type Service struct {
	ID              string         `bson:"id" json:"id"`
	SalonID         string         `bson:"salonId" json:"salonId"`
	Name            string         `bson:"name" json:"name"`
	DurationMinutes int            `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64        `bson:"price" json:"price"`
	DepositPercent  float64        `bson:"depositPercent,omitempty" json:"depositPercent,omitempty"`
	CategoryID      string         `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	StylistBlocks   []StylistBlock `bson:"stylistBlocks" json:"stylistBlocks"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// RatedService decorates a service with its review aggregate for listing
// and search responses.
type RatedService struct {
	Service
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
