package models

import "time"

// Review is immutable once created; there is no update path.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	ServiceID string    `bson:"serviceId" json:"serviceId"`
	UserID    string    `bson:"userId" json:"userId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ServiceRating is a single rating row projected out of the reviews
// collection for aggregation.
type ServiceRating struct {
	ServiceID string `bson:"serviceId"`
	Rating    int    `bson:"rating"`
}

// RatingSummary is the per-service review aggregate. Services with no
// reviews get the zero value, never a missing entry.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
