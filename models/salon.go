package models

import "time"

// Salon is a place of business. Each owner account has at most one salon,
// created or replaced through the my-salon endpoint.
type Salon struct {
	ID               string            `bson:"id" json:"id"`
	OwnerID          string            `bson:"ownerId" json:"ownerId"`
	Name             string            `bson:"name" json:"name"`
	Location         string            `bson:"location" json:"location"`
	About            string            `bson:"about,omitempty" json:"about,omitempty"`
	Logo             string            `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage       string            `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	CategoryID       string            `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	HoursOfOperation map[string]string `bson:"hoursOfOperation,omitempty" json:"hoursOfOperation,omitempty"`
	Lat              *float64          `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng              *float64          `bson:"lng,omitempty" json:"lng,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Category tags salons and services for browsing and search.
type Category struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	SubServices []string  `bson:"subServices,omitempty" json:"subServices,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
