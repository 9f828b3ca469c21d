package models

import "time"

// Stylist assignment states. A stylist becomes visible in appointment
// listings only once the salon owner has approved the assignment.
const (
	StylistPending  = "pending"
	StylistApproved = "approved"
)

// User is an account record. Stylists are users with Role == RoleStylist;
// SalonID and StylistStatus are only meaningful for them.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Email         string    `bson:"email" json:"email"`
	PhoneNumber   string    `bson:"phoneNumber" json:"phoneNumber"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Role          Role      `bson:"role" json:"role"`
	SalonID       string    `bson:"salonId,omitempty" json:"salonId,omitempty"`
	StylistStatus string    `bson:"stylistStatus,omitempty" json:"stylistStatus,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the shape safe to return to clients.
type PublicUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	Role          Role   `json:"role"`
	SalonID       string `json:"salonId,omitempty"`
	StylistStatus string `json:"stylistStatus,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role,
		SalonID:       u.SalonID,
		StylistStatus: u.StylistStatus,
	}
}
