package models

import "time"

// AppointmentStatus is the booking state machine:
//
//	pending   -> confirmed | canceled
//	confirmed -> completed | canceled
//	completed, canceled are terminal
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanTransition reports whether the state machine permits moving from s
// to next.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCanceled
	}
	return false
}

// ActiveStatuses are the statuses that hold a slot. Canceled appointments
// release theirs.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted}
}

// Appointment is a booked slot. Storage keeps ids only; display fields are
// joined in at the query boundary.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	ServiceID string            `bson:"serviceId" json:"serviceId"`
	StylistID *string           `bson:"stylistId" json:"stylistId"`
	Date      string            `bson:"date" json:"date"`
	StartTime string            `bson:"startTime" json:"startTime"`
	Status    AppointmentStatus `bson:"status" json:"status"`
	// Active mirrors Status != canceled. Partial unique indexes cannot
	// express $in over statuses, so the slot-uniqueness index filters on
	// this flag instead.
	Active    bool              `bson:"active" json:"-"`
	Price     float64           `bson:"price" json:"price"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentView is an appointment denormalized for display: service name
// plus contact details of the counterpart parties.
type AppointmentView struct {
	Appointment
	ServiceName  string `json:"serviceName"`
	UserName     string `json:"userName,omitempty"`
	UserPhone    string `json:"userPhone,omitempty"`
	StylistName  string `json:"stylistName,omitempty"`
	StylistPhone string `json:"stylistPhone,omitempty"`
}
