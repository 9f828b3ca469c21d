package models

import "time"

// Notification is a user-facing message recorded on appointment lifecycle
// events. Clients poll and mark them read; no push transport is attached.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReminderPayload is the asynq task body for a scheduled appointment
// reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
}
