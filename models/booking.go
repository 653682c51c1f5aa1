package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusCompleted   BookingStatus = "completed"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRescheduled, StatusCompleted:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that occupy a slot. Cancelled bookings
// release their slot but are never deleted.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusRescheduled, StatusCompleted}

// Booking represents a persisted booking record.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`                             // Unique booking identifier (UUID)
	UserID             string        `bson:"user_id" json:"user_id"`                   // User who made the booking
	ProviderID         string        `bson:"provider_id" json:"provider_id"`           // Provider being booked
	Description        string        `bson:"description" json:"description"`           // Service description (10-500 characters)
	StartTime          time.Time     `bson:"start_time" json:"start_time"`             // Appointment start instant
	Status             BookingStatus `bson:"status" json:"status"`                     // Current lifecycle status
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`             // Timestamp when booking was created
	UpdatedAt          time.Time     `bson:"updated_at" json:"updated_at"`             // Timestamp of the last status transition
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
}

// BookingAudit is an immutable record of one booking status transition.
// Written in the same transaction as the booking mutation it records.
type BookingAudit struct {
	BookingID      string        `bson:"booking_id" json:"booking_id"`
	PreviousStatus BookingStatus `bson:"previous_status" json:"previous_status"`
	NewStatus      BookingStatus `bson:"new_status" json:"new_status"`
	ChangedAt      time.Time     `bson:"changed_at" json:"changed_at"`
	Reason         string        `bson:"reason,omitempty" json:"reason,omitempty"`
	NewTime        *time.Time    `bson:"new_time,omitempty" json:"new_time,omitempty"` // Set for reschedules
}
