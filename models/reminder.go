package models

// ReminderPayload is the queued payload for a scheduled booking reminder.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	BookingID  string `json:"bookingId"`
	UserID     string `json:"userId"`
	FireDate   string `json:"fireDate"` // RFC 3339 instant the reminder fires at
	Title      string `json:"title"`
	Body       string `json:"body"`
}
