package notification

import (
	"context"

	"bookingagent/models"

	"go.uber.org/zap"
)

// Notifier delivers a fired booking reminder. Delivery transport (push,
// email, SMS) lives behind this interface.
type Notifier interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotifier writes fired reminders to the log. Stands in until a real
// delivery channel is attached.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) SendReminder(_ context.Context, payload models.ReminderPayload) error {
	n.Logger.Info("booking reminder fired",
		zap.String("reminderId", payload.ReminderID),
		zap.String("bookingId", payload.BookingID),
		zap.String("userId", payload.UserID),
		zap.String("fireDate", payload.FireDate),
		zap.String("title", payload.Title),
	)
	return nil
}
