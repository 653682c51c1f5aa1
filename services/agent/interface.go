package agent

import (
	"context"
	"time"

	"bookingagent/models"
)

// ChatModel is the language model seen by the orchestrator: messages in, a
// structured response with zero or more requested operations out.
type ChatModel interface {
	Complete(ctx context.Context, system string, log []models.ConversationMessage) (*models.ModelResponse, error)
}

// ConversationStore persists conversation logs keyed by conversation id.
// The orchestrator is the sole writer; stored logs are snapshots it owns.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) ([]models.ConversationMessage, error)
	Set(ctx context.Context, conversationID string, log []models.ConversationMessage) error
	Clear(ctx context.Context, conversationID string) error
}

// ReminderScheduler enqueues a booking reminder to fire at the given instant.
type ReminderScheduler interface {
	Schedule(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}
