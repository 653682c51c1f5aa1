package booking

import (
	"context"
	"time"

	"bookingagent/models"
)

// CreateInput carries a create request.
type CreateInput struct {
	UserID      string
	ProviderID  string
	Description string
	StartTime   time.Time
}

// UpdateInput carries a status-transition request.
type UpdateInput struct {
	BookingID string
	Status    models.BookingStatus
	NewTime   *time.Time // required for reschedules
	Reason    string
}

// Outcome is the user-facing result of a ledger operation.
type Outcome struct {
	BookingID string
	Message   string
}

// Service is the booking ledger: creation with duplicate prevention and
// atomic status transitions with an audit trail. Recoverable conditions come
// back as typed errors (ValidationError, ConflictError, NotFoundError), never
// as panics; TransactionError is a hard failure.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*Outcome, error)
	UpdateStatus(ctx context.Context, in UpdateInput) (*Outcome, error)
}
