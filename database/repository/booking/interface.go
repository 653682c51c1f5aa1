package bookingRepo

import (
	"context"
	"errors"
	"time"

	"bookingagent/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrDuplicate is returned when the storage uniqueness constraint over
// (user_id, start_time) rejects an insert. This is the concurrency backstop
// behind the ledger's pre-check.
var ErrDuplicate = errors.New("duplicate booking for user and start time")

// UpdateFields carries the booking mutation applied by a status transition.
type UpdateFields struct {
	Status             models.BookingStatus
	CancellationReason string     // set on cancellations
	NewStartTime       *time.Time // set on reschedules
	UpdatedAt          time.Time
}

// Repository defines persistence for bookings and their audit trail.
type Repository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	// FindActiveByUserAndStart returns a non-cancelled booking for the exact
	// (user, start time) pair, or ErrNotFound.
	FindActiveByUserAndStart(ctx context.Context, userID string, start time.Time) (*models.Booking, error)
	// ActiveStartTimes returns distinct start times of pending/confirmed
	// bookings for the provider within [from, to), excluding the given
	// booking id when non-empty.
	ActiveStartTimes(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error)
	// UpdateStatusWithAudit applies the booking field update and inserts the
	// audit entry as one atomic unit. Neither change is visible on failure.
	UpdateStatusWithAudit(ctx context.Context, bookingID string, fields UpdateFields, audit *models.BookingAudit) error
	EnsureIndexes(ctx context.Context) error
}
