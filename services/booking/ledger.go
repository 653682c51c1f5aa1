package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "bookingagent/database/repository/booking"
	"bookingagent/models"
	"bookingagent/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 500

	defaultCancelReason = "No reason provided"
	slotTakenSuggestion = "There is already a booking scheduled for this time slot. Would you like to choose a different time?"
)

// DefaultLedgerService implements Service over the booking repository.
type DefaultLedgerService struct {
	Repo         bookingRepo.Repository
	Availability availability.Service
	Logger       *zap.Logger
	Now          func() time.Time
}

func (svc *DefaultLedgerService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now().UTC()
}

// Create validates the request, checks for an existing non-cancelled booking
// at the exact (user, start time) pair, and inserts. The pre-check is not
// atomic against concurrent callers; the storage uniqueness constraint is the
// backstop, and its violation is converted into the same Conflict outcome.
func (svc *DefaultLedgerService) Create(ctx context.Context, in CreateInput) (*Outcome, error) {
	desc := strings.TrimSpace(in.Description)
	if len(desc) < minDescriptionLen || len(desc) > maxDescriptionLen {
		return nil, &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must be %d-%d characters", minDescriptionLen, maxDescriptionLen),
		}
	}
	if in.UserID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "is required"}
	}
	if in.StartTime.IsZero() {
		return nil, &ValidationError{Field: "start_time", Message: "is required"}
	}

	_, err := svc.Repo.FindActiveByUserAndStart(ctx, in.UserID, in.StartTime)
	if err == nil {
		return nil, &ConflictError{Message: slotTakenSuggestion}
	}
	if err != bookingRepo.ErrNotFound {
		return nil, err
	}

	ts := svc.now()
	booking := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		ProviderID:  in.ProviderID,
		Description: desc,
		StartTime:   in.StartTime,
		Status:      models.StatusPending,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if err := svc.Repo.Insert(ctx, booking); err != nil {
		if err == bookingRepo.ErrDuplicate {
			// A concurrent writer got there first; same outcome as the
			// pre-check path.
			return nil, &ConflictError{Message: slotTakenSuggestion}
		}
		return nil, err
	}

	svc.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("userId", booking.UserID),
		zap.Time("startTime", booking.StartTime),
	)
	return &Outcome{
		BookingID: booking.ID,
		Message:   fmt.Sprintf("Booking successfully saved. Booking ID: %s", booking.ID),
	}, nil
}

// UpdateStatus performs one atomic status transition with an audit entry.
func (svc *DefaultLedgerService) UpdateStatus(ctx context.Context, in UpdateInput) (*Outcome, error) {
	if !models.ValidStatus(in.Status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}

	booking, err := svc.Repo.FindByID(ctx, in.BookingID)
	if err == bookingRepo.ErrNotFound {
		return nil, &NotFoundError{BookingID: in.BookingID}
	}
	if err != nil {
		return nil, err
	}

	if in.Status == models.StatusRescheduled {
		if in.NewTime == nil {
			return nil, &ValidationError{Field: "new_time", Message: "new time required for rescheduling"}
		}
		available, err := svc.Availability.SlotAvailable(ctx, booking.ProviderID, *in.NewTime, booking.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, &ConflictError{Message: "Requested time slot is not available"}
		}
	}

	changedAt := svc.now()
	audit := &models.BookingAudit{
		BookingID:      booking.ID,
		PreviousStatus: booking.Status,
		NewStatus:      in.Status,
		ChangedAt:      changedAt,
		Reason:         in.Reason,
		NewTime:        in.NewTime,
	}

	fields := bookingRepo.UpdateFields{
		Status:    in.Status,
		UpdatedAt: changedAt,
	}
	if in.Status == models.StatusCancelled {
		fields.CancellationReason = in.Reason
		if fields.CancellationReason == "" {
			fields.CancellationReason = defaultCancelReason
		}
	}
	if in.Status == models.StatusRescheduled {
		fields.NewStartTime = in.NewTime
	}

	if err := svc.Repo.UpdateStatusWithAudit(ctx, booking.ID, fields, audit); err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, &NotFoundError{BookingID: in.BookingID}
		}
		return nil, &TransactionError{Op: "update_booking", Err: err}
	}

	svc.Logger.Info("booking status updated",
		zap.String("bookingId", booking.ID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(in.Status)),
	)
	return &Outcome{
		BookingID: booking.ID,
		Message:   fmt.Sprintf("Booking %s has been %s", booking.ID, statusPhrase(in, fields.CancellationReason)),
	}, nil
}

func statusPhrase(in UpdateInput, cancelReason string) string {
	switch in.Status {
	case models.StatusCancelled:
		return fmt.Sprintf("cancelled. Reason: %s", cancelReason)
	case models.StatusRescheduled:
		return fmt.Sprintf("rescheduled to %s", in.NewTime.Format(time.RFC3339))
	case models.StatusConfirmed:
		return "confirmed"
	case models.StatusCompleted:
		return "completed"
	default:
		return "marked as pending"
	}
}
