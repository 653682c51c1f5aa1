package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookingagent/models"
	"bookingagent/services/availability"
	"bookingagent/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// operation pairs an argument decoder with its handler.
type operation struct {
	decode func(map[string]any) (operationRequest, error)
	handle func(context.Context, operationRequest) (string, error)
}

// Dispatcher maps model-requested operation names to handlers, validates
// arguments, invokes the handler and renders a textual result per call.
type Dispatcher struct {
	registry map[string]operation
	logger   *zap.Logger
}

// NewDispatcher wires the operation registry against the booking ledger, the
// availability service and the reminder scheduler.
func NewDispatcher(
	ledger booking.Service,
	avail availability.Service,
	reminders ReminderScheduler,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{logger: logger}
	d.registry = map[string]operation{
		OpCreateBooking: {
			decode: decodeCreateBooking,
			handle: func(ctx context.Context, req operationRequest) (string, error) {
				r := req.(createBookingRequest)
				outcome, err := ledger.Create(ctx, booking.CreateInput{
					UserID:      r.UserID,
					ProviderID:  r.ProviderID,
					Description: r.Description,
					StartTime:   r.StartTime,
				})
				if err != nil {
					return "", err
				}
				return outcome.Message, nil
			},
		},
		OpCheckAvailability: {
			decode: decodeCheckAvailability,
			handle: func(ctx context.Context, req operationRequest) (string, error) {
				r := req.(checkAvailabilityRequest)
				return avail.CheckAvailability(ctx, r.ProviderID, r.RequestedTime)
			},
		},
		OpUpdateBooking: {
			decode: decodeUpdateBooking,
			handle: func(ctx context.Context, req operationRequest) (string, error) {
				r := req.(updateBookingRequest)
				outcome, err := ledger.UpdateStatus(ctx, booking.UpdateInput{
					BookingID: r.BookingID,
					Status:    r.Status,
					NewTime:   r.NewTime,
					Reason:    r.Reason,
				})
				if err != nil {
					return "", err
				}
				return outcome.Message, nil
			},
		},
		OpGetDateTime: {
			decode: decodeGetDateTime,
			handle: func(ctx context.Context, req operationRequest) (string, error) {
				r := req.(getDateTimeRequest)
				return resolveDateTime(r.Phrase, r.ClientTime, r.Timezone), nil
			},
		},
		OpScheduleReminder: {
			decode: decodeScheduleReminder,
			handle: func(ctx context.Context, req operationRequest) (string, error) {
				r := req.(scheduleReminderRequest)
				body := r.Message
				if body == "" {
					body = "You have an upcoming booking."
				}
				payload := models.ReminderPayload{
					ReminderID: uuid.New().String(),
					BookingID:  r.BookingID,
					UserID:     r.UserID,
					FireDate:   r.RemindAt.Format(time.RFC3339),
					Title:      "Booking reminder",
					Body:       body,
				}
				if err := reminders.Schedule(ctx, payload, r.RemindAt); err != nil {
					return "", err
				}
				return fmt.Sprintf("Reminder scheduled for %s.", r.RemindAt.Format(time.RFC3339)), nil
			},
		},
	}
	return d
}

// Execute runs all requested operations sequentially in request order and
// collects one operation-result message per call. Recoverable conditions
// (validation, conflicts, unknown bookings) become result text the model can
// react to; anything else aborts the turn.
func (d *Dispatcher) Execute(ctx context.Context, calls []models.OperationCall) ([]models.ConversationMessage, error) {
	results := make([]models.ConversationMessage, 0, len(calls))
	for _, call := range calls {
		op, ok := d.registry[call.Name]
		if !ok {
			// The upstream behavior dropped these silently, which could
			// strand a conversation with an unfulfilled request.
			d.logger.Warn("unknown operation requested",
				zap.String("operation", call.Name),
				zap.String("callId", call.ID),
			)
			results = append(results, operationResult(call,
				fmt.Sprintf("Operation %q is not recognized. Available operations: create_booking, check_availability, update_booking, get_date_time, schedule_reminder.", call.Name)))
			continue
		}

		content, err := d.run(ctx, op, call)
		if err != nil {
			return nil, fmt.Errorf("operation %s (call %s): %w", call.Name, call.ID, err)
		}
		results = append(results, operationResult(call, content))
	}
	return results, nil
}

func (d *Dispatcher) run(ctx context.Context, op operation, call models.OperationCall) (string, error) {
	req, err := op.decode(call.Args)
	if err == nil {
		var content string
		content, err = op.handle(ctx, req)
		if err == nil {
			return content, nil
		}
	}

	var validationErr *booking.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Sprintf("Missing or invalid information (%s): %s", validationErr.Field, validationErr.Message), nil
	}
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Message, nil
	}
	var notFoundErr *booking.NotFoundError
	if errors.As(err, &notFoundErr) {
		return fmt.Sprintf("No booking found with ID: %s", notFoundErr.BookingID), nil
	}
	return "", err
}

func operationResult(call models.OperationCall, content string) models.ConversationMessage {
	return models.ConversationMessage{
		Role:          models.RoleOperationResult,
		Content:       content,
		CallID:        call.ID,
		OperationName: call.Name,
	}
}
