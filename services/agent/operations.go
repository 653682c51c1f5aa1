package agent

import (
	"fmt"
	"strings"
	"time"

	"bookingagent/models"
	"bookingagent/services/booking"
)

// Registered operation names.
const (
	OpCreateBooking     = "create_booking"
	OpCheckAvailability = "check_availability"
	OpUpdateBooking     = "update_booking"
	OpGetDateTime       = "get_date_time"
	OpScheduleReminder  = "schedule_reminder"
)

// operationRequest is the closed union of decoded operation arguments. Each
// variant carries a statically defined argument record; raw model arguments
// never flow past the decode step.
type operationRequest interface {
	operationName() string
}

type createBookingRequest struct {
	UserID      string
	ProviderID  string
	Description string
	StartTime   time.Time
}

func (createBookingRequest) operationName() string { return OpCreateBooking }

type checkAvailabilityRequest struct {
	ProviderID    string
	RequestedTime time.Time
}

func (checkAvailabilityRequest) operationName() string { return OpCheckAvailability }

type updateBookingRequest struct {
	BookingID string
	Status    models.BookingStatus
	NewTime   *time.Time
	Reason    string
}

func (updateBookingRequest) operationName() string { return OpUpdateBooking }

type getDateTimeRequest struct {
	Phrase     string
	ClientTime string
	Timezone   string
}

func (getDateTimeRequest) operationName() string { return OpGetDateTime }

type scheduleReminderRequest struct {
	BookingID string
	UserID    string
	RemindAt  time.Time
	Message   string
}

func (scheduleReminderRequest) operationName() string { return OpScheduleReminder }

// stringArg reads an optional string argument.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// requireString reads a required string argument.
func requireString(args map[string]any, key string) (string, error) {
	s := stringArg(args, key)
	if s == "" {
		return "", &booking.ValidationError{Field: key, Message: "is required"}
	}
	return s, nil
}

// requireTime reads a required ISO-8601 timestamp argument.
func requireTime(args map[string]any, key string) (time.Time, error) {
	s, err := requireString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := parseISOTime(s)
	if err != nil {
		return time.Time{}, &booking.ValidationError{
			Field:   key,
			Message: fmt.Sprintf("%q is not a valid ISO format datetime", s),
		}
	}
	return t, nil
}

// parseISOTime accepts RFC 3339 and the common zone-less ISO variant.
func parseISOTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

func decodeCreateBooking(args map[string]any) (operationRequest, error) {
	userID, err := requireString(args, "user_id")
	if err != nil {
		return nil, err
	}
	description, err := requireString(args, "description")
	if err != nil {
		return nil, err
	}
	startTime, err := requireTime(args, "start_time")
	if err != nil {
		return nil, err
	}
	return createBookingRequest{
		UserID:      userID,
		ProviderID:  stringArg(args, "provider_id"),
		Description: description,
		StartTime:   startTime,
	}, nil
}

func decodeCheckAvailability(args map[string]any) (operationRequest, error) {
	providerID, err := requireString(args, "provider_id")
	if err != nil {
		return nil, err
	}
	requestedTime, err := requireTime(args, "requested_time")
	if err != nil {
		return nil, err
	}
	return checkAvailabilityRequest{ProviderID: providerID, RequestedTime: requestedTime}, nil
}

func decodeUpdateBooking(args map[string]any) (operationRequest, error) {
	bookingID, err := requireString(args, "booking_id")
	if err != nil {
		return nil, err
	}
	status, err := requireString(args, "status")
	if err != nil {
		return nil, err
	}
	req := updateBookingRequest{
		BookingID: bookingID,
		Status:    models.BookingStatus(strings.ToLower(status)),
		Reason:    stringArg(args, "reason"),
	}
	if s := stringArg(args, "new_time"); s != "" {
		t, err := parseISOTime(s)
		if err != nil {
			return nil, &booking.ValidationError{
				Field:   "new_time",
				Message: fmt.Sprintf("%q is not a valid ISO format datetime", s),
			}
		}
		req.NewTime = &t
	}
	return req, nil
}

func decodeGetDateTime(args map[string]any) (operationRequest, error) {
	// Missing fields are reported by the resolver itself so the model sees
	// one message naming everything still needed.
	return getDateTimeRequest{
		Phrase:     stringArg(args, "phrase"),
		ClientTime: stringArg(args, "client_time"),
		Timezone:   stringArg(args, "timezone"),
	}, nil
}

func decodeScheduleReminder(args map[string]any) (operationRequest, error) {
	bookingID, err := requireString(args, "booking_id")
	if err != nil {
		return nil, err
	}
	userID, err := requireString(args, "user_id")
	if err != nil {
		return nil, err
	}
	remindAt, err := requireTime(args, "remind_at")
	if err != nil {
		return nil, err
	}
	return scheduleReminderRequest{
		BookingID: bookingID,
		UserID:    userID,
		RemindAt:  remindAt,
		Message:   stringArg(args, "message"),
	}, nil
}
