package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "bookingagent/database/repository/booking"
	scheduleRepo "bookingagent/database/repository/schedule"
	"bookingagent/models"
)

// Service checks slot availability and suggests alternatives.
type Service interface {
	// CheckAvailability renders a user-facing availability message for the
	// requested time: a confirmation, a list of alternatives, or the reason
	// the provider cannot be booked.
	CheckAvailability(ctx context.Context, providerID string, requestedTime time.Time) (string, error)
	// SlotAvailable reports whether t matches an open slot for the provider,
	// excluding the given booking id from the conflict set. Used by
	// reschedules so a booking does not conflict with itself.
	SlotAvailable(ctx context.Context, providerID string, t time.Time, excludeBookingID string) (bool, error)
}

// DefaultAvailabilityService composes the schedule store with the booking
// repository's per-day start times.
type DefaultAvailabilityService struct {
	Schedules scheduleRepo.Repository
	Bookings  bookingRepo.Repository
	Cfg       SlotConfig
	Now       func() time.Time
}

func (svc *DefaultAvailabilityService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

func (svc *DefaultAvailabilityService) CheckAvailability(ctx context.Context, providerID string, requestedTime time.Time) (string, error) {
	date := requestedTime.Format("2006-01-02")

	maxFuture := svc.now().AddDate(0, 0, svc.Cfg.MaxDaysAhead)
	if date > maxFuture.Format("2006-01-02") {
		return fmt.Sprintf("Bookings can only be made up to %d days in advance.", svc.Cfg.MaxDaysAhead), nil
	}

	schedule, err := svc.Schedules.GetSchedule(ctx, providerID)
	if err == scheduleRepo.ErrNotFound {
		return "Provider schedule not found. Please verify the provider ID.", nil
	}
	if err != nil {
		return "", err
	}

	suggestion, err := svc.suggestForDate(ctx, schedule, date, requestedTime, "")
	if err != nil {
		return "", err
	}

	loc, _ := time.LoadLocation(schedule.Timezone)
	switch suggestion.Kind {
	case SuggestTooFarAhead:
		return fmt.Sprintf("Bookings can only be made up to %d days in advance.", svc.Cfg.MaxDaysAhead), nil
	case SuggestHoliday:
		return fmt.Sprintf("The provider is not available on %s (holiday).", date), nil
	case SuggestNoSlots:
		return fmt.Sprintf("No available slots on %s. Would you like to check another date?", date), nil
	case SuggestConfirm:
		return fmt.Sprintf("Slot available at %s. Would you like to confirm?", suggestion.Slot.Start.In(loc).Format("15:04")), nil
	default:
		labels := make([]string, 0, len(suggestion.Alternatives))
		for _, s := range suggestion.Alternatives {
			labels = append(labels, s.Start.In(loc).Format("15:04"))
		}
		return fmt.Sprintf("Requested time not available. Next available slots: %s. Would you like any of these?", strings.Join(labels, ", ")), nil
	}
}

func (svc *DefaultAvailabilityService) SlotAvailable(ctx context.Context, providerID string, t time.Time, excludeBookingID string) (bool, error) {
	schedule, err := svc.Schedules.GetSchedule(ctx, providerID)
	if err == scheduleRepo.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	date := t.Format("2006-01-02")
	suggestion, err := svc.suggestForDate(ctx, schedule, date, t, excludeBookingID)
	if err != nil {
		return false, err
	}
	return suggestion.Kind == SuggestConfirm, nil
}

// suggestForDate fetches the day's booked start times and runs the engine.
func (svc *DefaultAvailabilityService) suggestForDate(
	ctx context.Context,
	schedule *models.ProviderSchedule,
	date string,
	requestedTime time.Time,
	excludeBookingID string,
) (*Suggestion, error) {
	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", schedule.Timezone, err)
	}
	dayStart, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := svc.Bookings.ActiveStartTimes(ctx, schedule.ProviderID, dayStart, dayEnd, excludeBookingID)
	if err != nil {
		return nil, err
	}

	return Suggest(svc.Cfg, schedule, date, existing, requestedTime, svc.now())
}
