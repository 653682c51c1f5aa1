package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	bookingRepo "bookingagent/database/repository/booking"
	scheduleRepo "bookingagent/database/repository/schedule"
	"bookingagent/models"
)

type mockScheduleRepo struct {
	getScheduleFunc func(ctx context.Context, providerID string) (*models.ProviderSchedule, error)
}

func (m *mockScheduleRepo) GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	return m.getScheduleFunc(ctx, providerID)
}

type mockBookingRepo struct {
	insertFunc                   func(ctx context.Context, booking *models.Booking) error
	findByIDFunc                 func(ctx context.Context, id string) (*models.Booking, error)
	findActiveByUserAndStartFunc func(ctx context.Context, userID string, start time.Time) (*models.Booking, error)
	activeStartTimesFunc         func(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error)
	updateStatusWithAuditFunc    func(ctx context.Context, bookingID string, fields bookingRepo.UpdateFields, audit *models.BookingAudit) error
}

func (m *mockBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	return m.insertFunc(ctx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockBookingRepo) FindActiveByUserAndStart(ctx context.Context, userID string, start time.Time) (*models.Booking, error) {
	return m.findActiveByUserAndStartFunc(ctx, userID, start)
}

func (m *mockBookingRepo) ActiveStartTimes(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error) {
	return m.activeStartTimesFunc(ctx, providerID, from, to, excludeBookingID)
}

func (m *mockBookingRepo) UpdateStatusWithAudit(ctx context.Context, bookingID string, fields bookingRepo.UpdateFields, audit *models.BookingAudit) error {
	return m.updateStatusWithAuditFunc(ctx, bookingID, fields, audit)
}

func (m *mockBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

func newTestService(schedule *models.ProviderSchedule, existing []time.Time) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Schedules: &mockScheduleRepo{
			getScheduleFunc: func(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
				if schedule == nil {
					return nil, scheduleRepo.ErrNotFound
				}
				return schedule, nil
			},
		},
		Bookings: &mockBookingRepo{
			activeStartTimesFunc: func(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error) {
				return existing, nil
			},
		},
		Cfg: DefaultSlotConfig(),
		Now: func() time.Time {
			return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
		},
	}
}

func TestCheckAvailabilityScheduleNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	msg, err := svc.CheckAvailability(context.Background(), "missing", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if msg != "Provider schedule not found. Please verify the provider ID." {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckAvailabilityTooFarAhead(t *testing.T) {
	svc := newTestService(testSchedule(), nil)

	msg, err := svc.CheckAvailability(context.Background(), "prov-1", time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if msg != "Bookings can only be made up to 30 days in advance." {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckAvailabilityHoliday(t *testing.T) {
	schedule := testSchedule()
	schedule.Holidays = []string{"2026-09-10"}
	svc := newTestService(schedule, nil)

	msg, err := svc.CheckAvailability(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if msg != "The provider is not available on 2026-09-10 (holiday)." {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckAvailabilityConfirm(t *testing.T) {
	svc := newTestService(testSchedule(), nil)

	msg, err := svc.CheckAvailability(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 40, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if msg != "Slot available at 09:40. Would you like to confirm?" {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckAvailabilityAlternatives(t *testing.T) {
	svc := newTestService(testSchedule(), nil)

	msg, err := svc.CheckAvailability(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 50, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	want := "Requested time not available. Next available slots: 09:00, 09:40, 10:20. Would you like any of these?"
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestCheckAvailabilityNoSlots(t *testing.T) {
	schedule := testSchedule()
	schedule.WorkingHours = nil
	svc := newTestService(schedule, nil)

	msg, err := svc.CheckAvailability(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if !strings.HasPrefix(msg, "No available slots on 2026-09-10.") {
		t.Errorf("message = %q", msg)
	}
}

func TestSlotAvailablePassesExcludeID(t *testing.T) {
	var gotExclude string
	svc := newTestService(testSchedule(), nil)
	svc.Bookings = &mockBookingRepo{
		activeStartTimesFunc: func(ctx context.Context, providerID string, from, to time.Time, excludeBookingID string) ([]time.Time, error) {
			gotExclude = excludeBookingID
			return nil, nil
		},
	}

	ok, err := svc.SlotAvailable(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 40, 0, 0, time.UTC), "bk-42")
	if err != nil {
		t.Fatalf("SlotAvailable returned error: %v", err)
	}
	if !ok {
		t.Error("SlotAvailable = false, want true")
	}
	if gotExclude != "bk-42" {
		t.Errorf("excludeBookingID = %q, want bk-42", gotExclude)
	}
}

func TestSlotAvailableOccupied(t *testing.T) {
	existing := []time.Time{time.Date(2026, 9, 10, 9, 40, 0, 0, time.UTC)}
	svc := newTestService(testSchedule(), existing)

	ok, err := svc.SlotAvailable(context.Background(), "prov-1", time.Date(2026, 9, 10, 9, 40, 0, 0, time.UTC), "")
	if err != nil {
		t.Fatalf("SlotAvailable returned error: %v", err)
	}
	if ok {
		t.Error("SlotAvailable = true for an occupied slot, want false")
	}
}
