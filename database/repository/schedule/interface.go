package scheduleRepo

import (
	"context"
	"errors"

	"bookingagent/models"
)

// ErrNotFound is returned when no schedule exists for the provider.
var ErrNotFound = errors.New("provider schedule not found")

// Repository is the read-only view of provider schedules. Schedules are
// owned and mutated by provider management, outside this system.
type Repository interface {
	GetSchedule(ctx context.Context, providerID string) (*models.ProviderSchedule, error)
}
