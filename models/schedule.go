package models

import "time"

// WorkingHours is a provider's daily booking window in wall-clock time
// ("15:04" format, interpreted in the provider's timezone).
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// BreakInterval is a wall-clock interval inside working hours during which
// no slots are offered.
type BreakInterval struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// ProviderSchedule is the read-only view of a provider's availability rules.
// Owned and mutated by provider management; the availability engine only reads it.
type ProviderSchedule struct {
	ProviderID   string          `bson:"provider_id" json:"provider_id"`
	Timezone     string          `bson:"timezone" json:"timezone"` // IANA name, e.g. "Africa/Harare"
	WorkingHours *WorkingHours   `bson:"working_hours,omitempty" json:"working_hours,omitempty"`
	Breaks       []BreakInterval `bson:"breaks,omitempty" json:"breaks,omitempty"`
	Holidays     []string        `bson:"holidays,omitempty" json:"holidays,omitempty"` // "2006-01-02" dates
}

// IsHoliday reports whether the given date is a declared holiday.
func (s *ProviderSchedule) IsHoliday(date string) bool {
	for _, h := range s.Holidays {
		if h == date {
			return true
		}
	}
	return false
}

// Slot is a candidate appointment start instant. Duration is fixed by
// configuration; slots are computed on demand and never persisted.
type Slot struct {
	Start time.Time `json:"start"`
}
