package availability

import (
	"fmt"
	"time"

	"bookingagent/models"
)

// SlotConfig carries the slot generation knobs.
type SlotConfig struct {
	Duration       time.Duration
	Buffer         time.Duration
	MaxDaysAhead   int
	MatchTolerance time.Duration
}

// DefaultSlotConfig returns the stock configuration: 30 minute slots with a
// 10 minute buffer, bookable up to 30 days ahead, matched within 5 minutes.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		Duration:       30 * time.Minute,
		Buffer:         10 * time.Minute,
		MaxDaysAhead:   30,
		MatchTolerance: 5 * time.Minute,
	}
}

// GenerateSlots produces candidate slots for one date ("2006-01-02") from the
// provider's working hours. A schedule without working hours yields an empty
// sequence, not an error. Candidates are walked from the working start in
// steps of duration+buffer; a candidate is discarded when it falls inside a
// break, or when its absolute distance to any existing booking start is less
// than the slot duration. The distance test is deliberately conservative and
// insensitive to which side the existing booking falls on; it is not an
// interval-overlap test.
func GenerateSlots(cfg SlotConfig, schedule *models.ProviderSchedule, date string, existingStarts []time.Time) ([]models.Slot, error) {
	if schedule == nil || schedule.WorkingHours == nil {
		return nil, nil
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", schedule.Timezone, err)
	}

	start, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+schedule.WorkingHours.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid working hours start %q: %w", schedule.WorkingHours.Start, err)
	}
	end, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+schedule.WorkingHours.End, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid working hours end %q: %w", schedule.WorkingHours.End, err)
	}

	breaks := make([]interval, 0, len(schedule.Breaks))
	for _, b := range schedule.Breaks {
		bs, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+b.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid break start %q: %w", b.Start, err)
		}
		be, err := time.ParseInLocation("2006-01-02T15:04", date+"T"+b.End, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid break end %q: %w", b.End, err)
		}
		breaks = append(breaks, interval{bs, be})
	}

	var slots []models.Slot
	step := cfg.Duration + cfg.Buffer
	for current := start; !current.Add(cfg.Duration).After(end); current = current.Add(step) {
		if inBreak(current, breaks) {
			continue
		}
		if nearExisting(current, existingStarts, cfg.Duration) {
			continue
		}
		slots = append(slots, models.Slot{Start: current})
	}
	return slots, nil
}

type interval struct{ start, end time.Time }

func inBreak(t time.Time, breaks []interval) bool {
	for _, b := range breaks {
		if !t.Before(b.start) && t.Before(b.end) {
			return true
		}
	}
	return false
}

func nearExisting(t time.Time, existing []time.Time, duration time.Duration) bool {
	for _, b := range existing {
		d := t.Sub(b)
		if d < 0 {
			d = -d
		}
		if d < duration {
			return true
		}
	}
	return false
}

// SuggestionKind classifies the outcome of an availability check.
type SuggestionKind int

const (
	SuggestTooFarAhead SuggestionKind = iota
	SuggestHoliday
	SuggestNoSlots
	SuggestConfirm
	SuggestAlternatives
)

// Suggestion is the result of matching a requested time against the
// generated slots for a date.
type Suggestion struct {
	Kind         SuggestionKind
	Date         string
	Slot         *models.Slot  // set for SuggestConfirm
	Alternatives []models.Slot // set for SuggestAlternatives; chronological, not proximity, order
}

// Suggest generates slots for the requested date and matches the requested
// time against them. The alternatives list keeps the first slots in
// generation order, not the nearest ones.
func Suggest(cfg SlotConfig, schedule *models.ProviderSchedule, date string, existingStarts []time.Time, requestedTime, now time.Time) (*Suggestion, error) {
	maxFuture := now.AddDate(0, 0, cfg.MaxDaysAhead)
	if date > maxFuture.Format("2006-01-02") {
		return &Suggestion{Kind: SuggestTooFarAhead, Date: date}, nil
	}

	if schedule.IsHoliday(date) {
		return &Suggestion{Kind: SuggestHoliday, Date: date}, nil
	}

	slots, err := GenerateSlots(cfg, schedule, date, existingStarts)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return &Suggestion{Kind: SuggestNoSlots, Date: date}, nil
	}

	nearest := slots[0]
	nearestDiff := absDiff(nearest.Start, requestedTime)
	for _, s := range slots[1:] {
		if d := absDiff(s.Start, requestedTime); d < nearestDiff {
			nearest, nearestDiff = s, d
		}
	}

	if nearestDiff < cfg.MatchTolerance {
		matched := nearest
		return &Suggestion{Kind: SuggestConfirm, Date: date, Slot: &matched}, nil
	}

	alt := slots
	if len(alt) > 3 {
		alt = alt[:3]
	}
	return &Suggestion{Kind: SuggestAlternatives, Date: date, Alternatives: alt}, nil
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
