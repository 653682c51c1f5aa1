package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative date resolution for the get_date_time operation. Only the
// contract matters here: the caller supplies a natural-language phrase, the
// device clock and an IANA timezone, and gets back either an ISO timestamp
// or a message naming what is missing or invalid.

var (
	timeOfDayRe = regexp.MustCompile(`\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	inDaysRe    = regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func resolveDateTime(phrase, clientTime, tzName string) string {
	var missing []string
	if phrase == "" {
		missing = append(missing, "phrase")
	}
	if clientTime == "" {
		missing = append(missing, "client_time")
	}
	if tzName == "" {
		missing = append(missing, "timezone")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("Please provide the following missing information: %s", strings.Join(missing, ", "))
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return fmt.Sprintf("Invalid timezone: %s. Please provide a valid IANA timezone name.", tzName)
	}

	base, err := parseClientTime(clientTime, loc)
	if err != nil {
		return "Invalid datetime format. Please provide a valid ISO format datetime."
	}

	resolved, ok := resolvePhrase(strings.ToLower(phrase), base)
	if !ok {
		return fmt.Sprintf("Could not understand the date/time phrase: '%s'. Please rephrase.", phrase)
	}
	return resolved.Format(time.RFC3339)
}

func parseClientTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, loc)
}

// resolvePhrase handles the common relative forms: today, tomorrow, day
// after tomorrow, "in N days", weekday names with optional "next", each with
// an optional "at HH(:MM)(am|pm)" clause. Ambiguous dates prefer the future.
func resolvePhrase(phrase string, base time.Time) (time.Time, bool) {
	dayOffset, dayMatched := dayOffsetFor(phrase, base)
	hour, minute, timeMatched := timeOfDayFor(phrase)

	if !dayMatched && !timeMatched {
		return time.Time{}, false
	}

	target := base.AddDate(0, 0, dayOffset)
	if timeMatched {
		target = time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, base.Location())
	}

	// A bare time of day that already passed today means the next one.
	if !dayMatched && timeMatched && !target.After(base) {
		target = target.AddDate(0, 0, 1)
	}
	return target, true
}

func dayOffsetFor(phrase string, base time.Time) (int, bool) {
	switch {
	case strings.Contains(phrase, "day after tomorrow"):
		return 2, true
	case strings.Contains(phrase, "tomorrow"):
		return 1, true
	case strings.Contains(phrase, "today"), strings.Contains(phrase, "tonight"):
		return 0, true
	}

	if m := inDaysRe.FindStringSubmatch(phrase); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}

	for name, weekday := range weekdays {
		if !strings.Contains(phrase, name) {
			continue
		}
		offset := (int(weekday) - int(base.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		if strings.Contains(phrase, "next "+name) && offset < 7 {
			offset += 7
		}
		return offset, true
	}

	if strings.Contains(phrase, "next week") {
		return 7, true
	}
	return 0, false
}

func timeOfDayFor(phrase string) (hour, minute int, ok bool) {
	m := timeOfDayRe.FindStringSubmatch(phrase)
	if m == nil {
		switch {
		case strings.Contains(phrase, "noon"), strings.Contains(phrase, "midday"):
			return 12, 0, true
		case strings.Contains(phrase, "morning"):
			return 9, 0, true
		case strings.Contains(phrase, "afternoon"):
			return 14, 0, true
		case strings.Contains(phrase, "evening"):
			return 18, 0, true
		}
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
