package agent

import (
	"strings"
	"testing"
	"time"
)

// Wednesday, 2026-09-02 10:00 UTC.
const clientTime = "2026-09-02T10:00:00Z"

func TestResolveDateTimeMissingParams(t *testing.T) {
	got := resolveDateTime("", clientTime, "")
	want := "Please provide the following missing information: phrase, timezone"
	if got != want {
		t.Errorf("resolveDateTime = %q, want %q", got, want)
	}
}

func TestResolveDateTimeInvalidTimezone(t *testing.T) {
	got := resolveDateTime("tomorrow", clientTime, "Mars/Olympus")
	if !strings.HasPrefix(got, "Invalid timezone: Mars/Olympus.") {
		t.Errorf("resolveDateTime = %q", got)
	}
}

func TestResolveDateTimeInvalidClientTime(t *testing.T) {
	got := resolveDateTime("tomorrow", "yesterday-ish", "UTC")
	if got != "Invalid datetime format. Please provide a valid ISO format datetime." {
		t.Errorf("resolveDateTime = %q", got)
	}
}

func TestResolveDateTimeUnparseablePhrase(t *testing.T) {
	got := resolveDateTime("whenever mercury is in retrograde", clientTime, "UTC")
	if !strings.HasPrefix(got, "Could not understand the date/time phrase:") {
		t.Errorf("resolveDateTime = %q", got)
	}
}

func TestResolveDateTimePhrases(t *testing.T) {
	cases := []struct {
		phrase string
		want   string
	}{
		{"tomorrow at 2pm", "2026-09-03T14:00:00Z"},
		{"today at 9:30am", "2026-09-02T09:30:00Z"},
		{"day after tomorrow at noon", "2026-09-04T12:00:00Z"},
		{"in 3 days at 11am", "2026-09-05T11:00:00Z"},
		{"friday at 4pm", "2026-09-04T16:00:00Z"},
		{"next friday at 4pm", "2026-09-11T16:00:00Z"},
		{"next week", "2026-09-09T10:00:00Z"},
		{"tomorrow morning", "2026-09-03T09:00:00Z"},
		// 8am already passed relative to the 10:00 base, so the next one.
		{"at 8am", "2026-09-03T08:00:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.phrase, func(t *testing.T) {
			got := resolveDateTime(tc.phrase, clientTime, "UTC")
			parsed, err := time.Parse(time.RFC3339, got)
			if err != nil {
				t.Fatalf("resolveDateTime(%q) = %q, not a timestamp", tc.phrase, got)
			}
			want, _ := time.Parse(time.RFC3339, tc.want)
			if !parsed.Equal(want) {
				t.Errorf("resolveDateTime(%q) = %v, want %v", tc.phrase, parsed, want)
			}
		})
	}
}
