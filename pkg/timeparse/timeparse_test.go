package timeparse

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateTime_Formats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-05T10:30:00", time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)},
		{"2024-01-05 10:30:00", time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)},
		{"2024.01.05 10:30", time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)},
		{"2024-01-05T10", time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local)},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		{"2024.01.05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		// Timezone suffixes are dropped, not honored.
		{"2024-01-05T10:30:00+02:00", time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)},
		{"2024-01-05T10:30:00+0200", time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := ParseDateTime(tt.in, false)
		if err != nil {
			t.Errorf("ParseDateTime(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTime_Maximize(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		// Missing components round up to the end of the named period.
		{"2024-01-31", time.Date(2024, 1, 31, 23, 59, 59, 0, time.Local)},
		{"2024-01-31 10", time.Date(2024, 1, 31, 10, 59, 59, 0, time.Local)},
		{"2024-01-31 10:15", time.Date(2024, 1, 31, 10, 15, 59, 0, time.Local)},
		{"2024-01-31 10:15:00", time.Date(2024, 1, 31, 10, 15, 59, 0, time.Local)},
	}

	for _, tt := range tests {
		got, err := ParseDateTime(tt.in, true)
		if err != nil {
			t.Errorf("ParseDateTime(%q, maximize): unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateTime(%q, maximize) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "soon", "01/05/2024", "2024"} {
		if _, err := ParseDateTime(in, false); !errors.Is(err, ErrUnknownDateTime) {
			t.Errorf("ParseDateTime(%q): got %v, want ErrUnknownDateTime", in, err)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1h", time.Hour},
		{"2hr", 2 * time.Hour},
		{"30m", 30 * time.Minute},
		{"1d", 24 * time.Hour},
		{"1d2h30m", 26*time.Hour + 30*time.Minute},
		{"1d 2h 30m", 26*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "5", "2x", "h"} {
		if _, err := ParseDuration(in); !errors.Is(err, ErrBadDuration) {
			t.Errorf("ParseDuration(%q): got %v, want ErrBadDuration", in, err)
		}
	}
}

func TestTimeRange_Covers(t *testing.T) {
	tr, err := ParseTimeRange("8:00-14:30")
	if err != nil {
		t.Fatalf("ParseTimeRange: %v", err)
	}

	tests := []struct {
		hour, minute int
		want         bool
	}{
		{7, 59, false},
		{8, 0, true}, // inclusive lower bound
		{12, 0, true},
		{14, 30, true}, // inclusive upper bound
		{14, 31, false},
	}
	for _, tt := range tests {
		at := time.Date(2024, 2, 1, tt.hour, tt.minute, 0, 0, time.Local)
		if got := tr.Covers(at); got != tt.want {
			t.Errorf("Covers(%02d:%02d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestParseTimeRange_Invalid(t *testing.T) {
	for _, in := range []string{"", "8:00", "8:00-9:00-10:00", "25:00-26:00", "a-b"} {
		if _, err := ParseTimeRange(in); !errors.Is(err, ErrBadTimeRange) {
			t.Errorf("ParseTimeRange(%q): got %v, want ErrBadTimeRange", in, err)
		}
	}
}
