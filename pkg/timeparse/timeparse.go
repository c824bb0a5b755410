// Package timeparse handles the lenient date, duration and daily time window
// formats accepted on the command line.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for date/time arguments, most specific first.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006.01.02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006.01.02 15:04",
	"2006-01-02T15",
	"2006-01-02 15",
	"2006.01.02 15",
	"2006-01-02",
	"2006.01.02",
}

var (
	ErrUnknownDateTime = errors.New("unrecognized date/time format")
	ErrBadDuration     = errors.New("unrecognized duration format")
	ErrBadTimeRange    = errors.New("unrecognized time range format")
)

var tzSuffixRe = regexp.MustCompile(`[+-][0-9]{2}:?[0-9]{2}$`)

// ParseDateTime parses value against the accepted layouts, in local time and
// with minute precision. With maximize set, components absent from the
// matched layout are rounded up so the result marks the end of the period
// the value names (e.g. "2024-01-31" becomes 2024-01-31 23:59:59).
func ParseDateTime(value string, maximize bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(tzSuffixRe.ReplaceAllString(value, ""))

	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if !maximize {
			return t.Truncate(time.Minute), nil
		}
		hour, minute := t.Hour(), t.Minute()
		if !strings.Contains(layout, "15") {
			hour = 23
		}
		if !strings.Contains(layout, "04") {
			minute = 59
		}
		return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 59, 0, t.Location()), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDateTime, value)
}

var durationRe = regexp.MustCompile(`^((\d+)d)?\s*((\d+)(?:hr|h))?\s*((\d+)m)?$`)

// ParseDuration parses durations written as a day/hour/minute combination,
// e.g. "1d", "2h30m", "1d 12h". At least one component is required.
func ParseDuration(value string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil || (m[2] == "" && m[4] == "" && m[6] == "") {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, value)
	}
	days, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	hours, _ := strconv.Atoi(zeroIfEmpty(m[4]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[6]))
	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// TimeRange is an inclusive daily time-of-day window, e.g. 08:00-14:30.
type TimeRange struct {
	Start DayTime
	End   DayTime
}

// DayTime is a time of day as seconds since midnight.
type DayTime int

func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d/3600, d/60%60, d%60)
}

// ParseDayTime parses "HH", "HH:MM" or "HH:MM:SS".
func ParseDayTime(value string) (DayTime, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeRange, value)
	}
	elems := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadTimeRange, value)
		}
		elems[i] = n
	}
	if elems[0] > 23 || elems[1] > 59 || elems[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeRange, value)
	}
	return DayTime(elems[0]*3600 + elems[1]*60 + elems[2]), nil
}

// ParseTimeRange parses "start-end", e.g. "8:00-14:30".
func ParseTimeRange(value string) (*TimeRange, error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadTimeRange, value)
	}
	start, err := ParseDayTime(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := ParseDayTime(parts[1])
	if err != nil {
		return nil, err
	}
	return &TimeRange{Start: start, End: end}, nil
}

func (r *TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Covers reports whether t's time of day falls inside the window, inclusive
// on both ends.
func (r *TimeRange) Covers(t time.Time) bool {
	tod := DayTime(t.Hour()*3600 + t.Minute()*60 + t.Second())
	return r.Start <= tod && tod <= r.End
}
