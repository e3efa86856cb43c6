// Package timeofday converts between wall-clock "hh:mm AM/PM" input and
// full timestamps, and derives local calendar keys used for grouping.
package timeofday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Period is the half of the day a 12-hour clock value belongs to.
type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

const (
	DateKeyLayout = "2006-01-02"

	// DefaultBreakMinutes is how far after a break start the end suggestion lands.
	DefaultBreakMinutes = 15
)

var (
	locMu    sync.RWMutex
	location = time.Local
)

// SetLocation changes the zone used for local calendar keys.
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	locMu.Lock()
	location = loc
	locMu.Unlock()
}

// Location returns the zone used for local calendar keys.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return location
}

// ParsePeriod accepts "am"/"pm" in any case.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(strings.TrimSpace(s))) {
	case AM:
		return AM, nil
	case PM:
		return PM, nil
	}
	return "", formatErr(s, "period must be AM or PM")
}

// Parts splits t into a zero-padded 12-hour "hh:mm" and its period.
func Parts(t time.Time) (string, Period) {
	t = t.In(Location())
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	period := AM
	if t.Hour() >= 12 {
		period = PM
	}
	return fmt.Sprintf("%02d:%02d", hour12, t.Minute()), period
}

// CurrentParts is Parts applied to now.
func CurrentParts(now time.Time) (string, Period) {
	return Parts(now)
}

// OffsetParts is Parts applied to now shifted by minutes.
func OffsetParts(now time.Time, minutes int) (string, Period) {
	return Parts(now.Add(time.Duration(minutes) * time.Minute))
}

// DateKey returns the local calendar day of t as YYYY-MM-DD.
// The zero time has no key.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(DateKeyLayout)
}

var hhmmPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])$`)

// Parse validates a 12-hour "hh:mm" value and returns the 24-hour clock.
func Parse(hhmm string, period Period) (hour24 int, minute int, err error) {
	trimmed := strings.TrimSpace(hhmm)
	match := hhmmPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return 0, 0, formatErr(hhmm, "enter time as hh:mm (example: 09:30)")
	}
	if period != AM && period != PM {
		return 0, 0, formatErr(string(period), "period must be AM or PM")
	}

	hour12, _ := strconv.Atoi(match[1])
	minute, _ = strconv.Atoi(match[2])

	hour24 = hour12 % 12
	if period == PM {
		hour24 += 12
	}
	return hour24, minute, nil
}

// Combine places the parsed time of day on the local calendar date of anchor.
func Combine(anchor time.Time, hhmm string, period Period) (time.Time, error) {
	if anchor.IsZero() {
		return time.Time{}, formatErr("", "invalid attendance time")
	}
	hour24, minute, err := Parse(hhmm, period)
	if err != nil {
		return time.Time{}, err
	}
	loc := Location()
	local := anchor.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour24, minute, 0, 0, loc), nil
}

// ParseAnchor reads an ISO-8601 timestamp received from the backend.
func ParseAnchor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, Location()); err == nil {
		return t, nil
	}
	return time.Time{}, formatErr(s, "invalid attendance time")
}

var adminLocalLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseAdminTime accepts the timestamp shapes managers send when they
// override check-in, check-out or break times. An empty value returns
// the zero time and no error. A bare "15:04" is dated on now's local day.
func ParseAdminTime(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	loc := Location()
	for _, layout := range adminLocalLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse("15:04", value); err == nil {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, formatErr(value, "invalid time format")
}
