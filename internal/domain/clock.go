package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat reports a trigger time that is not HH:MM 24-hour.
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	// ErrLimitExceeded reports that a user hit the daily time-change limit.
	ErrLimitExceeded = errors.New("time change limit exceeded")
	// ErrCityNotFound reports a city the forecast provider cannot resolve.
	ErrCityNotFound = errors.New("city not found")
)

// ParseClock validates an HH:MM 24-hour wall-clock string and returns its
// hour and minute components.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, ErrInvalidTimeFormat
	}
	// strconv.Atoi accepts a leading sign, so both components must be
	// digits-only before conversion
	for _, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, 0, ErrInvalidTimeFormat
			}
		}
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	if hour > 23 || minute > 59 {
		return 0, 0, ErrInvalidTimeFormat
	}
	return hour, minute, nil
}

// FormatClock returns HH:MM for an hour and minute pair.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// NextDailyFire computes the next instant at or after now whose local
// time-of-day equals hhmm. If that time-of-day has already passed today,
// the target is tomorrow at the same time.
func NextDailyFire(now time.Time, hhmm string) (time.Time, error) {
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if target.Before(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}
