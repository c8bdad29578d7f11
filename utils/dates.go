package utils

import (
	"fmt"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t.UTC(), nil
}

// StartOfDay drops the clock part, keeping the calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b; negative when b is before a
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
