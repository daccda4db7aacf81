package utils

import (
	"fmt"
	"math"
	"time"
)

// ISOLayout renders local timestamps with microsecond precision and no zone,
// which is what the downstream tooling expects in fixture files.
const ISOLayout = "2006-01-02T15:04:05.000000"

// FormatISO formats t using ISOLayout.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// ParseISO parses a timestamp written by FormatISO.
func ParseISO(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	t, err := time.ParseInLocation(ISOLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}
	return t, nil
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
