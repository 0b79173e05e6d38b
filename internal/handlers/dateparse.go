// internal/handlers/dateparse.go
package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseLocalDate accepts the five wire formats the HTTP surface supports:
// "YYYY-MM-DD", "YYYY-MM-DD HH:MM", "YYYY-MM-DDTHH:MM", "DD/MM/YYYY" and
// "DD/MM/YYYY HH:MM". Time of day defaults to 12:00 when omitted. The result
// is attached to loc, the configured business timezone.
func parseLocalDate(value string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	s = strings.ReplaceAll(s, "T", " ")

	fields := strings.Fields(s)
	datePart := fields[0]
	timePart := "12:00"
	if len(fields) > 1 {
		timePart = fields[1]
	}

	var year, month, day int
	var err error
	if strings.Contains(datePart, "/") {
		parts := strings.Split(datePart, "/")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("invalid date %q", value)
		}
		day, err = strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day in %q: %w", value, err)
		}
		month, err = strconv.Atoi(parts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid month in %q: %w", value, err)
		}
		year, err = strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year in %q: %w", value, err)
		}
	} else {
		parts := strings.Split(datePart, "-")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("invalid date %q", value)
		}
		year, err = strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year in %q: %w", value, err)
		}
		month, err = strconv.Atoi(parts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid month in %q: %w", value, err)
		}
		day, err = strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day in %q: %w", value, err)
		}
	}

	timeParts := strings.Split(timePart, ":")
	if len(timeParts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(timeParts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	minute, err := strconv.Atoi(timeParts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", value, err)
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), nil
}
