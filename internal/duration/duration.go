// Package duration provides parsing for human-readable duration strings.
//
// Users specify retention as "7d" (days), "4w" (weeks), or "3m" (months)
// rather than Go's time.Duration format, matching common CLI conventions.
// Plain Go durations ("12h", "90m") are accepted too since scratch files
// are usually swept on a scale of hours.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d+)([dwm])$`)

// Parse parses duration strings in the format: Nd (days), Nw (weeks), Nm
// (months), or any time.ParseDuration string.
// Examples: "7d" = 7 days, "4w" = 4 weeks, "3m" = 3 months (30 days).
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return 0, fmt.Errorf("invalid duration format: %s (use 12h, 7d, 4w, or 3m)", s)
		}
		return d, nil
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		// Regex ensures digits only, but handle error for correctness
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	day := 24 * time.Hour
	switch matches[2] {
	case "d":
		return time.Duration(num) * day, nil
	case "w":
		return time.Duration(num) * 7 * day, nil
	default:
		return time.Duration(num) * 30 * day, nil
	}
}
