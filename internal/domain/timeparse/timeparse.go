// Package timeparse converts free-form clock-time tokens into fractional hours.
//
// Two time scales coexist in the wire format: 12-hour tokens with an am/pm
// suffix ("2:30pm") and bare numbers carried over from older catalogs ("14",
// "2"). Parse does not reconcile them; callers compare the raw values and
// apply their own wraparound correction.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerHour = 60

// clockPattern matches hour[:minutes][am|pm] after normalization.
var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)?$`)

// Parse converts a single clock-time token into fractional hours.
// "11am" -> 11, "2:30pm" -> 14.5, "12am" -> 0, "14" -> 14.
// Tokens that match neither the clock pattern nor a bare decimal number
// yield an error; callers must degrade to a non-match, never panic.
func Parse(token string) (float64, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.ReplaceAll(t, " ", "")
	if t == "" {
		return 0, fmt.Errorf("%w: empty token", ErrUnparseable)
	}

	m := clockPattern.FindStringSubmatch(t)
	if m == nil {
		// Legacy fallback: plain decimal numbers pass through unchanged.
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
		return v, nil
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
	}
	minutes := 0
	if m[2] != "" {
		minutes, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
	}

	switch m[3] {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return float64(hour) + float64(minutes)/minutesPerHour, nil
}
