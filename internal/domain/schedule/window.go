// Package schedule normalizes raw availability window strings and classifies
// the overlap between a learner's requested windows and an instructor's
// offered windows.
package schedule

import (
	"fmt"
	"strings"

	"github.com/okian/tutormatch/internal/domain/timeparse"
)

// Default window configuration constants.
const (
	defaultSlotHours = 1 // synthesized duration for single-time windows
	rangeSeparator   = "-"
	wraparoundShift  = 12 // hours added to a seemingly inverted end time
)

// Window is a normalized (day, start, end) interval. Start and End are
// fractional hours with Start <= End after normalization. Day keeps its
// original casing; comparisons are case-insensitive.
type Window struct {
	Day   string
	Start float64
	End   float64
}

// SameDay reports whether the two windows fall on the same day token.
// Exact string equality ignoring case; "Mon" never matches "Monday".
func (w Window) SameDay(other Window) bool {
	return strings.EqualFold(w.Day, other.Day)
}

// ParseWindow converts a raw "<Day> <start>-<end>" or "<Day> <time>" string
// into a Window. A single time synthesizes a one-hour slot. An end time
// earlier than the start is assumed to be a bare 12-hour token ("11-1")
// and is shifted forward 12 hours; if the pair is still inverted the two
// values are swapped. This is a heuristic for ambiguous 12-hour input, not
// 24-hour arithmetic.
func ParseWindow(raw string) (Window, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return Window{}, fmt.Errorf("%w: %q", ErrMalformedWindow, raw)
	}
	day := fields[0]
	rangeToken := fields[1]

	var start, end float64
	var err error
	if strings.Contains(rangeToken, rangeSeparator) {
		parts := strings.SplitN(rangeToken, rangeSeparator, 2)
		start, err = timeparse.Parse(parts[0])
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %w", ErrMalformedWindow, raw, err)
		}
		end, err = timeparse.Parse(parts[1])
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %w", ErrMalformedWindow, raw, err)
		}
	} else {
		start, err = timeparse.Parse(rangeToken)
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q: %w", ErrMalformedWindow, raw, err)
		}
		end = start + defaultSlotHours
	}

	// Wraparound correction for mixed am/pm tokens ("Fri 11-1" means 11 to 13).
	if end < start {
		end += wraparoundShift
	}
	if end < start {
		start, end = end, start
	}

	return Window{Day: day, Start: start, End: end}, nil
}
