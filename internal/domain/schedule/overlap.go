package schedule

import "context"

// Class is the categorical result of comparing two windows on the same day.
type Class int

// Overlap classes, weakest to strongest.
const (
	None Class = iota
	Partial
	Full
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// Sign returns the confidence contribution of the class: +1 for a full
// containment, -1 for a partial overlap, 0 otherwise. A partial overlap is
// a weaker signal (the session might still be adjustable), hence negative.
func (c Class) Sign() float64 {
	switch c {
	case Full:
		return 1
	case Partial:
		return -1
	default:
		return 0
	}
}

// Classify compares one requested window against one offered window.
// Full means the offered interval contains the requested interval. Partial
// means the offered window's start or end falls inside the requested
// interval without full containment. Day mismatches and disjoint intervals
// are None.
func Classify(requested, offered Window) Class {
	if !requested.SameDay(offered) {
		return None
	}
	if offered.Start <= requested.Start && offered.End >= requested.End {
		return Full
	}
	startsInside := offered.Start >= requested.Start && offered.Start < requested.End
	endsInside := offered.End > requested.Start && offered.End <= requested.End
	if startsInside || endsInside {
		return Partial
	}
	return None
}

// Evaluator classifies the schedule relationship between a set of requested
// windows and a set of offered windows, both given as raw strings.
// Implementations are substitutable policies; scoring changes must not
// require touching the parsing layer.
type Evaluator interface {
	// Evaluate reports whether any requested/offered pair overlaps and the
	// class of the pair that decided it.
	Evaluate(ctx context.Context, requested, offered []string) (bool, Class)
}

// Option applies a configuration option to the FirstMatchEvaluator.
type Option func(*FirstMatchEvaluator)

// FirstMatchEvaluator scans requested x offered pairs in order and stops at
// the first pair classified Full or Partial. The reported class is the first
// one encountered, not the best possible pairing, so the result is sensitive
// to window order. Malformed windows are skipped rather than failing the
// evaluation.
type FirstMatchEvaluator struct {
	onParseFailure func(raw string, err error)
}

// WithParseFailureHook installs a callback invoked for every window string
// that fails to parse. Used for logging and metrics; the evaluation itself
// degrades the window to no overlap.
func WithParseFailureHook(hook func(raw string, err error)) Option {
	return func(e *FirstMatchEvaluator) {
		if hook != nil {
			e.onParseFailure = hook
		}
	}
}

// NewFirstMatchEvaluator creates an evaluator with configuration options.
func NewFirstMatchEvaluator(opts ...Option) *FirstMatchEvaluator {
	e := &FirstMatchEvaluator{
		onParseFailure: func(string, error) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate implements Evaluator with short-circuit scanning.
func (e *FirstMatchEvaluator) Evaluate(ctx context.Context, requested, offered []string) (bool, Class) {
	for _, rawReq := range requested {
		if err := ctx.Err(); err != nil {
			return false, None
		}
		req, err := ParseWindow(rawReq)
		if err != nil {
			e.onParseFailure(rawReq, err)
			continue
		}
		for _, rawOff := range offered {
			off, err := ParseWindow(rawOff)
			if err != nil {
				e.onParseFailure(rawOff, err)
				continue
			}
			if class := Classify(req, off); class != None {
				return true, class
			}
		}
	}
	return false, None
}
