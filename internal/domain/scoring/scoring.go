// Package scoring defines the contract for computing a confidence score
// from a match request and one candidate instructor.
package scoring

import (
	"context"
	"strconv"
	"strings"

	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/schedule"
)

// Default scoring configuration constants.
const (
	defaultNearDistance      = 10
	defaultNearBonus         = 0.2
	defaultFarDistance       = 50
	defaultFarBonus          = 0.1
	defaultRatingThreshold   = 4.8
	defaultRatingBonus       = 0.1
	defaultSessionsThreshold = 50
	defaultSessionsBonus     = 0.1
)

// Input bundles the request and one candidate for scoring.
type Input struct {
	Request    model.MatchRequest
	Instructor model.Instructor
}

// Result contains the computed confidence for a candidate.
type Result struct {
	InstructorID string
	Confidence   float64
	HasOverlap   bool
	Class        schedule.Class
}

// Scorer computes a confidence score for a candidate. Implementations are
// substitutable policies over the same parsing layer.
type Scorer interface {
	// Score computes the confidence, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// RuleScorer implements Scorer with the topic/language/overlap gate and
// additive location and reputation bonuses.
//
// The base confidence is signed: +1 for a full schedule containment, -1 for
// a partial overlap. Bonuses are added on top of a nonzero base, so partial
// match scores stay negative but shift relative to one another. The
// OverlapOrderGuard option withholds bonuses from partial matches entirely
// for deployments that want the overlap class alone to decide ordering
// between full and partial candidates.
type RuleScorer struct {
	evaluator schedule.Evaluator

	// Location proximity bonus parameters
	nearDistance int
	nearBonus    float64
	farDistance  int
	farBonus     float64

	// Reputation bonus parameters
	ratingThreshold   float64
	ratingBonus       float64
	sessionsThreshold int
	sessionsBonus     float64

	// When set, partial-overlap scores receive no bonuses.
	overlapOrderGuard bool
}

// NewRuleScorer creates a rule scorer with configuration options.
func NewRuleScorer(opts ...Option) *RuleScorer {
	s := &RuleScorer{
		evaluator:         schedule.NewFirstMatchEvaluator(),
		nearDistance:      defaultNearDistance,
		nearBonus:         defaultNearBonus,
		farDistance:       defaultFarDistance,
		farBonus:          defaultFarBonus,
		ratingThreshold:   defaultRatingThreshold,
		ratingBonus:       defaultRatingBonus,
		sessionsThreshold: defaultSessionsThreshold,
		sessionsBonus:     defaultSessionsBonus,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the confidence for the given candidate.
func (s *RuleScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{InstructorID: in.Instructor.ID}

	topicOK := topicMatch(in.Request.Topic, in.Instructor.Expertise)
	langOK := languageMatch(in.Request.PreferredLanguages, in.Instructor.Languages)

	hasOverlap, class := s.evaluator.Evaluate(ctx, in.Request.RequestedWindows, in.Instructor.Availability)
	res.HasOverlap = hasOverlap
	res.Class = class

	if !topicOK || !langOK || !hasOverlap {
		return res, nil
	}

	confidence := class.Sign()
	if confidence != 0 && !(s.overlapOrderGuard && class == schedule.Partial) {
		confidence += s.locationBonus(in.Request.Location, in.Instructor.Location)
		confidence += s.reputationBonus(in.Instructor.Reputation)
	}

	res.Confidence = confidence
	return res, nil
}

// topicMatch reports whether expertise contains a case-insensitive exact
// match for the requested topic.
func topicMatch(topic string, expertise []string) bool {
	t := strings.TrimSpace(topic)
	if t == "" {
		return false
	}
	for _, e := range expertise {
		if strings.EqualFold(e, t) {
			return true
		}
	}
	return false
}

// languageMatch reports whether the preference set is empty (no preference)
// or shares at least one member with the instructor's languages.
func languageMatch(preferred, offered []string) bool {
	if len(preferred) == 0 {
		return true
	}
	for _, p := range preferred {
		for _, o := range offered {
			if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(p)) {
				return true
			}
		}
	}
	return false
}

// locationBonus computes the proximity bonus from two proximity keys.
// Non-numeric or missing keys earn no bonus.
func (s *RuleScorer) locationBonus(requestLoc, instructorLoc string) float64 {
	if requestLoc == "" || instructorLoc == "" {
		return 0
	}
	a, errA := strconv.Atoi(strings.TrimSpace(requestLoc))
	b, errB := strconv.Atoi(strings.TrimSpace(instructorLoc))
	if errA != nil || errB != nil {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= s.nearDistance:
		return s.nearBonus
	case diff <= s.farDistance:
		return s.farBonus
	default:
		return 0
	}
}

// reputationBonus computes the rating and experience bonuses.
func (s *RuleScorer) reputationBonus(rep model.Reputation) float64 {
	bonus := 0.0
	if rep.Rating >= s.ratingThreshold {
		bonus += s.ratingBonus
	}
	if rep.SessionsCompleted >= s.sessionsThreshold {
		bonus += s.sessionsBonus
	}
	return bonus
}
