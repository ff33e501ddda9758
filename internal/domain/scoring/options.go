// Package scoring defines the contract for computing a confidence score
// from a match request and one candidate instructor.
package scoring

import "github.com/okian/tutormatch/internal/domain/schedule"

// Option applies a configuration option to the RuleScorer.
type Option func(*RuleScorer)

// WithEvaluator substitutes the overlap evaluation policy.
func WithEvaluator(e schedule.Evaluator) Option {
	return func(s *RuleScorer) {
		if e != nil {
			s.evaluator = e
		}
	}
}

// WithLocationBonuses sets the proximity thresholds and their bonuses.
// Distances are absolute differences between numeric proximity keys.
func WithLocationBonuses(nearDistance int, nearBonus float64, farDistance int, farBonus float64) Option {
	return func(s *RuleScorer) {
		if nearDistance > 0 && farDistance > nearDistance {
			s.nearDistance = nearDistance
			s.nearBonus = nearBonus
			s.farDistance = farDistance
			s.farBonus = farBonus
		}
	}
}

// WithRatingBonus sets the rating threshold and its bonus.
func WithRatingBonus(threshold, bonus float64) Option {
	return func(s *RuleScorer) {
		if threshold > 0 {
			s.ratingThreshold = threshold
			s.ratingBonus = bonus
		}
	}
}

// WithSessionsBonus sets the completed-sessions threshold and its bonus.
func WithSessionsBonus(threshold int, bonus float64) Option {
	return func(s *RuleScorer) {
		if threshold > 0 {
			s.sessionsThreshold = threshold
			s.sessionsBonus = bonus
		}
	}
}

// WithOverlapOrderGuard toggles the guard that withholds bonuses from
// partial-overlap scores, so bonus accretion can never reorder full vs.
// partial candidates.
func WithOverlapOrderGuard(enabled bool) Option {
	return func(s *RuleScorer) {
		s.overlapOrderGuard = enabled
	}
}
