// Package matching drives candidate scoring and ranking over a catalog
// snapshot. It is the public entry point of the matching engine.
package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/schedule"
	"github.com/okian/tutormatch/internal/domain/scoring"
)

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithScorer substitutes the scoring policy.
func WithScorer(s scoring.Scorer) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

// WithEvaluator substitutes the evaluator used for slot-level overlap checks.
// It should normally be the same policy the scorer uses.
func WithEvaluator(e schedule.Evaluator) Option {
	return func(m *Matcher) {
		if e != nil {
			m.evaluator = e
		}
	}
}

// WithMaxResults caps the number of results returned by Match. Zero or
// negative means unlimited.
func WithMaxResults(n int) Option {
	return func(m *Matcher) {
		m.maxResults = n
	}
}

// Matcher matches a learner's request against a catalog of instructors.
// It is a pure synchronous computation: it never mutates the request or the
// catalog and holds no state across calls, so concurrent use is safe as
// long as the catalog snapshot itself is immutable.
type Matcher struct {
	scorer     scoring.Scorer
	evaluator  schedule.Evaluator
	maxResults int
}

// New creates a Matcher with default policies.
func New(opts ...Option) *Matcher {
	m := &Matcher{}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	if m.evaluator == nil {
		m.evaluator = schedule.NewFirstMatchEvaluator()
	}
	if m.scorer == nil {
		m.scorer = scoring.NewRuleScorer(scoring.WithEvaluator(m.evaluator))
	}

	return m
}

// Match scores every catalog entry against the request, discards candidates
// with zero confidence, and returns the survivors ordered by confidence
// descending. Ties keep catalog order (stable sort). An empty topic or an
// empty requested-window set yields an empty result, not an error.
func (m *Matcher) Match(ctx context.Context, req model.MatchRequest, catalog []model.Instructor) ([]model.MatchResult, error) {
	if strings.TrimSpace(req.Topic) == "" || len(req.RequestedWindows) == 0 {
		return []model.MatchResult{}, nil
	}

	results := make([]model.MatchResult, 0, len(catalog))
	for _, inst := range catalog {
		scored, err := m.scorer.Score(ctx, scoring.Input{Request: req, Instructor: inst})
		if err != nil {
			return nil, fmt.Errorf("score candidate %s: %w", inst.ID, err)
		}
		if scored.Confidence == 0 {
			continue
		}
		results = append(results, model.MatchResult{
			Instructor:     inst,
			Confidence:     scored.Confidence,
			AvailableSlots: m.availableSlots(ctx, req.RequestedWindows, inst.Availability),
		})
	}

	// Stable keeps catalog order for equal confidence; no secondary key.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	if m.maxResults > 0 && len(results) > m.maxResults {
		results = results[:m.maxResults]
	}
	return results, nil
}

// Best returns the single top-ranked result, or ErrNoMatch when no
// candidate satisfies all criteria.
func (m *Matcher) Best(ctx context.Context, req model.MatchRequest, catalog []model.Instructor) (model.MatchResult, error) {
	results, err := m.Match(ctx, req, catalog)
	if err != nil {
		return model.MatchResult{}, err
	}
	if len(results) == 0 {
		return model.MatchResult{}, ErrNoMatch
	}
	return results[0], nil
}

// availableSlots filters the raw offered strings to those that individually
// overlap (any class) at least one requested window. Slot granularity is
// independent of the pair-level short-circuit used for scoring.
func (m *Matcher) availableSlots(ctx context.Context, requested, offered []string) []string {
	slots := make([]string, 0, len(offered))
	for _, slot := range offered {
		if ok, _ := m.evaluator.Evaluate(ctx, requested, []string{slot}); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}
