// Package model contains domain models passed between layers.
package model

// Reputation captures an instructor's track record. It feeds the bonus
// portion of the confidence score.
type Reputation struct {
	Rating            float64 // average rating, 0-5 scale
	SessionsCompleted int
}

// Instructor is one catalog entry. The catalog owns these records; the
// matching engine treats them as immutable for the duration of a call.
type Instructor struct {
	ID           string
	Name         string
	Expertise    []string // topic strings, e.g. "Math"
	Languages    []string
	Availability []string // raw window strings, e.g. "Wed 2-4", "Fri 11am-1pm"
	Location     string   // proximity key (postal code); empty when unknown
	Reputation   Reputation
}

// MatchRequest is a learner's request as produced by the upstream
// form/validation layer.
type MatchRequest struct {
	Topic              string
	RequestedWindows   []string // raw window strings, same wire format as Availability
	PreferredLanguages []string // empty means no preference
	Location           string   // optional proximity key
}

// MatchResult pairs an instructor with the confidence score and the subset
// of their raw availability strings that overlap the request.
type MatchResult struct {
	Instructor     Instructor
	Confidence     float64
	AvailableSlots []string
}

// CatalogUpdate is the ingestion event that flows through the queue to the
// catalog store. EventID is the idempotency key.
type CatalogUpdate struct {
	EventID    string
	Instructor Instructor
}
