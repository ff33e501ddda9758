// Package types contains common wire types used across the application
package types

// InstructorRecord is the wire shape of a catalog entry.
type InstructorRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Expertise         []string `json:"expertise"`
	Languages         []string `json:"languages"`
	Availability      []string `json:"availability"`
	Location          string   `json:"location,omitempty"`
	Rating            float64  `json:"rating"`
	SessionsCompleted int      `json:"sessions_completed"`
}

// MatchEntry is one ranked row returned by a match query.
type MatchEntry struct {
	Instructor     InstructorRecord `json:"instructor"`
	Confidence     float64          `json:"confidence"`
	AvailableSlots []string         `json:"available_slots"`
}
