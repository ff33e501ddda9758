package testcatalog

import "time"

// Config holds configuration for the catalog test
type Config struct {
	BaseURL        string        // Base URL of the service
	NumInstructors int           // Number of instructors to generate
	NumMatches     int           // Number of match queries to fire
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Output file for instructors
	LogFile        string        // Log file for test output
	Verbose        bool          // Enable verbose logging
}

// Instructor represents an instructor registration payload
type Instructor struct {
	EventID           string   `json:"event_id"`
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Expertise         []string `json:"expertise"`
	Languages         []string `json:"languages"`
	Availability      []string `json:"availability"`
	Location          string   `json:"location,omitempty"`
	Rating            float64  `json:"rating"`
	SessionsCompleted int      `json:"sessions_completed"`
}

// MatchQuery represents a match request payload
type MatchQuery struct {
	Topic              string   `json:"topic"`
	RequestedWindows   []string `json:"requested_windows"`
	PreferredLanguages []string `json:"preferred_languages,omitempty"`
	Location           string   `json:"location,omitempty"`
}

// MatchEntry represents one ranked result from a match response
type MatchEntry struct {
	Instructor struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"instructor"`
	Confidence     float64  `json:"confidence"`
	AvailableSlots []string `json:"available_slots"`
}

// AckResponse represents the response from instructor registration
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics
type Stats struct {
	InstructorsGenerated int
	InstructorsSubmitted int
	InstructorsAccepted  int
	InstructorsDuplicate int
	InstructorsFailed    int
	MatchesFired         int
	MatchesSucceeded     int
	MatchesFailed        int
	OrderingViolations   int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
