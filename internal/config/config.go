// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory catalog update queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of catalog ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the update deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxResults caps the number of results returned per match request.
	// Zero means unlimited.
	MaxResults int `koanf:"max_results"`

	// MaxCatalogLimit caps GET /instructors?limit.
	MaxCatalogLimit int `koanf:"max_catalog_limit"`

	// Location proximity bonus settings: absolute numeric distance between
	// proximity keys and the bonus granted within it.
	NearDistance int     `koanf:"near_distance"`
	NearBonus    float64 `koanf:"near_bonus"`
	FarDistance  int     `koanf:"far_distance"`
	FarBonus     float64 `koanf:"far_bonus"`

	// Reputation bonus settings.
	RatingThreshold   float64 `koanf:"rating_threshold"`
	RatingBonus       float64 `koanf:"rating_bonus"`
	SessionsThreshold int     `koanf:"sessions_threshold"`
	SessionsBonus     float64 `koanf:"sessions_bonus"`

	// OverlapOrderGuard withholds bonuses from partial-overlap scores so
	// bonus accretion can never reorder full vs. partial candidates.
	OverlapOrderGuard bool `koanf:"overlap_order_guard"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		QueueSize:         10_000,
		WorkerCount:       runtime.NumCPU() * 2,
		DedupeSize:        50_000,
		MaxResults:        0,
		MaxCatalogLimit:   100,
		NearDistance:      10,
		NearBonus:         0.2,
		FarDistance:       50,
		FarBonus:          0.1,
		RatingThreshold:   4.8,
		RatingBonus:       0.1,
		SessionsThreshold: 50,
		SessionsBonus:     0.1,
		OverlapOrderGuard: false,
	}
}
