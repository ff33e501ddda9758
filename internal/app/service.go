// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"runtime"
	"sync"
	"time"

	updatequeue "github.com/okian/tutormatch/internal/adapters/mq/queue"
	workerpool "github.com/okian/tutormatch/internal/adapters/mq/worker"
	"github.com/okian/tutormatch/internal/adapters/repository"
	"github.com/okian/tutormatch/internal/domain/dedupe"
	"github.com/okian/tutormatch/internal/domain/matching"
	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/schedule"
	"github.com/okian/tutormatch/internal/domain/scoring"
	"github.com/okian/tutormatch/internal/domain/types"
	"github.com/okian/tutormatch/pkg/logger"
	"github.com/okian/tutormatch/pkg/metrics"
)

// Service wires the catalog store, the ingestion pipeline and the matching
// engine behind the API dependency interfaces.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog     repository.Store
	deduper     dedupe.Deduper
	updateQueue updatequeue.Queue
	matcher     *matching.Matcher
	workerPool  *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	maxResults  int
	scorerOpts  []scoring.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the catalog update queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxResults caps the number of results returned per match request.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithScorerOptions forwards options to the candidate scorer.
func WithScorerOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scorerOpts = append(s.scorerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	s.catalog = repository.NewMemoryStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.updateQueue = updatequeue.NewInMemoryQueue(
		updatequeue.WithCapacity(s.queueSize),
	)

	// One evaluator shared by scoring and slot filtering, so both report
	// parse failures the same way.
	evaluator := schedule.NewFirstMatchEvaluator(
		schedule.WithParseFailureHook(func(raw string, err error) {
			metrics.RecordWindowParseFailure()
		}),
	)
	scorerOpts := append([]scoring.Option{scoring.WithEvaluator(evaluator)}, s.scorerOpts...)
	s.matcher = matching.New(
		matching.WithEvaluator(evaluator),
		matching.WithScorer(scoring.NewRuleScorer(scorerOpts...)),
		matching.WithMaxResults(s.maxResults),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.updateQueue, s.catalog)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	// Close the queue first so drained workers exit on their own.
	if s.updateQueue != nil {
		_ = s.updateQueue.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// SeenAndRecord atomically checks if an update id was seen and records it
// if not. Returns true if the update was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordUpdateDuplicate()
	}
	return seen
}

// Unrecord removes an update ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// EnqueueUpdate submits a catalog update for asynchronous ingestion.
func (s *Service) EnqueueUpdate(ctx context.Context, u model.CatalogUpdate) bool {
	s.logger.Debug(ctx, "enqueueing catalog update",
		logger.String("eventID", u.EventID),
		logger.String("instructorID", u.Instructor.ID),
	)
	return s.updateQueue.Enqueue(ctx, u)
}

// Match runs the matching engine against the current catalog snapshot.
func (s *Service) Match(ctx context.Context, req model.MatchRequest) ([]types.MatchEntry, error) {
	start := time.Now()
	snapshot := s.catalog.Snapshot(ctx)

	results, err := s.matcher.Match(ctx, req, snapshot)
	if err != nil {
		metrics.RecordErrorByComponent("matcher", "match_error")
		return nil, err
	}

	metrics.RecordMatchRequest()
	metrics.RecordMatchLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordCandidatesEvaluated(len(snapshot))
	metrics.RecordMatchesReturned(len(results))

	entries := make([]types.MatchEntry, len(results))
	for i, r := range results {
		entries[i] = toMatchEntry(r)
	}
	return entries, nil
}

// Instructors returns up to limit catalog entries in registration order.
func (s *Service) Instructors(ctx context.Context, limit int) ([]types.InstructorRecord, error) {
	instructors, err := s.catalog.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]types.InstructorRecord, len(instructors))
	for i, inst := range instructors {
		records[i] = toInstructorRecord(inst)
	}
	return records, nil
}

// Instructor returns the catalog entry with the given id.
func (s *Service) Instructor(ctx context.Context, id string) (types.InstructorRecord, error) {
	inst, err := s.catalog.Get(ctx, id)
	if err != nil {
		return types.InstructorRecord{}, err
	}
	return toInstructorRecord(inst), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.updateQueue.Len(ctx)
		catalogSize := s.catalog.Count(ctx)

		stats["queueLength"] = queueLen
		stats["catalogSize"] = catalogSize

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateCatalogSize(catalogSize)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// toInstructorRecord converts a domain instructor to its wire shape.
func toInstructorRecord(inst model.Instructor) types.InstructorRecord {
	return types.InstructorRecord{
		ID:                inst.ID,
		Name:              inst.Name,
		Expertise:         inst.Expertise,
		Languages:         inst.Languages,
		Availability:      inst.Availability,
		Location:          inst.Location,
		Rating:            inst.Reputation.Rating,
		SessionsCompleted: inst.Reputation.SessionsCompleted,
	}
}

// toMatchEntry converts a domain match result to its wire shape.
func toMatchEntry(r model.MatchResult) types.MatchEntry {
	return types.MatchEntry{
		Instructor:     toInstructorRecord(r.Instructor),
		Confidence:     r.Confidence,
		AvailableSlots: r.AvailableSlots,
	}
}
