// Package worker defines worker contracts for asynchronous catalog ingestion.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/tutormatch/internal/domain/model"
	"github.com/okian/tutormatch/internal/domain/schedule"
	"github.com/okian/tutormatch/pkg/logger"
	"github.com/okian/tutormatch/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Update abstracts what workers read off the queue.
type Update = model.CatalogUpdate

// Upserter applies a validated instructor record to the catalog.
type Upserter interface {
	Upsert(ctx context.Context, inst model.Instructor) (bool, error)
}

// Queue defines how workers receive updates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Update
}

// Worker consumes catalog updates and applies them to the store.
//
// Availability windows that fail to parse are logged and counted but kept:
// the matching engine degrades them to a non-match on its own, and dropping
// them here would silently change what the instructor appears to offer.
type Worker struct {
	queue    Queue
	upserter Upserter
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a worker with configuration options.
func New(queue Queue, upserter Upserter, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		upserter: upserter,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run starts the worker loop until ctx is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	updates := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := w.processUpdate(ctx, u); err != nil {
				w.logger.Error(ctx, "error processing catalog update", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processUpdate validates and applies a single catalog update.
func (w *Worker) processUpdate(ctx context.Context, u Update) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	for _, raw := range u.Instructor.Availability {
		if _, err := schedule.ParseWindow(raw); err != nil {
			metrics.RecordWindowParseFailure()
			w.logger.Warn(ctx, "unparseable availability window kept as-is",
				logger.String("instructorID", u.Instructor.ID),
				logger.String("window", raw),
				logger.Error(err),
			)
		}
	}

	created, err := w.upserter.Upsert(ctx, u.Instructor)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "catalog_error")
		w.logger.Error(ctx, "catalog upsert failed",
			logger.String("eventID", u.EventID),
			logger.String("instructorID", u.Instructor.ID),
			logger.Error(err),
		)
		return fmt.Errorf("catalog upsert for %s: %w", u.Instructor.ID, err)
	}

	metrics.RecordUpdateProcessed()
	w.logger.Debug(ctx, "catalog update applied",
		logger.String("eventID", u.EventID),
		logger.String("instructorID", u.Instructor.ID),
		logger.Bool("created", created),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, upserter Upserter) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		p.workers[i] = New(queue, upserter, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers. Callers should close the queue first
// so drained workers exit on their own.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}
