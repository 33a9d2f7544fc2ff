package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// bucket holds the fixed-window counter state for one key.
type bucket struct {
	count       int64
	windowStart time.Time
	lastAccess  time.Time // used by cleanup to identify stale buckets
}

// MemoryStore implements Store using in-process storage. Suitable for a
// single node; use RedisStore when counters must be shared.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	bucketsCreated atomic.Int64
	bucketsRemoved atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring.
type MemoryStoreStats struct {
	BucketsCreated int64
	BucketsRemoved int64
	ActiveBuckets  int
	IsRunning      bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale buckets are swept.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithLogger sets the logger for internal operations.
func WithLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates a new in-memory store.
// Call Start or Run to begin background cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Increment implements Store. A key whose window has elapsed gets a fresh
// bucket with count 1; otherwise the existing count grows without bound,
// which keeps repeat calls while limited cheap and harmless.
func (ms *MemoryStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	b, exists := ms.buckets[key]
	if !exists || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		ms.buckets[key] = b
		if !exists {
			ms.bucketsCreated.Add(1)
		}
	}

	b.count++
	b.lastAccess = now

	return b.count, b.windowStart, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	return nil
}

// Start begins the background cleanup loop. This blocks until the context
// is cancelled; use Run for errgroup integration or call this in a
// goroutine.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store already started")
	}
	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}

	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	ms.logger.InfoContext(ms.ctx, "rate limiter cleanup started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			ms.logger.InfoContext(context.Background(), "rate limiter cleanup stopping")
			return ms.ctx.Err()
		case <-ticker.C:
			ms.cleanupWithWait()
		}
	}
}

// Stop gracefully shuts down the background cleanup with a timeout.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store not started")
	}

	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- ms.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = ms.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (ms *MemoryStore) cleanupWithWait() {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.Unlock()

	defer ms.wg.Done()
	ms.removeStale()
}

// removeStale drops buckets unused for an hour. Expired windows are inert
// (Increment restarts them on next use), so cleanup is purely about memory.
func (ms *MemoryStore) removeStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	const staleThreshold = time.Hour

	now := time.Now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > staleThreshold {
			delete(ms.buckets, key)
			removed++
		}
	}

	if removed > 0 {
		ms.bucketsRemoved.Add(int64(removed))
	}
}

// Stats returns current store statistics. Thread-safe.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	isRunning := ms.cancel != nil
	active := len(ms.buckets)
	ms.mu.Unlock()

	return MemoryStoreStats{
		BucketsCreated: ms.bucketsCreated.Load(),
		BucketsRemoved: ms.bucketsRemoved.Load(),
		ActiveBuckets:  active,
		IsRunning:      isRunning,
	}
}

// Healthcheck validates that the store is operational.
func (ms *MemoryStore) Healthcheck(ctx context.Context) error {
	stats := ms.Stats()
	if ms.cleanupInterval > 0 && !stats.IsRunning {
		return fmt.Errorf("cleanup is configured but not running")
	}
	return nil
}
