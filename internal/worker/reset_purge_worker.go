package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/pkg/logger"
)

// ResetRecordPurger deletes consumption records of expired reset tokens
type ResetRecordPurger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// ResetPurgeWorkerConfig contains configuration for the purge worker
type ResetPurgeWorkerConfig struct {
	// Interval between purges
	Interval time.Duration
	// Grace keeps records this long after their token expired
	Grace time.Duration
}

// DefaultResetPurgeWorkerConfig returns default configuration
func DefaultResetPurgeWorkerConfig() *ResetPurgeWorkerConfig {
	return &ResetPurgeWorkerConfig{
		Interval: time.Hour,
		Grace:    time.Hour,
	}
}

// ResetPurgeWorker periodically removes password reset consumption records
// that can no longer matter: their tokens fail verification on expiry anyway.
type ResetPurgeWorker struct {
	purger  ResetRecordPurger
	config  *ResetPurgeWorkerConfig
	log     *logger.Logger
	now     func() time.Time
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool

	totalPurged int64
}

// NewResetPurgeWorker creates a new purge worker
func NewResetPurgeWorker(purger ResetRecordPurger, config *ResetPurgeWorkerConfig) *ResetPurgeWorker {
	if config == nil {
		config = DefaultResetPurgeWorkerConfig()
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}

	return &ResetPurgeWorker{
		purger: purger,
		config: config,
		log:    logger.Get().Named("reset_purge_worker"),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// Start starts the worker
func (w *ResetPurgeWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("reset purge worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("Starting reset purge worker", zap.Duration("interval", w.config.Interval))

	w.wg.Add(1)
	go w.loop(ctx)

	return nil
}

// Stop stops the worker and waits for an in-flight purge
func (w *ResetPurgeWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Reset purge worker stopped")
}

func (w *ResetPurgeWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *ResetPurgeWorker) purge(ctx context.Context) {
	before := w.now().Add(-w.config.Grace)
	deleted, err := w.purger.PurgeExpired(ctx, before)
	if err != nil {
		w.log.Error("Failed to purge reset records", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.totalPurged += deleted
	w.mu.Unlock()

	if deleted > 0 {
		w.log.Info("Purged reset records", zap.Int64("deleted", deleted))
	}
}

// TotalPurged returns how many records the worker has removed
func (w *ResetPurgeWorker) TotalPurged() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalPurged
}
