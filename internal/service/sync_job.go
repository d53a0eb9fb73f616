package service

import (
	"context"
	"sync"
	"time"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
)

type syncJob struct {
	reconcilers []Reconciler
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that flushes pending entities and refreshes
// every collection mirror on a ticker. The job is idle until Start is called.
func NewSyncJob(log *logger.Logger, reconcilers ...Reconciler) SyncJob {
	return &syncJob{reconcilers: reconcilers, logger: log}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that reconciles and refreshes every
// interval. If interval is zero or negative it defaults to 5 minutes. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is
// not running (no-op in that case).
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// RunOnce performs a single reconcile-and-refresh pass over every
// collection. Called by the app at startup so work queued in a previous
// session is pushed without waiting for the first tick.
func (j *syncJob) RunOnce(ctx context.Context) {
	j.runOnce(ctx)
}

func (j *syncJob) runOnce(ctx context.Context) {
	for _, r := range j.reconcilers {
		if ctx.Err() != nil {
			return
		}
		if err := r.ReconcileOffline(ctx); err != nil {
			j.logger.Warn().
				Str("func", "syncJob.runOnce").
				Str("collection", string(r.Collection())).
				Err(err).
				Msg("reconcile pass reported errors")
		}
		if err := r.Refresh(ctx); err != nil {
			j.logger.Warn().
				Str("func", "syncJob.runOnce").
				Str("collection", string(r.Collection())).
				Err(err).
				Msg("refresh failed")
		}
	}
}
