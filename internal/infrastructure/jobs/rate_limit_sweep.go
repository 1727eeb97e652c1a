package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"legalease.backend/pkg/logger"
)

// Sweeper drops expired rate limit windows
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// RateLimitSweepJob periodically cleans the in-memory rate limit store
type RateLimitSweepJob struct {
	store    Sweeper
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimitSweepJob(store Sweeper) *RateLimitSweepJob {
	return &RateLimitSweepJob{
		store:    store,
		interval: 60 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (j *RateLimitSweepJob) Start(ctx context.Context) {
	logger.Info(ctx, "🕐 Starting rate limit sweep job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "⏹️ Rate limit sweep job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "⏹️ Rate limit sweep job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// Stop is safe to call more than once
func (j *RateLimitSweepJob) Stop() {
	j.once.Do(func() { close(j.stop) })
}

func (j *RateLimitSweepJob) sweep(ctx context.Context) {
	if removed := j.store.Sweep(ctx); removed > 0 {
		logger.Debug(ctx, "Swept expired rate limit entries", zap.Int("removed", removed))
	}
}
