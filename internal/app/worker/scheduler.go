package worker

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/platform/logger"
	"context"
	"time"
)

// Scheduler enqueues a refresh for every registered handle at a fixed
// interval, and once immediately at startup so a fresh deployment has data
// without waiting a full period.
type Scheduler struct {
	refresh  *service.RefreshService
	interval time.Duration
}

func NewScheduler(refresh *service.RefreshService, interval time.Duration) *Scheduler {
	return &Scheduler{refresh: refresh, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	logger.Info("Refresh scheduler started", "interval", s.interval)

	if err := s.refresh.EnqueueAll(ctx); err != nil {
		logger.Error("Initial refresh enqueue failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Refresh scheduler stopping")
			return
		case <-ticker.C:
			if err := s.refresh.EnqueueAll(ctx); err != nil {
				logger.Error("Scheduled refresh enqueue failed", "error", err)
			}
		}
	}
}
