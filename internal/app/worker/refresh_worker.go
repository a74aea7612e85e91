package worker

import (
	"club_tracker/internal/app/service"
	"club_tracker/internal/platform/logger"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshWorker drains the handle refresh queue. Refreshes are cheap and
// idempotent, so one sequential consumer is enough; duplicates in the queue
// just re-run the same upserts.
type RefreshWorker struct {
	rdb       *redis.Client
	refresh   *service.RefreshService
	queueName string
}

func NewRefreshWorker(rdb *redis.Client, refresh *service.RefreshService, queueName string) *RefreshWorker {
	return &RefreshWorker{rdb: rdb, refresh: refresh, queueName: queueName}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	logger.Info("Refresh worker started", "queue", w.queueName)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Refresh worker stopping")
			return
		default:
			// Blocking pop; 0 means wait forever.
			popped, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					logger.Info("Refresh worker BRPop exiting", "error", err)
					return
				}
				if errors.Is(err, redis.Nil) {
					continue
				}
				logger.Error("Failed to BRPop from refresh queue", "queue", w.queueName, "error", err)
				time.Sleep(5 * time.Second)
				continue
			}

			// popped is [queueName, value]
			if len(popped) < 2 || popped[1] == "" {
				logger.Warn("BRPop returned empty handle")
				continue
			}
			handle := popped[1]

			if err := w.refresh.RefreshHandle(ctx, handle); err != nil {
				logger.Error("Handle refresh failed", "handle", handle, "error", err)
			}
		}
	}
}
