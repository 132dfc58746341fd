package queue_tasks

import (
	"context"
	"time"

	"facegate.io/application/repository"
	"facegate.io/infrastructure/logger"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

var HandleSessionSweepTaskName mq_types.Queues = "session_sweep"

// HandleSessionSweepTask deactivates sessions whose expiry has passed.
// Expiry is already enforced on read; the sweep just keeps the collection
// from accumulating stale active rows.
func HandleSessionSweepTask(ctx context.Context, t *asynq.Task) error {
	swept, err := repository.AuthSessionRepo().UpdateManyByFilter(map[string]any{
		"isActive":  true,
		"expiresAt": map[string]any{"$lt": time.Now()},
	}, map[string]any{
		"isActive": false,
	})
	if err != nil {
		logger.Error("an error occured while sweeping expired sessions", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	if swept > 0 {
		logger.Info("expired sessions swept", logger.LoggerOptions{
			Key:  "count",
			Data: swept,
		})
	}
	return nil
}
