package jobs

import (
	"context"
	"time"

	"github.com/frameforge/frame-extractor/internal/models"
)

// RedisRepository is the task queue transport. Delivery is at-least-once:
// a crashed worker's task re-enters the queue via the attempt counter.
type RedisRepository interface {
	EnqueueTask(ctx context.Context, key string, task *models.ProcessTask) error
	DequeueTask(ctx context.Context, key string, wait time.Duration) (*models.ProcessTask, error)
}
