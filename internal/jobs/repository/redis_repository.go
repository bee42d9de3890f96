package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
)

type taskRedisRepo struct {
	redisClient *redis.Client
}

func NewTaskRedisRepo(redisClient *redis.Client) jobs.RedisRepository {
	return &taskRedisRepo{
		redisClient: redisClient,
	}
}

func (t *taskRedisRepo) EnqueueTask(ctx context.Context, key string, task *models.ProcessTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "taskRedisRepo.EnqueueTask.marshal")
	}
	if err := t.redisClient.LPush(ctx, key, data).Err(); err != nil {
		return errors.Wrap(err, "taskRedisRepo.EnqueueTask.lpush")
	}
	return nil
}

// DequeueTask blocks up to wait for the next task. Returns (nil, nil) when
// the wait expires with an empty queue.
func (t *taskRedisRepo) DequeueTask(ctx context.Context, key string, wait time.Duration) (*models.ProcessTask, error) {
	res, err := t.redisClient.BRPop(ctx, wait, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask.brpop")
	}
	task := &models.ProcessTask{}
	if err = json.Unmarshal([]byte(res[1]), task); err != nil {
		return nil, errors.Wrap(err, "taskRedisRepo.DequeueTask.unmarshal")
	}
	return task, nil
}
