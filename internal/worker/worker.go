package worker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

// TaskProcessor runs the pipeline for one delivered task.
type TaskProcessor interface {
	Process(ctx context.Context, task *models.ProcessTask) (*models.ProcessResult, error)
}

// Worker pulls tasks from the queue and dispatches them to the processor.
// Redelivery policy lives here, not in the pipeline: a failed task is
// re-enqueued with an incremented attempt counter until the configured cap.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	redisRepo jobs.RedisRepository
	processor TaskProcessor
	packager  jobs.PackagerGateway
	wg        sync.WaitGroup
}

func NewWorker(
	cfg *config.Config,
	log logger.Logger,
	redisRepo jobs.RedisRepository,
	processor TaskProcessor,
	packager jobs.PackagerGateway,
) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    log,
		redisRepo: redisRepo,
		processor: processor,
		packager:  packager,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Infof("starting %d workers on queue %s", w.cfg.Worker.WorkerCount, w.cfg.Worker.QueueKey)
	for i := 0; i < w.cfg.Worker.WorkerCount; i++ {
		w.wg.Add(1)
		go w.loop(ctx)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !ok {
			w.logger.Infof("CPU usage %.2f%% too high, waiting", usage)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.Worker.CheckInterval):
			}
			continue
		}

		task, err := w.redisRepo.DequeueTask(ctx, w.cfg.Worker.QueueKey, w.cfg.Worker.DequeueWait)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Errorf("failed to dequeue task: %v", err)
			continue
		}
		if task == nil {
			continue
		}

		w.handle(ctx, task)
	}
}

func (w *Worker) handle(ctx context.Context, task *models.ProcessTask) {
	w.logger.Infof("processing job %s (attempt %d)", task.JobRef, task.Attempt)

	result, err := w.processor.Process(ctx, task)
	if err != nil {
		w.logger.Errorf("job %s failed: %v", task.JobRef, err)
		w.requeue(ctx, task, err)
		return
	}

	if result.Status == models.JobStatusCompleted {
		if err := w.packager.Forward(ctx, result); err != nil {
			// The job is already COMPLETED; handoff failure is a delivery
			// concern, not a processing one.
			w.logger.Errorf("downstream handoff for job %s failed: %v", task.JobRef, err)
		}
	}
}

func (w *Worker) requeue(ctx context.Context, task *models.ProcessTask, cause error) {
	if errors.Is(cause, jobs.ErrJobNotFound) {
		w.logger.Errorf("job %s not found, dropping task", task.JobRef)
		return
	}
	if task.Attempt+1 >= w.cfg.Worker.MaxAttempts {
		w.logger.Errorf("job %s abandoned after %d attempts", task.JobRef, task.Attempt+1)
		return
	}
	task.Attempt++
	if err := w.redisRepo.EnqueueTask(ctx, w.cfg.Worker.QueueKey, task); err != nil {
		w.logger.Errorf("failed to re-enqueue job %s: %v", task.JobRef, err)
	}
}
