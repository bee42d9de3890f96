package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

type jobsUC struct {
	cfg       *config.Config
	jobRepo   jobs.Repository
	awsRepo   jobs.AWSRepository
	redisRepo jobs.RedisRepository
	logger    logger.Logger
}

func NewJobsUseCase(
	cfg *config.Config,
	jobRepo jobs.Repository,
	awsRepo jobs.AWSRepository,
	redisRepo jobs.RedisRepository,
	log logger.Logger,
) jobs.UseCase {
	return &jobsUC{
		cfg:       cfg,
		jobRepo:   jobRepo,
		awsRepo:   awsRepo,
		redisRepo: redisRepo,
		logger:    log,
	}
}

// Register creates a PENDING job, stores the raw video and enqueues the
// processing task. Side effects are ordered persist, upload, enqueue; a
// failure propagates to the caller and nothing later in the chain runs.
func (u *jobsUC) Register(ctx context.Context, input *models.RegisterInput) (*models.Job, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, errors.Wrap(err, "jobsUC.Register.validate")
	}
	if input.NotifyURL != "" && !strings.HasPrefix(input.NotifyURL, "http://") && !strings.HasPrefix(input.NotifyURL, "https://") {
		return nil, jobs.ErrInvalidNotifyURL
	}
	if input.Size > u.cfg.Upload.MaxSizeBytes {
		return nil, jobs.ErrPayloadTooLarge
	}

	videoBytes, err := io.ReadAll(io.LimitReader(input.File, u.cfg.Upload.MaxSizeBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "jobsUC.Register.read")
	}
	if int64(len(videoBytes)) > u.cfg.Upload.MaxSizeBytes {
		return nil, jobs.ErrPayloadTooLarge
	}

	job := &models.Job{
		ClientIdentification: input.ClientIdentification,
		Status:               models.JobStatusPending,
		Bucket:               u.cfg.S3.Bucket,
		VideoPath:            u.cfg.S3.VideoPath,
		FramesPath:           u.cfg.S3.FramesPath,
		NotifyURL:            input.NotifyURL,
		Config:               input.Config,
	}
	job, err = u.jobRepo.CreateJob(ctx, job)
	if err != nil {
		u.logger.Errorf("Register - CreateJob error: %v", err)
		return nil, err
	}

	if _, err = u.awsRepo.PutObject(ctx, &models.StorageItem{
		Bucket:      job.Bucket,
		Key:         job.VideoKey(),
		Content:     videoBytes,
		ContentType: input.ContentType,
	}); err != nil {
		u.logger.Errorf("Register - PutObject error for job %s: %v", job.JobRef, err)
		return nil, err
	}

	task := &models.ProcessTask{
		JobRef:               job.JobRef,
		ClientIdentification: job.ClientIdentification,
		Bucket:               job.Bucket,
		VideoPath:            job.VideoPath,
		FramesPath:           job.FramesPath,
		NotifyURL:            job.NotifyURL,
		Config:               job.Config,
	}
	if err = u.redisRepo.EnqueueTask(ctx, u.cfg.Worker.QueueKey, task); err != nil {
		u.logger.Errorf("Register - EnqueueTask error for job %s: %v", job.JobRef, err)
		return nil, errors.Wrap(err, "failed to queue the job")
	}

	job.Enqueue()
	queued, err := u.jobRepo.UpdateJob(ctx, job)
	if err != nil {
		u.logger.Errorf("Register - UpdateJob error for job %s: %v", job.JobRef, err)
		return nil, err
	}
	job = queued

	u.logger.Infof("registered job %s for client %s", job.JobRef, job.ClientIdentification)
	return job, nil
}

func (u *jobsUC) GetJobStatus(ctx context.Context, jobRef string) (*models.Job, error) {
	if jobRef == "" {
		return nil, errors.New("job_ref cannot be empty")
	}
	return u.jobRepo.GetJobByRef(ctx, jobRef)
}

func (u *jobsUC) ListJobs(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error) {
	if clientID == "" {
		return nil, errors.New("client_identification cannot be empty")
	}
	return u.jobRepo.GetJobsByClient(ctx, clientID, pq)
}
