package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

const frameContentType = "image/png"

// Processor runs the gated processing pipeline for one queue delivery:
// load, claim, moderation gate, fetch, extract, bulk upload, complete.
// It owns the job's state transitions for the duration of the task.
type Processor struct {
	jobRepo     jobs.Repository
	awsRepo     jobs.AWSRepository
	moderation  jobs.ModerationGateway
	extractor   jobs.FrameExtractor
	notifier    jobs.NotificationGateway
	serviceName string
	logger      logger.Logger
}

func NewProcessor(
	jobRepo jobs.Repository,
	awsRepo jobs.AWSRepository,
	moderation jobs.ModerationGateway,
	extractor jobs.FrameExtractor,
	notifier jobs.NotificationGateway,
	serviceName string,
	log logger.Logger,
) *Processor {
	return &Processor{
		jobRepo:     jobRepo,
		awsRepo:     awsRepo,
		moderation:  moderation,
		extractor:   extractor,
		notifier:    notifier,
		serviceName: serviceName,
		logger:      log,
	}
}

// Process executes the pipeline for one delivered task. Load and claim
// failures propagate without touching the job; any later stage failure is
// recorded on the job (ERROR + notification) and then returned unchanged so
// the dispatch loop can apply its redelivery policy.
func (p *Processor) Process(ctx context.Context, task *models.ProcessTask) (*models.ProcessResult, error) {
	job, err := p.jobRepo.GetJobByRef(ctx, task.JobRef)
	if err != nil {
		return nil, err
	}

	if !job.StartProcessing() {
		p.logger.Warnf("job %s is not QUEUED (status %s), claim skipped", job.JobRef, job.Status)
	}
	if job, err = p.jobRepo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	result, err := p.run(ctx, job)
	if err != nil {
		message := fmt.Sprintf("failed to process video: %v", err)
		job.Fail(message)
		if _, updateErr := p.jobRepo.UpdateJob(ctx, job); updateErr != nil {
			p.logger.Errorf("could not persist failure of job %s: %v", job.JobRef, updateErr)
		}
		p.notify(ctx, job, message)
		return nil, err
	}
	return result, nil
}

func (p *Processor) run(ctx context.Context, job *models.Job) (*models.ProcessResult, error) {
	verdict, err := p.moderation.ModerateVideo(ctx, job.Bucket, job.VideoKey())
	if err != nil {
		return nil, err
	}
	if !verdict.IsAppropriate {
		return p.reject(ctx, job, verdict)
	}

	videoBytes, err := p.awsRepo.GetObject(ctx, job.Bucket, job.VideoKey())
	if err != nil {
		return nil, err
	}

	frames, err := p.extractToTempDir(ctx, job, videoBytes)
	if err != nil {
		return nil, err
	}

	job.Complete()
	if job, err = p.jobRepo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	p.notify(ctx, job, "")

	p.logger.Infof("job %s completed, %d frames uploaded under %s", job.JobRef, frames, job.FramesPrefix())

	return &models.ProcessResult{
		JobRef:               job.JobRef,
		ClientIdentification: job.ClientIdentification,
		Status:               job.Status,
		Bucket:               job.Bucket,
		FramesPath:           job.FramesPrefix(),
		NotifyURL:            job.NotifyURL,
	}, nil
}

func (p *Processor) reject(ctx context.Context, job *models.Job, verdict *models.ModerationResult) (*models.ProcessResult, error) {
	names := make([]string, 0, len(verdict.Labels))
	for _, label := range verdict.Labels {
		names = append(names, label.Name)
	}
	reason := "inappropriate content detected: " + strings.Join(names, ", ")

	job.Reject(reason)
	job, err := p.jobRepo.UpdateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	p.notify(ctx, job, reason)

	p.logger.Warnf("job %s rejected by moderation: %s", job.JobRef, reason)

	return &models.ProcessResult{
		JobRef:               job.JobRef,
		ClientIdentification: job.ClientIdentification,
		Status:               job.Status,
		Reason:               reason,
	}, nil
}

// extractToTempDir writes the video into a scoped temporary directory, runs
// frame extraction there and bulk-uploads the result. The directory is
// removed on every exit path. Returns the number of frames uploaded.
func (p *Processor) extractToTempDir(ctx context.Context, job *models.Job, videoBytes []byte) (int, error) {
	tempDir, err := os.MkdirTemp("", "frame-extract-")
	if err != nil {
		return 0, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	videoPath := filepath.Join(tempDir, "input_video")
	if err := os.WriteFile(videoPath, videoBytes, 0o600); err != nil {
		return 0, errors.Wrap(err, "failed to write video to temp directory")
	}

	framePaths, err := p.extractor.ExtractFrames(ctx, videoPath, tempDir)
	if err != nil {
		return 0, err
	}

	items := make([]models.BulkItem, 0, len(framePaths))
	for _, framePath := range framePaths {
		content, err := os.ReadFile(framePath)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to read frame %s", framePath)
		}
		items = append(items, models.BulkItem{
			Content:   content,
			KeySuffix: filepath.Base(framePath),
		})
	}

	if _, err := p.awsRepo.PutObjectsBulk(ctx, items, job.Bucket, job.FramesPrefix(), frameContentType); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (p *Processor) notify(ctx context.Context, job *models.Job, detail string) {
	p.notifier.Send(ctx, job.NotifyURL, job.BuildNotification(p.serviceName, detail))
}
