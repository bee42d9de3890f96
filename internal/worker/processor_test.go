package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

type fakeJobRepo struct {
	jobs    map[string]*models.Job
	updates []models.Job
}

func newFakeJobRepo(seed ...*models.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[string]*models.Job)}
	for _, j := range seed {
		r.jobs[j.JobRef] = j
	}
	return r
}

func (r *fakeJobRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	r.jobs[job.JobRef] = job
	return job, nil
}

func (r *fakeJobRepo) UpdateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if _, ok := r.jobs[job.JobRef]; !ok {
		return nil, jobs.ErrJobNotFound
	}
	copied := *job
	r.jobs[job.JobRef] = &copied
	r.updates = append(r.updates, copied)
	return job, nil
}

func (r *fakeJobRepo) GetJobByRef(ctx context.Context, jobRef string) (*models.Job, error) {
	job, ok := r.jobs[jobRef]
	if !ok {
		return nil, jobs.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) GetJobByID(ctx context.Context, jobID string) (*models.Job, error) {
	return nil, jobs.ErrJobNotFound
}

func (r *fakeJobRepo) GetJobsByClient(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error) {
	return &models.JobList{}, nil
}

type fakeAWSRepo struct {
	objects      map[string][]byte
	getCalls     int
	bulkItems    []models.BulkItem
	bulkPrefix   string
	bulkBucket   string
	bulkContType string
	getErr       error
	bulkErr      error
}

func newFakeAWSRepo() *fakeAWSRepo {
	return &fakeAWSRepo{objects: make(map[string][]byte)}
}

func (r *fakeAWSRepo) PutObject(ctx context.Context, item *models.StorageItem) (*models.StorageObject, error) {
	r.objects[item.Key] = item.Content
	return &models.StorageObject{Bucket: item.Bucket, Key: item.Key}, nil
}

func (r *fakeAWSRepo) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.objects[key], nil
}

func (r *fakeAWSRepo) PutObjectsBulk(ctx context.Context, items []models.BulkItem, bucket, prefix, contentType string) ([]*models.StorageObject, error) {
	if r.bulkErr != nil {
		return nil, r.bulkErr
	}
	r.bulkItems = items
	r.bulkBucket = bucket
	r.bulkPrefix = prefix
	r.bulkContType = contentType
	objects := make([]*models.StorageObject, 0, len(items))
	for _, item := range items {
		objects = append(objects, &models.StorageObject{Bucket: bucket, Key: prefix + "/" + item.KeySuffix})
	}
	return objects, nil
}

func (r *fakeAWSRepo) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	return nil, nil
}

func (r *fakeAWSRepo) RemoveObject(ctx context.Context, bucket, key string) error {
	return nil
}

func (r *fakeAWSRepo) GetPresignedURL(ctx context.Context, bucket, key string) (string, error) {
	return "", nil
}

type fakeModeration struct {
	result *models.ModerationResult
	err    error
	calls  int
}

func (m *fakeModeration) ModerateVideo(ctx context.Context, bucket, key string) (*models.ModerationResult, error) {
	m.calls++
	return m.result, m.err
}

type fakeExtractor struct {
	frames []string
	err    error
	calls  int
}

func (e *fakeExtractor) ExtractFrames(ctx context.Context, videoPath, outputDir string) ([]string, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	paths := make([]string, 0, len(e.frames))
	for _, name := range e.frames {
		p := filepath.Join(outputDir, name)
		if err := os.WriteFile(p, []byte(name), 0o600); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

type fakeNotifier struct {
	urls          []string
	notifications []*models.Notification
}

func (n *fakeNotifier) Send(ctx context.Context, notifyURL string, notification *models.Notification) {
	n.urls = append(n.urls, notifyURL)
	n.notifications = append(n.notifications, notification)
}

func seedJob() *models.Job {
	return &models.Job{
		JobID:                "7f9d1a4e-0000-0000-0000-000000000000",
		JobRef:               "acme-42",
		ClientIdentification: "acme",
		Status:               models.JobStatusQueued,
		Bucket:               "frame-extractor",
		VideoPath:            "videos",
		FramesPath:           "frames",
		NotifyURL:            "https://client.example.com/hook",
	}
}

func newTestProcessor(repo *fakeJobRepo, awsRepo *fakeAWSRepo, mod *fakeModeration, ext *fakeExtractor, not *fakeNotifier) *Processor {
	return NewProcessor(repo, awsRepo, mod, ext, not, "frame-extractor", logger.NewNopLogger())
}

func TestProcessCompletesJob(t *testing.T) {
	job := seedJob()
	repo := newFakeJobRepo(job)
	awsRepo := newFakeAWSRepo()
	awsRepo.objects[job.VideoKey()] = []byte("video-bytes")
	mod := &fakeModeration{result: &models.ModerationResult{IsAppropriate: true}}
	ext := &fakeExtractor{frames: []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"}}
	not := &fakeNotifier{}

	p := newTestProcessor(repo, awsRepo, mod, ext, not)
	result, err := p.Process(context.Background(), &models.ProcessTask{JobRef: job.JobRef})
	require.NoError(t, err)

	require.Equal(t, models.JobStatusCompleted, result.Status)
	require.Equal(t, "frames/acme/acme-42", result.FramesPath)
	require.Equal(t, job.NotifyURL, result.NotifyURL)

	stored, err := repo.GetJobByRef(context.Background(), job.JobRef)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusCompleted, stored.Status)
	require.Empty(t, stored.ErrorMessage)

	require.Equal(t, 1, mod.calls)
	require.Equal(t, 1, awsRepo.getCalls)
	require.Equal(t, 1, ext.calls)

	require.Equal(t, "frames/acme/acme-42", awsRepo.bulkPrefix)
	require.Equal(t, "image/png", awsRepo.bulkContType)
	require.Len(t, awsRepo.bulkItems, 3)
	for i, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		require.Equal(t, name, awsRepo.bulkItems[i].KeySuffix)
	}

	require.Len(t, not.notifications, 1)
	require.Equal(t, models.JobStatusCompleted, not.notifications[0].Status)
	require.Empty(t, not.notifications[0].Detail)
}

func TestProcessRejectsInappropriateContent(t *testing.T) {
	job := seedJob()
	repo := newFakeJobRepo(job)
	awsRepo := newFakeAWSRepo()
	mod := &fakeModeration{result: &models.ModerationResult{
		IsAppropriate: false,
		Labels: []models.ModerationLabel{
			{Name: "Violence", Confidence: 92.5},
			{Name: "Weapons", Confidence: 81.0},
		},
	}}
	ext := &fakeExtractor{}
	not := &fakeNotifier{}

	p := newTestProcessor(repo, awsRepo, mod, ext, not)
	result, err := p.Process(context.Background(), &models.ProcessTask{JobRef: job.JobRef})
	require.NoError(t, err)

	require.Equal(t, models.JobStatusRejected, result.Status)
	require.Equal(t, "inappropriate content detected: Violence, Weapons", result.Reason)

	// Rejection short-circuits the pipeline before any download or extraction.
	require.Equal(t, 0, awsRepo.getCalls)
	require.Equal(t, 0, ext.calls)
	require.Empty(t, awsRepo.bulkItems)

	stored, err := repo.GetJobByRef(context.Background(), job.JobRef)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusRejected, stored.Status)
	require.Equal(t, result.Reason, stored.ErrorMessage)

	require.Len(t, not.notifications, 1)
	require.Equal(t, models.JobStatusRejected, not.notifications[0].Status)
	require.Equal(t, result.Reason, not.notifications[0].Detail)
}

func TestProcessUnknownJobLeavesNoTrace(t *testing.T) {
	repo := newFakeJobRepo()
	not := &fakeNotifier{}

	p := newTestProcessor(repo, newFakeAWSRepo(), &fakeModeration{}, &fakeExtractor{}, not)
	result, err := p.Process(context.Background(), &models.ProcessTask{JobRef: "nobody-1"})
	require.Nil(t, result)
	require.ErrorIs(t, err, jobs.ErrJobNotFound)
	require.Empty(t, repo.updates)
	require.Empty(t, not.notifications)
}

func TestProcessExtractionFailureMarksError(t *testing.T) {
	job := seedJob()
	repo := newFakeJobRepo(job)
	awsRepo := newFakeAWSRepo()
	awsRepo.objects[job.VideoKey()] = []byte("video-bytes")
	mod := &fakeModeration{result: &models.ModerationResult{IsAppropriate: true}}
	extractErr := errors.New("ffmpeg exited with status 1")
	ext := &fakeExtractor{err: extractErr}
	not := &fakeNotifier{}

	p := newTestProcessor(repo, awsRepo, mod, ext, not)
	result, err := p.Process(context.Background(), &models.ProcessTask{JobRef: job.JobRef})
	require.Nil(t, result)
	require.ErrorIs(t, err, extractErr)

	stored, getErr := repo.GetJobByRef(context.Background(), job.JobRef)
	require.NoError(t, getErr)
	require.Equal(t, models.JobStatusError, stored.Status)
	require.Contains(t, stored.ErrorMessage, "failed to process video")
	require.Contains(t, stored.ErrorMessage, "ffmpeg exited with status 1")
	require.NotNil(t, stored.InactivatedAt)

	require.Len(t, not.notifications, 1)
	require.Equal(t, models.JobStatusError, not.notifications[0].Status)
	require.Contains(t, not.notifications[0].Detail, "ffmpeg exited with status 1")
}

func TestProcessModerationFailureMarksError(t *testing.T) {
	job := seedJob()
	repo := newFakeJobRepo(job)
	mod := &fakeModeration{err: errors.New("rekognition unavailable")}
	not := &fakeNotifier{}

	p := newTestProcessor(repo, newFakeAWSRepo(), mod, &fakeExtractor{}, not)
	result, err := p.Process(context.Background(), &models.ProcessTask{JobRef: job.JobRef})
	require.Nil(t, result)
	require.Error(t, err)

	stored, getErr := repo.GetJobByRef(context.Background(), job.JobRef)
	require.NoError(t, getErr)
	require.Equal(t, models.JobStatusError, stored.Status)
}

func TestProcessClaimsQueuedJob(t *testing.T) {
	job := seedJob()
	repo := newFakeJobRepo(job)
	awsRepo := newFakeAWSRepo()
	awsRepo.objects[job.VideoKey()] = []byte("video-bytes")
	mod := &fakeModeration{result: &models.ModerationResult{IsAppropriate: true}}
	ext := &fakeExtractor{frames: []string{"frame_0000.png"}}

	p := newTestProcessor(repo, awsRepo, mod, ext, &fakeNotifier{})
	_, err := p.Process(context.Background(), &models.ProcessTask{JobRef: job.JobRef})
	require.NoError(t, err)

	// First persisted update is the PROCESSING claim.
	require.NotEmpty(t, repo.updates)
	require.Equal(t, models.JobStatusProcessing, repo.updates[0].Status)
}
