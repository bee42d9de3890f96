package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

// UseCase is the registration and query surface of the job feature.
type UseCase interface {
	Register(ctx context.Context, input *models.RegisterInput) (*models.Job, error)
	GetJobStatus(ctx context.Context, jobRef string) (*models.Job, error)
	ListJobs(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error)
}
