package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

// Repository is the durable job store. CreateJob assigns the job_ref on
// first persistence; UpdateJob targets an existing row by id.
type Repository interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	UpdateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJobByRef(ctx context.Context, jobRef string) (*models.Job, error)
	GetJobByID(ctx context.Context, jobID string) (*models.Job, error)
	GetJobsByClient(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error)
}
