package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

type jobRepo struct {
	db *sqlx.DB
}

func NewJobRepo(db *sqlx.DB) jobs.Repository {
	return &jobRepo{
		db: db,
	}
}

// CreateJob persists a new job. The job reference is assigned here, exactly
// once, as {client_identification}-{random suffix}.
func (r *jobRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	jobRef := fmt.Sprintf("%s-%s", job.ClientIdentification, uuid.New().String())
	created := &models.Job{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		jobRef,
		job.ClientIdentification,
		job.Status,
		job.Bucket,
		job.VideoPath,
		job.FramesPath,
		job.NotifyURL,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "jobRepo.CreateJob")
	}
	created.Config = job.Config
	return created, nil
}

func (r *jobRepo) UpdateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	updated := &models.Job{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateJobQuery,
		job.Status,
		job.ErrorMessage,
		job.InactivatedAt,
		job.JobID,
	).StructScan(updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(jobs.ErrJobNotFound, "jobRepo.UpdateJob: id %s", job.JobID)
		}
		return nil, errors.Wrap(err, "jobRepo.UpdateJob")
	}
	updated.Config = job.Config
	return updated, nil
}

func (r *jobRepo) GetJobByRef(ctx context.Context, jobRef string) (*models.Job, error) {
	job := &models.Job{}
	if err := r.db.QueryRowxContext(ctx, getJobByRefQuery, jobRef).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(jobs.ErrJobNotFound, "jobRepo.GetJobByRef: ref %s", jobRef)
		}
		return nil, errors.Wrap(err, "jobRepo.GetJobByRef")
	}
	return job, nil
}

func (r *jobRepo) GetJobByID(ctx context.Context, jobID string) (*models.Job, error) {
	job := &models.Job{}
	if err := r.db.QueryRowxContext(ctx, getJobByIDQuery, jobID).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(jobs.ErrJobNotFound, "jobRepo.GetJobByID: id %s", jobID)
		}
		return nil, errors.Wrap(err, "jobRepo.GetJobByID")
	}
	return job, nil
}

func (r *jobRepo) GetJobsByClient(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalJobsByClientQuery, clientID); err != nil {
		return nil, errors.Wrap(err, "jobRepo.GetJobsByClient.count")
	}
	if totalCount == 0 {
		return &models.JobList{
			Jobs:       make([]*models.Job, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}

	rows, err := r.db.QueryxContext(ctx, getJobsByClientQuery, clientID, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "jobRepo.GetJobsByClient")
	}
	defer rows.Close()

	jobList := make([]*models.Job, 0, pq.GetSize())
	for rows.Next() {
		var job models.Job
		if err = rows.StructScan(&job); err != nil {
			return nil, errors.Wrap(err, "jobRepo.GetJobsByClient.scan")
		}
		jobList = append(jobList, &job)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "jobRepo.GetJobsByClient.rows")
	}

	return &models.JobList{
		Jobs:       jobList,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}
