package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusRejected   JobStatus = "REJECTED"
	JobStatusError      JobStatus = "ERROR"
)

// Job is the persisted unit of work representing one video's end-to-end
// processing request. JobRef is assigned by the store on first persistence
// and is immutable afterwards.
type Job struct {
	JobID                string            `json:"job_id" db:"job_id" validate:"omitempty"`
	JobRef               string            `json:"job_ref" db:"job_ref" validate:"omitempty"`
	ClientIdentification string            `json:"client_identification" db:"client_identification" validate:"required"`
	Status               JobStatus         `json:"status" db:"status" validate:"required"`
	Bucket               string            `json:"bucket" db:"bucket" validate:"required"`
	VideoPath            string            `json:"video_path" db:"video_path" validate:"required"`
	FramesPath           string            `json:"frames_path" db:"frames_path" validate:"required"`
	NotifyURL            string            `json:"notify_url,omitempty" db:"notify_url" validate:"omitempty,url"`
	Config               map[string]string `json:"config,omitempty" db:"-"`
	ErrorMessage         string            `json:"error_message,omitempty" db:"error_message"`
	CreatedAt            time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at" db:"updated_at"`
	InactivatedAt        *time.Time        `json:"inactivated_at,omitempty" db:"inactivated_at"`
}

// Enqueue marks the job as accepted by the queue. Only valid from PENDING;
// any other state leaves the job untouched.
func (j *Job) Enqueue() bool {
	if j.Status != JobStatusPending {
		return false
	}
	j.Status = JobStatusQueued
	j.UpdatedAt = time.Now().UTC()
	return true
}

// StartProcessing claims the job for a worker. A no-op when the job is not
// QUEUED, which makes duplicate queue deliveries harmless.
func (j *Job) StartProcessing() bool {
	if j.Status != JobStatusQueued {
		return false
	}
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now().UTC()
	return true
}

// Complete marks the job as successfully finished, clearing any prior error.
func (j *Job) Complete() {
	j.Status = JobStatusCompleted
	j.ErrorMessage = ""
	j.UpdatedAt = time.Now().UTC()
}

// Reject marks the job as refused by content moderation. A terminal business
// outcome, not a system fault.
func (j *Job) Reject(reason string) {
	j.Status = JobStatusRejected
	j.ErrorMessage = reason
	j.UpdatedAt = time.Now().UTC()
}

// Fail marks the job as failed and records when it was taken out of rotation.
func (j *Job) Fail(reason string) {
	now := time.Now().UTC()
	j.Status = JobStatusError
	j.ErrorMessage = reason
	j.UpdatedAt = now
	j.InactivatedAt = &now
}

// VideoKey returns the storage key holding the raw uploaded video.
func (j *Job) VideoKey() string {
	return j.VideoPath + "/" + j.JobRef
}

// FramesPrefix returns the storage prefix under which extracted frames are
// written: {frames_path}/{client_identification}/{job_ref}.
func (j *Job) FramesPrefix() string {
	return j.FramesPath + "/" + j.ClientIdentification + "/" + j.JobRef
}

// BuildNotification creates the outbound callback payload for the job's
// current state.
func (j *Job) BuildNotification(service, detail string) *Notification {
	return &Notification{
		JobRef:    j.JobRef,
		Status:    j.Status,
		Service:   service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Detail:    detail,
	}
}
