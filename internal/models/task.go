package models

// ProcessTask is the unit the queue delivers to the processing workflow.
// It is flat and self-contained: a worker can run the full pipeline from it
// without a second store read for context.
type ProcessTask struct {
	JobRef               string            `json:"job_ref" validate:"required"`
	ClientIdentification string            `json:"client_identification" validate:"required"`
	Bucket               string            `json:"bucket" validate:"required"`
	VideoPath            string            `json:"video_path" validate:"required"`
	FramesPath           string            `json:"frames_path" validate:"required"`
	NotifyURL            string            `json:"notify_url,omitempty"`
	Config               map[string]string `json:"config,omitempty"`
	Attempt              int               `json:"attempt"`
}

// ProcessResult is what a finished pipeline run reports. For completed jobs
// it is the exact input of the downstream packaging handoff.
type ProcessResult struct {
	JobRef               string    `json:"job_ref"`
	ClientIdentification string    `json:"client_identification"`
	Status               JobStatus `json:"status"`
	Bucket               string    `json:"bucket,omitempty"`
	FramesPath           string    `json:"frames_path,omitempty"`
	NotifyURL            string    `json:"notify_url,omitempty"`
	Reason               string    `json:"reason,omitempty"`
}

// ModerationLabel is one offending label found by the moderation scan.
type ModerationLabel struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	ParentName string  `json:"parent_name,omitempty"`
}

// ModerationResult is the verdict of a content moderation scan.
type ModerationResult struct {
	IsAppropriate bool              `json:"is_appropriate"`
	Confidence    float64           `json:"confidence"`
	Labels        []ModerationLabel `json:"labels"`
	JobID         string            `json:"job_id"`
}
