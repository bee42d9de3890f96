package models

import "io"

// RegisterInput carries a registration request into the usecase layer.
type RegisterInput struct {
	ClientIdentification string            `json:"client_identification" validate:"required,lte=255"`
	NotifyURL            string            `json:"notify_url,omitempty" validate:"omitempty,url"`
	Config               map[string]string `json:"config,omitempty"`
	File                 io.Reader         `json:"-"`
	Size                 int64             `json:"-"`
	ContentType          string            `json:"-"`
}

// JobList is one page of a client's jobs.
type JobList struct {
	Jobs       []*Job `json:"jobs"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	HasMore    bool   `json:"has_more"`
}
