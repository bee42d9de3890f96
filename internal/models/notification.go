package models

// Notification is the status event posted to a caller-supplied callback URL.
// Built fresh for every send, never persisted.
type Notification struct {
	JobRef    string    `json:"job_ref"`
	Status    JobStatus `json:"status"`
	Service   string    `json:"service"`
	Timestamp string    `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
	ResultURL string    `json:"result_url,omitempty"`
}
