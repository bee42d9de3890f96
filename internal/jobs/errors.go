package jobs

import "github.com/pkg/errors"

var (
	// ErrJobNotFound means a task payload references a job the store does not
	// know. Fatal for the delivery; retrying will fail identically.
	ErrJobNotFound = errors.New("job not found")

	// ErrPayloadTooLarge rejects uploads above the configured ceiling.
	ErrPayloadTooLarge = errors.New("uploaded payload exceeds size limit")

	// ErrInvalidNotifyURL rejects callback URLs without an http(s) scheme.
	ErrInvalidNotifyURL = errors.New("notify url must start with http:// or https://")
)
