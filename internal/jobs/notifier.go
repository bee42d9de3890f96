package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
)

// NotificationGateway posts status events to a caller-supplied callback URL.
// Sends are best-effort: the gateway retries internally and never surfaces
// an error to the pipeline.
type NotificationGateway interface {
	Send(ctx context.Context, notifyURL string, notification *models.Notification)
}
