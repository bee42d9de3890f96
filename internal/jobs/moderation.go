package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
)

// ModerationGateway scans a stored video for inappropriate content.
type ModerationGateway interface {
	ModerateVideo(ctx context.Context, bucket, key string) (*models.ModerationResult, error)
}
