package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
)

// PackagerGateway forwards a completed job's result descriptor to the
// downstream packaging service.
type PackagerGateway interface {
	Forward(ctx context.Context, result *models.ProcessResult) error
}
