package jobs

import (
	"context"

	"github.com/frameforge/frame-extractor/internal/models"
)

// AWSRepository is the object storage gateway.
type AWSRepository interface {
	PutObject(ctx context.Context, item *models.StorageItem) (*models.StorageObject, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObjectsBulk(ctx context.Context, items []models.BulkItem, bucket, prefix, contentType string) ([]*models.StorageObject, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
	RemoveObject(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string) (string, error)
}
