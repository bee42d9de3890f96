package repository

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
)

const presignExpiry = 60 * time.Minute

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
}

func NewAwsRepository(client *s3.Client, preSignClient *s3.PresignClient) jobs.AWSRepository {
	return &awsRepository{
		client:        client,
		preSignClient: preSignClient,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, item *models.StorageItem) (*models.StorageObject, error) {
	body := item.Body
	if body == nil {
		body = bytes.NewReader(item.Content)
	}
	input := &s3.PutObjectInput{
		Bucket: &item.Bucket,
		Key:    &item.Key,
		Body:   body,
	}
	if item.ContentType != "" {
		input.ContentType = &item.ContentType
	}
	res, err := a.client.PutObject(ctx, input)
	if err != nil {
		return nil, errors.Wrapf(err, "awsRepository.PutObject: %s/%s", item.Bucket, item.Key)
	}

	metadata := map[string]string{}
	if res.ETag != nil {
		metadata["ETag"] = *res.ETag
	}
	url, err := a.GetPresignedURL(ctx, item.Bucket, item.Key)
	if err != nil {
		return nil, err
	}
	return &models.StorageObject{
		Bucket:   item.Bucket,
		Key:      item.Key,
		URL:      url,
		Metadata: metadata,
	}, nil
}

func (a *awsRepository) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	res, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "awsRepository.GetObject: %s/%s", bucket, key)
	}
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "awsRepository.GetObject.read: %s/%s", bucket, key)
	}
	return content, nil
}

// PutObjectsBulk writes every item under {prefix}/{key_suffix} with a shared
// content type. One round of sequential puts; the gateway call is the unit
// the pipeline retries, not individual items.
func (a *awsRepository) PutObjectsBulk(ctx context.Context, items []models.BulkItem, bucket, prefix, contentType string) ([]*models.StorageObject, error) {
	stored := make([]*models.StorageObject, 0, len(items))
	trimmed := strings.TrimSuffix(prefix, "/")
	for _, item := range items {
		obj, err := a.PutObject(ctx, &models.StorageItem{
			Bucket:      bucket,
			Key:         trimmed + "/" + item.KeySuffix,
			Content:     item.Content,
			ContentType: contentType,
		})
		if err != nil {
			return nil, err
		}
		stored = append(stored, obj)
	}
	return stored, nil
}

func (a *awsRepository) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: &bucket,
		Prefix: &prefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "awsRepository.ListObjects: %s/%s", bucket, prefix)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, bucket, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Wrapf(err, "awsRepository.RemoveObject: %s/%s", bucket, key)
	}
	return nil
}

func (a *awsRepository) GetPresignedURL(ctx context.Context, bucket, key string) (string, error) {
	req, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(presignExpiry),
	)
	if err != nil {
		return "", errors.Wrapf(err, "awsRepository.GetPresignedURL: %s/%s", bucket, key)
	}
	return req.URL, nil
}
