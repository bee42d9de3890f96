package moderation

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

// rekognitionGateway scans stored videos with AWS Rekognition content
// moderation. The scan is asynchronous on the AWS side; ModerateVideo starts
// a job and polls it to completion within a bounded wait.
type rekognitionGateway struct {
	client *rekognition.Client
	cfg    *config.ModerationConfig
	logger logger.Logger
}

func NewRekognitionGateway(client *rekognition.Client, cfg *config.ModerationConfig, log logger.Logger) jobs.ModerationGateway {
	return &rekognitionGateway{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

func (g *rekognitionGateway) ModerateVideo(ctx context.Context, bucket, key string) (*models.ModerationResult, error) {
	g.logger.Infof("starting content moderation for s3://%s/%s", bucket, key)

	res, err := g.client.StartContentModeration(ctx, &rekognition.StartContentModerationInput{
		Video: &types.Video{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(float32(g.cfg.MinConfidence)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "rekognitionGateway.StartContentModeration")
	}

	jobID := aws.ToString(res.JobId)
	result, err := g.waitForCompletion(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		// Unsupported media type: approve without a scan.
		return &models.ModerationResult{
			IsAppropriate: true,
			Labels:        []models.ModerationLabel{},
			JobID:         jobID,
		}, nil
	}
	return g.processResults(result, jobID), nil
}

func (g *rekognitionGateway) waitForCompletion(ctx context.Context, jobID string) (*rekognition.GetContentModerationOutput, error) {
	deadline := time.Now().Add(g.cfg.MaxWait)
	ticker := time.NewTicker(g.cfg.PollInterval)
	defer ticker.Stop()

	for {
		res, err := g.client.GetContentModeration(ctx, &rekognition.GetContentModerationInput{
			JobId: aws.String(jobID),
		})
		if err != nil {
			var invalidParam *types.InvalidParameterException
			if errors.As(err, &invalidParam) {
				g.logger.Warnf("moderation job %s: unsupported media, approving without scan", jobID)
				return nil, nil
			}
			return nil, errors.Wrapf(err, "rekognitionGateway.GetContentModeration: job %s", jobID)
		}

		switch res.JobStatus {
		case types.VideoJobStatusSucceeded:
			return res, nil
		case types.VideoJobStatusFailed:
			return nil, errors.Errorf("moderation job %s failed: %s", jobID, aws.ToString(res.StatusMessage))
		}

		if time.Now().After(deadline) {
			return nil, errors.Errorf("timed out waiting for moderation job %s after %s", jobID, g.cfg.MaxWait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (g *rekognitionGateway) processResults(res *rekognition.GetContentModerationOutput, jobID string) *models.ModerationResult {
	offending := make([]models.ModerationLabel, 0)
	maxConfidence := 0.0

	for _, detection := range res.ModerationLabels {
		label := detection.ModerationLabel
		if label == nil {
			continue
		}
		confidence := float64(aws.ToFloat32(label.Confidence))
		if confidence < g.cfg.MinConfidence {
			continue
		}
		offending = append(offending, models.ModerationLabel{
			Name:       aws.ToString(label.Name),
			Confidence: confidence,
			ParentName: aws.ToString(label.ParentName),
		})
		if confidence > maxConfidence {
			maxConfidence = confidence
		}
	}

	g.logger.Infof("moderation job %s finished: %d offending labels", jobID, len(offending))

	return &models.ModerationResult{
		IsAppropriate: len(offending) == 0,
		Confidence:    maxConfidence,
		Labels:        offending,
		JobID:         jobID,
	}
}
