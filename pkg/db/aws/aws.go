package aws

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func NewS3Client(endpoint, region, accessKey, secretKey string) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadConfig(region, accessKey, secretKey)
	if err != nil {
		return nil, nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	presignClient := s3.NewPresignClient(client)
	return client, presignClient, nil
}

func NewRekognitionClient(region, accessKey, secretKey string) (*rekognition.Client, error) {
	cfg, err := loadConfig(region, accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	return rekognition.NewFromConfig(cfg), nil
}

func loadConfig(region, accessKey, secretKey string) (awssdk.Config, error) {
	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				accessKey,
				secretKey,
				"",
			),
		),
	)
	if err != nil {
		return cfg, errors.New("failed to load aws configuration, " + err.Error())
	}
	return cfg, nil
}
