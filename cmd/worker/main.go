package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/extractor"
	jobsRepository "github.com/frameforge/frame-extractor/internal/jobs/repository"
	"github.com/frameforge/frame-extractor/internal/moderation"
	"github.com/frameforge/frame-extractor/internal/notifier"
	"github.com/frameforge/frame-extractor/internal/packager"
	"github.com/frameforge/frame-extractor/internal/worker"
	"github.com/frameforge/frame-extractor/pkg/db/aws"
	"github.com/frameforge/frame-extractor/pkg/db/postgres"
	"github.com/frameforge/frame-extractor/pkg/db/redis"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

func main() {
	log.Println("Starting worker")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %v", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %v", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	s3Client, presignClient, err := aws.NewS3Client(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not create s3 client: %v", err)
	}

	rekognitionClient, err := aws.NewRekognitionClient(cfg.Moderation.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not create rekognition client: %v", err)
	}

	jobRepo := jobsRepository.NewJobRepo(psqlDB)
	awsRepo := jobsRepository.NewAwsRepository(s3Client, presignClient)
	redisRepo := jobsRepository.NewTaskRedisRepo(redisClient)

	moderationGateway := moderation.NewRekognitionGateway(rekognitionClient, &cfg.Moderation, appLogger)
	frameExtractor := extractor.NewFFmpegExtractor(&cfg.Extractor, appLogger)
	notifyGateway := notifier.NewHTTPNotifier(&cfg.Notifier, appLogger)
	packagerGateway := packager.NewHTTPPackager(&cfg.Packager, appLogger)

	processor := worker.NewProcessor(
		jobRepo,
		awsRepo,
		moderationGateway,
		frameExtractor,
		notifyGateway,
		cfg.Notifier.ServiceName,
		appLogger,
	)
	w := worker.NewWorker(cfg, appLogger, redisRepo, processor, packagerGateway)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	w.Start(ctx)
	<-ctx.Done()
	appLogger.Infof("shutting down workers")
	w.Wait()
}
