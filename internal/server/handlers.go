package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	jobsHttp "github.com/frameforge/frame-extractor/internal/jobs/delivery/http"
	jobsRepository "github.com/frameforge/frame-extractor/internal/jobs/repository"
	jobsUsecase "github.com/frameforge/frame-extractor/internal/jobs/usecase"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	jRepo := jobsRepository.NewJobRepo(s.db)
	jAWSRepo := jobsRepository.NewAwsRepository(s.s3Client, s.preSignClient)
	jRedisRepo := jobsRepository.NewTaskRedisRepo(s.redisClient)

	jobsUC := jobsUsecase.NewJobsUseCase(s.cfg, jRepo, jAWSRepo, jRedisRepo, s.logger)

	jobsHandlers := jobsHttp.NewJobsHandlers(jobsUC, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	jobsGroup := v1.Group("/jobs")

	jobsHttp.MapJobsRoutes(jobsGroup, jobsHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
