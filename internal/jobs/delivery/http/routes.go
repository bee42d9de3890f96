package http

import (
	"github.com/labstack/echo/v4"

	"github.com/frameforge/frame-extractor/internal/jobs"
)

func MapJobsRoutes(jobsGroup *echo.Group, h jobs.Handlers) {
	jobsGroup.POST("/register", h.RegisterVideo())
	jobsGroup.GET("/:job_ref/status", h.GetJobStatus())
	jobsGroup.GET("", h.ListJobs())
}
