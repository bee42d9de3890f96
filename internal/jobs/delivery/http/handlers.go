package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

type jobsHandlers struct {
	jobsUC jobs.UseCase
	logger logger.Logger
}

func NewJobsHandlers(jobsUC jobs.UseCase, log logger.Logger) jobs.Handlers {
	return &jobsHandlers{
		jobsUC: jobsUC,
		logger: log,
	}
}

func (h *jobsHandlers) RegisterVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("video")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "video file is required"})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read video file"})
		}
		defer file.Close()

		input := &models.RegisterInput{
			ClientIdentification: c.FormValue("client_identification"),
			NotifyURL:            c.FormValue("notify_url"),
			File:                 file,
			Size:                 fileHeader.Size,
			ContentType:          fileHeader.Header.Get("Content-Type"),
		}

		job, err := h.jobsUC.Register(c.Request().Context(), input)
		if err != nil {
			h.logger.Errorf("RegisterVideo error, RequestID: %s: %v", utils.GetRequestID(c), err)
			return c.JSON(registerErrorStatus(err), map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, job)
	}
}

func (h *jobsHandlers) GetJobStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobRef := c.Param("job_ref")
		job, err := h.jobsUC.GetJobStatus(c.Request().Context(), jobRef)
		if err != nil {
			if errors.Is(err, jobs.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
			}
			h.logger.Errorf("GetJobStatus error, RequestID: %s: %v", utils.GetRequestID(c), err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *jobsHandlers) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		clientID := c.QueryParam("client_identification")
		if clientID == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "client_identification is required"})
		}
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		jobList, err := h.jobsUC.ListJobs(c.Request().Context(), clientID, pagination)
		if err != nil {
			h.logger.Errorf("ListJobs error, RequestID: %s: %v", utils.GetRequestID(c), err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, jobList)
	}
}

func registerErrorStatus(err error) int {
	switch {
	case errors.Is(err, jobs.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, jobs.ErrInvalidNotifyURL):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
