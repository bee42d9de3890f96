package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
	"github.com/frameforge/frame-extractor/pkg/utils"
)

type fakeUseCase struct {
	registered *models.RegisterInput
	job        *models.Job
	list       *models.JobList
	err        error
}

func (u *fakeUseCase) Register(ctx context.Context, input *models.RegisterInput) (*models.Job, error) {
	u.registered = input
	return u.job, u.err
}

func (u *fakeUseCase) GetJobStatus(ctx context.Context, jobRef string) (*models.Job, error) {
	return u.job, u.err
}

func (u *fakeUseCase) ListJobs(ctx context.Context, clientID string, pq *utils.Pagination) (*models.JobList, error) {
	return u.list, u.err
}

func multipartBody(t *testing.T, fields map[string]string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileContent != nil {
		part, err := writer.CreateFormFile("video", "clip.mp4")
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestRegisterVideoCreated(t *testing.T) {
	e := echo.New()
	uc := &fakeUseCase{job: &models.Job{JobRef: "acme-1", Status: models.JobStatusQueued}}
	h := NewJobsHandlers(uc, logger.NewNopLogger())

	body, contentType := multipartBody(t, map[string]string{
		"client_identification": "acme",
		"notify_url":            "https://client.example.com/hook",
	}, []byte("video-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/register", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.RegisterVideo()(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.registered)
	require.Equal(t, "acme", uc.registered.ClientIdentification)
	require.Equal(t, "https://client.example.com/hook", uc.registered.NotifyURL)
	require.Equal(t, int64(len("video-bytes")), uc.registered.Size)

	var got models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "acme-1", got.JobRef)
}

func TestRegisterVideoMissingFile(t *testing.T) {
	e := echo.New()
	h := NewJobsHandlers(&fakeUseCase{}, logger.NewNopLogger())

	body, contentType := multipartBody(t, map[string]string{"client_identification": "acme"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/register", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.RegisterVideo()(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterVideoPayloadTooLarge(t *testing.T) {
	e := echo.New()
	h := NewJobsHandlers(&fakeUseCase{err: jobs.ErrPayloadTooLarge}, logger.NewNopLogger())

	body, contentType := multipartBody(t, map[string]string{"client_identification": "acme"}, []byte("video-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/register", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.RegisterVideo()(c))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGetJobStatusFound(t *testing.T) {
	e := echo.New()
	uc := &fakeUseCase{job: &models.Job{JobRef: "acme-1", Status: models.JobStatusProcessing}}
	h := NewJobsHandlers(uc, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("job_ref")
	c.SetParamValues("acme-1")

	require.NoError(t, h.GetJobStatus()(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, models.JobStatusProcessing, got.Status)
}

func TestGetJobStatusNotFound(t *testing.T) {
	e := echo.New()
	h := NewJobsHandlers(&fakeUseCase{err: jobs.ErrJobNotFound}, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("job_ref")
	c.SetParamValues("nobody-1")

	require.NoError(t, h.GetJobStatus()(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListJobsRequiresClient(t *testing.T) {
	e := echo.New()
	h := NewJobsHandlers(&fakeUseCase{}, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListJobs()(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListJobsOK(t *testing.T) {
	e := echo.New()
	uc := &fakeUseCase{list: &models.JobList{
		Jobs:       []*models.Job{{JobRef: "acme-1"}},
		TotalCount: 1,
		Page:       1,
		PageSize:   10,
	}}
	h := NewJobsHandlers(uc, logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/?client_identification=acme", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListJobs()(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.JobList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.TotalCount)
	require.Len(t, got.Jobs, 1)
}
