package packager

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

// httpPackager hands a completed job's result descriptor to the downstream
// packaging service. Plain pass-through: no branching, no state. Failures
// propagate to the dispatch loop; the job itself is already COMPLETED.
type httpPackager struct {
	cfg    *config.PackagerConfig
	client *http.Client
	logger logger.Logger
}

func NewHTTPPackager(cfg *config.PackagerConfig, log logger.Logger) jobs.PackagerGateway {
	return &httpPackager{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: log,
	}
}

func (p *httpPackager) Forward(ctx context.Context, result *models.ProcessResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "httpPackager.Forward.marshal")
	}

	url := p.cfg.BaseURL + "/schedule"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "httpPackager.Forward.request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "httpPackager.Forward: post %s", url)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("packager returned status %d for job %s", res.StatusCode, result.JobRef)
	}

	p.logger.Infof("forwarded result for job %s to packager", result.JobRef)
	return nil
}
