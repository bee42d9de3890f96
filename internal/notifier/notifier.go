package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/jobs"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

// httpNotifier posts job status events to a caller-supplied callback URL.
// Sends are retried with bounded exponential backoff; a send that still
// fails when the retry window closes is logged and dropped. Notification failure
// must never unwind a processing decision that has already been recorded.
type httpNotifier struct {
	cfg    *config.NotifierConfig
	client *http.Client
	logger logger.Logger
}

func NewHTTPNotifier(cfg *config.NotifierConfig, log logger.Logger) jobs.NotificationGateway {
	return &httpNotifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: log,
	}
}

func (n *httpNotifier) Send(ctx context.Context, notifyURL string, notification *models.Notification) {
	if notifyURL == "" {
		n.logger.Infof("no notify_url for job %s, skipping notification", notification.JobRef)
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		n.logger.Errorf("failed to marshal notification for job %s: %v", notification.JobRef, err)
		return
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.cfg.InitialInterval
	policy.MaxInterval = n.cfg.MaxInterval
	policy.MaxElapsedTime = n.cfg.MaxElapsedTime

	operation := func() error {
		return n.post(ctx, notifyURL, payload)
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		n.logger.Errorf("giving up on notification for job %s to %s: %v", notification.JobRef, notifyURL, err)
		return
	}
	n.logger.Infof("notification sent for job %s to %s", notification.JobRef, notifyURL)
}

func (n *httpNotifier) post(ctx context.Context, notifyURL string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notifyURL, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("callback returned status %d", res.StatusCode)
	}
	return nil
}
