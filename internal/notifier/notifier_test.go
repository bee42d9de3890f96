package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frameforge/frame-extractor/internal/config"
	"github.com/frameforge/frame-extractor/internal/models"
	"github.com/frameforge/frame-extractor/pkg/logger"
)

func testNotifier() *config.NotifierConfig {
	return &config.NotifierConfig{
		ServiceName:     "frame-extractor",
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     20 * time.Millisecond,
		MaxElapsedTime:  500 * time.Millisecond,
		RequestTimeout:  time.Second,
	}
}

func TestSendPostsNotification(t *testing.T) {
	var got models.Notification
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(testNotifier(), logger.NewNopLogger())
	n.Send(context.Background(), srv.URL, &models.Notification{
		JobRef:  "acme-42",
		Status:  models.JobStatusCompleted,
		Service: "frame-extractor",
	})

	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Equal(t, "acme-42", got.JobRef)
	require.Equal(t, models.JobStatusCompleted, got.Status)
}

func TestSendRetriesUntilSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(testNotifier(), logger.NewNopLogger())
	n.Send(context.Background(), srv.URL, &models.Notification{JobRef: "acme-42"})

	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendGivesUpSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(testNotifier(), logger.NewNopLogger())
	// Must return without panicking or surfacing an error.
	n.Send(context.Background(), srv.URL, &models.Notification{JobRef: "acme-42"})
}

func TestSendSkipsEmptyURL(t *testing.T) {
	n := NewHTTPNotifier(testNotifier(), logger.NewNopLogger())
	n.Send(context.Background(), "", &models.Notification{JobRef: "acme-42"})
}
