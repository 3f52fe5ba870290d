package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lapgate/internal/config"
	"lapgate/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	domain.DirectoryService
	backend string
}

func (s *stubDirectory) Backend() string { return s.backend }

func newTestServer(cfg config.MonitoringConfig, backend string) *HTTPServer {
	logger := zerolog.New(io.Discard)
	return NewHTTPServer(cfg, &stubDirectory{backend: backend}, &logger)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(config.MonitoringConfig{Port: 8080}, "postgres")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "postgres", body["backend"])
}

func TestHealthzMemoryBackend(t *testing.T) {
	srv := newTestServer(config.MonitoringConfig{Port: 8080}, "memory")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "memory", body["backend"])
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(config.MonitoringConfig{Port: 8080}, "postgres")

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := newTestServer(config.MonitoringConfig{Port: 8080, RPS: 1, Burst: 2}, "postgres")

	handler := srv.rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}

func TestRateLimitPerClient(t *testing.T) {
	srv := newTestServer(config.MonitoringConfig{Port: 8080, RPS: 1, Burst: 1}, "postgres")

	handler := srv.rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// Лимит первого клиента исчерпан, второй клиент не затронут
	second := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}
