// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestServer() *Server {
	return New(
		WithName("aosadvisord-test"),
		WithVersion("v0.0.0-test"),
		WithHandler(map[string]http.HandlerFunc{
			"POST /v1/echo": func(w http.ResponseWriter, r *http.Request) {
				serializer.RespondJSON(w, http.StatusOK, map[string]string{
					"requestId": RequestIDFrom(r.Context()),
				})
			},
		}),
	)
}

func TestNew(t *testing.T) {
	s := newTestServer()

	if s.config.Name != "aosadvisord-test" {
		t.Errorf("expected name aosadvisord-test, got %s", s.config.Name)
	}
	if s.config.Version != "v0.0.0-test" {
		t.Errorf("expected version v0.0.0-test, got %s", s.config.Version)
	}
	if len(s.config.Handlers) != 1 {
		t.Errorf("expected 1 handler, got %d", len(s.config.Handlers))
	}
	if s.IsReady() {
		t.Error("expected server not ready before Run")
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9191

	s := New(
		WithHandler(map[string]http.HandlerFunc{"GET /v1/x": func(http.ResponseWriter, *http.Request) {}}),
		WithConfig(cfg),
		WithName("named-after-config"),
	)

	if s.Addr() != ":9191" {
		t.Errorf("expected address :9191, got %s", s.Addr())
	}
	if s.config.Name != "named-after-config" {
		t.Errorf("expected later option to apply, got %s", s.config.Name)
	}
	if len(s.config.Handlers) != 1 {
		t.Errorf("expected handlers to survive WithConfig, got %d", len(s.config.Handlers))
	}
	if cfg.Name == "named-after-config" {
		t.Error("expected WithConfig to copy the config")
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected ready 503 before SetReady, got %d", rec.Code)
	}

	s.SetReady(true)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected ready 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Status != "ready" {
		t.Errorf("expected status ready, got %s", resp.Status)
	}
}

func TestDefaultRoute(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp IndexResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Name != "aosadvisord-test" {
		t.Errorf("expected name aosadvisord-test, got %s", resp.Name)
	}
	want := []string{"GET /health", "GET /ready", "GET /metrics", "POST /v1/echo"}
	if strings.Join(resp.Routes, ",") != strings.Join(want, ",") {
		t.Errorf("expected routes %v, got %v", want, resp.Routes)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeNotFound, resp.Code)
	}
}

func TestAPIRouteRunsMiddleware(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("{}")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	id := rec.Header().Get(HeaderRequestID)
	if id == "" {
		t.Fatal("expected request id header")
	}
	if rec.Header().Get(HeaderAPIVersion) != DefaultAPIVersion {
		t.Errorf("expected API version header %s", DefaultAPIVersion)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body["requestId"] != id {
		t.Errorf("expected handler to see request id %s, got %s", id, body["requestId"])
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "aosa_http_requests_total") {
		t.Error("expected aosa_http_requests_total in exposition")
	}
}

func TestMetricsMiddlewareLabels(t *testing.T) {
	s := newTestServer()
	requests := httpRequestsTotal.WithLabelValues(http.MethodPost, "POST /v1/echo", "200", "v1")
	before := testutil.ToFloat64(requests)

	req := httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{"metrics": {}}`))
	req.Header.Set("Accept", "application/vnd.nvidia.aosa.v1+json")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(requests) - before; got != 1 {
		t.Errorf("expected one request counted for route pattern and version, got %v", got)
	}
	if n := testutil.CollectAndCount(httpRequestSize); n == 0 {
		t.Error("expected request size to be observed")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = time.Second

	taskDone := make(chan struct{})
	s := New(
		WithConfig(cfg),
		WithTask(func(ctx context.Context) error {
			<-ctx.Done()
			close(taskDone)
			return nil
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-taskDone:
	default:
		t.Error("expected background task to observe cancellation")
	}
	if s.IsReady() {
		t.Error("expected server not ready after shutdown")
	}
}

func TestRunReturnsTaskError(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0

	boom := errors.New("watcher failed")
	s := New(WithConfig(cfg), WithTask(func(context.Context) error { return boom }))

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected task error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
