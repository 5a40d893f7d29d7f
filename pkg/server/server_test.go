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
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	apierrors "github.com/waterlab/potability/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGreeting = "Water Potability Predictor API"

func serve(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/predict": okHandler}))

	require.NotNil(t, s)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.httpServer)
	assert.NotNil(t, s.rateLimiter)
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
	assert.Contains(t, s.config.Handlers, "/predict")
	assert.Contains(t, s.config.Handlers, "/", "default root handler should be registered")
}

func TestNew_Options(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(
		WithConfig(cfg),
		WithName("potabilityd"),
		WithVersion("1.2.3"),
		WithGreeting(testGreeting),
		WithCORS(CORSConfig{}),
	)

	assert.Equal(t, "potabilityd", s.config.Name)
	assert.Equal(t, "1.2.3", s.config.Version)
	assert.Equal(t, testGreeting, s.config.Greeting)
	assert.Equal(t, 9090, s.config.Port)
	assert.EqualValues(t, 500, s.config.RateLimit)
	assert.False(t, s.config.CORS.Enabled())
	assert.Equal(t, "0.0.0.0:9090", s.Addr())
}

func TestDefaultServerName(t *testing.T) {
	s := New()
	assert.Equal(t, "server", s.config.Name)
}

func TestRootGreeting(t *testing.T) {
	t.Run("configured greeting", func(t *testing.T) {
		rec := serve(t, New(WithGreeting(testGreeting)), http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"Water Potability Predictor API"}`, rec.Body.String())
	})

	t.Run("falls back to name", func(t *testing.T) {
		rec := serve(t, New(WithName("potabilityd")), http.MethodGet, "/", nil)
		assert.JSONEq(t, `{"message":"potabilityd"}`, rec.Body.String())
	})

	t.Run("custom root handler is not overridden", func(t *testing.T) {
		called := false
		s := New(WithHandler(map[string]http.HandlerFunc{
			"/": func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			},
		}))
		serve(t, s, http.MethodGet, "/", nil)
		assert.True(t, called)
	})
}

func TestRootMethodNotAllowed(t *testing.T) {
	rec := serve(t, New(), http.MethodPost, "/", strings.NewReader("{}"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apierrors.ErrCodeMethodNotAllowed), resp.Code)
}

func TestUnknownPathNotFound(t *testing.T) {
	rec := serve(t, New(), http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apierrors.ErrCodeNotFound), resp.Code)
	assert.Equal(t, "/nope", resp.Details["path"])
	assert.NotEmpty(t, resp.RequestID)
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	rec := serve(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	// Health does not depend on readiness.
	s.setReady(false)
	rec = serve(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, s, http.MethodDelete, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
		expectedBody   string
	}{
		{"ready state", true, http.StatusOK, StatusReady},
		{"not ready state", false, http.StatusServiceUnavailable, StatusNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			rec := serve(t, s, http.MethodGet, "/ready", nil)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp.Status)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithGreeting(testGreeting))

	serve(t, s, http.MethodGet, "/", nil)
	rec := serve(t, s, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "potability_http_requests_total")
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{"/predict": okHandler}

	s := New(WithConfig(cfg))

	first := serve(t, s, http.MethodPost, "/predict", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := serve(t, s, http.MethodPost, "/predict", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// System endpoints are not rate limited.
	health := serve(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestDefaultConfig_NotRateLimited(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/predict": okHandler}))

	for i := range 300 {
		rec := serve(t, s, http.MethodPost, "/predict", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)

		rec = serve(t, s, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestPanicRecovery(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/panic": func(http.ResponseWriter, *http.Request) {
			panic("test panic")
		},
	}))

	rec := serve(t, s, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func testConfig(port int) *Config {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = port
	cfg.ShutdownTimeout = 100 * time.Millisecond
	return cfg
}

func TestGracefulShutdown(t *testing.T) {
	s := New(WithConfig(testConfig(0)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.ready
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.False(t, s.ready)
}

func TestStart_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	s := New(WithConfig(testConfig(port)))

	err = s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := New(WithConfig(testConfig(0)))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, s.Run(ctx))
}
