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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func corsRequest(method, target, origin string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestCORS_DefaultPolicy(t *testing.T) {
	s := New(WithGreeting(testGreeting))

	t.Run("echoes origin on simple request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/", "https://app.example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("applies to system endpoints", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/health", "https://app.example.com"))

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight", func(t *testing.T) {
		req := corsRequest(http.MethodOptions, "/predict", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "content-type,x-request-id")
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "content-type,x-request-id", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("no origin leaves response untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/", ""))

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Values("Vary"))
	})

	t.Run("options without preflight headers reaches handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodOptions, "/", "https://app.example.com"))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestCORS_WildcardWithoutCredentials(t *testing.T) {
	s := New(WithCORS(CORSConfig{AllowedOrigins: []string{"*"}}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/health", "https://app.example.com"))

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	s := New(WithCORS(CORSConfig{
		AllowedOrigins: []string{"https://lab.example.com"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         time.Minute,
	}))

	t.Run("allowed origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/health", "https://lab.example.com"))

		assert.Equal(t, "https://lab.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, HeaderRequestID, rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("disallowed origin gets no cors headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/health", "https://evil.example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricted preflight", func(t *testing.T) {
		req := corsRequest(http.MethodOptions, "/predict", "https://lab.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "x-custom")
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "60", rec.Header().Get("Access-Control-Max-Age"))
	})
}

func TestCORS_Disabled(t *testing.T) {
	s := New(WithCORS(CORSConfig{}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, corsRequest(http.MethodGet, "/health", "https://app.example.com"))

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
