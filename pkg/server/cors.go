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
	"slices"
	"strconv"
	"strings"
)

// anyMethods is advertised on preflight when methods are not restricted.
var anyMethods = []string{
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
}

// corsMiddleware applies the configured cross-origin policy to every route,
// system endpoints included, and answers preflight requests directly.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	c := s.config.CORS
	if !c.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")

		allowOrigin, ok := c.allowOrigin(origin)
		preflight := isPreflight(r)

		if !ok {
			if preflight {
				corsPreflights.WithLabelValues("rejected").Inc()
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if c.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if preflight {
			corsPreflights.WithLabelValues("allowed").Inc()
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", c.allowMethods())
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", c.allowHeaders(requested))
			}
			if c.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(c.MaxAge.Seconds())))
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if len(c.ExposedHeaders) > 0 {
			h.Set("Access-Control-Expose-Headers", strings.Join(c.ExposedHeaders, ", "))
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin.
// Browsers reject "*" on credentialed requests, so the wildcard echoes
// the caller's origin when credentials are allowed.
func (c CORSConfig) allowOrigin(origin string) (string, bool) {
	if c.AllowsAnyOrigin() {
		if c.AllowCredentials {
			return origin, true
		}
		return wildcard, true
	}
	if slices.Contains(c.AllowedOrigins, origin) {
		return origin, true
	}
	return "", false
}

func (c CORSConfig) allowMethods() string {
	if len(c.AllowedMethods) == 0 || slices.Contains(c.AllowedMethods, wildcard) {
		return strings.Join(anyMethods, ", ")
	}
	return strings.Join(c.AllowedMethods, ", ")
}

// allowHeaders echoes the requested headers under a wildcard policy.
func (c CORSConfig) allowHeaders(requested string) string {
	if slices.Contains(c.AllowedHeaders, wildcard) {
		return requested
	}
	return strings.Join(c.AllowedHeaders, ", ")
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
