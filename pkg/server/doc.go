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

// Package server provides the HTTP server shared by the potability API.
//
// The server owns the process-level concerns of the API and leaves the
// domain routes to callers, which register them through WithHandler.
//
// # Architecture
//
//   - Opt-in rate limiting using token bucket algorithm (golang.org/x/time/rate),
//     off unless Config.RateLimit is finite
//   - Request ID tracking via the X-Request-Id header
//   - Panic recovery for resilience
//   - CORS policy applied to every response, including system endpoints
//   - Prometheus metrics for every API route
//   - Graceful shutdown on SIGINT/SIGTERM
//   - Health and readiness probes
//
// # Usage
//
//	s := server.New(
//	    server.WithName("potabilityd"),
//	    server.WithVersion(version),
//	    server.WithGreeting("Water Potability Predictor API"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/predict": svc.HandlePredict,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Configuration can also come from a YAML file:
//
//	cfg, err := server.LoadConfig("potability.yaml")
//	if err != nil {
//	    return err
//	}
//	s := server.New(server.WithConfig(cfg))
//
// # Endpoints
//
// GET / - Greeting ({"message": "..."}); other unclaimed paths return 404
//
// GET /health - Liveness probe, always {"status": "healthy"}
//
// GET /ready - Readiness probe, 503 until the listener is bound and during shutdown
//
// GET /metrics - Prometheus metrics
//
// # Error Handling
//
// Errors use a consistent JSON envelope:
//
//	{
//	  "code": "VALIDATION_FAILED",
//	  "message": "Invalid water sample",
//	  "details": {...},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps pkg/errors codes onto HTTP status codes,
// e.g. VALIDATION_FAILED to 422 and SERVICE_UNAVAILABLE to 503.
//
// # Environment
//
//   - HOST: bind address (default 0.0.0.0)
//   - PORT: listen port (default 8000)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown budget (default 30)
package server
