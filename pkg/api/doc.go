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

// Package api wires the potability HTTP service together.
//
// Serve configures structured logging, builds the predictor, mounts the
// prediction route on pkg/server and runs until the context is cancelled
// or the process receives SIGINT/SIGTERM.
//
// Usage:
//
//	if err := api.Serve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Options override the configuration file and environment:
//
//	err := api.Serve(ctx,
//	    api.WithConfigFile("potability.yaml"),
//	    api.WithPort(9000),
//	    api.WithMaxConcurrency(16),
//	)
//
// # Endpoints
//
// Application Endpoints (rate limited only when rateLimit is configured):
//   - GET /         - Service greeting
//   - POST /predict - Predict potability of a water sample (JSON or YAML body)
//
// System Endpoints (never rate limited):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8000/predict \
//	  -H "Content-Type: application/json" \
//	  -d '{"ph":7.0,"hardness":150.0,"solids":20000.0,"chloramines":7.0,
//	       "sulfate":300.0,"conductivity":400.0,"organic_carbon":10.0,
//	       "trihalomethanes":60.0,"turbidity":4.0}'
//
//	{"potability":1,"confidence":0.85}
package api
