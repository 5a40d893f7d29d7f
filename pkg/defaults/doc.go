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

// Package defaults provides centralized configuration constants for the
// potability service.
//
// Timeouts and limits live here so the server, the predictor handler and the
// API client agree on them.
//
// # Usage
//
//	import "github.com/waterlab/potability/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.PredictHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Prediction handler: 10s, including the wait for a predictor slot
//   - API client: 15s total, longer than the server side so the server
//     error is seen instead of a client timeout
//   - Server shutdown: 30s for graceful shutdown
package defaults
