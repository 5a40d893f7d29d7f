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

package predictor

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/waterlab/potability/pkg/defaults"
	apierrors "github.com/waterlab/potability/pkg/errors"
	"github.com/waterlab/potability/pkg/sample"
	"github.com/waterlab/potability/pkg/serializer"
	"github.com/waterlab/potability/pkg/server"
)

// Service serves predictions over HTTP.
type Service struct {
	predictor      Predictor
	timeout        time.Duration
	maxConcurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithPredictor sets the classifier. Defaults to Stub.
func WithPredictor(p Predictor) Option {
	return func(s *Service) {
		if p != nil {
			s.predictor = p
		}
	}
}

// WithTimeout bounds each prediction, including time spent waiting
// for a concurrency slot. Non-positive values disable the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithMaxConcurrency caps concurrent predictions. Zero means unlimited.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) {
		s.maxConcurrency = n
	}
}

// NewService returns a Service backed by Stub unless configured otherwise.
func NewService(opts ...Option) *Service {
	s := &Service{
		predictor: Stub{},
		timeout:   defaults.PredictHandlerTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.predictor = Limit(s.predictor, s.maxConcurrency)
	return s
}

// Predict classifies a sample. The sample is validated first, and errors
// from the predictor that carry no code are reported as internal errors.
func (s *Service) Predict(ctx context.Context, ws sample.WaterSample) (*sample.PotabilityResult, error) {
	if err := ws.Validate(); err != nil {
		return nil, apierrors.Wrap(apierrors.ErrCodeValidation, "Invalid water sample", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.predictor.Predict(ctx, ws)
	predictionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		predictionErrors.Inc()
		var se *apierrors.StructuredError
		if stderrors.As(err, &se) {
			return nil, err
		}
		return nil, apierrors.Wrap(apierrors.ErrCodeInternal, "Prediction failed", err)
	}

	predictionsTotal.WithLabelValues(strconv.Itoa(result.Potability)).Inc()
	return &result, nil
}

// HandlePredict serves POST /predict. The body is a JSON or YAML water
// sample; the response is the PotabilityResult.
func (s *Service) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apierrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}
	defer func() {
		if r.Body != nil {
			r.Body.Close()
		}
	}()

	ws, err := sample.Parse(r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		if verr, ok := sample.AsValidationError(err); ok {
			for _, fe := range verr.Errors {
				validationFailures.WithLabelValues(fe.Type).Inc()
			}
			slog.Debug("rejected water sample",
				"requestID", server.RequestIDFromContext(r.Context()),
				"fields", verr.Fields(),
			)
			server.WriteError(w, r, http.StatusUnprocessableEntity, apierrors.ErrCodeValidation,
				"Invalid water sample", false, map[string]any{
					"errors": verr.Errors,
				})
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, apierrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	result, err := s.Predict(r.Context(), *ws)
	if err != nil {
		slog.Error("prediction failed",
			"requestID", server.RequestIDFromContext(r.Context()),
			"code", apierrors.CodeOf(err),
			"error", err,
		)
		if apierrors.IsCode(err, apierrors.ErrCodeUnavailable) {
			w.Header().Set("Retry-After", "1")
		}
		server.WriteErrorFromErr(w, r, err, "Prediction failed", nil)
		return
	}

	slog.Debug("prediction",
		"requestID", server.RequestIDFromContext(r.Context()),
		"potability", result.Potability,
		"confidence", result.Confidence,
	)

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, result)
}
