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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potability_predictions_total",
			Help: "Total number of predictions by outcome",
		},
		[]string{"potability"},
	)

	predictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "potability_prediction_duration_seconds",
			Help:    "Duration of a single prediction in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	predictionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "potability_prediction_errors_total",
			Help: "Total number of predictions that returned an error",
		},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "potability_validation_failures_total",
			Help: "Total number of rejected sample fields by error type",
		},
		[]string{"type"},
	)

	predictionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "potability_predictions_in_flight",
			Help: "Current number of predictions holding a concurrency slot",
		},
	)

	predictorRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "potability_predictor_rejects_total",
			Help: "Total number of predictions rejected while waiting for a concurrency slot",
		},
	)
)
