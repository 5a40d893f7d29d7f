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
	"log/slog"

	"github.com/waterlab/potability/pkg/sample"
)

// Fixed result returned by Stub.
const (
	StubPotability = 1
	StubConfidence = 0.85
)

// Predictor classifies a water sample.
type Predictor interface {
	Predict(ctx context.Context, s sample.WaterSample) (sample.PotabilityResult, error)
}

// Func adapts an ordinary function to the Predictor interface.
type Func func(ctx context.Context, s sample.WaterSample) (sample.PotabilityResult, error)

// Predict calls f.
func (f Func) Predict(ctx context.Context, s sample.WaterSample) (sample.PotabilityResult, error) {
	return f(ctx, s)
}

// Stub ignores the measurements and always predicts potable water with
// confidence 0.85.
type Stub struct{}

// Predict builds the feature vector and returns the fixed result.
func (Stub) Predict(_ context.Context, s sample.WaterSample) (sample.PotabilityResult, error) {
	features := s.Features()
	slog.Debug("stub prediction", "features", len(features))

	return sample.PotabilityResult{
		Potability: StubPotability,
		Confidence: StubConfidence,
	}, nil
}
