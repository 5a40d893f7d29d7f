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

	apierrors "github.com/waterlab/potability/pkg/errors"
	"github.com/waterlab/potability/pkg/sample"

	"golang.org/x/sync/semaphore"
)

// Limit returns a Predictor that runs at most n predictions of p at once.
// Callers beyond the limit wait for a slot until their context ends, then
// fail with ErrCodeUnavailable. A non-positive n returns p unchanged.
func Limit(p Predictor, n int) Predictor {
	if n <= 0 {
		return p
	}
	sem := semaphore.NewWeighted(int64(n))

	return Func(func(ctx context.Context, s sample.WaterSample) (sample.PotabilityResult, error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			predictorRejects.Inc()
			return sample.PotabilityResult{}, apierrors.WrapWithContext(apierrors.ErrCodeUnavailable,
				"Predictor is at capacity", err, map[string]any{"limit": n})
		}
		defer sem.Release(1)

		predictionsInFlight.Inc()
		defer predictionsInFlight.Dec()

		return p.Predict(ctx, s)
	})
}
