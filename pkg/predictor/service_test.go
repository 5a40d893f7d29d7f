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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	apierrors "github.com/waterlab/potability/pkg/errors"
	"github.com/waterlab/potability/pkg/sample"
	"github.com/waterlab/potability/pkg/server"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceJSON = `{"ph": 7.0, "hardness": 150.0, "solids": 20000.0, "chloramines": 7.0,
	"sulfate": 300.0, "conductivity": 400.0, "organic_carbon": 10.0,
	"trihalomethanes": 60.0, "turbidity": 4.0}`

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   struct {
		Errors []sample.FieldError `json:"errors"`
		Error  string              `json:"error"`
	} `json:"details"`
}

func doPredict(t *testing.T, svc *Service, method, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/predict", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	svc.HandlePredict(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandlePredict_ReferenceSample(t *testing.T) {
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("1"))

	rec := doPredict(t, NewService(), http.MethodPost, "application/json", strings.NewReader(referenceJSON))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"potability":1,"confidence":0.85}`, rec.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(predictionsTotal.WithLabelValues("1")))
}

func TestHandlePredict_Bodies(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		fields      []string
		types       []string
	}{
		{
			name:   "integers accepted",
			body:   `{"ph":7,"hardness":150,"solids":20000,"chloramines":7,"sulfate":300,"conductivity":400,"organic_carbon":10,"trihalomethanes":60,"turbidity":4}`,
			status: http.StatusOK,
		},
		{
			name:        "yaml body",
			contentType: "application/yaml",
			body:        "ph: 7.0\nhardness: 150\nsolids: 20000\nchloramines: 7\nsulfate: 300\nconductivity: 400\norganic_carbon: 10\ntrihalomethanes: 60\nturbidity: 4\n",
			status:      http.StatusOK,
		},
		{
			name:   "missing ph",
			body:   `{"hardness":150,"solids":20000,"chloramines":7,"sulfate":300,"conductivity":400,"organic_carbon":10,"trihalomethanes":60,"turbidity":4}`,
			status: http.StatusUnprocessableEntity,
			fields: []string{"ph"},
			types:  []string{sample.ErrTypeMissing},
		},
		{
			name:   "non numeric value",
			body:   `{"ph":"abc","hardness":150,"solids":20000,"chloramines":7,"sulfate":300,"conductivity":400,"organic_carbon":10,"trihalomethanes":60,"turbidity":4}`,
			status: http.StatusUnprocessableEntity,
			fields: []string{"ph"},
			types:  []string{sample.ErrTypeFloat},
		},
		{
			name:   "extra field",
			body:   `{"ph":7,"hardness":150,"solids":20000,"chloramines":7,"sulfate":300,"conductivity":400,"organic_carbon":10,"trihalomethanes":60,"turbidity":4,"color":1}`,
			status: http.StatusUnprocessableEntity,
			fields: []string{"color"},
			types:  []string{sample.ErrTypeExtra},
		},
		{
			name:   "empty object reports every field",
			body:   `{}`,
			status: http.StatusUnprocessableEntity,
			fields: sample.FieldNames(),
		},
		{
			name:   "malformed json",
			body:   `{"ph":`,
			status: http.StatusUnprocessableEntity,
			fields: []string{sample.FieldBody},
			types:  []string{sample.ErrTypeMalformed},
		},
		{
			name:   "empty body",
			body:   "",
			status: http.StatusUnprocessableEntity,
			fields: []string{sample.FieldBody},
			types:  []string{sample.ErrTypeMalformed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doPredict(t, NewService(), http.MethodPost, tt.contentType, strings.NewReader(tt.body))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"potability":1,"confidence":0.85}`, rec.Body.String())
				return
			}

			body := decodeError(t, rec)
			assert.Equal(t, string(apierrors.ErrCodeValidation), body.Code)
			assert.False(t, body.Retryable)

			var fields, types []string
			for _, fe := range body.Details.Errors {
				fields = append(fields, fe.Field)
				types = append(types, fe.Type)
				assert.NotEmpty(t, fe.Message)
			}
			assert.Equal(t, tt.fields, fields)
			if tt.types != nil {
				assert.Equal(t, tt.types, types)
			}
		})
	}
}

func TestHandlePredict_ValidationMetric(t *testing.T) {
	counter := validationFailures.WithLabelValues(sample.ErrTypeMissing)
	before := testutil.ToFloat64(counter)

	doPredict(t, NewService(), http.MethodPost, "", strings.NewReader(`{}`))

	assert.Equal(t, before+float64(sample.NumFeatures), testutil.ToFloat64(counter))
}

func TestHandlePredict_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := doPredict(t, NewService(), method, "", nil)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			assert.Equal(t, string(apierrors.ErrCodeMethodNotAllowed), decodeError(t, rec).Code)
		})
	}
}

func TestHandlePredict_ReadFailure(t *testing.T) {
	rec := doPredict(t, NewService(), http.MethodPost, "application/json",
		iotest.ErrReader(errors.New("connection reset")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, string(apierrors.ErrCodeInvalidRequest), body.Code)
	assert.Contains(t, body.Details.Error, "connection reset")
}

func TestHandlePredict_PredictorErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		code       apierrors.ErrorCode
		retryable  bool
		retryAfter string
	}{
		{
			name:      "plain error becomes internal",
			err:       errors.New("model exploded"),
			status:    http.StatusInternalServerError,
			code:      apierrors.ErrCodeInternal,
			retryable: true,
		},
		{
			name:       "structured error keeps code",
			err:        apierrors.New(apierrors.ErrCodeUnavailable, "model not loaded"),
			status:     http.StatusServiceUnavailable,
			code:       apierrors.ErrCodeUnavailable,
			retryable:  true,
			retryAfter: "1",
		},
		{
			name:       "wrapped unavailable keeps code",
			err:        fmt.Errorf("loading: %w", apierrors.New(apierrors.ErrCodeUnavailable, "model not loaded")),
			status:     http.StatusServiceUnavailable,
			code:       apierrors.ErrCodeUnavailable,
			retryable:  true,
			retryAfter: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(WithPredictor(Func(func(context.Context, sample.WaterSample) (sample.PotabilityResult, error) {
				return sample.PotabilityResult{}, tt.err
			})))

			rec := doPredict(t, svc, http.MethodPost, "application/json", strings.NewReader(referenceJSON))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, string(tt.code), body.Code)
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))
		})
	}
}

func TestService_Predict(t *testing.T) {
	t.Run("stub result", func(t *testing.T) {
		got, err := NewService().Predict(context.Background(), referenceSample())
		require.NoError(t, err)
		assert.Equal(t, StubPotability, got.Potability)
		assert.InDelta(t, StubConfidence, got.Confidence, 1e-9)
	})

	t.Run("non-finite sample rejected", func(t *testing.T) {
		ws := referenceSample()
		ws.Turbidity = math.Inf(1)

		_, err := NewService().Predict(context.Background(), ws)
		require.Error(t, err)
		assert.Equal(t, apierrors.ErrCodeValidation, apierrors.CodeOf(err))
		assert.Equal(t, http.StatusUnprocessableEntity, server.HTTPStatusFromCode(apierrors.CodeOf(err)))
	})

	t.Run("timeout reaches predictor", func(t *testing.T) {
		svc := NewService(
			WithTimeout(5*time.Millisecond),
			WithPredictor(Func(func(ctx context.Context, _ sample.WaterSample) (sample.PotabilityResult, error) {
				<-ctx.Done()
				return sample.PotabilityResult{}, apierrors.Wrap(apierrors.ErrCodeTimeout, "prediction timed out", ctx.Err())
			})),
		)

		_, err := svc.Predict(context.Background(), referenceSample())
		require.Error(t, err)
		assert.Equal(t, apierrors.ErrCodeTimeout, apierrors.CodeOf(err))
	})
}

func TestHandlePredict_ThroughServer(t *testing.T) {
	svc := NewService(WithMaxConcurrency(4))
	s := server.New(server.WithHandler(map[string]http.HandlerFunc{
		"/predict": svc.HandlePredict,
	}))

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(referenceJSON))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(server.HeaderRequestID))
	assert.JSONEq(t, `{"potability":1,"confidence":0.85}`, rec.Body.String())
}
