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

package sample

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/waterlab/potability/pkg/defaults"
)

// Parse reads a JSON or YAML sample document from body and validates it.
// The format follows contentType; YAML media types select YAML and anything
// else is treated as JSON. Validation failures are returned as a
// *ValidationError; read failures are returned as-is.
func Parse(body io.Reader, contentType string) (*WaterSample, error) {
	if body == nil {
		return nil, malformed("request body is required")
	}

	data, err := io.ReadAll(io.LimitReader(body, defaults.MaxRequestBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) > defaults.MaxRequestBodyBytes {
		return nil, malformed(fmt.Sprintf("request body exceeds %d bytes", defaults.MaxRequestBodyBytes))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed("request body is empty")
	}

	var doc map[string]any
	if isYAML(contentType) {
		doc, err = decodeYAML(data)
	} else {
		doc, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	return FromMap(doc)
}

// FromMap validates an already decoded document.
func FromMap(doc map[string]any) (*WaterSample, error) {
	var (
		s    WaterSample
		verr ValidationError
	)

	known := make(map[string]struct{}, NumFeatures)
	for _, f := range fields {
		known[f.name] = struct{}{}

		raw, ok := doc[f.name]
		if !ok {
			verr.add(f.name, ErrTypeMissing, msgMissing)
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			verr.add(f.name, ErrTypeFloat, msgNotNumber)
			continue
		}
		*f.ref(&s) = v
	}

	var extra []string
	for k := range doc {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		verr.add(k, ErrTypeExtra, msgExtra)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return &s, nil
}

func isYAML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	default:
		return false
	}
}

func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, malformed("invalid JSON: " + err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed("invalid JSON: unexpected data after top-level value")
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, malformed("expected a JSON object")
	}
	return doc, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, malformed("invalid YAML: " + err.Error())
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, malformed("expected a YAML mapping with string keys")
	}
	return doc, nil
}

// toFloat accepts the numeric types produced by the JSON (json.Number) and
// YAML (int, int64, uint64, float64) decoders. Strings, booleans and nulls
// are rejected.
func toFloat(raw any) (float64, bool) {
	var f float64
	switch n := raw.(type) {
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = v
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
