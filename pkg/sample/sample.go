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
	"fmt"
	"math"
)

// Measurement field names as they appear on the wire.
const (
	FieldPH              = "ph"
	FieldHardness        = "hardness"
	FieldSolids          = "solids"
	FieldChloramines     = "chloramines"
	FieldSulfate         = "sulfate"
	FieldConductivity    = "conductivity"
	FieldOrganicCarbon   = "organic_carbon"
	FieldTrihalomethanes = "trihalomethanes"
	FieldTurbidity       = "turbidity"
)

// WaterSample is a single set of water-quality measurements.
type WaterSample struct {
	PH              float64 `json:"ph" yaml:"ph"`
	Hardness        float64 `json:"hardness" yaml:"hardness"`
	Solids          float64 `json:"solids" yaml:"solids"`
	Chloramines     float64 `json:"chloramines" yaml:"chloramines"`
	Sulfate         float64 `json:"sulfate" yaml:"sulfate"`
	Conductivity    float64 `json:"conductivity" yaml:"conductivity"`
	OrganicCarbon   float64 `json:"organic_carbon" yaml:"organic_carbon"`
	Trihalomethanes float64 `json:"trihalomethanes" yaml:"trihalomethanes"`
	Turbidity       float64 `json:"turbidity" yaml:"turbidity"`
}

// field binds a wire name to its slot in a WaterSample.
type field struct {
	name string
	ref  func(*WaterSample) *float64
}

// fields is in feature order. Parse, Features and FromFeatures all walk it.
var fields = [...]field{
	{FieldPH, func(s *WaterSample) *float64 { return &s.PH }},
	{FieldHardness, func(s *WaterSample) *float64 { return &s.Hardness }},
	{FieldSolids, func(s *WaterSample) *float64 { return &s.Solids }},
	{FieldChloramines, func(s *WaterSample) *float64 { return &s.Chloramines }},
	{FieldSulfate, func(s *WaterSample) *float64 { return &s.Sulfate }},
	{FieldConductivity, func(s *WaterSample) *float64 { return &s.Conductivity }},
	{FieldOrganicCarbon, func(s *WaterSample) *float64 { return &s.OrganicCarbon }},
	{FieldTrihalomethanes, func(s *WaterSample) *float64 { return &s.Trihalomethanes }},
	{FieldTurbidity, func(s *WaterSample) *float64 { return &s.Turbidity }},
}

// NumFeatures is the length of the feature vector.
const NumFeatures = len(fields)

// FieldNames returns the measurement names in feature order.
func FieldNames() []string {
	names := make([]string, 0, NumFeatures)
	for _, f := range fields {
		names = append(names, f.name)
	}
	return names
}

// Features returns the measurements as a vector in feature order.
func (s WaterSample) Features() []float64 {
	out := make([]float64, 0, NumFeatures)
	for _, f := range fields {
		out = append(out, *f.ref(&s))
	}
	return out
}

// FromFeatures builds a sample from a vector in feature order.
func FromFeatures(v []float64) (WaterSample, error) {
	var s WaterSample
	if len(v) != NumFeatures {
		return s, fmt.Errorf("expected %d features, got %d", NumFeatures, len(v))
	}
	for i, f := range fields {
		*f.ref(&s) = v[i]
	}
	return s, s.Validate()
}

// Validate checks that every measurement is a finite number. Samples built
// in code can hold NaN or Inf, which no wire format can carry.
func (s WaterSample) Validate() error {
	var verr ValidationError
	for _, f := range fields {
		if v := *f.ref(&s); math.IsNaN(v) || math.IsInf(v, 0) {
			verr.add(f.name, ErrTypeFloat, msgNotFinite)
		}
	}
	return verr.orNil()
}

// PotabilityResult is the prediction returned for a WaterSample.
// Potability is expected to be 0 or 1 and Confidence to lie in [0, 1];
// neither is enforced.
type PotabilityResult struct {
	Potability int     `json:"potability" yaml:"potability"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// IsPotable reports whether the result classifies the water as drinkable.
func (r PotabilityResult) IsPotable() bool {
	return r.Potability == 1
}

// Label returns a human-readable classification.
func (r PotabilityResult) Label() string {
	if r.IsPotable() {
		return "Potable"
	}
	return "Not Potable"
}
