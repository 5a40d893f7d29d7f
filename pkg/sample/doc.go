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

// Package sample defines the water-quality measurement record accepted by the
// service and the potability result it returns.
//
// A WaterSample carries nine required measurements. Parse turns a JSON or
// YAML document into a WaterSample, checking every field once at the
// boundary: each of the nine names must be present and hold a finite number,
// and no other names are accepted. All problems are reported together in a
// ValidationError, one FieldError per offending field.
//
// Features returns the measurements as a vector in the fixed order a model
// expects:
//
//	ph, hardness, solids, chloramines, sulfate, conductivity,
//	organic_carbon, trihalomethanes, turbidity
//
// No range checks are applied. A pH of 42 is accepted as long as it is a
// number.
package sample
