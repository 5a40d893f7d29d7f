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

// Package predictor turns validated water samples into potability results.
//
// A Predictor is anything that can classify a sample. Stub is the
// placeholder classifier: it assembles the feature vector a trained model
// would consume and returns a fixed result. Limit bounds how many
// predictions may run at once, and Service exposes a Predictor over HTTP
// as POST /predict.
//
// Usage:
//
//	svc := predictor.NewService(
//	    predictor.WithPredictor(predictor.Stub{}),
//	    predictor.WithMaxConcurrency(8),
//	)
//	s := server.New(server.WithHandler(map[string]http.HandlerFunc{
//	    "/predict": svc.HandlePredict,
//	}))
//
// Request:
//
//	POST /predict
//	Content-Type: application/json
//
//	{"ph": 7.0, "hardness": 150.0, "solids": 20000.0, "chloramines": 7.0,
//	 "sulfate": 300.0, "conductivity": 400.0, "organic_carbon": 10.0,
//	 "trihalomethanes": 60.0, "turbidity": 4.0}
//
// Response:
//
//	{"potability": 1, "confidence": 0.85}
//
// Bodies that fail validation are answered with 422 and a
// VALIDATION_FAILED error listing every offending field.
package predictor
