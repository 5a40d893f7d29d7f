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

// Package header provides the envelope shared by resources the potability
// CLI writes, so saved reports identify what they are and which build
// produced them.
//
//	h := header.New(header.KindPredictionReport, "1.2.0",
//	    header.WithMetadata("source", "local"))
//
// Serialized:
//
//	kind: PredictionReport
//	apiVersion: potability.waterlab.io/v1
//	metadata:
//	  source: local
//	  timestamp: "2025-01-01T00:00:00Z"
//	  version: 1.2.0
package header
