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

// Package serializer provides encoding of service results in multiple formats.
//
// # Overview
//
// The serializer package converts prediction results, health reports and
// error bodies into JSON for HTTP responses, and into JSON, YAML or a
// human-readable table for the command line.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable representation
//   - Used for every HTTP response body
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - FIELD/VALUE listing for terminal viewing
//   - Write-only
//
// # Usage
//
// HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, result)
//
// CLI output:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
package serializer
