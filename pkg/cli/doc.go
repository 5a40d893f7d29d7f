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

// Package cli implements the potability command-line tool.
//
// # Commands
//
// serve - Run the prediction API:
//
//	potability serve --port 8000 --max-concurrency 16
//
// Starts the HTTP API (see pkg/api) and blocks until interrupted.
//
// predict - Predict potability of one water sample:
//
//	potability predict --file sample.yaml
//	cat sample.json | potability predict --format table
//	potability predict --file sample.json --server http://localhost:8000
//
// Reads a JSON or YAML sample (format follows the file extension, stdin is
// JSON), predicts locally or against a running server, and prints the result.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
//	--format json   (default)
//	--format yaml
//	--format table
//
// Output goes to stdout unless --output names a file.
package cli
