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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/waterlab/potability/pkg/client"
	"github.com/waterlab/potability/pkg/header"
	"github.com/waterlab/potability/pkg/predictor"
	"github.com/waterlab/potability/pkg/sample"
	"github.com/waterlab/potability/pkg/serializer"
)

// PredictionReport is what the predict command prints.
type PredictionReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Potability int     `json:"potability" yaml:"potability"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Label      string  `json:"label" yaml:"label"`
	Source     string  `json:"source" yaml:"source"`
}

// MetadataInput is the report metadata key naming where the sample came from.
const MetadataInput = "input"

func predictCmd() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Predict potability of a water sample",
		Description: fmt.Sprintf(`Reads a water sample with the fields:
  %s

JSON or YAML is chosen by file extension; stdin is read as JSON.
Without --server the prediction runs in-process.`, strings.Join(sample.FieldNames(), ", ")),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   "-",
				Usage:   "Path to the sample file, or - for stdin",
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Base URL of a running potability API (e.g., http://localhost:8000)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			path := cmd.String("file")
			ws, err := readSample(path, cmd.Root().Reader)
			if err != nil {
				return err
			}

			report, err := predict(ctx, ws, cmd.String("server"),
				header.WithMetadata(MetadataInput, inputName(path)))
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, report)
		},
	}
}

// readSample loads a sample from path, or from stdin when path is "-".
func readSample(path string, stdin io.Reader) (*sample.WaterSample, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		ws, err := sample.Parse(stdin, serializer.FormatJSON.ContentType())
		if err != nil {
			return nil, fmt.Errorf("failed to read sample from stdin: %w", err)
		}
		return ws, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample %q: %w", path, err)
	}
	defer f.Close()

	ws, err := sample.Parse(f, serializer.FormatFromPath(path).ContentType())
	if err != nil {
		return nil, fmt.Errorf("failed to read sample from %q: %w", path, err)
	}
	return ws, nil
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// predict runs the prediction in-process, or remotely when serverURL is set.
func predict(ctx context.Context, ws *sample.WaterSample, serverURL string, opts ...header.Option) (*PredictionReport, error) {
	var (
		result *sample.PotabilityResult
		source string
		err    error
	)

	if serverURL != "" {
		c, cerr := client.New(serverURL)
		if cerr != nil {
			return nil, cerr
		}
		source = c.BaseURL()
		result, err = c.Predict(ctx, *ws)
	} else {
		source = "local"
		result, err = predictor.NewService().Predict(ctx, *ws)
	}
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	slog.Debug("prediction", "source", source, "potability", result.Potability)

	return &PredictionReport{
		Header:     header.New(header.KindPredictionReport, version, opts...),
		Potability: result.Potability,
		Confidence: result.Confidence,
		Label:      result.Label(),
		Source:     source,
	}, nil
}
