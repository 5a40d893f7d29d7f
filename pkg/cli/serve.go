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

	"github.com/urfave/cli/v3"

	"github.com/waterlab/potability/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the prediction API server",
		Description: `Starts the HTTP API:
  GET  /         service greeting
  GET  /health   liveness probe
  GET  /ready    readiness probe
  GET  /metrics  Prometheus metrics
  POST /predict  water sample prediction

Flags override the configuration file, which overrides HOST and PORT.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Bind address (default: 0.0.0.0)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: 8000)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML server configuration file",
			},
			&cli.IntFlag{
				Name:  "max-concurrency",
				Usage: "Maximum concurrent predictions (0 = unlimited)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := serveOptions(cmd)
			if err != nil {
				return err
			}
			return api.Serve(ctx, opts...)
		},
	}
}

// serveOptions translates flags into api options.
func serveOptions(cmd *cli.Command) ([]api.Option, error) {
	opts := []api.Option{
		api.WithLogLevel(cmd.String("log-level")),
	}

	if path := cmd.String("config"); path != "" {
		opts = append(opts, api.WithConfigFile(path))
	}
	if addr := cmd.String("address"); addr != "" {
		opts = append(opts, api.WithAddress(addr))
	}
	if cmd.IsSet("port") {
		port := int(cmd.Int("port"))
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port: %d", port)
		}
		opts = append(opts, api.WithPort(port))
	}
	if n := int(cmd.Int("max-concurrency")); n != 0 {
		if n < 0 {
			return nil, fmt.Errorf("max-concurrency must not be negative, got %d", n)
		}
		opts = append(opts, api.WithMaxConcurrency(n))
	}

	return opts, nil
}
