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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/waterlab/potability/pkg/logging"
	"github.com/waterlab/potability/pkg/predictor"
	"github.com/waterlab/potability/pkg/server"
)

const (
	name           = "potabilityd"
	versionDefault = "dev"

	// Greeting is returned by GET /.
	Greeting = "Water Potability Predictor API"

	// PredictPath is the route serving predictions.
	PredictPath = "/predict"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/waterlab/potability/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type settings struct {
	configPath     string
	address        string
	port           int
	portSet        bool
	maxConcurrency int
	logLevel       string
	predictor      predictor.Predictor
}

// Option customizes Serve and NewServer.
type Option func(*settings)

// WithConfigFile loads server configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(s *settings) {
		s.configPath = path
	}
}

// WithAddress overrides the bind address.
func WithAddress(address string) Option {
	return func(s *settings) {
		s.address = address
	}
}

// WithPort overrides the listen port. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *settings) {
		s.port = port
		s.portSet = true
	}
}

// WithMaxConcurrency caps concurrent predictions. Zero means unlimited.
func WithMaxConcurrency(n int) Option {
	return func(s *settings) {
		s.maxConcurrency = n
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
// Defaults to the LOG_LEVEL environment variable.
func WithLogLevel(level string) Option {
	return func(s *settings) {
		s.logLevel = level
	}
}

// WithPredictor replaces the stub predictor, e.g. with a trained model
// loaded before the server starts.
func WithPredictor(p predictor.Predictor) Option {
	return func(s *settings) {
		s.predictor = p
	}
}

// Routes returns the application routes served by svc.
func Routes(svc *predictor.Service) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		PredictPath: svc.HandlePredict,
	}
}

// NewServer builds the configured server without starting it.
func NewServer(opts ...Option) (*server.Server, error) {
	st := &settings{}
	for _, opt := range opts {
		opt(st)
	}

	cfg := server.NewConfig()
	if st.configPath != "" {
		loaded, err := server.LoadConfig(st.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if st.address != "" {
		cfg.Address = st.address
	}
	if st.portSet {
		cfg.Port = st.port
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if st.maxConcurrency < 0 {
		return nil, fmt.Errorf("max concurrency must not be negative, got %d", st.maxConcurrency)
	}

	svc := predictor.NewService(
		predictor.WithPredictor(st.predictor),
		predictor.WithMaxConcurrency(st.maxConcurrency),
	)

	return server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithGreeting(Greeting),
		server.WithHandler(Routes(svc)),
	), nil
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve(ctx context.Context, opts ...Option) error {
	st := &settings{}
	for _, opt := range opts {
		opt(st)
	}

	if st.logLevel != "" {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, st.logLevel)
	} else {
		logging.SetDefaultStructuredLogger(name, version)
	}

	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := NewServer(opts...)
	if err != nil {
		slog.Error("failed to configure server", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
