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
	"os"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/logging"
	"github.com/NVIDIA/aos-advisor/pkg/server"
)

const (
	name           = "aosadvisord"
	versionDefault = "dev"

	// EnvThresholdsFile names a thresholds document watched for changes.
	EnvThresholdsFile = "THRESHOLDS_FILE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/aos-advisor/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// When THRESHOLDS_FILE is set the file must load at startup; later
// changes are applied without a restart.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := newServer(os.Getenv(EnvThresholdsFile))
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

// newServer wires the advisor handler and, when thresholdsFile is set,
// the reload task.
func newServer(thresholdsFile string) (*server.Server, error) {
	h := NewHandler(advisor.New(advisor.WithVersion(version)))

	opts := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	}

	if thresholdsFile != "" {
		w := NewThresholdsWatcher(thresholdsFile, func(t advisor.Thresholds) {
			h.Swap(advisor.New(advisor.WithVersion(version), advisor.WithThresholds(t)))
		})
		if err := w.Load(); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", EnvThresholdsFile, err)
		}
		opts = append(opts, server.WithTask(w.Run))
	}

	return server.New(opts...), nil
}
