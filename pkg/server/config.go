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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	"golang.org/x/time/rate"
)

// Environment variables read by NewConfig.
const (
	EnvPort                   = "PORT"
	EnvShutdownTimeoutSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit              = "RATE_LIMIT"
	EnvRateLimitBurst         = "RATE_LIMIT_BURST"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are API routes served behind the middleware chain, keyed by
	// ServeMux pattern (e.g. "POST /v1/evaluate").
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// MaxRequestBytes bounds API request bodies.
	MaxRequestBytes int64

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns defaults overridden by PORT, SHUTDOWN_TIMEOUT_SECONDS,
// RATE_LIMIT and RATE_LIMIT_BURST. Invalid values are logged and ignored.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100, // 100 req/s
		RateLimitBurst:    200,
		MaxRequestBytes:   defaults.MaxRequestBodyBytes,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt(EnvPort); ok && port > 0 && port < 65536 {
		cfg.Port = port
	}

	// Allow the shutdown timeout to match the pod termination grace period.
	if seconds, ok := envInt(EnvShutdownTimeoutSeconds); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv(EnvRateLimit); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		} else {
			slog.Warn("ignoring invalid environment value", "name", EnvRateLimit, "value", v)
		}
	}

	if burst, ok := envInt(EnvRateLimitBurst); ok && burst > 0 {
		cfg.RateLimitBurst = burst
	}

	return cfg
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid environment value", "name", name, "value", v)
		return 0, false
	}
	return n, true
}
