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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "aosadvisor", "v0.1.0", slog.LevelInfo)
	l.Info("hello", "rule", "High CPU Utilization")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["module"] != "aosadvisor" {
		t.Errorf("module = %v", entry["module"])
	}
	if entry["version"] != "v0.1.0" {
		t.Errorf("version = %v", entry["version"])
	}
	if entry["rule"] != "High CPU Utilization" {
		t.Errorf("rule = %v", entry["rule"])
	}
	if _, ok := entry["source"]; ok {
		t.Error("source should only be added at debug level")
	}
}

func TestNewLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "m", "v", slog.LevelDebug)
	l.Debug("details")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := entry["source"]; !ok {
		t.Error("expected source at debug level")
	}
}

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "m", "v", slog.LevelWarn)
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
}

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	t.Setenv(EnvLogLevel, "error")
	SetDefaultStructuredLogger("m", "v")
	if slog.Default().Enabled(t.Context(), slog.LevelWarn) {
		t.Error("warn should be disabled when LOG_LEVEL=error")
	}
}
