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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
)

const (
	metricsDoc = `{"cpuAvg": 95, "memoryAvg": 90, "batchBacklog": 30}`
	configDoc  = "database:\n  auto-update-statistics: false\n"
	contextDoc = "peakWindow:\n  start: \"08:00\"\n  end: \"18:00\"\ncurrentTime: \"10:00\"\n"
)

func evaluate(t *testing.T, dir string) string {
	t.Helper()
	out := filepath.Join(dir, "eval.yaml")
	args := []string{name, "evaluate",
		"--metrics", writeInput(t, dir, "metrics.json", metricsDoc),
		"--config", writeInput(t, dir, "config.yaml", configDoc),
		"--context", writeInput(t, dir, "context.yaml", contextDoc),
		"--output", out,
	}
	if code := run(context.Background(), args); code != ExitOK {
		t.Fatalf("evaluate exit %d", code)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	out := evaluate(t, t.TempDir())

	res, err := serializer.FromFile[advisor.EvaluationResult](out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if res.Status != advisor.StatusSuccess {
		t.Fatalf("expected Success, got %s: %s", res.Status, res.Message)
	}
	if len(res.Recommendations) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(res.Recommendations))
	}
	if res.Recommendations[0].Title != "High CPU Utilization" {
		t.Errorf("expected CPU first, got %s", res.Recommendations[0].Title)
	}
	last := res.Recommendations[len(res.Recommendations)-1]
	if last.Title != "Batch Job Backlog" || last.PriorityAdjustment == "" {
		t.Errorf("expected batch backlog lowered during peak, got %s (%q)", last.Title, last.PriorityAdjustment)
	}
}

func TestEvaluate_Table(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "eval.txt")
	args := []string{name, "evaluate",
		"--metrics", writeInput(t, dir, "metrics.json", metricsDoc),
		"--format", "table",
		"--output", out,
	}
	if code := run(context.Background(), args); code != ExitOK {
		t.Fatalf("evaluate exit %d", code)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "PRIORITY") || !strings.Contains(string(data), "High CPU Utilization") {
		t.Errorf("unexpected table output:\n%s", data)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no inputs", args: []string{"evaluate"}},
		{name: "missing file", args: []string{"evaluate", "--metrics", filepath.Join(dir, "nope.json")}},
		{name: "bad thresholds", args: []string{"evaluate",
			"--metrics", writeInput(t, dir, "m.json", metricsDoc),
			"--thresholds", writeInput(t, dir, "t.yaml", "rules:\n  cpuPercent: -1\n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(context.Background(), append([]string{name}, tt.args...)); code != ExitError {
				t.Errorf("expected exit %d, got %d", ExitError, code)
			}
		})
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(dir, "eval.json")
	args := []string{name, "evaluate",
		"--metrics", writeInput(t, dir, "metrics.json", metricsDoc),
		"--format", "json", "--output", out,
	}

	// A canceled run still writes the Error envelope.
	if code := run(ctx, args); code != ExitOK {
		t.Fatalf("expected exit %d without --fail-on-error, got %d", ExitOK, code)
	}
	res, err := serializer.FromFile[advisor.EvaluationResult](out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if res.Status != advisor.StatusError {
		t.Errorf("expected Error envelope, got %s", res.Status)
	}

	args = append(args, "--fail-on-error")
	if code := run(ctx, args); code != ExitError {
		t.Errorf("expected exit %d with --fail-on-error, got %d", ExitError, code)
	}
}
