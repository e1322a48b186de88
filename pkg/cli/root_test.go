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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/header"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/urfave/cli/v3"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "valid table format", format: "table", wantFormat: serializer.FormatTable},
		{name: "upper case", format: "JSON", wantFormat: serializer.FormatJSON},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	if root.Name != name {
		t.Errorf("expected name %s, got %s", name, root.Name)
	}

	want := map[string]bool{"evaluate": false, "plan": false, "rules": false}
	for _, c := range root.Commands {
		if _, ok := want[c.Name]; ok {
			want[c.Name] = true
		}
		if c.Action == nil {
			t.Errorf("command %s has no action", c.Name)
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("missing command %s", n)
		}
	}
}

func TestCommandLister(t *testing.T) {
	commandLister(context.Background(), nil)

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "root",
		Writer: &buf,
		Commands: []*cli.Command{
			{Name: "visible1"},
			{Name: "hidden", Hidden: true},
			{Name: "visible2"},
		},
	}
	commandLister(context.Background(), root)

	if got := strings.Fields(buf.String()); strings.Join(got, ",") != "visible1,visible2" {
		t.Errorf("expected visible commands only, got %v", got)
	}
}

func TestRules(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rules.json")

	if code := run(context.Background(), []string{name, "rules", "--format", "json", "--output", out}); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}

	c, err := serializer.FromFile[advisor.RuleCatalog](out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if c.Kind != header.KindRuleCatalog {
		t.Errorf("expected kind %s, got %s", header.KindRuleCatalog, c.Kind)
	}
	if len(c.Rules) == 0 {
		t.Error("expected rules in catalog")
	}
}

func TestRules_Thresholds(t *testing.T) {
	dir := t.TempDir()
	th := writeInput(t, dir, "thresholds.yaml", "rules:\n  cpuPercent: 65\n")
	out := filepath.Join(dir, "rules.yaml")

	if code := run(context.Background(), []string{name, "rules", "--thresholds", th, "--output", out}); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}

	c, err := serializer.FromFile[advisor.RuleCatalog](out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if c.Thresholds.Rules.CPUPercent != 65 {
		t.Errorf("expected cpuPercent 65, got %v", c.Thresholds.Rules.CPUPercent)
	}
}

func TestRun_InvalidFormat(t *testing.T) {
	if code := run(context.Background(), []string{name, "rules", "--format", "xml"}); code != ExitError {
		t.Errorf("expected exit %d, got %d", ExitError, code)
	}
}
