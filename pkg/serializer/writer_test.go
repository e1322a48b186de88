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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"gopkg.in/yaml.v3"
)

type testDoc struct {
	Name    string                  `json:"name" yaml:"name"`
	Reading snapshot.Value[float64] `json:"reading,omitzero" yaml:"reading,omitempty"`
	Tags    []string                `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type testTable struct{ rows [][]string }

func (t testTable) TableHeader() []string { return []string{"TITLE", "PRIORITY"} }
func (t testTable) TableRows() [][]string { return t.rows }

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	doc := testDoc{Name: "cpu", Reading: snapshot.Of(91.5)}
	if err := w.Serialize(context.Background(), doc); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["name"] != "cpu" || got["reading"] != 91.5 {
		t.Errorf("unexpected output: %v", got)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("expected trailing newline")
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(context.Background(), testDoc{Name: "memory", Tags: []string{"a"}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var got testDoc
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Name != "memory" || len(got.Tags) != 1 {
		t.Errorf("unexpected output: %+v", got)
	}
	if got.Reading.State() != snapshot.Absent {
		t.Errorf("absent reading should round-trip as absent, got %v", got.Reading.State())
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	tests := []struct {
		name     string
		doc      any
		contains []string
	}{
		{
			name:     "tabular",
			doc:      testTable{rows: [][]string{{"High CPU Utilization", "High"}}},
			contains: []string{"TITLE", "PRIORITY", "-----", "High CPU Utilization"},
		},
		{
			name:     "flattened with json names",
			doc:      testDoc{Name: "db", Reading: snapshot.Of(1200.0), Tags: []string{"x", "y"}},
			contains: []string{"FIELD", "name", "db", "reading", "1200", "tags.[1]", "y"},
		},
		{
			name:     "empty tabular",
			doc:      testTable{},
			contains: []string{"<empty>"},
		},
		{
			name:     "scalar",
			doc:      42,
			contains: []string{"value", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), tt.doc); err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestNewWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	if w.format != FormatJSON {
		t.Errorf("format = %s, want json", w.format)
	}
}

func TestNewFileWriter(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		for _, p := range []string{"", " ", "-"} {
			s, err := NewFileWriter(FormatJSON, p)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", p, err)
			}
			if w, ok := s.(*Writer); !ok || w.output != os.Stdout {
				t.Errorf("expected stdout writer for %q", p)
			}
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.yaml")
		s, err := NewFileWriter(FormatYAML, path)
		if err != nil {
			t.Fatalf("NewFileWriter failed: %v", err)
		}
		if err := s.Serialize(context.Background(), testDoc{Name: "x"}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		c, ok := s.(Closer)
		if !ok {
			t.Fatal("file writer should be a Closer")
		}
		if err := c.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := c.Close(); err != nil {
			t.Errorf("second Close should be a no-op: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "name: x") {
			t.Errorf("unexpected file content: %s", data)
		}
	})

	t.Run("configmap", func(t *testing.T) {
		s, err := NewFileWriter(FormatJSON, "cm://ops/aos-plan")
		if err != nil {
			t.Fatalf("NewFileWriter failed: %v", err)
		}
		cm, ok := s.(*ConfigMapWriter)
		if !ok {
			t.Fatalf("expected ConfigMapWriter, got %T", s)
		}
		if cm.namespace != "ops" || cm.name != "aos-plan" {
			t.Errorf("unexpected target %s/%s", cm.namespace, cm.name)
		}
	})

	t.Run("bad configmap uri", func(t *testing.T) {
		if _, err := NewFileWriter(FormatJSON, "cm://ops"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		if _, err := NewFileWriter(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"metrics.json", FormatJSON},
		{"metrics.YAML", FormatYAML},
		{"/etc/aos/thresholds.yml", FormatYAML},
		{"out.txt", FormatTable},
		{"https://example.com/history.yaml?rev=3", FormatYAML},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}
