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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/aos-advisor/pkg/k8s/client"
	"gopkg.in/yaml.v3"
)

// MaxDocumentBytes bounds input documents read from files, URLs and stdin.
const MaxDocumentBytes = 16 << 20

// Reader decodes JSON or YAML documents from an io.Reader.
// Close must be called when the Reader was created by NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for input. Table format is write-only.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a Reader for a local path, an http(s) URL, or "-"
// for stdin. Remote documents are read fully into memory.
func NewFileReader(format Format, path string) (*Reader, error) {
	if err := readable(format); err != nil {
		return nil, err
	}

	switch {
	case path == StdinPath:
		return &Reader{format: format, input: io.LimitReader(os.Stdin, MaxDocumentBytes)}, nil

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		data, err := NewHttpReader().Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil

	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return &Reader{
			format: format,
			input:  io.LimitReader(file, MaxDocumentBytes),
			closer: file,
		}, nil
	}
}

// NewFileReaderAuto is NewFileReader with the format taken from the path extension.
func NewFileReaderAuto(path string) (*Reader, error) {
	return NewFileReader(FormatFromPath(path), path)
}

func readable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			if err == io.EOF {
				return fmt.Errorf("failed to decode YAML: document is empty")
			}
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a document of type T from a local path, an http(s) URL,
// "-" for stdin, or a cm://namespace/name ConfigMap URI.
//
// Example:
//
//	req, err := serializer.FromFile[advisor.EvaluationRequest]("cm://monitoring/aos-metrics")
func FromFile[T any](path string) (*T, error) {
	return FromFileWithKubeconfig[T](path, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig for
// ConfigMap URIs. An empty kubeconfig uses the shared client.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		c, err := kubeClient(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		return FromConfigMap[T](context.Background(), c, namespace, name)
	}

	format := FormatFromPath(path)
	slog.Debug("loading document", "path", path, "format", format)

	r, err := NewFileReader(format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}
	return &out, nil
}

// FromConfigMap loads a document of type T stored by ConfigMapWriter.
func FromConfigMap[T any](ctx context.Context, c client.Interface, namespace, name string) (*T, error) {
	data, format, err := ReadConfigMap(ctx, c, namespace, name)
	if err != nil {
		return nil, err
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format,
		"size", len(data))

	r, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap %s/%s: %w", namespace, name, err)
	}
	return &out, nil
}

func kubeClient(kubeconfig string) (client.Interface, error) {
	if kubeconfig != "" {
		c, _, err := client.GetKubeClientWithConfig(kubeconfig)
		return c, err
	}
	c, _, err := client.GetKubeClient()
	return c, err
}
