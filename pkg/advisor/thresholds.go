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

package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/NVIDIA/aos-advisor/pkg/rules"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/NVIDIA/aos-advisor/pkg/trend"
	"gopkg.in/yaml.v3"
)

// Thresholds groups the tunable limits of every engine stage. Documents
// decoded into Thresholds start from the defaults, so a file only needs the
// keys it overrides.
type Thresholds struct {
	Rules  rules.Thresholds `json:"rules" yaml:"rules"`
	Trends trend.Thresholds `json:"trends" yaml:"trends"`
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Rules:  rules.DefaultThresholds(),
		Trends: trend.DefaultThresholds(),
	}
}

// Validate checks every stage's limits.
func (t Thresholds) Validate() error {
	if err := t.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rule thresholds: %w", err)
	}
	if err := t.Trends.Validate(); err != nil {
		return fmt.Errorf("invalid trend thresholds: %w", err)
	}
	return nil
}

type plainThresholds Thresholds

// UnmarshalJSON decodes over the defaults.
func (t *Thresholds) UnmarshalJSON(data []byte) error {
	p := plainThresholds(DefaultThresholds())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Thresholds(p)
	return nil
}

// UnmarshalYAML decodes over the defaults.
func (t *Thresholds) UnmarshalYAML(node *yaml.Node) error {
	p := plainThresholds(DefaultThresholds())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = Thresholds(p)
	return nil
}

// ParseThresholds decodes a YAML or JSON thresholds document and validates it.
func ParseThresholds(data []byte) (Thresholds, error) {
	t := DefaultThresholds()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Thresholds{}, fmt.Errorf("failed to parse thresholds: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

// LoadThresholds reads and validates a thresholds document from any source
// the serializer accepts: a local path, an http(s) URL, "-" or a
// cm://namespace/name ConfigMap. Keys that are absent keep their defaults.
func LoadThresholds(path, kubeconfig string) (Thresholds, error) {
	t, err := serializer.FromFileWithKubeconfig[Thresholds](path, kubeconfig)
	if err != nil {
		return Thresholds{}, fmt.Errorf("failed to load thresholds: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return *t, nil
}
