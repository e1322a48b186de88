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

package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Subsystem keys recognized in a configuration snapshot.
const (
	SubsystemApplicationServer = "application-server"
	SubsystemDatabase          = "database"
	SubsystemBatchProcessor    = "batch-processor"
)

// ApplicationServerConfig holds AOS settings.
type ApplicationServerConfig struct {
	MaxConnections        Value[int] `json:"max-connections,omitzero" yaml:"max-connections,omitempty"`
	ComPlusRecycleMinutes Value[int] `json:"complus-recycle-minutes,omitzero" yaml:"complus-recycle-minutes,omitempty"`
}

// DatabaseConfig holds database maintenance settings.
type DatabaseConfig struct {
	AutoUpdateStatistics Value[bool] `json:"auto-update-statistics,omitzero" yaml:"auto-update-statistics,omitempty"`
	BackupFrequencyHours Value[int]  `json:"backup-frequency-hours,omitzero" yaml:"backup-frequency-hours,omitempty"`
}

// BatchProcessorConfig holds batch server settings.
type BatchProcessorConfig struct {
	MaxThreads Value[int] `json:"max-threads,omitzero" yaml:"max-threads,omitempty"`
}

// ConfigurationSnapshot is the typed form of the subsystem -> setting -> value
// document. A nil subsystem means the key was absent. A subsystem whose value
// is not a mapping is recorded as invalid and left nil.
type ConfigurationSnapshot struct {
	ApplicationServer *ApplicationServerConfig `json:"application-server,omitempty" yaml:"application-server,omitempty"`
	Database          *DatabaseConfig          `json:"database,omitempty" yaml:"database,omitempty"`
	BatchProcessor    *BatchProcessorConfig    `json:"batch-processor,omitempty" yaml:"batch-processor,omitempty"`

	invalid map[string]string
}

// SubsystemState reports whether a subsystem was absent, malformed, or usable.
func (c *ConfigurationSnapshot) SubsystemState(name string) State {
	if c == nil {
		return Absent
	}
	if _, bad := c.invalid[name]; bad {
		return Invalid
	}
	var present bool
	switch name {
	case SubsystemApplicationServer:
		present = c.ApplicationServer != nil
	case SubsystemDatabase:
		present = c.Database != nil
	case SubsystemBatchProcessor:
		present = c.BatchProcessor != nil
	}
	if present {
		return Valid
	}
	return Absent
}

// InvalidSubsystems returns the sorted names of subsystems that were not mappings.
func (c *ConfigurationSnapshot) InvalidSubsystems() []string {
	if c == nil || len(c.invalid) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.invalid))
	for n := range c.invalid {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *ConfigurationSnapshot) markInvalid(name, raw string) {
	if c.invalid == nil {
		c.invalid = make(map[string]string)
	}
	c.invalid[name] = raw
}

// subsystemTargets maps subsystem keys to freshly allocated destinations.
func (c *ConfigurationSnapshot) subsystemTargets() map[string]func() (any, func()) {
	return map[string]func() (any, func()){
		SubsystemApplicationServer: func() (any, func()) {
			t := &ApplicationServerConfig{}
			return t, func() { c.ApplicationServer = t }
		},
		SubsystemDatabase: func() (any, func()) {
			t := &DatabaseConfig{}
			return t, func() { c.Database = t }
		},
		SubsystemBatchProcessor: func() (any, func()) {
			t := &BatchProcessorConfig{}
			return t, func() { c.BatchProcessor = t }
		},
	}
}

// UnmarshalJSON implements json.Unmarshaler. Unknown subsystems are ignored.
func (c *ConfigurationSnapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("configuration snapshot must be a mapping: %w", err)
	}
	*c = ConfigurationSnapshot{}
	for name, target := range c.subsystemTargets() {
		msg, ok := raw[name]
		if !ok {
			continue
		}
		text := strings.TrimSpace(string(msg))
		if text == "null" {
			continue
		}
		dst, commit := target()
		if !strings.HasPrefix(text, "{") || json.Unmarshal(msg, dst) != nil {
			c.markInvalid(name, text)
			continue
		}
		commit()
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Unknown subsystems are ignored.
func (c *ConfigurationSnapshot) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("configuration snapshot must be a mapping: %w", err)
	}
	*c = ConfigurationSnapshot{}
	for name, target := range c.subsystemTargets() {
		n, ok := raw[name]
		if !ok || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
			continue
		}
		dst, commit := target()
		if n.Kind != yaml.MappingNode || n.Decode(dst) != nil {
			c.markInvalid(name, n.Value)
			continue
		}
		commit()
	}
	return nil
}
