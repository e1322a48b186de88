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

package rules

import (
	"fmt"
)

// Thresholds holds the limits used by the rule catalog. All comparisons are
// exclusive: a reading equal to the limit does not trigger a rule.
type Thresholds struct {
	CPUPercent               float64 `json:"cpuPercent" yaml:"cpuPercent"`
	MemoryPercent            float64 `json:"memoryPercent" yaml:"memoryPercent"`
	BatchBacklog             float64 `json:"batchBacklog" yaml:"batchBacklog"`
	ActiveSessions           float64 `json:"activeSessions" yaml:"activeSessions"`
	DBResponseMs             float64 `json:"dbResponseMs" yaml:"dbResponseMs"`
	MinMaxConnections        int     `json:"minMaxConnections" yaml:"minMaxConnections"`
	MaxComPlusRecycleMinutes int     `json:"maxComPlusRecycleMinutes" yaml:"maxComPlusRecycleMinutes"`
	MaxBackupFrequencyHours  int     `json:"maxBackupFrequencyHours" yaml:"maxBackupFrequencyHours"`
	MinBatchThreads          int     `json:"minBatchThreads" yaml:"minBatchThreads"`
}

// DefaultThresholds returns the stock rule limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPUPercent:               80,
		MemoryPercent:            85,
		BatchBacklog:             20,
		ActiveSessions:           75,
		DBResponseMs:             1000,
		MinMaxConnections:        100,
		MaxComPlusRecycleMinutes: 1440,
		MaxBackupFrequencyHours:  24,
		MinBatchThreads:          4,
	}
}

// Validate rejects negative limits and percentages above 100.
func (t Thresholds) Validate() error {
	limits := []struct {
		name  string
		value float64
	}{
		{"cpuPercent", t.CPUPercent},
		{"memoryPercent", t.MemoryPercent},
		{"batchBacklog", t.BatchBacklog},
		{"activeSessions", t.ActiveSessions},
		{"dbResponseMs", t.DBResponseMs},
		{"minMaxConnections", float64(t.MinMaxConnections)},
		{"maxComPlusRecycleMinutes", float64(t.MaxComPlusRecycleMinutes)},
		{"maxBackupFrequencyHours", float64(t.MaxBackupFrequencyHours)},
		{"minBatchThreads", float64(t.MinBatchThreads)},
	}
	for _, l := range limits {
		if l.value < 0 {
			return fmt.Errorf("threshold %s must not be negative, got %v", l.name, l.value)
		}
	}
	if t.CPUPercent > 100 {
		return fmt.Errorf("threshold cpuPercent must not exceed 100, got %v", t.CPUPercent)
	}
	if t.MemoryPercent > 100 {
		return fmt.Errorf("threshold memoryPercent must not exceed 100, got %v", t.MemoryPercent)
	}
	return nil
}
