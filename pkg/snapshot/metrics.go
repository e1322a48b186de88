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

import "time"

// Metric names as they appear in metrics snapshots and historical points.
const (
	MetricCPUAvg          = "cpuAvg"
	MetricMemoryAvg       = "memoryAvg"
	MetricBatchBacklog    = "batchBacklog"
	MetricActiveSessions  = "activeSessions"
	MetricDBResponseAvgMs = "dbResponseAvgMs"
)

// MetricsSnapshot holds point-in-time readings for the application server tier.
// Unknown keys in the source document are ignored.
type MetricsSnapshot struct {
	Timestamp       *time.Time     `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	CPUAvg          Value[float64] `json:"cpuAvg,omitzero" yaml:"cpuAvg,omitempty"`
	MemoryAvg       Value[float64] `json:"memoryAvg,omitzero" yaml:"memoryAvg,omitempty"`
	BatchBacklog    Value[float64] `json:"batchBacklog,omitzero" yaml:"batchBacklog,omitempty"`
	ActiveSessions  Value[float64] `json:"activeSessions,omitzero" yaml:"activeSessions,omitempty"`
	DBResponseAvgMs Value[float64] `json:"dbResponseAvgMs,omitzero" yaml:"dbResponseAvgMs,omitempty"`
}

// Get returns the reading for a metric name. Unknown names are Absent.
func (m *MetricsSnapshot) Get(name string) Value[float64] {
	if m == nil {
		return Value[float64]{}
	}
	switch name {
	case MetricCPUAvg:
		return m.CPUAvg
	case MetricMemoryAvg:
		return m.MemoryAvg
	case MetricBatchBacklog:
		return m.BatchBacklog
	case MetricActiveSessions:
		return m.ActiveSessions
	case MetricDBResponseAvgMs:
		return m.DBResponseAvgMs
	default:
		return Value[float64]{}
	}
}

// Above reports whether a metric is valid and strictly greater than limit.
func (m *MetricsSnapshot) Above(name string, limit float64) bool {
	v, s := m.Get(name).Get()
	return s == Valid && v > limit
}
