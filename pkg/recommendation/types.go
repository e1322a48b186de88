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

package recommendation

import (
	"fmt"
	"strings"
)

// Category groups recommendations by the kind of change they propose.
type Category string

const (
	CategoryPerformance   Category = "Performance"
	CategoryOperations    Category = "Operations"
	CategoryConfiguration Category = "Configuration"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is a supported value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPerformance, CategoryOperations, CategoryConfiguration:
		return true
	default:
		return false
	}
}

// SupportedCategories returns all supported category values.
func SupportedCategories() []Category {
	return []Category{CategoryPerformance, CategoryOperations, CategoryConfiguration}
}

// Priority expresses urgency. Higher ranks sort first.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Rank returns Critical=4, High=3, Medium=2, Low=1 and 0 for unknown values.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if the priority is a supported value.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// SupportedPriorities returns all priorities from most to least urgent.
func SupportedPriorities() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	for _, p := range SupportedPriorities() {
		if strings.EqualFold(p.String(), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	supported := make([]string, 0, len(SupportedPriorities()))
	for _, p := range SupportedPriorities() {
		supported = append(supported, p.String())
	}
	return "", fmt.Errorf("invalid priority: %s, supported: %s", s, strings.Join(supported, ", "))
}

// Effort estimates how much work a recommendation takes to implement.
type Effort string

const (
	EffortLow    Effort = "Low"
	EffortMedium Effort = "Medium"
	EffortHigh   Effort = "High"
)

// String returns the string representation of the effort.
func (e Effort) String() string {
	return string(e)
}

// IsValid returns true if the effort is a supported value.
func (e Effort) IsValid() bool {
	switch e {
	case EffortLow, EffortMedium, EffortHigh:
		return true
	default:
		return false
	}
}

// Source identifies the stage that produced a recommendation.
type Source string

const (
	SourceRule  Source = "rule"
	SourceTrend Source = "trend"
)

// Kind is the closed set of subjects a recommendation can address. It is set
// by the producing rule, or inferred with KindFromTitle for recommendations
// supplied without one, and drives all downstream behavior that depends on
// what a recommendation is about.
type Kind string

const (
	KindCPU                  Kind = "cpu"
	KindMemory               Kind = "memory"
	KindBatchBacklog         Kind = "batch-backlog"
	KindActiveSessions       Kind = "active-sessions"
	KindDatabaseResponse     Kind = "database-response"
	KindAOSConnections       Kind = "aos-connections"
	KindComPlusRecycle       Kind = "complus-recycle"
	KindAutoUpdateStatistics Kind = "auto-update-statistics"
	KindBackupFrequency      Kind = "backup-frequency"
	KindBatchThreads         Kind = "batch-threads"

	// KindDatabase and KindPerformance cover titles from outside this
	// process that name a subsystem but no specific rule.
	KindDatabase    Kind = "database"
	KindPerformance Kind = "performance"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// SupportedKinds returns all kinds.
func SupportedKinds() []Kind {
	return []Kind{
		KindCPU, KindMemory, KindBatchBacklog, KindActiveSessions, KindDatabaseResponse,
		KindAOSConnections, KindComPlusRecycle, KindAutoUpdateStatistics, KindBackupFrequency, KindBatchThreads,
		KindDatabase, KindPerformance,
	}
}

// IsValid returns true if the kind is a supported value.
func (k Kind) IsValid() bool {
	for _, s := range SupportedKinds() {
		if k == s {
			return true
		}
	}
	return false
}

// IsBatchJob reports whether the recommendation touches batch job scheduling.
func (k Kind) IsBatchJob() bool {
	return k == KindBatchBacklog
}

// IsBatch reports whether the recommendation concerns the batch processor.
func (k Kind) IsBatch() bool {
	return k == KindBatchBacklog || k == KindBatchThreads
}

// IsDatabase reports whether the recommendation concerns the database tier.
func (k Kind) IsDatabase() bool {
	switch k {
	case KindDatabaseResponse, KindAutoUpdateStatistics, KindBackupFrequency, KindDatabase:
		return true
	default:
		return false
	}
}

// IsPerformanceSensitive reports whether the outcome of the recommendation is
// judged by performance readings and so should wait for configuration fixes.
func (k Kind) IsPerformanceSensitive() bool {
	switch k {
	case KindCPU, KindMemory, KindDatabaseResponse, KindPerformance:
		return true
	default:
		return false
	}
}

// titleKinds maps title keywords to kinds. Earlier entries win, so the more
// specific keywords come first.
var titleKinds = []struct {
	keywords []string
	kind     Kind
}{
	{[]string{"auto-update statistics"}, KindAutoUpdateStatistics},
	{[]string{"auto update statistics"}, KindAutoUpdateStatistics},
	{[]string{"backup"}, KindBackupFrequency},
	{[]string{"com+"}, KindComPlusRecycle},
	{[]string{"aos", "connection"}, KindAOSConnections},
	{[]string{"batch", "thread"}, KindBatchThreads},
	{[]string{"batch"}, KindBatchBacklog},
	{[]string{"cpu"}, KindCPU},
	{[]string{"memory"}, KindMemory},
	{[]string{"session"}, KindActiveSessions},
	{[]string{"database", "performance"}, KindDatabaseResponse},
	{[]string{"database", "response"}, KindDatabaseResponse},
	{[]string{"database"}, KindDatabase},
	{[]string{"performance"}, KindPerformance},
}

// KindFromTitle infers the kind of a recommendation that arrived without
// one. Matching is case-insensitive. Titles with no known keyword yield an
// empty kind.
func KindFromTitle(title string) Kind {
	t := strings.ToLower(title)
	for _, tk := range titleKinds {
		matched := true
		for _, k := range tk.keywords {
			if !strings.Contains(t, k) {
				matched = false
				break
			}
		}
		if matched {
			return tk.kind
		}
	}
	return ""
}
