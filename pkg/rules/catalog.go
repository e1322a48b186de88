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
	"math"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

// Input is the data a rule may read.
type Input struct {
	Metrics *snapshot.MetricsSnapshot
	Config  *snapshot.ConfigurationSnapshot
}

// Rule is a pure predicate/action pair. A rule reads only its own input
// field and never the output of another rule.
type Rule struct {
	Name       string
	Kind       recommendation.Kind
	Category   recommendation.Category
	Priority   recommendation.Priority
	Confidence float64
	Effort     recommendation.Effort
	// Field is the input path the rule reads, e.g. "cpuAvg" or "database.backup-frequency-hours".
	Field string
	// Condition renders the trigger for the given thresholds, e.g. "cpuAvg > 80".
	Condition func(t Thresholds) string

	check func(in Input, t Thresholds) (*text, error)
}

type text struct {
	description string
	action      string
	impact      string
	rationale   string
}

// Apply evaluates the rule. It returns nil without error when the rule does
// not fire or its input is absent, and a validation error when the input is
// present but malformed.
func (r Rule) Apply(in Input, t Thresholds) (*recommendation.Recommendation, error) {
	txt, err := r.check(in, t)
	if err != nil || txt == nil {
		return nil, err
	}
	rec := recommendation.New(recommendation.Template{
		Kind:           r.Kind,
		Source:         recommendation.SourceRule,
		Category:       r.Category,
		Priority:       r.Priority,
		Title:          r.Name,
		Description:    txt.description,
		Recommendation: txt.action,
		Impact:         txt.impact,
		Rationale:      txt.rationale,
		Confidence:     r.Confidence,
		Effort:         r.Effort,
	})
	return &rec, nil
}

// Catalog returns the built-in rules in evaluation order.
func Catalog() []Rule {
	return []Rule{
		{
			Name: "High CPU Utilization", Kind: recommendation.KindCPU,
			Category: recommendation.CategoryPerformance, Priority: recommendation.PriorityHigh,
			Confidence: 0.90, Effort: recommendation.EffortMedium,
			Field:     snapshot.MetricCPUAvg,
			Condition: func(t Thresholds) string { return fmt.Sprintf("cpuAvg > %g", t.CPUPercent) },
			check: func(in Input, t Thresholds) (*text, error) {
				v, ok, err := metric(in, snapshot.MetricCPUAvg)
				if !ok || v <= t.CPUPercent {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("Average CPU utilization is %.1f%%, above the %g%% threshold.", v, t.CPUPercent),
					action:      "Redistribute interactive and batch load across AOS instances, or add CPU capacity to the busiest servers.",
					impact:      "Lower CPU pressure shortens response times for interactive users and batch jobs.",
					rationale:   "Sustained CPU saturation leaves no headroom for peak load and queues user requests.",
				}, nil
			},
		},
		{
			Name: "High Memory Utilization", Kind: recommendation.KindMemory,
			Category: recommendation.CategoryPerformance, Priority: recommendation.PriorityHigh,
			Confidence: 0.85, Effort: recommendation.EffortMedium,
			Field:     snapshot.MetricMemoryAvg,
			Condition: func(t Thresholds) string { return fmt.Sprintf("memoryAvg > %g", t.MemoryPercent) },
			check: func(in Input, t Thresholds) (*text, error) {
				v, ok, err := metric(in, snapshot.MetricMemoryAvg)
				if !ok || v <= t.MemoryPercent {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("Average memory utilization is %.1f%%, above the %g%% threshold.", v, t.MemoryPercent),
					action:      "Review AOS cache sizes and long-running sessions, and add memory to servers that page under load.",
					impact:      "Reducing memory pressure avoids paging and out-of-memory restarts.",
					rationale:   "Memory above this level commonly precedes paging and degraded throughput.",
				}, nil
			},
		},
		{
			Name: "Batch Job Backlog", Kind: recommendation.KindBatchBacklog,
			Category: recommendation.CategoryOperations, Priority: recommendation.PriorityHigh,
			Confidence: 0.80, Effort: recommendation.EffortLow,
			Field:     snapshot.MetricBatchBacklog,
			Condition: func(t Thresholds) string { return fmt.Sprintf("batchBacklog > %g", t.BatchBacklog) },
			check: func(in Input, t Thresholds) (*text, error) {
				v, ok, err := metric(in, snapshot.MetricBatchBacklog)
				if !ok || v <= t.BatchBacklog {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("%g batch jobs are waiting, above the backlog threshold of %g.", v, t.BatchBacklog),
					action:      "Reschedule non-urgent batch jobs outside business hours and review batch group assignments.",
					impact:      "Clearing the backlog restores timely completion of posting, settlement and reporting jobs.",
					rationale:   "A growing queue means jobs arrive faster than the batch servers can process them.",
				}, nil
			},
		},
		{
			Name: "High Active Session Count", Kind: recommendation.KindActiveSessions,
			Category: recommendation.CategoryOperations, Priority: recommendation.PriorityMedium,
			Confidence: 0.70, Effort: recommendation.EffortMedium,
			Field:     snapshot.MetricActiveSessions,
			Condition: func(t Thresholds) string { return fmt.Sprintf("activeSessions > %g", t.ActiveSessions) },
			check: func(in Input, t Thresholds) (*text, error) {
				v, ok, err := metric(in, snapshot.MetricActiveSessions)
				if !ok || v <= t.ActiveSessions {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("%g sessions are active, above the threshold of %g.", v, t.ActiveSessions),
					action:      "Enable session timeouts for idle clients and balance new sessions across AOS instances.",
					impact:      "Fewer idle sessions free AOS memory and connection slots for active users.",
					rationale:   "Session counts above this level increase per-server memory and lock contention.",
				}, nil
			},
		},
		{
			Name: "Database Performance Degradation", Kind: recommendation.KindDatabaseResponse,
			Category: recommendation.CategoryPerformance, Priority: recommendation.PriorityHigh,
			Confidence: 0.85, Effort: recommendation.EffortHigh,
			Field:     snapshot.MetricDBResponseAvgMs,
			Condition: func(t Thresholds) string { return fmt.Sprintf("dbResponseAvgMs > %g", t.DBResponseMs) },
			check: func(in Input, t Thresholds) (*text, error) {
				v, ok, err := metric(in, snapshot.MetricDBResponseAvgMs)
				if !ok || v <= t.DBResponseMs {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("Average database response time is %.0f ms, above the %g ms threshold.", v, t.DBResponseMs),
					action:      "Analyze the slowest queries, rebuild fragmented indexes and review blocking on the busiest tables.",
					impact:      "Faster database responses improve every form, report and batch job that reads data.",
					rationale:   "Database latency is multiplied across all AOS round trips.",
				}, nil
			},
		},
		{
			Name: "Increase AOS Max Connections", Kind: recommendation.KindAOSConnections,
			Category: recommendation.CategoryConfiguration, Priority: recommendation.PriorityMedium,
			Confidence: 0.75, Effort: recommendation.EffortLow,
			Field:     fieldPath(snapshot.SubsystemApplicationServer, "max-connections"),
			Condition: func(t Thresholds) string { return fmt.Sprintf("max-connections < %d", t.MinMaxConnections) },
			check: func(in Input, t Thresholds) (*text, error) {
				as, err := applicationServer(in)
				if as == nil {
					return nil, err
				}
				n, ok, err := setting(fieldPath(snapshot.SubsystemApplicationServer, "max-connections"), as.MaxConnections)
				if !ok || n >= t.MinMaxConnections {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("AOS max-connections is %d, below the recommended minimum of %d.", n, t.MinMaxConnections),
					action:      fmt.Sprintf("Raise the AOS max-connections setting to at least %d.", t.MinMaxConnections),
					impact:      "More connection slots prevent clients from queuing at login during peaks.",
					rationale:   "A low connection ceiling rejects or delays sessions before CPU or memory are exhausted.",
				}, nil
			},
		},
		{
			Name: "Reduce COM+ Recycle Interval", Kind: recommendation.KindComPlusRecycle,
			Category: recommendation.CategoryConfiguration, Priority: recommendation.PriorityLow,
			Confidence: 0.60, Effort: recommendation.EffortLow,
			Field:     fieldPath(snapshot.SubsystemApplicationServer, "complus-recycle-minutes"),
			Condition: func(t Thresholds) string {
				return fmt.Sprintf("complus-recycle-minutes > %d", t.MaxComPlusRecycleMinutes)
			},
			check: func(in Input, t Thresholds) (*text, error) {
				as, err := applicationServer(in)
				if as == nil {
					return nil, err
				}
				n, ok, err := setting(fieldPath(snapshot.SubsystemApplicationServer, "complus-recycle-minutes"), as.ComPlusRecycleMinutes)
				if !ok || n <= t.MaxComPlusRecycleMinutes {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("COM+ components are recycled every %d minutes, longer than %d minutes.", n, t.MaxComPlusRecycleMinutes),
					action:      fmt.Sprintf("Set the COM+ recycle interval to %d minutes or less.", t.MaxComPlusRecycleMinutes),
					impact:      "Regular recycling releases leaked memory and handles in business connector components.",
					rationale:   "Long-lived COM+ processes accumulate leaks that surface as gradual slowdowns.",
				}, nil
			},
		},
		{
			Name: "Enable Database Auto-Update Statistics", Kind: recommendation.KindAutoUpdateStatistics,
			Category: recommendation.CategoryConfiguration, Priority: recommendation.PriorityHigh,
			Confidence: 0.90, Effort: recommendation.EffortLow,
			Field:     fieldPath(snapshot.SubsystemDatabase, "auto-update-statistics"),
			Condition: func(Thresholds) string { return "auto-update-statistics == false" },
			check: func(in Input, _ Thresholds) (*text, error) {
				db, err := database(in)
				if db == nil {
					return nil, err
				}
				on, ok, err := setting(fieldPath(snapshot.SubsystemDatabase, "auto-update-statistics"), db.AutoUpdateStatistics)
				if !ok || on {
					return nil, err
				}
				return &text{
					description: "Automatic statistics updates are disabled on the application database.",
					action:      "Enable AUTO_UPDATE_STATISTICS on the application database.",
					impact:      "Current statistics let the optimizer choose efficient plans as data volumes change.",
					rationale:   "Stale statistics are a common cause of sudden query plan regressions.",
				}, nil
			},
		},
		{
			Name: "Increase Database Backup Frequency", Kind: recommendation.KindBackupFrequency,
			Category: recommendation.CategoryConfiguration, Priority: recommendation.PriorityMedium,
			Confidence: 0.80, Effort: recommendation.EffortMedium,
			Field:     fieldPath(snapshot.SubsystemDatabase, "backup-frequency-hours"),
			Condition: func(t Thresholds) string {
				return fmt.Sprintf("backup-frequency-hours > %d", t.MaxBackupFrequencyHours)
			},
			check: func(in Input, t Thresholds) (*text, error) {
				db, err := database(in)
				if db == nil {
					return nil, err
				}
				h, ok, err := setting(fieldPath(snapshot.SubsystemDatabase, "backup-frequency-hours"), db.BackupFrequencyHours)
				if !ok || h <= t.MaxBackupFrequencyHours {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("Database backups run every %d hours, less often than every %d hours.", h, t.MaxBackupFrequencyHours),
					action:      fmt.Sprintf("Schedule backups at least every %d hours and add transaction log backups in between.", t.MaxBackupFrequencyHours),
					impact:      "More frequent backups reduce the data lost in a restore.",
					rationale:   "The backup interval bounds the recovery point objective.",
				}, nil
			},
		},
		{
			Name: "Increase Batch Max Threads", Kind: recommendation.KindBatchThreads,
			Category: recommendation.CategoryConfiguration, Priority: recommendation.PriorityMedium,
			Confidence: 0.70, Effort: recommendation.EffortLow,
			Field:     fieldPath(snapshot.SubsystemBatchProcessor, "max-threads"),
			Condition: func(t Thresholds) string { return fmt.Sprintf("max-threads < %d", t.MinBatchThreads) },
			check: func(in Input, t Thresholds) (*text, error) {
				bp, err := batchProcessor(in)
				if bp == nil {
					return nil, err
				}
				n, ok, err := setting(fieldPath(snapshot.SubsystemBatchProcessor, "max-threads"), bp.MaxThreads)
				if !ok || n >= t.MinBatchThreads {
					return nil, err
				}
				return &text{
					description: fmt.Sprintf("The batch processor runs %d threads, below the recommended minimum of %d.", n, t.MinBatchThreads),
					action:      fmt.Sprintf("Raise batch max-threads to at least %d on servers with spare CPU.", t.MinBatchThreads),
					impact:      "More batch threads let independent jobs run in parallel.",
					rationale:   "Too few threads serialize batch work regardless of available capacity.",
				}, nil
			},
		},
	}
}

func fieldPath(subsystem, key string) string {
	return subsystem + "." + key
}

// metric returns a usable reading. Absent readings are not an error.
func metric(in Input, name string) (float64, bool, error) {
	val := in.Metrics.Get(name)
	v, state := val.Get()
	switch state {
	case snapshot.Absent:
		return 0, false, nil
	case snapshot.Invalid:
		return 0, false, apperrors.Validation(name, fmt.Sprintf("%s must be a number, got %s", name, val.Raw()))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false, apperrors.Validation(name, fmt.Sprintf("%s must be a non-negative number, got %v", name, v))
	}
	return v, true, nil
}

func setting[T int | bool](field string, val snapshot.Value[T]) (T, bool, error) {
	v, state := val.Get()
	switch state {
	case snapshot.Absent:
		return v, false, nil
	case snapshot.Invalid:
		return v, false, apperrors.Validation(field, fmt.Sprintf("%s has an unexpected value %s", field, val.Raw()))
	}
	if n, isInt := any(v).(int); isInt && n < 0 {
		return v, false, apperrors.Validation(field, fmt.Sprintf("%s must not be negative, got %d", field, n))
	}
	return v, true, nil
}

func subsystemErr(in Input, name string) error {
	if in.Config.SubsystemState(name) == snapshot.Invalid {
		return apperrors.Validation(name, fmt.Sprintf("subsystem %s must be a mapping of settings", name))
	}
	return nil
}

func applicationServer(in Input) (*snapshot.ApplicationServerConfig, error) {
	if in.Config == nil || in.Config.ApplicationServer == nil {
		return nil, subsystemErr(in, snapshot.SubsystemApplicationServer)
	}
	return in.Config.ApplicationServer, nil
}

func database(in Input) (*snapshot.DatabaseConfig, error) {
	if in.Config == nil || in.Config.Database == nil {
		return nil, subsystemErr(in, snapshot.SubsystemDatabase)
	}
	return in.Config.Database, nil
}

func batchProcessor(in Input) (*snapshot.BatchProcessorConfig, error) {
	if in.Config == nil || in.Config.BatchProcessor == nil {
		return nil, subsystemErr(in, snapshot.SubsystemBatchProcessor)
	}
	return in.Config.BatchProcessor, nil
}
