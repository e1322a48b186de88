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

package planner

import (
	"log/slog"
	"time"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

// Suggested implementation windows.
const (
	WindowChange   = "approved change window"
	WindowBatch    = "low batch activity period"
	WindowDatabase = "database maintenance window"
	WindowOffHours = "after hours or weekends"
)

// DefaultSpacing is the distance between timeline phases.
const DefaultSpacing = 7 * 24 * time.Hour

// MaxSpacingDays caps the distance between timeline phases.
const MaxSpacingDays = 365

const (
	planDateLayout = "2006-01-02"
	hoursPerDay    = 24
)

// Item is one scheduled step of an action plan.
type Item struct {
	recommendation.Recommendation `json:",inline" yaml:",inline"`

	// Dependencies holds the ids of items that must be completed first.
	Dependencies        []string `json:"dependencies" yaml:"dependencies"`
	CanStartImmediately bool     `json:"canStartImmediately" yaml:"canStartImmediately"`
	SuggestedWindow     string   `json:"suggestedWindow" yaml:"suggestedWindow"`
	ImplementationSteps []string `json:"implementationSteps" yaml:"implementationSteps"`
}

// Plan is the ordered result of BuildPlan.
type Plan struct {
	Items    []Item         `json:"items" yaml:"items"`
	Warnings []CycleWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Timeline Timeline       `json:"timeline" yaml:"timeline"`
}

// Option is a functional option for configuring Planner instances.
type Option func(*Planner)

// WithClock sets the source of the run date used for timeline placeholders.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

// WithPhaseSpacing sets the default distance between timeline phases.
func WithPhaseSpacing(d time.Duration) Option {
	return func(p *Planner) {
		if d > 0 {
			p.spacing = d
		}
	}
}

// Planner turns recommendations into an ordered action plan.
// It holds no mutable state and is safe for concurrent use.
type Planner struct {
	now     func() time.Time
	spacing time.Duration
}

// New returns a Planner with the given options applied.
func New(opts ...Option) *Planner {
	p := &Planner{
		now:     time.Now,
		spacing: DefaultSpacing,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildPlan keeps Critical, High and Medium recommendations, derives their
// dependencies and returns them in dependency order with a phased timeline.
// The run date is read once per call.
func (p *Planner) BuildPlan(recs []recommendation.Recommendation, constraints snapshot.BusinessConstraints) *Plan {
	runAt := p.now()

	spacing := p.spacing
	if days, ok := constraints.PositiveInt(snapshot.ConstraintPhaseSpacingDays); ok {
		if days > MaxSpacingDays {
			slog.Warn("phase spacing capped",
				"requested", days,
				"max", MaxSpacingDays)
			days = MaxSpacingDays
		}
		spacing = time.Duration(days) * hoursPerDay * time.Hour
	}

	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		if !Actionable(r.Priority) {
			continue
		}
		items = append(items, Item{
			Recommendation:      r,
			Dependencies:        []string{},
			SuggestedWindow:     SuggestedWindow(r),
			ImplementationSteps: ImplementationSteps(r),
		})
	}

	linkDependencies(items)

	ordered, warnings := Order(items)
	plan := &Plan{
		Items:    ordered,
		Warnings: warnings,
		Timeline: BuildTimeline(ordered, runAt, spacing),
	}

	slog.Debug("action plan built",
		"input", len(recs),
		"items", len(plan.Items),
		"phases", len(plan.Timeline.Phases),
		"warnings", len(plan.Warnings))

	return plan
}

// Actionable reports whether a priority is high enough to be planned.
func Actionable(p recommendation.Priority) bool {
	switch p {
	case recommendation.PriorityCritical, recommendation.PriorityHigh, recommendation.PriorityMedium:
		return true
	default:
		return false
	}
}

// SuggestedWindow picks when a change should be made. Configuration changes
// always go through the change window; batch and database work is placed in
// the quiet period of the affected subsystem.
func SuggestedWindow(r recommendation.Recommendation) string {
	switch {
	case r.Category == recommendation.CategoryConfiguration:
		return WindowChange
	case r.Kind.IsBatch():
		return WindowBatch
	case r.Kind.IsDatabase():
		return WindowDatabase
	default:
		return WindowOffHours
	}
}

type stepKey struct {
	category recommendation.Category
	kind     recommendation.Kind
}

var checklists = map[stepKey][]string{
	{recommendation.CategoryPerformance, recommendation.KindCPU}: {
		"Identify the AOS instances and processes with the highest CPU time",
		"Review batch jobs and scheduled tasks that overlap with peak usage",
		"Rebalance load across AOS instances or add capacity",
		"Monitor CPU utilization for one week after the change",
	},
	{recommendation.CategoryPerformance, recommendation.KindMemory}: {
		"Capture memory usage per AOS instance and client session",
		"Check for long running sessions and oversized caches",
		"Increase available memory or tune cache limits",
		"Monitor memory utilization for one week after the change",
	},
	{recommendation.CategoryOperations, recommendation.KindBatchBacklog}: {
		"List waiting batch jobs by batch group and priority",
		"Cancel or reschedule obsolete and duplicate jobs",
		"Add batch server capacity or raise batch thread limits",
		"Confirm the backlog drains during the next batch window",
	},
	{recommendation.CategoryConfiguration, recommendation.KindAutoUpdateStatistics}: {
		"Schedule the change with the database administrator",
		"Enable auto-update statistics on the AOS database",
		"Run a full statistics update once after enabling",
		"Compare query response times before and after the change",
	},
}

// ImplementationSteps returns the checklist for the recommendation's category
// and kind. Combinations without a checklist yield an empty list.
func ImplementationSteps(r recommendation.Recommendation) []string {
	steps, ok := checklists[stepKey{r.Category, r.Kind}]
	if !ok {
		return []string{}
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// linkDependencies makes every non-critical performance-sensitive item depend
// on every high priority configuration item in the same batch.
func linkDependencies(items []Item) {
	var gates []string
	for _, it := range items {
		if it.Category == recommendation.CategoryConfiguration && it.Priority == recommendation.PriorityHigh {
			gates = append(gates, it.ID)
		}
	}
	if len(gates) == 0 {
		for i := range items {
			items[i].CanStartImmediately = true
		}
		return
	}

	for i := range items {
		it := &items[i]
		if it.Kind.IsPerformanceSensitive() && it.Priority != recommendation.PriorityCritical {
			for _, id := range gates {
				if id != it.ID {
					it.Dependencies = append(it.Dependencies, id)
				}
			}
		}
		it.CanStartImmediately = len(it.Dependencies) == 0
	}
}
