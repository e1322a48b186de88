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

import "time"

// Phase groups items that can run once every earlier phase is complete.
type Phase struct {
	Number    int         `json:"phase" yaml:"phase"`
	StartDate string      `json:"startDate" yaml:"startDate"`
	Items     []PhaseItem `json:"items" yaml:"items"`
}

// PhaseItem identifies a plan item inside a phase.
type PhaseItem struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Window string `json:"suggestedWindow" yaml:"suggestedWindow"`
}

// Timeline holds placeholder dates for the plan. Dates are relative to the
// run date and are not a commitment.
type Timeline struct {
	RunDate             string  `json:"runDate" yaml:"runDate"`
	PhaseSpacingDays    int     `json:"phaseSpacingDays" yaml:"phaseSpacingDays"`
	EstimatedCompletion string  `json:"estimatedCompletion,omitempty" yaml:"estimatedCompletion,omitempty"`
	Phases              []Phase `json:"phases" yaml:"phases"`
}

// BuildTimeline assigns each item to a phase by dependency depth: items
// without dependencies are in phase 1, all others one phase after their
// deepest dependency. Items must already be in dependency order. Spacing is
// rounded down to whole days, at least one and at most MaxSpacingDays.
func BuildTimeline(items []Item, runAt time.Time, spacing time.Duration) Timeline {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	days := min(max(int(spacing/(hoursPerDay*time.Hour)), 1), MaxSpacingDays)
	start := runAt.UTC()

	tl := Timeline{
		RunDate:          start.Format(planDateLayout),
		PhaseSpacingDays: days,
		Phases:           []Phase{},
	}
	if len(items) == 0 {
		return tl
	}

	depth := make(map[string]int, len(items))
	for _, it := range items {
		d := 1
		for _, dep := range it.Dependencies {
			if pd, ok := depth[dep]; ok && pd+1 > d {
				d = pd + 1
			}
		}
		depth[it.ID] = d

		for len(tl.Phases) < d {
			n := len(tl.Phases) + 1
			tl.Phases = append(tl.Phases, Phase{
				Number:    n,
				StartDate: start.AddDate(0, 0, (n-1)*days).Format(planDateLayout),
				Items:     []PhaseItem{},
			})
		}
		tl.Phases[d-1].Items = append(tl.Phases[d-1].Items, PhaseItem{
			ID:     it.ID,
			Title:  it.Title,
			Window: it.SuggestedWindow,
		})
	}

	tl.EstimatedCompletion = start.AddDate(0, 0, len(tl.Phases)*days).Format(planDateLayout)
	return tl
}
