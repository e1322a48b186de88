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

// Package prioritizer orders recommendations and summarizes the result.
package prioritizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
)

// TopN is the number of recommendations surfaced as priority items.
const TopN = 5

// CategoryCount is one entry of the category histogram.
type CategoryCount struct {
	Category recommendation.Category `json:"category" yaml:"category"`
	Count    int                     `json:"count" yaml:"count"`
}

// Summary aggregates a recommendation set.
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	CriticalHigh int `json:"criticalOrHigh" yaml:"criticalOrHigh"`
	Medium       int `json:"medium" yaml:"medium"`
	Low          int `json:"low" yaml:"low"`
	// Categories lists counts in the order each category first appears.
	Categories []CategoryCount `json:"categories,omitempty" yaml:"categories,omitempty"`
	// CategoryBreakdown renders Categories as "Category: count" pairs joined by ", ".
	CategoryBreakdown string `json:"categoryBreakdown" yaml:"categoryBreakdown"`
}

// Prioritized is the output of Prioritize.
type Prioritized struct {
	Sorted  []recommendation.Recommendation
	Top     []recommendation.Recommendation
	Summary Summary
}

// Prioritize sorts by priority rank, then confidence, both descending.
// Ties keep input order. The input slice is not modified. The summary is
// taken over the sorted list, so categories appear in priority order.
func Prioritize(recs []recommendation.Recommendation) Prioritized {
	sorted := recommendation.Clone(recs)
	if sorted == nil {
		sorted = []recommendation.Recommendation{}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	n := min(TopN, len(sorted))
	top := make([]recommendation.Recommendation, n)
	copy(top, sorted[:n])

	return Prioritized{
		Sorted:  sorted,
		Top:     top,
		Summary: Summarize(sorted),
	}
}

// Summarize counts recommendations by priority band and category.
func Summarize(recs []recommendation.Recommendation) Summary {
	s := Summary{Total: len(recs)}
	index := make(map[recommendation.Category]int)

	for _, r := range recs {
		switch r.Priority {
		case recommendation.PriorityCritical, recommendation.PriorityHigh:
			s.CriticalHigh++
		case recommendation.PriorityMedium:
			s.Medium++
		case recommendation.PriorityLow:
			s.Low++
		}

		i, seen := index[r.Category]
		if !seen {
			i = len(s.Categories)
			index[r.Category] = i
			s.Categories = append(s.Categories, CategoryCount{Category: r.Category})
		}
		s.Categories[i].Count++
	}

	parts := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Category, c.Count))
	}
	s.CategoryBreakdown = strings.Join(parts, ", ")
	return s
}
