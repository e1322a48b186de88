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
	"strconv"
	"strings"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// TableHeader implements serializer.Tabular.
func (r *EvaluationResult) TableHeader() []string {
	return []string{"#", "PRIORITY", "CATEGORY", "TITLE", "CONFIDENCE", "EFFORT"}
}

// TableRows implements serializer.Tabular. An envelope without
// recommendations renders its status and message.
func (r *EvaluationResult) TableRows() [][]string {
	if len(r.Recommendations) == 0 {
		return [][]string{{"-", string(r.Status), "-", r.Message, formatScore(r.ConfidenceScore), "-"}}
	}
	rows := make([][]string, 0, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Priority.String(),
			rec.Category.String(),
			rec.Title,
			formatScore(rec.Confidence),
			rec.Effort.String(),
		})
	}
	return rows
}

// TableHeader implements serializer.Tabular.
func (r *PlanResult) TableHeader() []string {
	return []string{"PHASE", "START", "PRIORITY", "TITLE", "WINDOW", "DEPENDS ON"}
}

// TableRows implements serializer.Tabular. Rows follow the action plan order.
func (r *PlanResult) TableRows() [][]string {
	if len(r.ActionPlan) == 0 {
		return [][]string{{"-", "-", string(r.Status), r.Message, "-", "-"}}
	}

	phaseOf := make(map[string][2]string, len(r.ActionPlan))
	for _, p := range r.Timeline.Phases {
		for _, it := range p.Items {
			phaseOf[it.ID] = [2]string{strconv.Itoa(p.Number), p.StartDate}
		}
	}

	rows := make([][]string, 0, len(r.ActionPlan))
	for _, it := range r.ActionPlan {
		ph, ok := phaseOf[it.ID]
		if !ok {
			ph = [2]string{"-", "-"}
		}
		deps := "-"
		if len(it.Dependencies) > 0 {
			deps = strings.Join(shortIDs(it.Dependencies), ",")
		}
		rows = append(rows, []string{
			ph[0],
			ph[1],
			it.Priority.String(),
			it.Title,
			it.SuggestedWindow,
			deps,
		})
	}
	return rows
}

// TableHeader implements serializer.Tabular.
func (c *RuleCatalog) TableHeader() []string {
	return []string{"NAME", "CATEGORY", "PRIORITY", "CONFIDENCE", "CONDITION"}
}

// TableRows implements serializer.Tabular.
func (c *RuleCatalog) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		rows = append(rows, []string{
			r.Name,
			r.Category.String(),
			r.Priority.String(),
			formatScore(r.Confidence),
			r.Condition,
		})
	}
	return rows
}

// shortIDs trims UUIDs to their first group for display.
func shortIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if head, _, ok := strings.Cut(id, "-"); ok {
			id = head
		}
		out[i] = id
	}
	return out
}
