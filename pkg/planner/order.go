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
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
)

// CycleWarning reports a dependency edge dropped to break a cycle.
type CycleWarning struct {
	// From is the item whose dependency was dropped.
	From string `json:"from" yaml:"from"`
	// To is the dependency that closed the cycle.
	To string `json:"to" yaml:"to"`
	// Path lists the ids along the cycle, starting and ending with To.
	Path    []string `json:"path" yaml:"path"`
	Message string   `json:"message" yaml:"message"`
}

// Err returns the warning as a structured error.
func (w CycleWarning) Err() error {
	return apperrors.NewWithContext(apperrors.ErrCodeCycleDetected, w.Message,
		map[string]any{"from": w.From, "to": w.To})
}

type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

type frame struct {
	node int
	next int
}

// Order returns items in dependency order: every retained dependency of an
// item appears before it. Roots are visited in input order and dependencies
// in declared order. An edge that closes a cycle is dropped from the emitted
// item and reported; unknown and duplicate dependency ids are dropped
// silently. Each item is emitted exactly once. The input is not modified.
//
// The traversal is an iterative depth-first search with an explicit stack,
// running in O(n + e).
func Order(items []Item) ([]Item, []CycleWarning) {
	index := make(map[string]int, len(items))
	for i, it := range items {
		if _, dup := index[it.ID]; dup {
			slog.Warn("duplicate plan item id, later item ignored for dependency lookup", "id", it.ID)
			continue
		}
		index[it.ID] = i
	}

	marks := make([]mark, len(items))
	stackPos := make([]int, len(items))
	kept := make([][]string, len(items))
	out := make([]Item, 0, len(items))
	var warnings []CycleWarning

	for root := range items {
		if marks[root] != unvisited {
			continue
		}
		stack := []frame{{node: root}}
		marks[root] = inProgress
		stackPos[root] = 0

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := items[top.node].Dependencies

			if top.next >= len(deps) {
				stack = stack[:len(stack)-1]
				marks[top.node] = done
				it := items[top.node]
				it.Dependencies = kept[top.node]
				if it.Dependencies == nil {
					it.Dependencies = []string{}
				}
				it.CanStartImmediately = len(it.Dependencies) == 0
				out = append(out, it)
				continue
			}

			depID := deps[top.next]
			top.next++

			dep, known := index[depID]
			if !known {
				slog.Debug("unknown dependency dropped", "item", items[top.node].ID, "dependency", depID)
				continue
			}
			if contains(kept[top.node], depID) {
				continue
			}

			switch marks[dep] {
			case unvisited:
				kept[top.node] = append(kept[top.node], depID)
				marks[dep] = inProgress
				stackPos[dep] = len(stack)
				stack = append(stack, frame{node: dep})
			case inProgress:
				w := cycleWarning(items, stack[stackPos[dep]:], dep)
				planCycles.Inc()
				slog.Warn("dependency cycle detected", "from", w.From, "to", w.To, "path", strings.Join(w.Path, " -> "))
				warnings = append(warnings, w)
			case done:
				kept[top.node] = append(kept[top.node], depID)
			}
		}
	}

	return out, warnings
}

func cycleWarning(items []Item, cycle []frame, dep int) CycleWarning {
	path := make([]string, 0, len(cycle)+1)
	for _, f := range cycle {
		path = append(path, items[f.node].ID)
	}
	path = append(path, items[dep].ID)

	from := items[cycle[len(cycle)-1].node].ID
	to := items[dep].ID
	return CycleWarning{
		From: from,
		To:   to,
		Path: path,
		Message: fmt.Sprintf("dependency cycle %s; dropped dependency of %s on %s",
			strings.Join(path, " -> "), from, to),
	}
}

func contains(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
