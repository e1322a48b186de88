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

// Package planner turns prioritized recommendations into an ordered action plan.
//
// BuildPlan keeps Critical, High and Medium recommendations and wraps each in
// an Item with a suggested window and an implementation checklist. Performance
// items that are not Critical depend on every High priority Configuration item,
// so configuration is fixed before performance is judged.
//
// Order sorts items so that dependencies come first. A dependency that would
// close a cycle is dropped and reported as a CycleWarning; the plan is still
// produced and every item appears exactly once.
//
// Usage:
//
//	p := planner.New(planner.WithPhaseSpacing(14 * 24 * time.Hour))
//	plan := p.BuildPlan(recs, snapshot.BusinessConstraints{"phaseSpacingDays": 7})
//	for _, it := range plan.Items {
//	    fmt.Println(it.Title, it.SuggestedWindow, it.Dependencies)
//	}
package planner
