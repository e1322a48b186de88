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
	"github.com/NVIDIA/aos-advisor/pkg/header"
	"github.com/NVIDIA/aos-advisor/pkg/impact"
	"github.com/NVIDIA/aos-advisor/pkg/planner"
	"github.com/NVIDIA/aos-advisor/pkg/prioritizer"
	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"github.com/NVIDIA/aos-advisor/pkg/trend"
)

// Status is the outcome of an advisor call.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// EvaluationRequest carries the inputs of one evaluation. Every part is
// optional; missing parts disable the rules that need them.
type EvaluationRequest struct {
	header.Header `json:",inline" yaml:",inline"`

	Metrics       *snapshot.MetricsSnapshot       `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	History       snapshot.HistoricalSeries       `json:"history,omitempty" yaml:"history,omitempty"`
	Configuration *snapshot.ConfigurationSnapshot `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Context       *snapshot.BusinessContext       `json:"context,omitempty" yaml:"context,omitempty"`
}

// EvaluationResult is the envelope returned by Evaluate.
type EvaluationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Status          Status  `json:"status" yaml:"status"`
	Message         string  `json:"message" yaml:"message"`
	ConfidenceScore float64 `json:"confidenceScore" yaml:"confidenceScore"`

	// Recommendations holds every recommendation in priority order.
	Recommendations []recommendation.Recommendation `json:"recommendations" yaml:"recommendations"`

	// PriorityRecommendations holds the first prioritizer.TopN recommendations.
	PriorityRecommendations []recommendation.Recommendation `json:"priorityRecommendations" yaml:"priorityRecommendations"`

	Summary     prioritizer.Summary         `json:"summary" yaml:"summary"`
	Trends      []trend.Change              `json:"trends,omitempty" yaml:"trends,omitempty"`
	Diagnostics []recommendation.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// PlanRequest carries the inputs of one planning call.
type PlanRequest struct {
	header.Header `json:",inline" yaml:",inline"`

	Recommendations []recommendation.Recommendation `json:"recommendations" yaml:"recommendations"`
	Constraints     snapshot.BusinessConstraints    `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	// SystemState is the current metrics snapshot used to judge risk.
	SystemState *snapshot.MetricsSnapshot `json:"systemState,omitempty" yaml:"systemState,omitempty"`

	// WithImpact adds impact assessments to the result.
	WithImpact bool `json:"withImpact,omitempty" yaml:"withImpact,omitempty"`
}

// PlanResult is the envelope returned by Plan.
type PlanResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Status          Status  `json:"status" yaml:"status"`
	Message         string  `json:"message" yaml:"message"`
	ConfidenceScore float64 `json:"confidenceScore" yaml:"confidenceScore"`

	ActionPlan  []planner.Item              `json:"actionPlan" yaml:"actionPlan"`
	Timeline    planner.Timeline            `json:"timeline" yaml:"timeline"`
	Warnings    []planner.CycleWarning      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Assessments []impact.Assessment         `json:"assessments,omitempty" yaml:"assessments,omitempty"`
	Diagnostics []recommendation.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}
