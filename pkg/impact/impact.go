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

package impact

import (
	"log/slog"
	"math"
	"sort"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

const (
	baseRisk = 0.5
	maxRisk  = 0.9

	// stressedPercent is the CPU or memory level above which any change is riskier.
	stressedPercent = 90
)

// Assessment enriches a recommendation with impact, risk and timeframe.
// The embedded recommendation is never modified.
type Assessment struct {
	recommendation.Recommendation `json:",inline" yaml:",inline"`

	ImpactScore             float64 `json:"impactScore" yaml:"impactScore"`
	ImplementationRisk      float64 `json:"implementationRisk" yaml:"implementationRisk"`
	ImplementationTimeframe string  `json:"implementationTimeframe" yaml:"implementationTimeframe"`
}

// Evaluate scores every recommendation against the current system state and
// returns the assessments sorted by impact score, highest first. Ties keep
// input order. A nil state is treated as unstressed.
func Evaluate(recs []recommendation.Recommendation, state *snapshot.MetricsSnapshot) []Assessment {
	stressed := state.Above(snapshot.MetricCPUAvg, stressedPercent) ||
		state.Above(snapshot.MetricMemoryAvg, stressedPercent)

	out := make([]Assessment, 0, len(recs))
	for _, r := range recs {
		out = append(out, Assessment{
			Recommendation:          r,
			ImpactScore:             Score(r),
			ImplementationRisk:      Risk(r, stressed),
			ImplementationTimeframe: Timeframe(r),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ImpactScore > out[j].ImpactScore
	})

	slog.Debug("impact evaluation complete", "recommendations", len(out), "stressed", stressed)
	return out
}

// Score returns priority weight x confidence x effort adjustment.
func Score(r recommendation.Recommendation) float64 {
	return float64(r.Priority.Rank()) * r.Confidence * effortAdjustment(r.Effort)
}

// effortAdjustment favors cheap changes.
func effortAdjustment(e recommendation.Effort) float64 {
	switch e {
	case recommendation.EffortLow:
		return 1.2
	case recommendation.EffortHigh:
		return 0.8
	default:
		return 1.0
	}
}

// Risk estimates the difficulty of rolling out r, in [0, 0.9].
func Risk(r recommendation.Recommendation, stressed bool) float64 {
	risk := baseRisk

	switch r.Category {
	case recommendation.CategoryConfiguration:
		risk += 0.2
	case recommendation.CategoryPerformance:
		risk += 0.1
	}

	switch r.Effort {
	case recommendation.EffortHigh:
		risk += 0.3
	case recommendation.EffortMedium:
		risk += 0.15
	case recommendation.EffortLow:
		risk += 0.05
	}

	if stressed {
		risk += 0.1
	}

	return math.Max(0, math.Min(maxRisk, risk))
}

// Timeframe maps effort to a calendar range. Configuration changes get wider
// ranges to allow for change approval.
func Timeframe(r recommendation.Recommendation) string {
	if r.Category == recommendation.CategoryConfiguration {
		switch r.Effort {
		case recommendation.EffortLow:
			return "3-7 days"
		case recommendation.EffortHigh:
			return "4-12 weeks"
		default:
			return "1-3 weeks"
		}
	}
	switch r.Effort {
	case recommendation.EffortLow:
		return "1-3 days"
	case recommendation.EffortHigh:
		return "2-8 weeks"
	default:
		return "3-14 days"
	}
}
