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

// Package adjuster reprioritizes recommendations using business context.
//
// The only adjustment today is a guardrail for batch scheduling: while the
// current time is inside the configured peak window, recommendations that
// would change batch job scheduling are forced to Low priority.
package adjuster

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

// ApplyContext returns a copy of recs adjusted for bctx. The input slice is
// not modified. When the context lacks a peak window or current time, or
// they cannot be parsed, the copy is returned unchanged.
func ApplyContext(recs []recommendation.Recommendation, bctx *snapshot.BusinessContext) []recommendation.Recommendation {
	out := recommendation.Clone(recs)
	if !bctx.Active() {
		return out
	}

	now, err := snapshot.ParseTimeOfDay(bctx.CurrentTime)
	if err != nil {
		slog.Warn("business context ignored", "field", "currentTime", "error", err)
		return out
	}
	inPeak, err := bctx.PeakWindow.Contains(now)
	if err != nil {
		slog.Warn("business context ignored", "error", err)
		return out
	}
	if !inPeak {
		return out
	}

	reason := fmt.Sprintf("Deferred: current time %s is inside the business peak window %s-%s, when batch processing is business-critical.",
		now, bctx.PeakWindow.Start, bctx.PeakWindow.End)

	for i, r := range out {
		if !r.Kind.IsBatchJob() || r.Priority == recommendation.PriorityLow {
			continue
		}
		out[i] = r.WithPriority(recommendation.PriorityLow, reason)
		slog.Debug("priority adjusted",
			"id", r.ID,
			"title", r.Title,
			"from", r.Priority,
			"to", recommendation.PriorityLow)
	}
	return out
}
