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

package adjuster

import (
	"testing"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []recommendation.Recommendation {
	return []recommendation.Recommendation{
		recommendation.NewWithID("batch", recommendation.Template{
			Kind: recommendation.KindBatchBacklog, Category: recommendation.CategoryOperations,
			Priority: recommendation.PriorityHigh, Title: "Batch Job Backlog", Confidence: 0.8, Effort: recommendation.EffortLow,
		}),
		recommendation.NewWithID("threads", recommendation.Template{
			Kind: recommendation.KindBatchThreads, Category: recommendation.CategoryConfiguration,
			Priority: recommendation.PriorityMedium, Title: "Increase Batch Max Threads", Confidence: 0.7, Effort: recommendation.EffortLow,
		}),
		recommendation.NewWithID("cpu", recommendation.Template{
			Kind: recommendation.KindCPU, Category: recommendation.CategoryPerformance,
			Priority: recommendation.PriorityHigh, Title: "High CPU Utilization", Confidence: 0.9, Effort: recommendation.EffortMedium,
		}),
	}
}

func peak(current string) *snapshot.BusinessContext {
	return &snapshot.BusinessContext{
		PeakWindow:  &snapshot.PeakWindow{Start: "09:00", End: "17:00"},
		CurrentTime: current,
	}
}

func TestApplyContextInsidePeak(t *testing.T) {
	in := fixture()
	out := ApplyContext(in, peak("12:30"))

	require.Len(t, out, 3)
	assert.Equal(t, recommendation.PriorityLow, out[0].Priority)
	assert.NotEmpty(t, out[0].PriorityAdjustment)
	assert.Contains(t, out[0].PriorityAdjustment, "09:00-17:00")

	// only batch job recommendations are touched
	assert.Equal(t, recommendation.PriorityMedium, out[1].Priority)
	assert.Empty(t, out[1].PriorityAdjustment)
	assert.Equal(t, recommendation.PriorityHigh, out[2].Priority)

	// input is untouched and ids are stable
	assert.Equal(t, recommendation.PriorityHigh, in[0].Priority)
	assert.Empty(t, in[0].PriorityAdjustment)
	assert.Equal(t, in[0].ID, out[0].ID)
}

func TestApplyContextBoundariesInclusive(t *testing.T) {
	for _, at := range []string{"09:00", "17:00", "2025-06-02T17:00:00Z"} {
		out := ApplyContext(fixture(), peak(at))
		assert.Equal(t, recommendation.PriorityLow, out[0].Priority, at)
	}
}

func TestApplyContextNoAdjustment(t *testing.T) {
	tests := []struct {
		name string
		ctx  *snapshot.BusinessContext
	}{
		{name: "nil context", ctx: nil},
		{name: "outside window", ctx: peak("08:59")},
		{name: "no current time", ctx: &snapshot.BusinessContext{PeakWindow: &snapshot.PeakWindow{Start: "09:00", End: "17:00"}}},
		{name: "no peak window", ctx: &snapshot.BusinessContext{CurrentTime: "12:00"}},
		{name: "unparseable time", ctx: peak("lunchtime")},
		{name: "unparseable window", ctx: &snapshot.BusinessContext{PeakWindow: &snapshot.PeakWindow{Start: "morning", End: "17:00"}, CurrentTime: "12:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			out := ApplyContext(in, tt.ctx)
			assert.Equal(t, in, out)
		})
	}
}

func TestApplyContextEmpty(t *testing.T) {
	assert.Nil(t, ApplyContext(nil, peak("12:00")))
}
