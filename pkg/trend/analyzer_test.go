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

package trend

import (
	"testing"
	"time"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// seriesOf builds one point per value, an hour apart, for a single metric.
func seriesOf(metric string, values ...float64) snapshot.HistoricalSeries {
	out := make(snapshot.HistoricalSeries, 0, len(values))
	for i, v := range values {
		out = append(out, snapshot.HistoricalPoint{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Values:    map[string]snapshot.Value[float64]{metric: snapshot.Of(v)},
		})
	}
	return out
}

func TestAnalyzeTrendsShortSeries(t *testing.T) {
	a := NewAnalyzer()
	for n := 0; n < MinPoints; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(10 * (i + 1) * (i + 1))
		}
		res := a.AnalyzeTrends(seriesOf(snapshot.MetricCPUAvg, values...))
		assert.Empty(t, res.Recommendations, "n=%d", n)
		assert.Empty(t, res.Changes, "n=%d", n)
	}
}

func TestAnalyzeTrendsCPUThreshold(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
		change float64
	}{
		{name: "twenty percent", values: []float64{50, 50, 50, 60, 60, 60}, want: true, change: 20},
		{name: "ten percent", values: []float64{50, 50, 50, 55, 55, 55}, want: false, change: 10},
		{name: "exactly fifteen", values: []float64{40, 40, 40, 46, 46, 46}, want: false, change: 15},
		{name: "falling", values: []float64{80, 80, 80, 40, 40, 40}, want: false, change: -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewAnalyzer().AnalyzeTrends(seriesOf(snapshot.MetricCPUAvg, tt.values...))
			require.Len(t, res.Changes, 1)
			assert.InDelta(t, tt.change, res.Changes[0].ChangePercent, 1e-9)

			if !tt.want {
				assert.Empty(t, res.Recommendations)
				return
			}
			require.Len(t, res.Recommendations, 1)
			r := res.Recommendations[0]
			assert.Equal(t, "Rising CPU Utilization Trend", r.Title)
			assert.Equal(t, recommendation.PriorityMedium, r.Priority)
			assert.Equal(t, recommendation.CategoryPerformance, r.Category)
			assert.Equal(t, 0.75, r.Confidence)
			assert.Equal(t, recommendation.KindCPU, r.Kind)
			assert.Equal(t, recommendation.SourceTrend, r.Source)
			assert.Contains(t, r.Description, "20.00%")
		})
	}
}

func TestAnalyzeTrendsMemoryAndBatch(t *testing.T) {
	series := make(snapshot.HistoricalSeries, 0, 6)
	memory := []float64{50, 50, 50, 56, 56, 56}
	batch := []float64{10, 10, 10, 13, 13, 13}
	for i := range memory {
		series = append(series, snapshot.HistoricalPoint{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Values: map[string]snapshot.Value[float64]{
				snapshot.MetricMemoryAvg:    snapshot.Of(memory[i]),
				snapshot.MetricBatchBacklog: snapshot.Of(batch[i]),
			},
		})
	}

	res := NewAnalyzer().AnalyzeTrends(series)
	require.Len(t, res.Recommendations, 2)

	mem := res.Recommendations[0]
	assert.Equal(t, "Rising Memory Utilization Trend", mem.Title)
	assert.Equal(t, recommendation.PriorityMedium, mem.Priority)
	assert.Equal(t, 0.70, mem.Confidence)

	b := res.Recommendations[1]
	assert.Equal(t, "Growing Batch Job Backlog", b.Title)
	assert.Equal(t, recommendation.PriorityHigh, b.Priority)
	assert.Equal(t, recommendation.CategoryOperations, b.Category)
	assert.Equal(t, 0.80, b.Confidence)
	assert.True(t, b.Kind.IsBatchJob())
}

func TestAnalyzeTrendsSortsByTimestamp(t *testing.T) {
	ordered := seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 60, 60, 60)
	shuffled := snapshot.HistoricalSeries{ordered[4], ordered[0], ordered[5], ordered[2], ordered[1], ordered[3]}

	res := NewAnalyzer().AnalyzeTrends(shuffled)
	require.Len(t, res.Changes, 1)
	assert.InDelta(t, 20, res.Changes[0].ChangePercent, 1e-9)
	assert.Len(t, res.Recommendations, 1)
}

func TestAnalyzeTrendsStableOnTies(t *testing.T) {
	// All points share a timestamp, so input order must be kept.
	series := seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 60, 60, 60)
	for i := range series {
		series[i].Timestamp = base
	}
	res := NewAnalyzer().AnalyzeTrends(series)
	require.Len(t, res.Changes, 1)
	assert.InDelta(t, 50, res.Changes[0].EarlierAvg, 1e-9)
	assert.InDelta(t, 60, res.Changes[0].RecentAvg, 1e-9)
}

func TestAnalyzeTrendsZeroEarlierAverage(t *testing.T) {
	res := NewAnalyzer().AnalyzeTrends(seriesOf(snapshot.MetricBatchBacklog, 0, 0, 0, 30, 40, 50))
	require.Len(t, res.Changes, 1)
	assert.Zero(t, res.Changes[0].ChangePercent)
	assert.Empty(t, res.Recommendations)
}

func TestAnalyzeTrendsSkipsSparseMetric(t *testing.T) {
	series := seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 70, 70, 70)
	// memory present on only four points
	for i := 0; i < 4; i++ {
		series[i].Values[snapshot.MetricMemoryAvg] = snapshot.Of(10.0 * float64(i+1))
	}
	series[4].Values[snapshot.MetricMemoryAvg] = snapshot.InvalidOf[float64]("n/a")

	res := NewAnalyzer().AnalyzeTrends(series)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, snapshot.MetricCPUAvg, res.Changes[0].Metric)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, recommendation.KindCPU, res.Recommendations[0].Kind)
}

func TestAnalyzeTrendsDropsPointsWithoutTimestamp(t *testing.T) {
	series := seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 60, 60, 60)
	series[2].Timestamp = time.Time{}

	res := NewAnalyzer().AnalyzeTrends(series)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "point[2]", res.Diagnostics[0].Subject)
	assert.Equal(t, apperrors.ErrCodeValidation, res.Diagnostics[0].Code)
	assert.Equal(t, Stage, res.Diagnostics[0].Stage)

	// five valid points remain: 50,50,60,60,60 -> earlier 53.33, recent 60
	require.Len(t, res.Changes, 1)
	assert.Equal(t, 5, res.Changes[0].Samples)
	assert.InDelta(t, 12.5, res.Changes[0].ChangePercent, 1e-9)
	assert.Empty(t, res.Recommendations)
}

func TestAnalyzeTrendsDroppedPointsShortenSeries(t *testing.T) {
	series := seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 90, 90)
	series[0].Timestamp = time.Time{}

	res := NewAnalyzer().AnalyzeTrends(series)
	assert.Len(t, res.Diagnostics, 1)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Recommendations)
}

func TestAnalyzeTrendsCustomThresholds(t *testing.T) {
	a := NewAnalyzer(WithThresholds(Thresholds{CPUChangePercent: 5, MemoryChangePercent: 10, BatchBacklogChangePercent: 20}))
	res := a.AnalyzeTrends(seriesOf(snapshot.MetricCPUAvg, 50, 50, 50, 55, 55, 55))
	assert.Len(t, res.Recommendations, 1)
	assert.Equal(t, 5.0, a.Thresholds().CPUChangePercent)
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{CPUChangePercent: -1}.Validate())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, round2(12.345))
	assert.Equal(t, -3.33, round2(-3.3333))
	assert.Equal(t, 0.0, safeDivide(1, 0))
}
