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
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

const (
	// Stage names the trend analyzer in diagnostics.
	Stage = "trend"

	// MinPoints is the smallest series (and per-metric sample count) analyzed.
	MinPoints = 5

	// WindowSize is the number of samples in the earlier and recent windows.
	WindowSize = 3
)

// Thresholds holds the change percentages that trigger a trend recommendation.
// Comparisons are strict.
type Thresholds struct {
	CPUChangePercent          float64 `json:"cpuChangePercent" yaml:"cpuChangePercent"`
	MemoryChangePercent       float64 `json:"memoryChangePercent" yaml:"memoryChangePercent"`
	BatchBacklogChangePercent float64 `json:"batchBacklogChangePercent" yaml:"batchBacklogChangePercent"`
}

// DefaultThresholds returns the stock trend limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPUChangePercent:          15,
		MemoryChangePercent:       10,
		BatchBacklogChangePercent: 20,
	}
}

// Validate rejects negative limits.
func (t Thresholds) Validate() error {
	if t.CPUChangePercent < 0 || t.MemoryChangePercent < 0 || t.BatchBacklogChangePercent < 0 {
		return fmt.Errorf("trend thresholds must not be negative: %+v", t)
	}
	return nil
}

// Change is the two-window comparison for one metric.
type Change struct {
	Metric        string  `json:"metric" yaml:"metric"`
	Samples       int     `json:"samples" yaml:"samples"`
	EarlierAvg    float64 `json:"earlierAvg" yaml:"earlierAvg"`
	RecentAvg     float64 `json:"recentAvg" yaml:"recentAvg"`
	ChangePercent float64 `json:"changePercent" yaml:"changePercent"`
}

// Result is the output of one trend analysis.
type Result struct {
	Recommendations []recommendation.Recommendation
	Changes         []Change
	Diagnostics     []recommendation.Diagnostic
}

// Analyzer compares early and recent windows of a historical series.
type Analyzer struct {
	thresholds Thresholds
}

// Option is a functional option for configuring the Analyzer.
type Option func(*Analyzer)

// WithThresholds overrides the default trend limits.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// NewAnalyzer creates an Analyzer with default thresholds.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Thresholds returns the limits in use.
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

type tracked struct {
	metric  string
	limit   func(Thresholds) float64
	emit    func(c Change, limit float64) recommendation.Template
	display string
}

var trackedMetrics = []tracked{
	{
		metric:  snapshot.MetricCPUAvg,
		display: "CPU utilization",
		limit:   func(t Thresholds) float64 { return t.CPUChangePercent },
		emit: func(c Change, limit float64) recommendation.Template {
			return recommendation.Template{
				Kind:           recommendation.KindCPU,
				Category:       recommendation.CategoryPerformance,
				Priority:       recommendation.PriorityMedium,
				Title:          "Rising CPU Utilization Trend",
				Recommendation: "Plan additional AOS capacity or rebalance workloads before utilization reaches saturation.",
				Impact:         "Acting early avoids response time degradation once the trend crosses the utilization limit.",
				Rationale:      fmt.Sprintf("A sustained rise above %g%% between windows indicates growing load rather than noise.", limit),
				Confidence:     0.75,
				Effort:         recommendation.EffortMedium,
			}
		},
	},
	{
		metric:  snapshot.MetricMemoryAvg,
		display: "memory utilization",
		limit:   func(t Thresholds) float64 { return t.MemoryChangePercent },
		emit: func(c Change, limit float64) recommendation.Template {
			return recommendation.Template{
				Kind:           recommendation.KindMemory,
				Category:       recommendation.CategoryPerformance,
				Priority:       recommendation.PriorityMedium,
				Title:          "Rising Memory Utilization Trend",
				Recommendation: "Check for memory leaks in long-running AOS processes and plan memory upgrades.",
				Impact:         "Addressing memory growth early prevents paging and unplanned restarts.",
				Rationale:      fmt.Sprintf("Memory grew more than %g%% between windows, which is typical of leaks or cache growth.", limit),
				Confidence:     0.70,
				Effort:         recommendation.EffortMedium,
			}
		},
	},
	{
		metric:  snapshot.MetricBatchBacklog,
		display: "batch backlog",
		limit:   func(t Thresholds) float64 { return t.BatchBacklogChangePercent },
		emit: func(c Change, limit float64) recommendation.Template {
			return recommendation.Template{
				Kind:           recommendation.KindBatchBacklog,
				Category:       recommendation.CategoryOperations,
				Priority:       recommendation.PriorityHigh,
				Title:          "Growing Batch Job Backlog",
				Recommendation: "Review batch schedules and thread allocation before the backlog delays business processes.",
				Impact:         "Keeping the backlog stable ensures end-of-day and period-close jobs finish on time.",
				Rationale:      fmt.Sprintf("The backlog grew more than %g%% between windows, so jobs are arriving faster than they complete.", limit),
				Confidence:     0.80,
				Effort:         recommendation.EffortLow,
			}
		},
	},
}

// AnalyzeTrends compares the first and last WindowSize samples of each
// tracked metric. Series with fewer than MinPoints usable points yield no
// recommendations. Points without a timestamp are dropped and reported.
func (a *Analyzer) AnalyzeTrends(series snapshot.HistoricalSeries) Result {
	var res Result

	points := make([]snapshot.HistoricalPoint, 0, len(series))
	for i, p := range series {
		if err := p.Validate(); err != nil {
			pointsDropped.Inc()
			slog.Warn("historical point dropped", "index", i, "error", err)
			res.Diagnostics = append(res.Diagnostics, recommendation.NewDiagnostic(Stage, fmt.Sprintf("point[%d]", i), err))
			continue
		}
		points = append(points, p)
	}

	if len(points) < MinPoints {
		slog.Debug("series too short for trend analysis", "points", len(points), "required", MinPoints)
		return res
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	for _, m := range trackedMetrics {
		values := samples(points, m.metric)
		if len(values) < MinPoints {
			slog.Debug("not enough samples for metric", "metric", m.metric, "samples", len(values))
			continue
		}

		c := compare(m.metric, values)
		res.Changes = append(res.Changes, c)

		limit := m.limit(a.thresholds)
		if c.ChangePercent <= limit {
			continue
		}

		tpl := m.emit(c, limit)
		tpl.Source = recommendation.SourceTrend
		tpl.Description = fmt.Sprintf("Average %s rose %.2f%% from %.2f to %.2f between the earliest and latest %d samples.",
			m.display, round2(c.ChangePercent), round2(c.EarlierAvg), round2(c.RecentAvg), WindowSize)
		res.Recommendations = append(res.Recommendations, recommendation.New(tpl))
	}

	slog.Debug("trend analysis complete",
		"points", len(points),
		"changes", len(res.Changes),
		"recommendations", len(res.Recommendations))

	return res
}

// samples returns the valid readings of a metric in series order.
func samples(points []snapshot.HistoricalPoint, metric string) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		v, state := p.Value(metric).Get()
		if state != snapshot.Valid || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func compare(metric string, values []float64) Change {
	earlier := average(values[:WindowSize])
	recent := average(values[len(values)-WindowSize:])
	return Change{
		Metric:        metric,
		Samples:       len(values),
		EarlierAvg:    earlier,
		RecentAvg:     recent,
		ChangePercent: safeDivide(recent-earlier, earlier) * 100,
	}
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return safeDivide(sum, float64(len(values)))
}

// safeDivide returns a/b, or 0 when b is zero.
func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
