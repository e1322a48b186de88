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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aosa_evaluate_duration_seconds",
			Help:    "Duration of recommendation evaluations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	planDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aosa_plan_duration_seconds",
			Help:    "Duration of action plan builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aosa_recommendations_total",
			Help: "Total number of recommendations produced",
		},
		[]string{"category", "priority"},
	)

	resultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aosa_results_total",
			Help: "Total number of advisor results by operation and status",
		},
		[]string{"operation", "status"},
	)
)
