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

package rules

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ruleMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aosa_rule_matches_total",
			Help: "Total number of recommendations produced per rule",
		},
		[]string{"rule"},
	)

	ruleSkips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aosa_rule_skips_total",
			Help: "Total number of rules skipped because of malformed input or failures",
		},
		[]string{"rule", "reason"},
	)
)
