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

// Package rules implements the rule catalog and evaluator.
//
// Each Rule is a pure function of a metrics snapshot and a configuration
// snapshot that yields at most one recommendation. Rules are independent and
// order-insensitive. Thresholds are exclusive and configurable:
//
//	e := rules.NewEvaluator(rules.WithThresholds(t))
//	res := e.Evaluate(metrics, config)
//	for _, d := range res.Diagnostics {
//	    // malformed inputs that caused a rule to be skipped
//	}
//
// Absent input makes a rule not applicable. Present but malformed input
// skips the rule and records a validation diagnostic. A rule that panics is
// recovered and reported as a computation diagnostic.
package rules
