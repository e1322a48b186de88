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

// Package advisor runs the recommendation and planning pipeline and wraps its
// output in result envelopes.
//
// Evaluate combines the rule evaluator and the trend analyzer, applies the
// business context adjuster and prioritizes the unified set. Plan turns a set
// of recommendations into an ordered action plan with an optional impact
// assessment.
//
// Neither call returns an error or panics. Input problems that only affect a
// single rule, data point or recommendation are reported as diagnostics on a
// Success result; cancellation and unexpected failures produce a result with
// Status Error, an empty payload and a zero confidence score.
//
// Usage:
//
//	a := advisor.New(advisor.WithVersion(version))
//	res := a.Evaluate(ctx, &advisor.EvaluationRequest{Metrics: metrics})
//	if res.Status == advisor.StatusError {
//	    return errors.New(res.Message)
//	}
//	plan := a.Plan(ctx, &advisor.PlanRequest{Recommendations: res.Recommendations})
package advisor
