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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/aos-advisor/pkg/adjuster"
	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/header"
	"github.com/NVIDIA/aos-advisor/pkg/impact"
	"github.com/NVIDIA/aos-advisor/pkg/planner"
	"github.com/NVIDIA/aos-advisor/pkg/prioritizer"
	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/rules"
	"github.com/NVIDIA/aos-advisor/pkg/trend"
)

const (
	operationEvaluate = "evaluate"
	operationPlan     = "plan"

	// PlanStage names request validation in plan diagnostics.
	PlanStage = "plan"
)

// Advisor runs the recommendation pipeline. It holds only immutable
// configuration and is safe for concurrent use.
type Advisor struct {
	version    string
	now        func() time.Time
	thresholds Thresholds
}

// Option is a functional option for configuring the Advisor.
type Option func(*Advisor)

// WithVersion sets the version stamped into result metadata.
func WithVersion(version string) Option {
	return func(a *Advisor) {
		a.version = version
	}
}

// WithClock sets the source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Advisor) {
		if now != nil {
			a.now = now
		}
	}
}

// WithThresholds overrides the default stage limits.
func WithThresholds(t Thresholds) Option {
	return func(a *Advisor) {
		a.thresholds = t
	}
}

// New creates a new Advisor with the provided options.
func New(opts ...Option) *Advisor {
	a := &Advisor{
		now:        time.Now,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Thresholds returns the limits in use.
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// Rules describes the rule catalog under the configured thresholds.
func (a *Advisor) Rules() []rules.Info {
	return rules.NewEvaluator(rules.WithThresholds(a.thresholds.Rules)).Describe()
}

// Evaluate runs rules and trend analysis, applies the business context and
// prioritizes the result. It always returns an envelope: input problems
// become diagnostics, unexpected failures an Error status.
func (a *Advisor) Evaluate(ctx context.Context, req *EvaluationRequest) (res *EvaluationResult) {
	runAt := a.now()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = a.evaluationError(runAt, apperrors.New(apperrors.ErrCodeComputation,
				fmt.Sprintf("evaluation failed: %v", r)))
		}
		resultsTotal.WithLabelValues(operationEvaluate, res.Status.String()).Inc()
		evaluateDuration.Observe(time.Since(start).Seconds())
	}()

	if req == nil {
		return a.evaluationError(runAt, apperrors.Validation("request", "evaluation request is required"))
	}
	if err := ctx.Err(); err != nil {
		return a.evaluationError(runAt, apperrors.Wrap(apperrors.ErrCodeTimeout, "evaluation canceled", err))
	}

	ruleResult := rules.NewEvaluator(rules.WithThresholds(a.thresholds.Rules)).
		Evaluate(req.Metrics, req.Configuration)
	trendResult := trend.NewAnalyzer(trend.WithThresholds(a.thresholds.Trends)).
		AnalyzeTrends(req.History)

	if err := ctx.Err(); err != nil {
		return a.evaluationError(runAt, apperrors.Wrap(apperrors.ErrCodeTimeout, "evaluation canceled", err))
	}

	all := make([]recommendation.Recommendation, 0, len(ruleResult.Recommendations)+len(trendResult.Recommendations))
	all = append(all, ruleResult.Recommendations...)
	all = append(all, trendResult.Recommendations...)

	adjusted := adjuster.ApplyContext(all, req.Context)
	prioritized := prioritizer.Prioritize(adjusted)

	diagnostics := make([]recommendation.Diagnostic, 0, len(ruleResult.Diagnostics)+len(trendResult.Diagnostics))
	diagnostics = append(diagnostics, ruleResult.Diagnostics...)
	diagnostics = append(diagnostics, trendResult.Diagnostics...)

	for _, r := range prioritized.Sorted {
		recommendationsTotal.WithLabelValues(r.Category.String(), r.Priority.String()).Inc()
	}

	res = &EvaluationResult{
		Status:                  StatusSuccess,
		Message:                 evaluationMessage(prioritized.Summary, len(diagnostics)),
		ConfidenceScore:         MeanConfidence(prioritized.Sorted),
		Recommendations:         prioritized.Sorted,
		PriorityRecommendations: prioritized.Top,
		Summary:                 prioritized.Summary,
		Trends:                  trendResult.Changes,
		Diagnostics:             diagnostics,
	}
	res.Init(header.KindEvaluationResult, a.version, runAt)

	slog.Debug("evaluation complete",
		"recommendations", res.Summary.Total,
		"critical_or_high", res.Summary.CriticalHigh,
		"diagnostics", len(diagnostics),
		"confidence", res.ConfidenceScore)

	return res
}

// Plan orders actionable recommendations into a phased action plan and,
// when requested, scores their impact against the system state.
func (a *Advisor) Plan(ctx context.Context, req *PlanRequest) (res *PlanResult) {
	runAt := a.now()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = a.planError(runAt, apperrors.New(apperrors.ErrCodeComputation,
				fmt.Sprintf("planning failed: %v", r)))
		}
		resultsTotal.WithLabelValues(operationPlan, res.Status.String()).Inc()
		planDuration.Observe(time.Since(start).Seconds())
	}()

	if req == nil {
		return a.planError(runAt, apperrors.Validation("request", "plan request is required"))
	}
	if err := ctx.Err(); err != nil {
		return a.planError(runAt, apperrors.Wrap(apperrors.ErrCodeTimeout, "planning canceled", err))
	}

	valid := make([]recommendation.Recommendation, 0, len(req.Recommendations))
	var diagnostics []recommendation.Diagnostic
	for i, r := range req.Recommendations {
		if err := r.Validate(); err != nil {
			subject := fmt.Sprintf("recommendations[%d]", i)
			verr := apperrors.WrapWithContext(apperrors.ErrCodeValidation, err.Error(), err,
				map[string]any{"field": subject})
			slog.Warn("recommendation skipped", "index", i, "error", err)
			diagnostics = append(diagnostics, recommendation.NewDiagnostic(PlanStage, subject, verr))
			continue
		}
		valid = append(valid, r.WithKindFromTitle())
	}

	p := planner.New(planner.WithClock(func() time.Time { return runAt })).
		BuildPlan(valid, req.Constraints)

	planned := make([]recommendation.Recommendation, 0, len(p.Items))
	for _, it := range p.Items {
		planned = append(planned, it.Recommendation)
	}

	res = &PlanResult{
		Status:          StatusSuccess,
		Message:         planMessage(len(valid), p),
		ConfidenceScore: MeanConfidence(planned),
		ActionPlan:      p.Items,
		Timeline:        p.Timeline,
		Warnings:        p.Warnings,
		Diagnostics:     diagnostics,
	}
	if req.WithImpact {
		res.Assessments = impact.Evaluate(valid, req.SystemState)
	}
	res.Init(header.KindPlanResult, a.version, runAt)

	slog.Debug("plan complete",
		"items", len(res.ActionPlan),
		"phases", len(res.Timeline.Phases),
		"warnings", len(res.Warnings),
		"diagnostics", len(diagnostics))

	return res
}

// MeanConfidence is the average confidence of recs, or 1 when there are none.
func MeanConfidence(recs []recommendation.Recommendation) float64 {
	if len(recs) == 0 {
		return 1
	}
	var sum float64
	for _, r := range recs {
		sum += r.Confidence
	}
	return sum / float64(len(recs))
}

func evaluationMessage(s prioritizer.Summary, diagnostics int) string {
	if s.Total == 0 {
		msg := "no recommendations: all evaluated metrics and settings are within thresholds"
		if diagnostics > 0 {
			msg += fmt.Sprintf(" (%d inputs skipped)", diagnostics)
		}
		return msg
	}
	msg := fmt.Sprintf("generated %d recommendations (%d critical or high)", s.Total, s.CriticalHigh)
	if diagnostics > 0 {
		msg += fmt.Sprintf(", %d inputs skipped", diagnostics)
	}
	return msg
}

func planMessage(considered int, p *planner.Plan) string {
	msg := fmt.Sprintf("planned %d of %d recommendations in %d phases",
		len(p.Items), considered, len(p.Timeline.Phases))
	if len(p.Warnings) > 0 {
		msg += fmt.Sprintf(", %d dependency cycles broken", len(p.Warnings))
	}
	return msg
}

func (a *Advisor) evaluationError(runAt time.Time, err error) *EvaluationResult {
	slog.Error("evaluation failed", "code", apperrors.CodeOf(err), "error", err)
	res := &EvaluationResult{
		Status:                  StatusError,
		Message:                 err.Error(),
		Recommendations:         []recommendation.Recommendation{},
		PriorityRecommendations: []recommendation.Recommendation{},
	}
	res.Init(header.KindEvaluationResult, a.version, runAt)
	return res
}

func (a *Advisor) planError(runAt time.Time, err error) *PlanResult {
	slog.Error("planning failed", "code", apperrors.CodeOf(err), "error", err)
	res := &PlanResult{
		Status:     StatusError,
		Message:    err.Error(),
		ActionPlan: []planner.Item{},
		Timeline:   planner.Timeline{Phases: []planner.Phase{}},
	}
	res.Init(header.KindPlanResult, a.version, runAt)
	return res
}
