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
	"fmt"
	"log/slog"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/recommendation"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
)

// Stage names the rule evaluator in diagnostics.
const Stage = "rules"

// Evaluator applies the rule catalog to a metrics and configuration snapshot.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	thresholds Thresholds
	rules      []Rule
}

// Option is a functional option for configuring the Evaluator.
type Option func(*Evaluator)

// WithThresholds overrides the default rule limits.
func WithThresholds(t Thresholds) Option {
	return func(e *Evaluator) {
		e.thresholds = t
	}
}

// WithRules replaces the rule catalog.
func WithRules(rules ...Rule) Option {
	return func(e *Evaluator) {
		e.rules = rules
	}
}

// NewEvaluator creates an Evaluator using the built-in catalog and default thresholds.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		thresholds: DefaultThresholds(),
		rules:      Catalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the limits in use.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Result is the output of one evaluation.
type Result struct {
	Recommendations []recommendation.Recommendation
	Diagnostics     []recommendation.Diagnostic
}

// Evaluate runs every rule against the snapshots. Rules whose input is absent
// are not applicable. Rules whose input is malformed, or that fail, are
// skipped and reported as diagnostics; the remaining rules still run.
func (e *Evaluator) Evaluate(metrics *snapshot.MetricsSnapshot, config *snapshot.ConfigurationSnapshot) Result {
	in := Input{Metrics: metrics, Config: config}
	var res Result

	for _, r := range e.rules {
		rec, err := e.apply(r, in)
		if err != nil {
			reason := "validation"
			if apperrors.CodeOf(err) != apperrors.ErrCodeValidation {
				reason = "failure"
			}
			ruleSkips.WithLabelValues(r.Name, reason).Inc()
			slog.Warn("rule skipped", "rule", r.Name, "field", r.Field, "error", err)
			res.Diagnostics = append(res.Diagnostics, recommendation.NewDiagnostic(Stage, r.Name, err))
			continue
		}
		if rec == nil {
			continue
		}
		ruleMatches.WithLabelValues(r.Name).Inc()
		res.Recommendations = append(res.Recommendations, *rec)
	}

	slog.Debug("rule evaluation complete",
		"rules", len(e.rules),
		"recommendations", len(res.Recommendations),
		"diagnostics", len(res.Diagnostics))

	return res
}

// apply isolates a single rule so a panic in one rule cannot abort the others.
func (e *Evaluator) apply(r Rule, in Input) (rec *recommendation.Recommendation, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec = nil
			err = apperrors.WrapWithContext(apperrors.ErrCodeComputation,
				"rule evaluation failed", fmt.Errorf("%v", p),
				map[string]any{"field": r.Field})
		}
	}()
	return r.Apply(in, e.thresholds)
}

// Info describes a rule for listings.
type Info struct {
	Name       string                  `json:"name" yaml:"name"`
	Kind       recommendation.Kind     `json:"kind" yaml:"kind"`
	Category   recommendation.Category `json:"category" yaml:"category"`
	Priority   recommendation.Priority `json:"priority" yaml:"priority"`
	Confidence float64                 `json:"confidence" yaml:"confidence"`
	Effort     recommendation.Effort   `json:"effort" yaml:"effort"`
	Field      string                  `json:"field" yaml:"field"`
	Condition  string                  `json:"condition" yaml:"condition"`
}

// Describe lists the evaluator's rules with conditions rendered for its thresholds.
func (e *Evaluator) Describe() []Info {
	out := make([]Info, 0, len(e.rules))
	for _, r := range e.rules {
		cond := ""
		if r.Condition != nil {
			cond = r.Condition(e.thresholds)
		}
		out = append(out, Info{
			Name:       r.Name,
			Kind:       r.Kind,
			Category:   r.Category,
			Priority:   r.Priority,
			Confidence: r.Confidence,
			Effort:     r.Effort,
			Field:      r.Field,
			Condition:  cond,
		})
	}
	return out
}
