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

package recommendation

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Template is everything a rule decides about a recommendation. The
// identifier is assigned by New.
type Template struct {
	Kind           Kind
	Source         Source
	Category       Category
	Priority       Priority
	Title          string
	Description    string
	Recommendation string
	Impact         string
	Rationale      string
	Confidence     float64
	Effort         Effort
}

// Recommendation is a single scored suggestion. It is a value type: stages
// receive copies and return new values, so fields set at creation never
// change underneath an earlier stage.
type Recommendation struct {
	ID                 string   `json:"id" yaml:"id"`
	Kind               Kind     `json:"kind" yaml:"kind"`
	Source             Source   `json:"source" yaml:"source"`
	Category           Category `json:"category" yaml:"category"`
	Priority           Priority `json:"priority" yaml:"priority"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	RecommendationText string   `json:"recommendationText" yaml:"recommendationText"`
	ImpactText         string   `json:"impactText" yaml:"impactText"`
	Rationale          string   `json:"rationale" yaml:"rationale"`
	Confidence         float64  `json:"confidence" yaml:"confidence"`
	Effort             Effort   `json:"effort" yaml:"effort"`

	// PriorityAdjustment explains why Priority differs from what the rule set.
	PriorityAdjustment string `json:"reasonForPriorityAdjustment,omitempty" yaml:"reasonForPriorityAdjustment,omitempty"`
}

// New creates a recommendation with a fresh identifier.
func New(t Template) Recommendation {
	return NewWithID(uuid.NewString(), t)
}

// NewWithID creates a recommendation with a caller-supplied identifier.
func NewWithID(id string, t Template) Recommendation {
	return Recommendation{
		ID:                 id,
		Kind:               t.Kind,
		Source:             t.Source,
		Category:           t.Category,
		Priority:           t.Priority,
		Title:              t.Title,
		Description:        t.Description,
		RecommendationText: t.Recommendation,
		ImpactText:         t.Impact,
		Rationale:          t.Rationale,
		Confidence:         t.Confidence,
		Effort:             t.Effort,
	}
}

// WithPriority returns a copy with a new priority and the reason for the change.
func (r Recommendation) WithPriority(p Priority, reason string) Recommendation {
	r.Priority = p
	r.PriorityAdjustment = reason
	return r
}

// Validate checks that the enumerated fields and confidence are in range. An
// empty kind is allowed; see KindFromTitle.
func (r Recommendation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recommendation %q has no id", r.Title)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("recommendation %s: invalid category %q", r.ID, r.Category)
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("recommendation %s: invalid priority %q", r.ID, r.Priority)
	}
	if !r.Effort.IsValid() {
		return fmt.Errorf("recommendation %s: invalid effort %q", r.ID, r.Effort)
	}
	if r.Kind != "" && !r.Kind.IsValid() {
		return fmt.Errorf("recommendation %s: invalid kind %q", r.ID, r.Kind)
	}
	if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("recommendation %s: confidence %v outside [0,1]", r.ID, r.Confidence)
	}
	return nil
}

// WithKindFromTitle returns a copy whose empty kind is inferred from the title.
func (r Recommendation) WithKindFromTitle() Recommendation {
	if r.Kind == "" {
		r.Kind = KindFromTitle(r.Title)
	}
	return r
}

// Clone returns a copy of the slice so callers can reorder it freely.
func Clone(recs []Recommendation) []Recommendation {
	if recs == nil {
		return nil
	}
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out
}
