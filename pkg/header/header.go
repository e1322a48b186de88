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

package header

import (
	"time"
)

// APIVersion is the schema version stamped on every advisor document.
const APIVersion = "aos-advisor.nvidia.com/v1alpha1"

// Kind represents the type of advisor document.
type Kind string

// Valid Kind constants for all advisor document types.
const (
	KindEvaluationRequest Kind = "EvaluationRequest"
	KindEvaluationResult  Kind = "EvaluationResult"
	KindPlanRequest       Kind = "PlanRequest"
	KindPlanResult        Kind = "PlanResult"
	KindRuleCatalog       Kind = "RuleCatalog"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k *Kind) IsValid() bool {
	switch *k {
	case KindEvaluationRequest, KindEvaluationResult, KindPlanRequest, KindPlanResult, KindRuleCatalog:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// GetKind returns the Kind field of the Header.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// GetMetadata returns the Metadata map of the Header.
func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}

// New creates a new Header instance with the provided functional options.
func New(opts ...Option) *Header {
	s := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Header carries Kubernetes-style Kind, APIVersion and Metadata for advisor documents.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and records the run timestamp and tool version.
// The timestamp is the one captured at the start of the invocation, not the
// wall clock at the time Init runs.
func (h *Header) Init(kind Kind, version string, at time.Time) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = make(map[string]string)
	h.Metadata["timestamp"] = at.UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}
