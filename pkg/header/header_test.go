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
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindPlanResult),
		WithAPIVersion("v9"),
		WithMetadata("source", "cli"),
	)

	if h.GetKind() != KindPlanResult {
		t.Errorf("kind = %s", h.Kind)
	}
	if h.APIVersion != "v9" {
		t.Errorf("apiVersion = %s", h.APIVersion)
	}
	if h.GetMetadata()["source"] != "cli" {
		t.Errorf("metadata = %v", h.Metadata)
	}
}

func TestWithMetadataNilMap(t *testing.T) {
	var h Header
	WithMetadata("k", "v")(&h)
	if h.Metadata["k"] != "v" {
		t.Errorf("expected metadata to be initialized, got %v", h.Metadata)
	}
}

func TestInit(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.FixedZone("X", 3600))

	tests := []struct {
		name        string
		version     string
		wantVersion bool
	}{
		{name: "with version", version: "v1.2.3", wantVersion: true},
		{name: "without version", version: "", wantVersion: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Header
			h.Init(KindEvaluationResult, tt.version, at)

			if h.Kind != KindEvaluationResult {
				t.Errorf("kind = %s", h.Kind)
			}
			if h.APIVersion != APIVersion {
				t.Errorf("apiVersion = %s", h.APIVersion)
			}
			if got := h.Metadata["timestamp"]; got != "2025-06-01T11:30:00Z" {
				t.Errorf("timestamp = %s", got)
			}
			_, ok := h.Metadata["version"]
			if ok != tt.wantVersion {
				t.Errorf("version present = %v, want %v", ok, tt.wantVersion)
			}
		})
	}
}

func TestKindIsValid(t *testing.T) {
	valid := []Kind{KindEvaluationRequest, KindEvaluationResult, KindPlanRequest, KindPlanResult, KindRuleCatalog}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	unknown := Kind("Recipe")
	if unknown.IsValid() {
		t.Error("Recipe should not be valid")
	}
}
