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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeComputation, "scoring failed", cause)

	if err.Code != ErrCodeComputation {
		t.Errorf("expected code %s, got %s", ErrCodeComputation, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("missing timestamp")
	ctx := map[string]any{
		"index": 3,
	}

	err := WrapWithContext(ErrCodeValidation, "historical point rejected", cause, ctx)

	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["index"] != 3 {
		t.Errorf("expected index to be 3")
	}
}

func TestValidation(t *testing.T) {
	err := Validation("cpuAvg", "expected a number")
	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Context["field"] != "cpuAvg" {
		t.Errorf("expected field cpuAvg, got %v", err.Context["field"])
	}
	if got := err.Error(); got != "[VALIDATION_ERROR] expected a number" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name:     "cycle",
			err:      New(ErrCodeCycleDetected, "a -> b -> a"),
			expected: "[CYCLE_DETECTED] a -> b -> a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: ErrCodeInternal},
		{name: "structured", err: New(ErrCodeValidation, "bad"), want: ErrCodeValidation},
		{name: "wrapped by fmt", err: fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow")), want: ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeValidation, "bad field")
	outer := Wrap(ErrCodeComputation, "evaluation failed", inner)

	if !HasCode(outer, ErrCodeComputation) {
		t.Error("expected outer code to match")
	}
	if !HasCode(outer, ErrCodeValidation) {
		t.Error("expected inner code to match")
	}
	if HasCode(outer, ErrCodeTimeout) {
		t.Error("unexpected timeout code")
	}
	if HasCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeValidation,
		ErrCodeComputation,
		ErrCodeCycleDetected,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
