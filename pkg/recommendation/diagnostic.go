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
	stderrors "errors"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
)

// Diagnostic records an input problem that caused one rule or data point to
// be skipped. Diagnostics never abort the stage that reports them.
type Diagnostic struct {
	Stage   string              `json:"stage" yaml:"stage"`
	Subject string              `json:"subject" yaml:"subject"`
	Code    apperrors.ErrorCode `json:"code" yaml:"code"`
	Message string              `json:"message" yaml:"message"`
	Field   string              `json:"field,omitempty" yaml:"field,omitempty"`
}

// NewDiagnostic builds a diagnostic from an error. The field name is taken
// from the error context when present.
func NewDiagnostic(stage, subject string, err error) Diagnostic {
	d := Diagnostic{
		Stage:   stage,
		Subject: subject,
		Code:    apperrors.CodeOf(err),
		Message: err.Error(),
	}
	var se *apperrors.StructuredError
	if stderrors.As(err, &se) {
		d.Message = se.Message
		if f, ok := se.Context["field"].(string); ok {
			d.Field = f
		}
	}
	return d
}
