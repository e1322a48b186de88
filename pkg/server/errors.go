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

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	Details   map[string]any      `json:"details,omitempty"`
	RequestID string              `json:"requestId"`
	Timestamp time.Time           `json:"timestamp"`
	Retryable bool                `json:"retryable"`
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps a structured error to its HTTP status and writes it.
// Errors without a code are reported as internal.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	code := apperrors.CodeOf(err)
	status, retryable := statusFor(code)

	var se *apperrors.StructuredError
	if stderrors.As(err, &se) {
		if message == "" {
			message = se.Message
		}
		if len(se.Context) > 0 {
			if details == nil {
				details = make(map[string]any, len(se.Context))
			}
			for k, v := range se.Context {
				if _, exists := details[k]; !exists {
					details[k] = v
				}
			}
		}
	}
	if message == "" {
		message = err.Error()
	}

	WriteError(w, r, status, code, message, retryable, details)
}

func statusFor(code apperrors.ErrorCode) (int, bool) {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeValidation:
		return http.StatusBadRequest, false
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}
