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

package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/NVIDIA/aos-advisor/pkg/server"
)

// Handler serves the advisor routes. The advisor is swapped atomically
// when thresholds are reloaded; in-flight requests keep the one they
// started with.
type Handler struct {
	advisor atomic.Pointer[advisor.Advisor]
}

// NewHandler returns a Handler serving a.
func NewHandler(a *advisor.Advisor) *Handler {
	h := &Handler{}
	h.advisor.Store(a)
	return h
}

// Advisor returns the advisor currently serving requests.
func (h *Handler) Advisor() *advisor.Advisor {
	return h.advisor.Load()
}

// Swap replaces the advisor used by subsequent requests.
func (h *Handler) Swap(a *advisor.Advisor) {
	h.advisor.Store(a)
}

// Routes returns the API routes keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /v1/evaluate": h.Evaluate,
		"POST /v1/plan":     h.Plan,
		"GET /v1/rules":     h.Rules,
	}
}

// Evaluate handles POST /v1/evaluate. Engine failures are reported in the
// envelope with status 200; only undecodable bodies are rejected.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req advisor.EvaluationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.EvaluateHandlerTimeout)
	defer cancel()

	res := h.Advisor().Evaluate(ctx, &req)
	slog.Debug("evaluation served",
		"requestID", server.RequestIDFrom(r.Context()),
		"status", res.Status,
		"recommendations", len(res.Recommendations))

	serializer.RespondJSON(w, http.StatusOK, res)
}

// Plan handles POST /v1/plan.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req advisor.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.PlanHandlerTimeout)
	defer cancel()

	res := h.Advisor().Plan(ctx, &req)
	slog.Debug("plan served",
		"requestID", server.RequestIDFrom(r.Context()),
		"status", res.Status,
		"items", len(res.ActionPlan))

	serializer.RespondJSON(w, http.StatusOK, res)
}

// Rules handles GET /v1/rules.
func (h *Handler) Rules(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, h.Advisor().Catalog())
}

// decodeBody reads a JSON document into v, writing a 400 or 413 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), false, nil)
			return false
		}
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"failed to read request body", false, map[string]any{"error": err.Error()})
		return false
	}

	if len(body) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"request body is required", false, nil)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"malformed JSON request", false, map[string]any{"error": err.Error()})
		return false
	}
	return true
}
