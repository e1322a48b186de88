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

// Package server provides the HTTP scaffolding used by aosadvisord.
//
// The server is a stateless HTTP listener. Each API route registered with
// WithHandler runs behind one middleware chain:
//
//	metrics -> version -> request id -> panic recovery -> rate limit -> body limit -> logging
//
// The chain provides:
//   - Prometheus RED metrics labelled by route pattern
//   - API version negotiation via the Accept header
//     (application/vnd.nvidia.aosa.v1+json), echoed as X-API-Version
//   - X-Request-Id propagation, generated when absent or not a UUID
//   - panic recovery that returns a structured 500
//   - token bucket rate limiting (golang.org/x/time/rate) with Retry-After
//   - request bodies capped at MaxRequestBytes
//
// System routes bypass the chain:
//
//	GET /         service name, version, readiness and route list
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until Run starts listening and after shutdown begins
//	GET /metrics  Prometheus exposition
//
// # Usage
//
//	s := server.New(
//	    server.WithName("aosadvisord"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "POST /v1/evaluate": h.Evaluate,
//	    }),
//	    server.WithTask(watcher.Run),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT and
// RATE_LIMIT_BURST from the environment. Invalid values are logged and the
// default is kept.
//
// # Errors
//
// Non-2xx responses carry an ErrorResponse with a code from pkg/errors,
// the request id, and whether the caller may retry.
package server
