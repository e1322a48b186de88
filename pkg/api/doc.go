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

// Package api wires the advisor into the aosadvisord HTTP daemon.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/aos-advisor/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited, body capped at 1 MiB):
//   - POST /v1/evaluate - EvaluationRequest in, EvaluationResult out
//   - POST /v1/plan     - PlanRequest in, PlanResult out
//   - GET  /v1/rules    - RuleCatalog for the active thresholds
//
// System endpoints (no rate limiting):
//   - GET /        - service info and route list
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Results always come back with 200 and carry their own status. An engine
// failure is an envelope with "status": "Error". Bodies that are not valid
// JSON are rejected with 400 and code INVALID_REQUEST.
//
// Example:
//
//	curl -s -X POST localhost:8080/v1/evaluate -d '{
//	  "metrics": {"cpuAvg": 92, "memoryAvg": 71, "batchBacklog": 4},
//	  "configuration": {"database": {"auto-update-statistics": false}}
//	}'
//
// # Thresholds
//
// When THRESHOLDS_FILE is set the daemon loads it at startup and watches it
// with fsnotify. Valid changes swap in a new advisor atomically; invalid
// ones are logged and counted in aosa_threshold_reloads_total{result="failure"}.
package api
