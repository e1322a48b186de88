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

// Package defaults provides centralized timeout and limit constants for the advisor.
//
// # Timeout Categories
//
//   - Handler timeouts: evaluate and plan HTTP requests
//   - Server timeouts: HTTP server configuration
//   - HTTP client timeouts: downloading remote input documents
//   - ConfigMap timeouts: cm://namespace/name inputs and outputs
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.EvaluateHandlerTimeout)
//	defer cancel()
package defaults
