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

// Package recommendation defines the Recommendation record shared by every
// stage of the advisor, together with its closed enumerations: Category,
// Priority, Effort, Source and Kind.
//
// Kind is assigned by the rule that creates a recommendation. Downstream
// stages switch on Kind (IsBatchJob, IsDatabase, IsPerformanceSensitive)
// instead of inspecting titles. Recommendations read from other producers
// may omit it; KindFromTitle recovers it from the title keywords once, at
// the boundary.
package recommendation
