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

// Package impact scores recommendations by expected value per unit of effort.
//
//	impactScore        = priorityWeight x confidence x effortAdjustment
//	implementationRisk = 0.5 + category + effort + stress, capped at 0.9
//
// Priority weights are Critical 4, High 3, Medium 2, Low 1. Effort adjustments
// are Low 1.2, Medium 1.0, High 0.8.
package impact
