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

// Package trend detects directional drift in historical series.
//
// For each tracked metric (cpuAvg, memoryAvg, batchBacklog) the analyzer
// averages the first three and last three valid samples of the
// timestamp-ordered series and computes
//
//	changePercent = (avg(recent) - avg(earlier)) / avg(earlier) * 100
//
// with changePercent = 0 when the earlier average is zero. A recommendation is
// emitted when the change is strictly greater than the metric's threshold.
package trend
