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

// Package snapshot defines the input documents consumed by the advisor:
// metrics snapshots, historical series, configuration snapshots, business
// context and business constraints.
//
// Every scalar input is a tri-state Value: Absent when the key is missing,
// Invalid when it is present with the wrong shape, and Valid otherwise.
// Decoding never fails on a single malformed field, so one bad reading only
// disables the rules that depend on it.
//
//	var m snapshot.MetricsSnapshot
//	_ = json.Unmarshal([]byte(`{"cpuAvg": 92.5, "memoryAvg": "high"}`), &m)
//	m.CPUAvg.IsValid()      // true
//	m.MemoryAvg.State()     // snapshot.Invalid
//	m.BatchBacklog.State()  // snapshot.Absent
package snapshot
