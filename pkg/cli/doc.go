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

// Package cli implements the aosadvisor command line.
//
// # Commands
//
// evaluate - Generate prioritized recommendations:
//
//	aosadvisor evaluate --metrics metrics.json [--history history.yaml] \
//	    [--config config.yaml] [--context context.yaml] [--thresholds t.yaml]
//
// Runs the rule catalog and trend analysis, lowers batch work during the
// business peak window, and sorts the result by priority and confidence.
//
// plan - Build an action plan from an evaluation:
//
//	aosadvisor plan --recommendations eval.yaml [--state metrics.json] \
//	    [--constraints constraints.yaml] [--with-impact]
//
// Orders recommendations so configuration changes come before the
// performance work that depends on them, assigns change windows and
// implementation steps, and lays the items out in dated phases.
//
// rules - List the rule catalog:
//
//	aosadvisor rules [--thresholds t.yaml] --format table
//
// # Global Flags
//
//	--log-level    debug, info, warn, error (default: info, env LOG_LEVEL)
//	--debug        same as --log-level debug
//	--help, -h     show command help
//	--version, -v  show version information
//
// # Inputs and Outputs
//
// Every input flag accepts a local path, an http(s) URL, "-" for stdin, or a
// ConfigMap URI (cm://namespace/name). --output accepts a path, "-" or a
// ConfigMap URI. --format is yaml (default), json or table.
//
// # Exit Codes
//
//	0  Success, including results with status Error unless --fail-on-error is set
//	1  Invalid arguments, unreadable input, or an Error result with --fail-on-error
//	2  Context canceled or timeout
package cli
