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

package advisor

import (
	"github.com/NVIDIA/aos-advisor/pkg/header"
	"github.com/NVIDIA/aos-advisor/pkg/rules"
)

// RuleCatalog lists the rules an Advisor evaluates.
type RuleCatalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Thresholds Thresholds   `json:"thresholds" yaml:"thresholds"`
	Rules      []rules.Info `json:"rules" yaml:"rules"`
}

// Catalog returns the rule listing as a versioned document.
func (a *Advisor) Catalog() *RuleCatalog {
	c := &RuleCatalog{
		Thresholds: a.thresholds,
		Rules:      a.Rules(),
	}
	c.Init(header.KindRuleCatalog, a.version, a.now())
	return c
}
