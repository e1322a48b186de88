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

package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/NVIDIA/aos-advisor/pkg/errors"
	"gopkg.in/yaml.v3"
)

// timestampLayouts are tried in order when parsing historical timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 style timestamp. Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// HistoricalPoint is one sample of a historical series.
type HistoricalPoint struct {
	Timestamp time.Time                 `json:"timestamp" yaml:"timestamp"`
	Values    map[string]Value[float64] `json:"values,omitempty" yaml:"values,omitempty"`

	// rawTimestamp is kept when the source timestamp could not be parsed.
	rawTimestamp string
}

type historicalPointDoc struct {
	Timestamp string                    `json:"timestamp" yaml:"timestamp"`
	Values    map[string]Value[float64] `json:"values" yaml:"values"`
}

func (p *HistoricalPoint) fromDoc(doc historicalPointDoc) {
	p.Values = doc.Values
	p.Timestamp = time.Time{}
	p.rawTimestamp = ""
	if strings.TrimSpace(doc.Timestamp) == "" {
		return
	}
	ts, err := ParseTimestamp(doc.Timestamp)
	if err != nil {
		p.rawTimestamp = doc.Timestamp
		return
	}
	p.Timestamp = ts
}

// UnmarshalJSON implements json.Unmarshaler. Missing or unparseable
// timestamps are reported by Validate rather than failing the decode.
func (p *HistoricalPoint) UnmarshalJSON(data []byte) error {
	var doc historicalPointDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.fromDoc(doc)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *HistoricalPoint) UnmarshalYAML(node *yaml.Node) error {
	var doc historicalPointDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	p.fromDoc(doc)
	return nil
}

// Value returns the reading of a metric at this point.
func (p HistoricalPoint) Value(name string) Value[float64] {
	return p.Values[name]
}

// Validate reports a validation error when the point has no usable timestamp.
func (p HistoricalPoint) Validate() error {
	switch {
	case p.rawTimestamp != "":
		return apperrors.NewWithContext(apperrors.ErrCodeValidation,
			fmt.Sprintf("timestamp %q is not a valid ISO-8601 time", p.rawTimestamp),
			map[string]any{"field": "timestamp"})
	case p.Timestamp.IsZero():
		return apperrors.Validation("timestamp", "historical point has no timestamp")
	default:
		return nil
	}
}

// HistoricalSeries is a sequence of historical points in arbitrary order.
type HistoricalSeries []HistoricalPoint
