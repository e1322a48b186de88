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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is an offset from midnight.
type TimeOfDay time.Duration

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// ParseTimeOfDay accepts "HH:MM", "HH:MM:SS" or a full timestamp, in which
// case the clock portion of that timestamp is used.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time of day")
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return clockOf(t), nil
		}
	}
	if t, err := ParseTimestamp(s); err == nil {
		return clockOf(t), nil
	}
	return 0, fmt.Errorf("unrecognized time of day %q", s)
}

func clockOf(t time.Time) TimeOfDay {
	h, m, sec := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second)
}

// PeakWindow bounds the business-critical period of the day.
type PeakWindow struct {
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

// Contains reports whether t lies within [start, end] inclusive. Windows with
// start after end wrap past midnight.
func (w PeakWindow) Contains(t TimeOfDay) (bool, error) {
	start, err := ParseTimeOfDay(w.Start)
	if err != nil {
		return false, fmt.Errorf("peakWindow.start: %w", err)
	}
	end, err := ParseTimeOfDay(w.End)
	if err != nil {
		return false, fmt.Errorf("peakWindow.end: %w", err)
	}
	if start <= end {
		return t >= start && t <= end, nil
	}
	return t >= start || t <= end, nil
}

// BusinessContext carries optional facts used to adjust priorities.
type BusinessContext struct {
	PeakWindow  *PeakWindow `json:"peakWindow,omitempty" yaml:"peakWindow,omitempty"`
	CurrentTime string      `json:"currentTime,omitempty" yaml:"currentTime,omitempty"`
}

// Active reports whether enough context is present to apply adjustments.
func (c *BusinessContext) Active() bool {
	return c != nil && c.PeakWindow != nil &&
		strings.TrimSpace(c.PeakWindow.Start) != "" &&
		strings.TrimSpace(c.PeakWindow.End) != "" &&
		strings.TrimSpace(c.CurrentTime) != ""
}

// BusinessConstraints is a free-form mapping of scheduling hints for the planner.
type BusinessConstraints map[string]any

// ConstraintPhaseSpacingDays is the key that overrides the timeline phase spacing.
const ConstraintPhaseSpacingDays = "phaseSpacingDays"

// PositiveInt returns a positive integer stored under key. Strings and whole
// floats are accepted so that JSON and YAML documents behave the same.
// Values outside the int32 range are rejected.
func (c BusinessConstraints) PositiveInt(key string) (int, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	var n int
	switch t := v.(type) {
	case int:
		if t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		n = t
	case int64:
		if t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		n = int(t)
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0, false
		}
		n = int(t)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		if err != nil {
			return 0, false
		}
		n = int(parsed)
	default:
		return 0, false
	}
	return n, n > 0
}
