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
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// State describes whether an input field was supplied and usable.
type State int

const (
	// Absent means the key was missing or explicitly null.
	Absent State = iota
	// Invalid means the key was present but its value had the wrong shape.
	Invalid
	// Valid means the key was present and decoded into the expected type.
	Valid
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scalar is the set of types an input field may hold.
type Scalar interface {
	~float64 | ~int | ~bool
}

// Value is a tri-state input field. Decoding never fails on a wrong-typed
// value; the field is marked Invalid and the raw text is kept for diagnostics.
type Value[T Scalar] struct {
	v     T
	state State
	raw   string
}

// Of returns a Valid value.
func Of[T Scalar](v T) Value[T] {
	return Value[T]{v: v, state: Valid}
}

// InvalidOf returns an Invalid value carrying the raw input text.
func InvalidOf[T Scalar](raw string) Value[T] {
	return Value[T]{state: Invalid, raw: raw}
}

// Get returns the decoded value and its state. The value is the zero value
// unless the state is Valid.
func (v Value[T]) Get() (T, State) {
	return v.v, v.state
}

// State returns the presence state of the value.
func (v Value[T]) State() State { return v.state }

// IsValid reports whether the value was present and well-formed.
func (v Value[T]) IsValid() bool { return v.state == Valid }

// IsZero reports whether the value is absent. It drives omitzero and omitempty.
func (v Value[T]) IsZero() bool { return v.state == Absent }

// Raw returns the original text of an Invalid value.
func (v Value[T]) Raw() string { return v.raw }

// MarshalJSON implements json.Marshaler.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch v.state {
	case Valid:
		return json.Marshal(v.v)
	case Invalid:
		return json.Marshal(v.raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = Value[T]{}
		return nil
	}
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		if !integralInto(data, &t) {
			*v = InvalidOf[T](trimmed)
			return nil
		}
	}
	*v = Of(t)
	return nil
}

// integralInto accepts whole floats such as 100.0 for int fields.
func integralInto[T Scalar](data []byte, t *T) bool {
	p, ok := any(t).(*int)
	if !ok {
		return false
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != math.Trunc(f) {
		return false
	}
	*p = int(f)
	return true
}

// MarshalYAML implements yaml.Marshaler.
func (v Value[T]) MarshalYAML() (any, error) {
	switch v.state {
	case Valid:
		return v.v, nil
	case Invalid:
		return v.raw, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*v = Value[T]{}
		return nil
	}
	var t T
	if node.Kind != yaml.ScalarNode || node.Decode(&t) != nil {
		raw := node.Value
		if node.Kind != yaml.ScalarNode {
			raw = fmt.Sprintf("<%s>", kindName(node.Kind))
		}
		*v = InvalidOf[T](raw)
		return nil
	}
	*v = Of(t)
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
