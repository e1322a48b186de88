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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThresholds(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		check   func(t *testing.T, th Thresholds)
	}{
		{
			name: "empty keeps defaults",
			doc:  "",
			check: func(t *testing.T, th Thresholds) {
				assert.Equal(t, DefaultThresholds(), th)
			},
		},
		{
			name: "partial yaml",
			doc:  "rules:\n  cpuPercent: 70\ntrends:\n  memoryChangePercent: 5\n",
			check: func(t *testing.T, th Thresholds) {
				assert.Equal(t, 70.0, th.Rules.CPUPercent)
				assert.Equal(t, 85.0, th.Rules.MemoryPercent)
				assert.Equal(t, 5.0, th.Trends.MemoryChangePercent)
				assert.Equal(t, 15.0, th.Trends.CPUChangePercent)
			},
		},
		{
			name: "json",
			doc:  `{"rules": {"minBatchThreads": 8}}`,
			check: func(t *testing.T, th Thresholds) {
				assert.Equal(t, 8, th.Rules.MinBatchThreads)
				assert.Equal(t, 100, th.Rules.MinMaxConnections)
			},
		},
		{name: "negative", doc: "rules:\n  cpuPercent: -1\n", wantErr: true},
		{name: "malformed", doc: "rules: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := ParseThresholds([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, th)
		})
	}
}

func TestThresholdsUnmarshalJSON(t *testing.T) {
	var th Thresholds
	require.NoError(t, json.Unmarshal([]byte(`{"trends": {"cpuChangePercent": 30}}`), &th))
	assert.Equal(t, 30.0, th.Trends.CPUChangePercent)
	assert.Equal(t, DefaultThresholds().Rules, th.Rules)
}

func TestLoadThresholds(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "thresholds.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("rules:\n  cpuPercent: 65\n"), 0o600))

	th, err := LoadThresholds(yamlPath, "")
	require.NoError(t, err)
	assert.Equal(t, 65.0, th.Rules.CPUPercent)
	assert.Equal(t, DefaultThresholds().Trends, th.Trends)

	jsonPath := filepath.Join(dir, "thresholds.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"rules": {"cpuPercent": 140}}`), 0o600))

	_, err = LoadThresholds(jsonPath, "")
	assert.Error(t, err, "cpuPercent above 100 must be rejected")

	_, err = LoadThresholds(filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err)
}
