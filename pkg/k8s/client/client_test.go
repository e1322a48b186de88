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

package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func resetSingleton() {
	clientOnce = sync.Once{}
	cachedClient = nil
	cachedConfig = nil
	clientErr = nil
}

func TestBuildKubeClient_InvalidPaths(t *testing.T) {
	tmp := t.TempDir()
	garbage := filepath.Join(tmp, "kubeconfig")
	if err := os.WriteFile(garbage, []byte("not a kubeconfig"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		kubeconfig string
		env        string
	}{
		{name: "explicit missing file", kubeconfig: "/nonexistent/path/to/kubeconfig"},
		{name: "env missing file", env: "/nonexistent/env/kubeconfig"},
		{name: "explicit garbage file", kubeconfig: garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKubeconfig, tt.env)

			_, _, err := BuildKubeClient(tt.kubeconfig)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "failed to build kube config") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveKubeconfig(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		t.Setenv(EnvKubeconfig, "/custom/kubeconfig")
		if got := ResolveKubeconfig(); got != "/custom/kubeconfig" {
			t.Errorf("ResolveKubeconfig() = %q", got)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvKubeconfig, "")
		t.Setenv("HOME", home)

		if got := ResolveKubeconfig(); got != "" {
			t.Errorf("expected empty path without ~/.kube/config, got %q", got)
		}

		want := filepath.Join(home, ".kube", "config")
		if err := os.MkdirAll(filepath.Dir(want), 0o700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(want, []byte{}, 0o600); err != nil {
			t.Fatal(err)
		}
		if got := ResolveKubeconfig(); got != want {
			t.Errorf("ResolveKubeconfig() = %q, want %q", got, want)
		}
	})
}

func TestGetKubeClient_Singleton(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)
	t.Setenv(EnvKubeconfig, "/nonexistent/kubeconfig")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = GetKubeClient()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			t.Fatalf("call %d: expected error", i)
		}
		//nolint:errorlint // identity check on the cached error
		if err != errs[0] {
			t.Errorf("call %d returned a different error instance", i)
		}
	}
}

func TestGetKubeClientWithConfig_Error(t *testing.T) {
	c, cfg, err := GetKubeClientWithConfig("/nonexistent/kubeconfig")
	if err == nil {
		t.Fatal("expected error")
	}
	if c != nil || cfg != nil {
		t.Error("expected nil client and config on error")
	}
}
