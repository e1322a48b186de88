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

package serializer

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})

	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("unexpected body: %v", got)
	}
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "bad") {
		t.Error("partial document leaked into response")
	}
}

func TestHttpReader_Read(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/metrics.json":
			if ua := r.Header.Get("User-Agent"); ua != HttpReaderUserAgent {
				t.Errorf("User-Agent = %q", ua)
			}
			_, _ = w.Write([]byte(`{"metrics": {"cpuAvg": 70}}`))
		case "/big.json":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		data, err := NewHttpReader().Read(srv.URL + "/metrics.json")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if !strings.Contains(string(data), "cpuAvg") {
			t.Errorf("unexpected body: %s", data)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := NewHttpReader().Read(srv.URL + "/missing"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := NewHttpReader(WithMaxBytes(16)).Read(srv.URL + "/big.json"); err == nil {
			t.Error("expected size error")
		}
	})

	t.Run("empty url", func(t *testing.T) {
		if _, err := NewHttpReader().Read(""); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewHttpReader().ReadWithContext(ctx, srv.URL+"/metrics.json"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("from file url", func(t *testing.T) {
		req, err := FromFile[testRequest](srv.URL + "/metrics.json")
		if err != nil {
			t.Fatalf("FromFile failed: %v", err)
		}
		if v, _ := req.Metrics.CPUAvg.Get(); v != 70 {
			t.Errorf("cpuAvg = %v, want 70", v)
		}
	})
}

func TestHttpReader_Options(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	r := NewHttpReader(
		WithUserAgent("aosadvisor-test/2"),
		WithTotalTimeout(3*time.Second),
		WithInsecureSkipVerify(true),
		WithClient(custom),
	)
	if r.UserAgent != "aosadvisor-test/2" {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
	if r.Client != custom {
		t.Error("custom client not used")
	}

	d := NewHttpReader(WithTotalTimeout(3 * time.Second))
	if d.Client.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", d.Client.Timeout)
	}
	tr, ok := d.Client.Transport.(*http.Transport)
	if !ok || tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("default transport should verify certificates")
	}
}
