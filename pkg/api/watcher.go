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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	"github.com/fsnotify/fsnotify"
)

// configMapDataLink is the symlink kubelet swaps when a mounted ConfigMap changes.
const configMapDataLink = "..data"

// ThresholdsWatcher reloads a thresholds file when it changes and hands
// the validated result to apply. Invalid documents are logged and the
// previous thresholds stay in effect.
type ThresholdsWatcher struct {
	path     string
	debounce time.Duration
	apply    func(advisor.Thresholds)

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption configures a ThresholdsWatcher.
type WatcherOption func(*ThresholdsWatcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *ThresholdsWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewThresholdsWatcher returns a watcher for path.
func NewThresholdsWatcher(path string, apply func(advisor.Thresholds), opts ...WatcherOption) *ThresholdsWatcher {
	w := &ThresholdsWatcher{
		path:     filepath.Clean(path),
		debounce: defaults.ThresholdsReloadDebounce,
		apply:    apply,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load reads the file once and applies it when valid.
func (w *ThresholdsWatcher) Load() error {
	t, err := advisor.LoadThresholds(w.path, "")
	if err != nil {
		thresholdReloads.WithLabelValues(reloadFailure).Inc()
		return err
	}
	w.apply(t)
	thresholdReloads.WithLabelValues(reloadSuccess).Inc()
	slog.Info("thresholds loaded", "path", w.path)
	return nil
}

// Run watches the file's directory until ctx is done. Watching the
// directory survives editors that replace the file and ConfigMap updates.
func (w *ThresholdsWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() {
		if closeErr := fsw.Close(); closeErr != nil {
			slog.Warn("failed to close watcher", "error", closeErr)
		}
	}()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching thresholds", "path", w.path, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.relevant(event) {
				w.schedule()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Warn("thresholds watcher error", "error", err)
		}
	}
}

func (w *ThresholdsWatcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.path || filepath.Base(name) == configMapDataLink
}

// schedule restarts the debounce timer.
func (w *ThresholdsWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.Load(); err != nil {
			slog.Error("thresholds reload failed, keeping previous", "path", w.path, "error", err)
		}
	})
}

func (w *ThresholdsWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
