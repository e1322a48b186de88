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
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	"github.com/NVIDIA/aos-advisor/pkg/header"
	"github.com/NVIDIA/aos-advisor/pkg/k8s/client"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// FieldManager identifies advisor writes in ConfigMap managed fields.
	FieldManager = "aosadvisor"

	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
	defaultDataKeyBase    = "data"
)

// ConfigMapWriter writes serialized documents to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient sets the client used for API calls instead of the shared one.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter creates a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DataKey returns the ConfigMap data key for a document kind, e.g.
// evaluationresult.yaml. Documents without a kind use data.<ext>.
func DataKey(kind header.Kind, format Format) string {
	base := strings.ToLower(kind.String())
	if base == "" {
		base = defaultDataKeyBase
	}
	return base + "." + format.Extension()
}

// Serialize stores doc in the ConfigMap. The ConfigMap carries:
//   - data.<kind>.<ext>: the serialized document
//   - data.format: the format used
//   - data.timestamp: the document timestamp, or the write time
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	c := w.client
	if c == nil {
		var err error
		if c, _, err = client.GetKubeClient(); err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}

	content, err := Encode(w.format, doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	var kind header.Kind
	version := "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := doc.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		kind = h.GetKind()
		md := h.GetMetadata()
		if v := md["version"]; v != "" {
			version = v
		}
		if ts := md["timestamp"]; ts != "" {
			timestamp = ts
		}
	}

	labels := map[string]string{
		"app.kubernetes.io/name":       "aos-advisor",
		"app.kubernetes.io/version":    version,
		"app.kubernetes.io/managed-by": FieldManager,
	}
	if kind != "" {
		labels["app.kubernetes.io/component"] = strings.ToLower(kind.String())
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      w.name,
			Namespace: w.namespace,
			Labels:    labels,
		},
		Data: map[string]string{
			DataKey(kind, w.format): string(content),
			configMapFormatKey:      string(w.format),
			configMapTimestampKey:   timestamp,
		},
	}

	slog.Info("writing ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"kind", kind)

	api := c.CoreV1().ConfigMaps(w.namespace)
	_, err = api.Create(writeCtx, cm, metav1.CreateOptions{FieldManager: FieldManager})
	if apierrors.IsAlreadyExists(err) {
		_, err = api.Update(writeCtx, cm, metav1.UpdateOptions{FieldManager: FieldManager})
	}
	if err != nil {
		return fmt.Errorf("failed to write ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ReadConfigMap returns the document stored in namespace/name and its format.
// The entry matching the recorded format is preferred; otherwise the
// ConfigMap must hold exactly one document entry.
func ReadConfigMap(ctx context.Context, c client.Interface, namespace, name string) ([]byte, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	var docKeys []string
	for k := range cm.Data {
		if k != configMapFormatKey && k != configMapTimestampKey {
			docKeys = append(docKeys, k)
		}
	}
	sort.Strings(docKeys)

	if f, ok := cm.Data[configMapFormatKey]; ok && !Format(f).IsUnknown() {
		suffix := "." + Format(f).Extension()
		for _, k := range docKeys {
			if strings.HasSuffix(k, suffix) {
				return []byte(cm.Data[k]), Format(f), nil
			}
		}
	}

	if len(docKeys) != 1 {
		return nil, "", fmt.Errorf("ConfigMap %s/%s must hold exactly one document, found %d", namespace, name, len(docKeys))
	}
	key := docKeys[0]
	return []byte(cm.Data[key]), FormatFromPath(key), nil
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
