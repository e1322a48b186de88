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

// Package serializer reads and writes advisor documents.
//
// # Formats
//
//   - JSON: indented, the default for unknown formats and extensions
//   - YAML: two-space indent
//   - Table: write-only; documents implementing Tabular choose their own
//     columns, anything else is flattened into FIELD/VALUE rows keyed by
//     JSON field names
//
// # Destinations
//
// NewFileWriter maps a location to a Serializer:
//
//	""  or "-"             stdout
//	cm://namespace/name    Kubernetes ConfigMap
//	anything else          local file
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, "cm://ops/aos-plan")
//	if err != nil {
//	    return err
//	}
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	return w.Serialize(ctx, result)
//
// A ConfigMap written by the advisor holds the document under
// <kind>.<ext> (for example evaluationresult.json) plus format and
// timestamp entries. ReadConfigMap accepts any ConfigMap holding a single
// document entry.
//
// # Sources
//
// FromFile loads a typed document from a local path, an http(s) URL, "-" for
// stdin, or a ConfigMap URI. The format comes from the extension; ConfigMap
// documents use the recorded format.
//
//	req, err := serializer.FromFile[advisor.EvaluationRequest]("request.yaml")
//
// # HTTP
//
// RespondJSON encodes a response body before writing headers so that a
// failed encode results in a clean 500 instead of a truncated document.
package serializer
