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

import "context"

// ConfigMapURIScheme prefixes input and output locations stored in a
// Kubernetes ConfigMap, as in cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// StdinPath reads an input document from standard input.
const StdinPath = "-"

// Serializer writes an advisor document to some destination.
// The context bounds destinations that perform network I/O.
type Serializer interface {
	Serialize(ctx context.Context, doc any) error
}

// Closer is implemented by serializers that hold resources.
type Closer interface {
	Close() error
}

// Tabular is implemented by documents that render as a table. Documents
// that do not implement it are flattened into FIELD/VALUE rows.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}
