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

// Package client provides the Kubernetes client used for ConfigMap input
// and output.
//
// GetKubeClient returns one shared client per process. Configuration is
// discovered in this order:
//
//  1. the KUBECONFIG environment variable
//  2. ~/.kube/config, when present
//  3. the in-cluster service account
//
// Commands that accept --kubeconfig call GetKubeClientWithConfig, which
// builds a separate client and leaves the shared one untouched.
//
//	c, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := c.CoreV1().ConfigMaps("monitoring").Get(ctx, "aos-metrics", metav1.GetOptions{})
package client
