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
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvKubeconfig names the environment variable consulted when no explicit
// kubeconfig path is given.
const EnvKubeconfig = "KUBECONFIG"

// Interface is the clientset surface used by the advisor. Tests substitute
// k8s.io/client-go/kubernetes/fake.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient Interface
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns the process-wide client, building it on first use
// from the discovered kubeconfig or the in-cluster service account.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		var cs *kubernetes.Clientset
		cs, cachedConfig, clientErr = BuildKubeClient("")
		if clientErr == nil {
			cachedClient = cs
		}
	})
	return cachedClient, cachedConfig, clientErr
}

// GetKubeClientWithConfig builds a new client for an explicit kubeconfig,
// bypassing the shared instance.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	cs, cfg, err := BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, nil, err
	}
	return cs, cfg, nil
}

// BuildKubeClient creates a client. An empty kubeconfig is resolved by
// ResolveKubeconfig; when that yields nothing the in-cluster config is used.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	path := kubeconfig
	if path == "" {
		path = ResolveKubeconfig()
	}

	var (
		config *rest.Config
		err    error
	)
	if path == "" {
		// Skip clientcmd here to avoid its "neither --kubeconfig nor --master" warning.
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

// ResolveKubeconfig returns $KUBECONFIG, else ~/.kube/config when it
// exists, else "".
func ResolveKubeconfig() string {
	if p := os.Getenv(EnvKubeconfig); p != "" {
		return p
	}
	p := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
