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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/serializer"
	"github.com/urfave/cli/v3"
)

// Flag constructors return fresh values: urfave flags keep parse state,
// so a flag value must not be shared between command trees.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output destination: file path, \"-\" for stdout, or ConfigMap URI (cm://namespace/name)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "path to kubeconfig used for cm:// inputs and outputs (defaults to KUBECONFIG or ~/.kube/config)",
	}
}

func thresholdsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "thresholds",
		Usage: "path/URI to a thresholds document overriding the rule and trend limits",
	}
}

func failOnErrorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "fail-on-error",
		Usage: "exit non-zero when the result status is Error",
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// loadThresholds returns the defaults unless --thresholds is set.
func loadThresholds(cmd *cli.Command) (advisor.Thresholds, error) {
	path := cmd.String("thresholds")
	if path == "" {
		return advisor.DefaultThresholds(), nil
	}
	return advisor.LoadThresholds(path, cmd.String("kubeconfig"))
}

// loadOptional reads a document of type T when the flag is set.
func loadOptional[T any](cmd *cli.Command, flag string) (*T, error) {
	path := cmd.String(flag)
	if path == "" {
		return nil, nil
	}
	doc, err := serializer.FromFileWithKubeconfig[T](path, cmd.String("kubeconfig"))
	if err != nil {
		return nil, fmt.Errorf("failed to load --%s %q: %w", flag, path, err)
	}
	return doc, nil
}

// writeOutput serializes doc to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, doc any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriter(format, cmd.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, doc)
}

// checkStatus turns an Error envelope into a command error when
// --fail-on-error is set.
func checkStatus(cmd *cli.Command, status advisor.Status, message string) error {
	if status == advisor.StatusError && cmd.Bool("fail-on-error") {
		return fmt.Errorf("result status %s: %s", status, message)
	}
	return nil
}
