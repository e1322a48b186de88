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
	"errors"
	"log/slog"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

func evaluateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "evaluate",
		EnableShellCompletion: true,
		Usage:                 "Generate prioritized recommendations from an AOS snapshot",
		Description: `Evaluate the rule catalog and trend analysis against:
  - a metrics snapshot (average CPU and memory, batch backlog, sessions, DB response)
  - metric history for trend detection
  - AOS configuration (COM+ recycle, max connections, database settings)
  - business context (peak window and current time)

At least one of --metrics, --history or --config is required.

# Examples

  aosadvisor evaluate --metrics metrics.json --config config.yaml --format table
  aosadvisor evaluate -m cm://aos/metrics --context context.yaml -o cm://aos/advice`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "metrics",
				Aliases: []string{"m"},
				Usage:   "path/URI to a metrics snapshot",
			},
			&cli.StringFlag{
				Name:  "history",
				Usage: "path/URI to a list of historical metric points",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path/URI to an AOS configuration snapshot",
			},
			&cli.StringFlag{
				Name:  "context",
				Usage: "path/URI to the business context (peak window, current time)",
			},
			thresholdsFlag(),
			failOnErrorFlag(),
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			if cmd.String("metrics") == "" && cmd.String("history") == "" && cmd.String("config") == "" {
				return errors.New("at least one of --metrics, --history or --config is required")
			}

			req, err := buildEvaluationRequest(cmd)
			if err != nil {
				return err
			}

			thresholds, err := loadThresholds(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			a := advisor.New(advisor.WithVersion(version), advisor.WithThresholds(thresholds))
			res := a.Evaluate(ctx, req)
			slog.Debug("evaluation complete",
				"status", res.Status,
				"recommendations", len(res.Recommendations),
				"diagnostics", len(res.Diagnostics))

			if err := writeOutput(ctx, cmd, res); err != nil {
				return err
			}
			return checkStatus(cmd, res.Status, res.Message)
		},
	}
}

func buildEvaluationRequest(cmd *cli.Command) (*advisor.EvaluationRequest, error) {
	metrics, err := loadOptional[snapshot.MetricsSnapshot](cmd, "metrics")
	if err != nil {
		return nil, err
	}
	history, err := loadOptional[snapshot.HistoricalSeries](cmd, "history")
	if err != nil {
		return nil, err
	}
	config, err := loadOptional[snapshot.ConfigurationSnapshot](cmd, "config")
	if err != nil {
		return nil, err
	}
	bctx, err := loadOptional[snapshot.BusinessContext](cmd, "context")
	if err != nil {
		return nil, err
	}

	req := &advisor.EvaluationRequest{
		Metrics:       metrics,
		Configuration: config,
		Context:       bctx,
	}
	if history != nil {
		req.History = *history
	}
	return req, nil
}
