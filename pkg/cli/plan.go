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
	"log/slog"

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/NVIDIA/aos-advisor/pkg/defaults"
	"github.com/NVIDIA/aos-advisor/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Build a dependency-ordered action plan from an evaluation",
		Description: `Order the recommendations of a previous evaluation into an action plan.
Configuration changes are scheduled ahead of the performance changes that
depend on them. Each item gets a suggested change window and implementation
steps, and the plan is laid out in phases spaced --constraints phaseSpacingDays
apart (default 7).

# Examples

  aosadvisor evaluate -m metrics.json -o eval.yaml
  aosadvisor plan -r eval.yaml --state metrics.json --with-impact --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "recommendations",
				Aliases:  []string{"r"},
				Usage:    "path/URI to an evaluation result",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "path/URI to the current metrics snapshot, used to assess risk",
			},
			&cli.StringFlag{
				Name:  "constraints",
				Usage: "path/URI to business constraints (e.g. phaseSpacingDays)",
			},
			&cli.BoolFlag{
				Name:  "with-impact",
				Usage: "include impact assessments in the result",
			},
			failOnErrorFlag(),
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			req, err := buildPlanRequest(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			res := advisor.New(advisor.WithVersion(version)).Plan(ctx, req)
			slog.Debug("plan complete",
				"status", res.Status,
				"items", len(res.ActionPlan),
				"warnings", len(res.Warnings))

			if err := writeOutput(ctx, cmd, res); err != nil {
				return err
			}
			return checkStatus(cmd, res.Status, res.Message)
		},
	}
}

func buildPlanRequest(cmd *cli.Command) (*advisor.PlanRequest, error) {
	eval, err := loadOptional[advisor.EvaluationResult](cmd, "recommendations")
	if err != nil {
		return nil, err
	}
	if eval.Status == advisor.StatusError {
		slog.Warn("planning from an evaluation that failed", "message", eval.Message)
	}

	state, err := loadOptional[snapshot.MetricsSnapshot](cmd, "state")
	if err != nil {
		return nil, err
	}
	constraints, err := loadOptional[snapshot.BusinessConstraints](cmd, "constraints")
	if err != nil {
		return nil, err
	}

	req := &advisor.PlanRequest{
		Recommendations: eval.Recommendations,
		SystemState:     state,
		WithImpact:      cmd.Bool("with-impact"),
	}
	if constraints != nil {
		req.Constraints = *constraints
	}
	return req, nil
}
