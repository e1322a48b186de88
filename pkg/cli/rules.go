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

	"github.com/NVIDIA/aos-advisor/pkg/advisor"
	"github.com/urfave/cli/v3"
)

func rulesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "rules",
		EnableShellCompletion: true,
		Usage:                 "List the rule catalog",
		Description: `List every rule with its category, base priority, confidence and the
condition it checks under the active thresholds.

  aosadvisor rules --format table
  aosadvisor rules --thresholds strict.yaml`,
		Flags: []cli.Flag{
			thresholdsFlag(),
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			thresholds, err := loadThresholds(cmd)
			if err != nil {
				return err
			}
			a := advisor.New(advisor.WithVersion(version), advisor.WithThresholds(thresholds))
			return writeOutput(ctx, cmd, a.Catalog())
		},
	}
}
