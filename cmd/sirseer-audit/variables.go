// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-audit/internal/github"
)

func newVariablesCommand(flags *exportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "variables",
		Short: "Export Actions variable names across the installation",
		Long: `Export the names and timestamps of every repository Actions variable the
installation can see. Variable values are excluded from the export.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := setupExport("variables", flags)
			if err != nil {
				return err
			}
			return runRepoDetailExport(ctx, env, flags, "variables", variableColumns,
				env.client.ListVariables, variableRow)
		},
	}
}

var variableColumns = []string{"repository", "name", "created_at", "updated_at"}

func variableRow(repo github.Repository, variable github.Variable) []string {
	return []string{
		repo.FullName,
		variable.Name,
		variable.CreatedAt.Format(time.RFC3339),
		variable.UpdatedAt.Format(time.RFC3339),
	}
}
