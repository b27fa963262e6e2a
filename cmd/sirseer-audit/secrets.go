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

func newSecretsCommand(flags *exportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "secrets",
		Short: "Export Actions secret names across the installation",
		Long: `Export the names and timestamps of every repository Actions secret the
installation can see. Secret values are never returned by the API and never
requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := setupExport("secrets", flags)
			if err != nil {
				return err
			}
			return runRepoDetailExport(ctx, env, flags, "secrets", secretColumns,
				env.client.ListSecrets, secretRow)
		},
	}
}

var secretColumns = []string{"repository", "name", "created_at", "updated_at"}

func secretRow(repo github.Repository, secret github.Secret) []string {
	return []string{
		repo.FullName,
		secret.Name,
		secret.CreatedAt.Format(time.RFC3339),
		secret.UpdatedAt.Format(time.RFC3339),
	}
}
