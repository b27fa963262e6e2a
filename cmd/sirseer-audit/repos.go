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
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-audit/internal/batch"
	"github.com/sirseerhq/sirseer-audit/internal/github"
)

func newReposCommand(flags *exportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "Export repositories visible to the installation, with collaborators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := setupExport("repos", flags)
			if err != nil {
				return err
			}
			return runExportRepos(ctx, env, flags)
		},
	}
}

var repoColumns = []string{
	"full_name", "visibility", "archived", "default_branch", "pushed_at",
	"collaborator", "role",
}

func runExportRepos(ctx context.Context, env *exportEnv, flags *exportFlags) error {
	repos, err := drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg, env.client.ListInstallationRepositories)
	if err != nil {
		return fmt.Errorf("failed to list installation repositories: %w", err)
	}

	// Collaborator lookups fan out per repository; each one is itself a
	// full pagination drain.
	fetchCollaborators := func(ctx context.Context, repo github.Repository) ([]github.Collaborator, error) {
		return drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg,
			func(ctx context.Context, cursor, size int) ([]github.Collaborator, error) {
				return env.client.ListCollaborators(ctx, repo.Owner(), repo.Name, cursor, size)
			})
	}
	fallback := func(repo github.Repository, err error) []github.Collaborator { return nil }

	results, degraded, err := batch.EnrichAll(ctx, repos, fetchCollaborators, fallback, env.enrichOptions(len(repos)))
	if err != nil {
		return err
	}
	env.reportDegraded("collaborators", degraded, len(repos))

	if err := env.writer.WriteHeader(repoColumns); err != nil {
		return err
	}
	for _, result := range results {
		repo := result.Entity
		base := []string{
			repo.FullName,
			repo.Visibility,
			strconv.FormatBool(repo.Archived),
			repo.DefaultBranch,
			repo.PushedAt.Format(time.RFC3339),
		}
		if len(result.Detail) == 0 {
			if err := env.writer.Write(append(base, "", "")); err != nil {
				return err
			}
			continue
		}
		for _, collaborator := range result.Detail {
			row := append(append([]string{}, base...), collaborator.Login, collaborator.RoleName)
			if err := env.writer.Write(row); err != nil {
				return err
			}
		}
	}

	return env.finish(flags, len(repos), degraded)
}
