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

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-audit/internal/batch"
	"github.com/sirseerhq/sirseer-audit/internal/github"
	"github.com/sirseerhq/sirseer-audit/internal/retry"
	"github.com/sirseerhq/sirseer-audit/internal/teams"
)

func newTeamsCommand(flags *exportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Export organization teams with direct-membership classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.org == "" {
				return fmt.Errorf("the teams export requires --org")
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := setupExport("teams", flags)
			if err != nil {
				return err
			}
			return runExportTeams(ctx, env, flags)
		},
	}
}

var teamColumns = []string{
	"slug", "name", "parent_slug", "member_login", "member_role", "member_state", "direct",
}

func runExportTeams(ctx context.Context, env *exportEnv, flags *exportFlags) error {
	org := flags.org

	orgTeams, err := drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg,
		func(ctx context.Context, cursor, size int) ([]github.Team, error) {
			return env.client.ListOrgTeams(ctx, org, cursor, size)
		})
	if err != nil {
		return fmt.Errorf("failed to list teams for %s: %w", org, err)
	}

	// Member enrichment is two-phase per team: drain the member list, then
	// look up each member's role and state, which the list endpoint omits.
	fetchMembers := func(ctx context.Context, team github.Team) ([]teams.Member, error) {
		list, err := drainPages(ctx, env.cfg.Defaults.PageSize, env.retryCfg,
			func(ctx context.Context, cursor, size int) ([]github.TeamMember, error) {
				return env.client.ListTeamMembers(ctx, org, team.Slug, cursor, size)
			})
		if err != nil {
			return nil, err
		}

		members := make([]teams.Member, 0, len(list))
		for _, m := range list {
			login := m.Login
			membership, err := retry.Do(ctx, func(ctx context.Context) (github.Membership, error) {
				return env.client.GetTeamMembership(ctx, org, team.Slug, login)
			}, env.retryCfg)
			if err != nil {
				return nil, err
			}
			members = append(members, teams.Member{
				Login: login,
				Role:  membership.Role,
				State: membership.State,
			})
		}
		return members, nil
	}
	fallback := func(team github.Team, err error) []teams.Member { return nil }

	results, degraded, err := batch.EnrichAll(ctx, orgTeams, fetchMembers, fallback, env.enrichOptions(len(orgTeams)))
	if err != nil {
		return err
	}
	env.reportDegraded("team members", degraded, len(orgTeams))

	// Classification needs every team's raw list in hand before any team can
	// be resolved, so the map happens only after enrichment completes.
	resolved := make([]teams.Team, 0, len(results))
	for _, result := range results {
		resolved = append(resolved, teams.Team{
			ID:         result.Entity.ID,
			Slug:       result.Entity.Slug,
			Name:       result.Entity.Name,
			ParentSlug: result.Entity.ParentSlug(),
			RawMembers: result.Detail,
		})
	}
	resolution := teams.Resolve(resolved)

	if err := env.writer.WriteHeader(teamColumns); err != nil {
		return err
	}
	for _, team := range resolved {
		directSet := make(map[string]struct{})
		for _, member := range resolution.DirectMembers[team.Slug] {
			directSet[member.Login] = struct{}{}
		}

		if len(team.RawMembers) == 0 {
			row := []string{team.Slug, team.Name, team.ParentSlug, "", "", "", ""}
			if err := env.writer.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, member := range team.RawMembers {
			_, direct := directSet[member.Login]
			row := []string{
				team.Slug, team.Name, team.ParentSlug,
				member.Login, member.Role, member.State,
				strconv.FormatBool(direct),
			}
			if err := env.writer.Write(row); err != nil {
				return err
			}
		}
	}

	return env.finish(flags, len(orgTeams), degraded)
}
