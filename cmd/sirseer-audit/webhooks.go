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
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-audit/internal/github"
)

func newWebhooksCommand(flags *exportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "webhooks",
		Short: "Export repository webhooks across the installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := setupExport("webhooks", flags)
			if err != nil {
				return err
			}
			return runRepoDetailExport(ctx, env, flags, "webhooks", hookColumns,
				env.client.ListHooks, hookRow)
		},
	}
}

var hookColumns = []string{
	"repository", "hook_id", "active", "url", "content_type", "insecure_ssl", "events", "updated_at",
}

func hookRow(repo github.Repository, hook github.Hook) []string {
	return []string{
		repo.FullName,
		strconv.FormatInt(hook.ID, 10),
		strconv.FormatBool(hook.Active),
		hook.Config.URL,
		hook.Config.ContentType,
		hook.Config.InsecureSSL,
		strings.Join(hook.Events, ";"),
		hook.UpdatedAt.Format(time.RFC3339),
	}
}
