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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-audit/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sirseer-audit",
		Short: "Export GitHub organization metadata visible to an App installation",
		Long: `SirSeer Audit enumerates the metadata a GitHub App installation can see
(repositories, teams, webhooks, Actions secrets and variables) and exports it
as CSV for compliance review. It authenticates as the App, paginates through
the REST API, and classifies direct versus inherited team membership.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newExportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
