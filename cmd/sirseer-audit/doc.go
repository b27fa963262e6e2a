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

// Package main implements the sirseer-audit command-line interface.
// This tool authenticates as a GitHub App installation and exports the
// metadata the installation can see as CSV for compliance review.
//
// The CLI supports:
//   - Exporting repositories with their collaborators
//   - Exporting organization teams with direct-membership classification
//   - Exporting repository webhooks, Actions secrets, and Actions variables
//   - Customizable output destinations (stdout or file)
//   - App credentials via config file or environment variables
//   - Installation token caching across runs
//
// Usage:
//
//	sirseer-audit export <repos|teams|webhooks|secrets|variables> [flags]
//
// Example:
//
//	export GITHUB_APP_ID=12345
//	export GITHUB_APP_INSTALLATION_ID=678
//	export GITHUB_APP_PRIVATE_KEY=/etc/sirseer/app.pem
//	sirseer-audit export teams --org acme --output teams.csv
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
