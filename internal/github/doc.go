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

// Package github provides the REST API client used to enumerate metadata
// visible to a GitHub App installation: repositories, teams, members,
// collaborators, webhooks, Actions secrets and variables.
//
// The package exposes a Client interface for mocking, an AppClient for the
// unauthenticated installation token exchange, and a RESTClient whose
// transport injects a fresh installation token per request. List endpoints
// return one page at a time; callers compose full listings with page.Drain.
package github
