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

package github

import "context"

// Client defines the interface for interacting with GitHub's REST API.
// This interface allows for easy mocking in tests.
//
// Every list method fetches a single page: cursor is 1-based and pageSize is
// capped by the API at 100. A returned slice shorter than pageSize signals
// the final page. Full listings are composed with page.Drain.
type Client interface {
	// ListInstallationRepositories retrieves one page of the repositories
	// accessible to the installation.
	ListInstallationRepositories(ctx context.Context, cursor, pageSize int) ([]Repository, error)

	// ListOrgTeams retrieves one page of the organization's teams.
	ListOrgTeams(ctx context.Context, org string, cursor, pageSize int) ([]Team, error)

	// ListTeamMembers retrieves one page of a team's raw member list. The
	// list includes members visible through child teams; direct-membership
	// classification happens downstream.
	ListTeamMembers(ctx context.Context, org, teamSlug string, cursor, pageSize int) ([]TeamMember, error)

	// GetTeamMembership retrieves one user's role and state within a team.
	// The member list omits both, so exports look them up per member.
	GetTeamMembership(ctx context.Context, org, teamSlug, login string) (Membership, error)

	// ListCollaborators retrieves one page of a repository's collaborators.
	ListCollaborators(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Collaborator, error)

	// ListHooks retrieves one page of a repository's webhooks.
	ListHooks(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Hook, error)

	// ListSecrets retrieves one page of a repository's Actions secret
	// metadata. Secret values are never returned by the API.
	ListSecrets(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Secret, error)

	// ListVariables retrieves one page of a repository's Actions variables.
	ListVariables(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Variable, error)
}

// TokenSource supplies a valid installation token for outgoing requests.
// Implemented by auth.Manager.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
