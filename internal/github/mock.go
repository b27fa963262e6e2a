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

import (
	"context"
	"fmt"
	"sync"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. List data is served with real pagination semantics so drain
// behavior can be exercised without a server.
type MockClient struct {
	mu sync.Mutex

	// Data served by the list methods.
	Repositories  []Repository
	Teams         []Team
	MembersBySlug map[string][]TeamMember
	MembershipFor map[string]Membership     // keyed by slug/login; absent keys default to an active member
	Collaborators map[string][]Collaborator // keyed by owner/repo
	Hooks         map[string][]Hook
	Secrets       map[string][]Secret
	Variables     map[string][]Variable

	// FailFor marks owner/repo or team slugs whose lookups fail with the
	// given error, for exercising degraded enrichment.
	FailFor map[string]error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// CallCount tracks list invocations across all methods.
	CallCount int
}

// NewMockClient creates an empty mock. Populate the data fields directly.
func NewMockClient() *MockClient {
	return &MockClient{
		MembersBySlug: make(map[string][]TeamMember),
		MembershipFor: make(map[string]Membership),
		Collaborators: make(map[string][]Collaborator),
		Hooks:         make(map[string][]Hook),
		Secrets:       make(map[string][]Secret),
		Variables:     make(map[string][]Variable),
		FailFor:       make(map[string]error),
	}
}

func (m *MockClient) precheck(ctx context.Context, key string) error {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", auditerrors.ErrInvalidCredentials)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", auditerrors.ErrNetworkFailure)
	}
	if key != "" {
		if err, ok := m.FailFor[key]; ok {
			return err
		}
	}
	return nil
}

// pageOf slices one page out of a full list using the same semantics as the
// real API.
func pageOf[T any](items []T, cursor, pageSize int) []T {
	start := (cursor - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ListInstallationRepositories implements Client.
func (m *MockClient) ListInstallationRepositories(ctx context.Context, cursor, pageSize int) ([]Repository, error) {
	if err := m.precheck(ctx, ""); err != nil {
		return nil, err
	}
	return pageOf(m.Repositories, cursor, pageSize), nil
}

// ListOrgTeams implements Client.
func (m *MockClient) ListOrgTeams(ctx context.Context, org string, cursor, pageSize int) ([]Team, error) {
	if err := m.precheck(ctx, org); err != nil {
		return nil, err
	}
	return pageOf(m.Teams, cursor, pageSize), nil
}

// ListTeamMembers implements Client.
func (m *MockClient) ListTeamMembers(ctx context.Context, org, teamSlug string, cursor, pageSize int) ([]TeamMember, error) {
	if err := m.precheck(ctx, teamSlug); err != nil {
		return nil, err
	}
	return pageOf(m.MembersBySlug[teamSlug], cursor, pageSize), nil
}

// GetTeamMembership implements Client.
func (m *MockClient) GetTeamMembership(ctx context.Context, org, teamSlug, login string) (Membership, error) {
	key := teamSlug + "/" + login
	if err := m.precheck(ctx, key); err != nil {
		return Membership{}, err
	}
	if membership, ok := m.MembershipFor[key]; ok {
		return membership, nil
	}
	return Membership{Role: "member", State: "active"}, nil
}

// ListCollaborators implements Client.
func (m *MockClient) ListCollaborators(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Collaborator, error) {
	key := owner + "/" + repo
	if err := m.precheck(ctx, key); err != nil {
		return nil, err
	}
	return pageOf(m.Collaborators[key], cursor, pageSize), nil
}

// ListHooks implements Client.
func (m *MockClient) ListHooks(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Hook, error) {
	key := owner + "/" + repo
	if err := m.precheck(ctx, key); err != nil {
		return nil, err
	}
	return pageOf(m.Hooks[key], cursor, pageSize), nil
}

// ListSecrets implements Client.
func (m *MockClient) ListSecrets(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Secret, error) {
	key := owner + "/" + repo
	if err := m.precheck(ctx, key); err != nil {
		return nil, err
	}
	return pageOf(m.Secrets[key], cursor, pageSize), nil
}

// ListVariables implements Client.
func (m *MockClient) ListVariables(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Variable, error) {
	key := owner + "/" + repo
	if err := m.precheck(ctx, key); err != nil {
		return nil, err
	}
	return pageOf(m.Variables[key], cursor, pageSize), nil
}
