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
	"errors"
	"fmt"
	"testing"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

func TestMockClient_Pagination(t *testing.T) {
	mock := NewMockClient()
	for i := 0; i < 7; i++ {
		mock.Repositories = append(mock.Repositories, Repository{
			ID:       int64(i + 1),
			FullName: fmt.Sprintf("acme/repo-%d", i+1),
		})
	}

	tests := []struct {
		cursor   int
		pageSize int
		wantLen  int
	}{
		{1, 3, 3},
		{2, 3, 3},
		{3, 3, 1},
		{4, 3, 0},
		{1, 100, 7},
		{2, 100, 0},
	}

	for _, tt := range tests {
		page, err := mock.ListInstallationRepositories(context.Background(), tt.cursor, tt.pageSize)
		if err != nil {
			t.Fatalf("page %d: %v", tt.cursor, err)
		}
		if len(page) != tt.wantLen {
			t.Errorf("cursor=%d pageSize=%d: got %d items, want %d",
				tt.cursor, tt.pageSize, len(page), tt.wantLen)
		}
	}
}

func TestMockClient_FailFor(t *testing.T) {
	mock := NewMockClient()
	mock.Collaborators["acme/api"] = []Collaborator{{Login: "alice"}}
	mock.FailFor["acme/web"] = auditerrors.ErrNotFound

	if _, err := mock.ListCollaborators(context.Background(), "acme", "api", 1, 100); err != nil {
		t.Errorf("unmarked repo should succeed: %v", err)
	}
	if _, err := mock.ListCollaborators(context.Background(), "acme", "web", 1, 100); !errors.Is(err, auditerrors.ErrNotFound) {
		t.Errorf("marked repo error = %v, want ErrNotFound", err)
	}
	if mock.CallCount != 2 {
		t.Errorf("call count = %d, want 2", mock.CallCount)
	}
}

func TestMockClient_BehaviorFlags(t *testing.T) {
	mock := NewMockClient()
	mock.ShouldFailAuth = true
	if _, err := mock.ListOrgTeams(context.Background(), "acme", 1, 100); !errors.Is(err, auditerrors.ErrInvalidCredentials) {
		t.Errorf("auth flag error = %v, want ErrInvalidCredentials", err)
	}

	mock.ShouldFailAuth = false
	mock.ShouldFailNetwork = true
	if _, err := mock.ListOrgTeams(context.Background(), "acme", 1, 100); !errors.Is(err, auditerrors.ErrNetworkFailure) {
		t.Errorf("network flag error = %v, want ErrNetworkFailure", err)
	}
}
