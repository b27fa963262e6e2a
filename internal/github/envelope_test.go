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

import "testing"

func TestDecodeList_BareArray(t *testing.T) {
	body := []byte(`[{"slug":"platform"},{"slug":"platform-backend"}]`)

	teams, err := decodeList[Team](body, "teams")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 || teams[0].Slug != "platform" {
		t.Errorf("decoded %v, want two teams starting with platform", teams)
	}
}

func TestDecodeList_WrappedEnvelope(t *testing.T) {
	body := []byte(`{"total_count":2,"secrets":[{"name":"DEPLOY_KEY"},{"name":"NPM_TOKEN"}]}`)

	secrets, err := decodeList[Secret](body, "secrets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secrets) != 2 || secrets[0].Name != "DEPLOY_KEY" {
		t.Errorf("decoded %v, want two secrets starting with DEPLOY_KEY", secrets)
	}
}

func TestDecodeList_WhitespacePrefix(t *testing.T) {
	body := []byte("\n\t [1, 2, 3]")

	nums, err := decodeList[int](body, "items")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nums) != 3 {
		t.Errorf("decoded %d items, want 3", len(nums))
	}
}

func TestDecodeList_MissingField(t *testing.T) {
	body := []byte(`{"total_count":0,"repositories":[]}`)

	if _, err := decodeList[Secret](body, "secrets"); err == nil {
		t.Fatal("expected error when envelope lacks the named field")
	}
}

func TestDecodeList_EmptyBody(t *testing.T) {
	if _, err := decodeList[int](nil, "items"); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestTeamParentSlug(t *testing.T) {
	if got := (Team{}).ParentSlug(); got != "" {
		t.Errorf("root team parent slug = %q, want empty", got)
	}
	child := Team{Parent: &TeamRef{Slug: "platform"}}
	if got := child.ParentSlug(); got != "platform" {
		t.Errorf("child parent slug = %q, want platform", got)
	}
}

func TestRepositoryOwner(t *testing.T) {
	tests := []struct {
		fullName string
		want     string
	}{
		{"acme/widgets", "acme"},
		{"acme/nested/odd", "acme"},
		{"noslash", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Repository{FullName: tt.fullName}).Owner(); got != tt.want {
			t.Errorf("Owner(%q) = %q, want %q", tt.fullName, got, tt.want)
		}
	}
}
