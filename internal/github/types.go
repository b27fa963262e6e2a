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

import "time"

// Repository is one repository visible to the installation.
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	Archived      bool      `json:"archived"`
	Visibility    string    `json:"visibility"`
	DefaultBranch string    `json:"default_branch"`
	HTMLURL       string    `json:"html_url"`
	PushedAt      time.Time `json:"pushed_at"`
}

// Owner returns the organization part of the repository's full name.
func (r Repository) Owner() string {
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[:i]
		}
	}
	return ""
}

// Collaborator is one entry in a repository's collaborator list.
type Collaborator struct {
	Login    string `json:"login"`
	RoleName string `json:"role_name"`
	Type     string `json:"type"`
}

// Team is one organization team. Parent is non-nil when the team is nested.
type Team struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Privacy     string   `json:"privacy"`
	Parent      *TeamRef `json:"parent"`
}

// ParentSlug returns the parent team's slug, or empty for root teams.
func (t Team) ParentSlug() string {
	if t.Parent == nil {
		return ""
	}
	return t.Parent.Slug
}

// TeamRef is the abbreviated team object nested under a child team's parent
// field.
type TeamRef struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

// TeamMember is one entry in a team's member list.
type TeamMember struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Membership is one user's membership in a team. The member list endpoint
// returns bare user objects; role and state come from this per-user lookup.
type Membership struct {
	Role  string `json:"role"`
	State string `json:"state"`
}

// Hook is one repository webhook. Delivery secrets are never included by the
// API and never requested.
type Hook struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	Events    []string   `json:"events"`
	Config    HookConfig `json:"config"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HookConfig is the delivery configuration of a webhook.
type HookConfig struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	InsecureSSL string `json:"insecure_ssl"`
}

// Secret is the metadata of one Actions secret. Values are never exposed by
// the API; only names and timestamps are exported.
type Secret struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Variable is the metadata of one Actions variable. The value field the API
// returns is deliberately not decoded.
type Variable struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// installationTokenResponse is the exchange endpoint's success payload.
type installationTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// apiMessage is the error payload GitHub attaches to non-2xx responses.
type apiMessage struct {
	Message string `json:"message"`
}
