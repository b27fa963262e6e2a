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

package teams

// Member is one entry in a team's raw member list as reported by the API.
type Member struct {
	// Login is the member's username, the identity key for inheritance
	// classification.
	Login string

	// Role is the member's role within the team (member, maintainer).
	Role string

	// State is the membership state (active, pending).
	State string
}

// Team is a flat team record with an optional back-reference to its parent.
// Slug is the unique key; ParentSlug is empty for root teams.
type Team struct {
	ID         int64
	Slug       string
	Name       string
	ParentSlug string

	// RawMembers is the member list exactly as the API reports it, before
	// direct-membership classification. For a parent team this includes
	// everyone visible through child teams.
	RawMembers []Member
}

// Node is one entry in the resolved hierarchy: the team's parent (empty for
// roots) and the slugs of its immediate children.
type Node struct {
	Parent   string
	Children []string
}

// Hierarchy maps team slug to its resolved Node. It is a derived, read-only
// view of a team list; rebuild it whenever the list changes.
type Hierarchy map[string]*Node
