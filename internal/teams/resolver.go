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

// Package teams resolves team hierarchies and classifies direct membership.
//
// GitHub reports a parent team's member list as including everyone visible
// through its child teams, while a child's list is never inflated by its
// parent. Classification therefore subtracts child members at a parent but
// never the other way around. That asymmetry encodes observed API behavior,
// not a universal team-hierarchy law; it is isolated in directMembers so it
// can be corrected in one place if a different upstream behaves differently.
package teams

import "sort"

// Resolution is the output of one resolve pass over a team list.
type Resolution struct {
	// Hierarchy is the parent/children adjacency for every team.
	Hierarchy Hierarchy

	// DirectMembers maps team slug to the subset of its raw members not
	// explainable by inheritance.
	DirectMembers map[string][]Member
}

// Resolve builds the parent→children adjacency for the given teams and
// classifies every team's direct members. Teams must carry their raw member
// lists already fetched; the bottom-up dependency (a parent's direct set
// needs its children's raw lists) is satisfied by having the full list in
// hand before classification starts.
func Resolve(list []Team) Resolution {
	hierarchy := BuildHierarchy(list)

	bySlug := make(map[string]Team, len(list))
	for _, team := range list {
		bySlug[team.Slug] = team
	}

	direct := make(map[string][]Member, len(list))
	for _, team := range list {
		direct[team.Slug] = directMembers(team, hierarchy[team.Slug], bySlug)
	}

	return Resolution{Hierarchy: hierarchy, DirectMembers: direct}
}

// BuildHierarchy derives the adjacency map from a flat team list. A parent
// reference to a slug absent from the list is kept as-is in Node.Parent but
// contributes no child edge. Children are sorted for deterministic output.
func BuildHierarchy(list []Team) Hierarchy {
	hierarchy := make(Hierarchy, len(list))
	for _, team := range list {
		hierarchy[team.Slug] = &Node{Parent: team.ParentSlug}
	}
	for _, team := range list {
		if team.ParentSlug == "" {
			continue
		}
		if parent, ok := hierarchy[team.ParentSlug]; ok {
			parent.Children = append(parent.Children, team.Slug)
		}
	}
	for _, node := range hierarchy {
		sort.Strings(node.Children)
	}
	return hierarchy
}

// directMembers classifies one team's raw members.
//
// Inheritance policy (one-directional, exclude-from-parent only):
//   - no parent, no children: every raw member is direct.
//   - no parent, has children: direct members are the raw list minus the
//     union of all children's raw member lists, because the API surfaces
//     child membership in the parent's own list.
//   - has a parent (children or not): every raw member is direct. A child's
//     list is never inflated by its parent, so nothing needs subtracting;
//     teams that are both child and parent still keep their full raw list.
func directMembers(team Team, node *Node, bySlug map[string]Team) []Member {
	if node == nil || node.Parent != "" || len(node.Children) == 0 {
		return append([]Member(nil), team.RawMembers...)
	}

	inherited := make(map[string]struct{})
	for _, childSlug := range node.Children {
		child, ok := bySlug[childSlug]
		if !ok {
			continue
		}
		for _, member := range child.RawMembers {
			inherited[member.Login] = struct{}{}
		}
	}

	direct := make([]Member, 0, len(team.RawMembers))
	for _, member := range team.RawMembers {
		if _, ok := inherited[member.Login]; ok {
			continue
		}
		direct = append(direct, member)
	}
	return direct
}
