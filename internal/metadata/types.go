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

package metadata

import "time"

// RunMetadata describes one completed export run. Saved as JSON next to the
// output file so external tooling can audit what was exported, when, and how
// completely.
type RunMetadata struct {
	// RunID uniquely identifies this run for correlation across logs.
	RunID string `json:"run_id"`

	// Command is the export subcommand that ran (repos, teams, ...).
	Command string `json:"command"`

	// Organization is the target organization, when the command takes one.
	Organization string `json:"organization,omitempty"`

	// StartedAt and CompletedAt bound the run.
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// DurationSeconds is the elapsed wall time.
	DurationSeconds float64 `json:"duration_seconds"`

	// APICallCount is the number of API requests issued.
	APICallCount int `json:"api_call_count"`

	// EntityCount is the number of primary entities exported.
	EntityCount int `json:"entity_count"`

	// DegradedCount is the number of entities whose enrichment failed and
	// was replaced by an empty detail set.
	DegradedCount int `json:"degraded_count"`

	// ToolVersion records the sirseer-audit build that produced the export.
	ToolVersion string `json:"tool_version"`
}
