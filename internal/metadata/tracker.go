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

// Package metadata tracks statistics during an export run and persists them
// as a JSON audit record alongside the exported data. The record gives
// enterprise consumers a trail of what each export covered: entity counts,
// API usage, degraded enrichments, and timing.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-audit/pkg/version"
)

// Tracker collects statistics during an export run. Create one at the start
// of a run; its methods are safe for concurrent use since enrichment tasks
// report API calls from multiple goroutines.
type Tracker struct {
	mu           sync.Mutex
	runID        string
	command      string
	organization string
	startTime    time.Time
	apiCallCount int
}

// New creates a tracker for the given export command and target org.
func New(command, organization string) *Tracker {
	return &Tracker{
		runID:        uuid.NewString(),
		command:      command,
		organization: organization,
		startTime:    time.Now(),
	}
}

// RunID returns the unique identifier for this run.
func (t *Tracker) RunID() string {
	return t.runID
}

// IncrementAPICall records that an API call was made. Wired into the REST
// client as its call observer.
func (t *Tracker) IncrementAPICall() {
	t.mu.Lock()
	t.apiCallCount++
	t.mu.Unlock()
}

// Finalize closes the run and produces its metadata record.
func (t *Tracker) Finalize(entityCount, degradedCount int) *RunMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completed := time.Now()
	return &RunMetadata{
		RunID:           t.runID,
		Command:         t.command,
		Organization:    t.organization,
		StartedAt:       t.startTime,
		CompletedAt:     completed,
		DurationSeconds: completed.Sub(t.startTime).Seconds(),
		APICallCount:    t.apiCallCount,
		EntityCount:     entityCount,
		DegradedCount:   degradedCount,
		ToolVersion:     version.Version,
	}
}

// WriteFile saves the metadata record as indented JSON.
func (m *RunMetadata) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run metadata: %w", err)
	}
	return nil
}
