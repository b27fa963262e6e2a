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

package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CredentialFilePath returns the standard cache location for an installation's
// credential: <stateDir>/credential-<appID>-<installationID>.state.
func CredentialFilePath(stateDir, appID string, installationID int64) string {
	name := fmt.Sprintf("credential-%s-%d.state", appID, installationID)
	return filepath.Join(stateDir, name)
}

// SaveCredentialState atomically saves the credential state to disk with
// integrity validation. It uses a write-to-temp-and-rename pattern to ensure
// atomicity, and restricts file permissions since the payload is a live token.
func SaveCredentialState(cs *CredentialState, stateFile string) error {
	cs.Version = CurrentVersion

	checksum, err := calculateChecksum(cs)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	cs.Checksum = checksum

	stateDir := filepath.Dir(stateFile)
	if mkdirErr := os.MkdirAll(stateDir, 0o700); mkdirErr != nil {
		return fmt.Errorf("failed to create state directory: %w", mkdirErr)
	}

	tempFile := stateFile + ".tmp"

	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("failed to marshal credential state: %w", err)
	}

	if writeErr := os.WriteFile(tempFile, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write temporary state file: %w", writeErr)
	}

	if err := os.Rename(tempFile, stateFile); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// LoadCredentialState reads and validates the credential state from disk.
// It verifies the checksum and version compatibility. A missing file is an
// error the caller is expected to treat as "cold start".
func LoadCredentialState(stateFile string) (*CredentialState, error) {
	data, err := os.ReadFile(stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no cached credential at %s", stateFile)
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", stateFile, err)
	}

	var cs CredentialState
	if unmarshalErr := json.Unmarshal(data, &cs); unmarshalErr != nil {
		return nil, fmt.Errorf("credential state is corrupted (invalid JSON): %w", unmarshalErr)
	}

	if cs.Version != CurrentVersion {
		return nil, fmt.Errorf("credential state version (%d) is incompatible with current version (%d)",
			cs.Version, CurrentVersion)
	}

	savedChecksum := cs.Checksum
	cs.Checksum = "" // Clear for recalculation

	calculatedChecksum, err := calculateChecksum(&cs)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}

	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("credential state is corrupted (checksum mismatch)")
	}

	cs.Checksum = savedChecksum
	return &cs, nil
}

// DeleteCredentialState removes the cached credential, forcing the next run
// to perform a fresh exchange.
func DeleteCredentialState(stateFile string) error {
	err := os.Remove(stateFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}

// calculateChecksum computes the SHA256 of the state with an empty Checksum
// field.
func calculateChecksum(cs *CredentialState) (string, error) {
	clone := *cs
	clone.Checksum = ""

	data, err := json.Marshal(&clone)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state for checksum: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
