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

import "time"

// CurrentVersion is the current credential state schema version.
// Increment this when making breaking changes to the CredentialState structure.
const CurrentVersion = 1

// CredentialState is the on-disk form of a cached installation credential.
type CredentialState struct {
	// Version indicates the schema version of this state file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the state content (excluding this field).
	// Used to detect corruption or tampering.
	Checksum string `json:"checksum"`

	// AppID identifies the GitHub App the credential belongs to.
	AppID string `json:"app_id"`

	// InstallationID identifies the installation the token is scoped to.
	InstallationID int64 `json:"installation_id"`

	// Token is the cached installation access token.
	Token string `json:"token"`

	// ExpiresAt is the server-reported token expiry.
	ExpiresAt time.Time `json:"expires_at"`

	// RefreshedAt records when the token was obtained.
	RefreshedAt time.Time `json:"refreshed_at"`
}
