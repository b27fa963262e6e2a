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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidCredentials indicates GitHub App authentication failed
	// (bad signing key, revoked installation, or rejected installation token).
	// Maps to exit code 2.
	ErrInvalidCredentials = errors.New("invalid github app credentials")

	// ErrNotFound indicates the requested organization, repository, or team
	// does not exist or is not visible to the installation.
	// Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrClockSkew indicates the authoritative time source could not be
	// reached, so a signed assertion could not be safely constructed.
	// Maps to exit code 3.
	ErrClockSkew = errors.New("authoritative time source unavailable")

	// ErrCredentialExchange indicates the installation token exchange was
	// rejected by the API. Maps to exit code 2.
	ErrCredentialExchange = errors.New("installation token exchange failed")
)
