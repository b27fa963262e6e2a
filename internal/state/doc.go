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

// Package state persists the installation credential between runs so warm
// starts reuse an unexpired token instead of minting a new assertion.
//
// Files are written atomically (write-to-temp-and-rename) with a SHA-256
// checksum; a corrupted or version-incompatible file is reported as an error
// and callers fall back to a fresh exchange.
package state
