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

// Package auth owns the GitHub App credential lifecycle: signing short-lived
// app assertions, exchanging them for installation tokens, and caching the
// resulting credential until it nears expiry.
//
// Assertion claims are built from server time obtained via an authoritative
// clock rather than the local wall clock, because GitHub validates assertion
// timestamps and rejects clock-skewed ones with opaque errors.
package auth
