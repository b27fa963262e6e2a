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

// Package ghaerror classifies failures from the GitHub API into a closed set
// of categories. Callers switch on the category to decide whether to retry,
// degrade gracefully, or abort, instead of inspecting raw status codes or
// error strings at every call site.
//
// Classification checks the error chain for the application's sentinel errors
// first, then falls back to string-based heuristics for errors produced by
// lower layers (net/http, DNS, TLS) that carry no sentinel.
package ghaerror
