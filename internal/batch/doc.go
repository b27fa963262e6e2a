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

// Package batch fans out per-entity follow-up requests with bounded
// concurrency. Entities are processed in strictly sequential groups; within a
// group all calls run concurrently and completion order is unspecified. The
// group size exists specifically to stay under upstream rate limits, with an
// optional token-bucket limiter for finer request smoothing.
package batch
