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

// Package page provides a generic cursor-based pagination engine that drains
// a paginated collection endpoint into a complete in-memory slice.
package page

import (
	"context"
	"fmt"
)

// DefaultSize is the page size used when the caller passes zero. It matches
// the GitHub REST API's per_page ceiling.
const DefaultSize = 100

// MaxSize is the hard ceiling on page size accepted by the API.
const MaxSize = 100

// FetchFunc fetches one page of results. The cursor is 1-based and advances
// by one per call. Implementations are expected to return at most pageSize
// items; returning fewer signals the final page.
type FetchFunc[T any] func(ctx context.Context, cursor, pageSize int) ([]T, error)

// Drain repeatedly invokes fetch with increasing cursors, starting at 1, and
// accumulates results until a short page signals completion. Pages are
// requested and appended strictly in cursor order.
//
// When the total item count is an exact multiple of pageSize, the terminating
// condition costs one extra fetch that returns an empty page. That trade is
// deliberate: the endpoints drained here expose no total count, so the only
// alternative is an artificial page cap.
//
// Any fetch failure is propagated unmodified. Retries are not performed here;
// compose them by wrapping fetch with retry.Do before handing it to Drain.
func Drain[T any](ctx context.Context, fetch FetchFunc[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultSize
	}
	if pageSize > MaxSize {
		return nil, fmt.Errorf("page size %d exceeds maximum %d", pageSize, MaxSize)
	}

	var all []T
	for cursor := 1; ; cursor++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := fetch(ctx, cursor, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		if len(items) < pageSize {
			return all, nil
		}
	}
}
