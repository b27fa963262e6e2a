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

package batch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultGroupSize caps the number of in-flight enrichment calls. The
	// value is tuned to stay under GitHub's secondary rate limits for
	// concurrent requests.
	DefaultGroupSize = 5

	// DefaultGroupDelay is the pause between consecutive groups.
	DefaultGroupDelay = 100 * time.Millisecond
)

// EnrichFunc fetches follow-up detail for a single entity. It may fail; the
// failure is contained to that entity.
type EnrichFunc[T, D any] func(ctx context.Context, entity T) (D, error)

// FallbackFunc converts a per-entity failure into a degraded detail value,
// typically an empty set.
type FallbackFunc[T, D any] func(entity T, err error) D

// Progress observes batch completion. It is presentation-only: implementations
// must not influence control flow. Called once per settled group with the
// number of entities processed so far and the total.
type Progress func(processed, total int)

// Options configures an EnrichAll run. The zero value is usable; unset fields
// fall back to the defaults above.
type Options struct {
	// GroupSize is the number of entities enriched concurrently.
	GroupSize int
	// GroupDelay is the pause between groups, skipped after the last group.
	GroupDelay time.Duration
	// Limiter optionally smooths individual request rate inside groups.
	// Each enrichment call waits for a token before starting.
	Limiter *rate.Limiter
	// Progress, if set, is invoked after each group settles.
	Progress Progress
}

// Result pairs an entity with its enrichment outcome. Degraded is true when
// the enrichment failed and Detail holds the fallback value; Err retains the
// classified failure for aggregate reporting.
type Result[T, D any] struct {
	Entity   T
	Detail   D
	Degraded bool
	Err      error
}

// EnrichAll fans out per-entity follow-up calls in fixed-size concurrent
// groups. All members of a group settle (success or failure) before the next
// group starts, so the in-flight call count never exceeds GroupSize. A
// per-entity failure is converted to a degraded result via fallback and never
// aborts sibling entities or later groups.
//
// Results preserve input order. The second return value counts degraded
// entities so callers can log a single aggregate warning instead of one line
// per failure. The only error EnrichAll itself returns is context
// cancellation.
func EnrichAll[T, D any](
	ctx context.Context,
	entities []T,
	fn EnrichFunc[T, D],
	fallback FallbackFunc[T, D],
	opts Options,
) ([]Result[T, D], int, error) {
	groupSize := opts.GroupSize
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	groupDelay := opts.GroupDelay
	if groupDelay <= 0 {
		groupDelay = DefaultGroupDelay
	}

	results := make([]Result[T, D], len(entities))
	degraded := 0

	for start := 0; start < len(entities); start += groupSize {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		end := start + groupSize
		if end > len(entities) {
			end = len(entities)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			// Each task writes only to its own slot; no shared mutable
			// state inside a group.
			go func(slot int) {
				defer wg.Done()
				results[slot] = enrichOne(ctx, entities[slot], fn, fallback, opts.Limiter)
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if results[i].Degraded {
				degraded++
			}
		}
		if opts.Progress != nil {
			opts.Progress(end, len(entities))
		}

		// Pace between groups, skipped after the last one.
		if end < len(entities) {
			select {
			case <-time.After(groupDelay):
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			}
		}
	}

	return results, degraded, nil
}

func enrichOne[T, D any](
	ctx context.Context,
	entity T,
	fn EnrichFunc[T, D],
	fallback FallbackFunc[T, D],
	limiter *rate.Limiter,
) Result[T, D] {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return Result[T, D]{Entity: entity, Detail: fallback(entity, err), Degraded: true, Err: err}
		}
	}

	detail, err := fn(ctx, entity)
	if err != nil {
		return Result[T, D]{Entity: entity, Detail: fallback(entity, err), Degraded: true, Err: err}
	}
	return Result[T, D]{Entity: entity, Detail: detail}
}
