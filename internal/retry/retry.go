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

// Package retry provides a generic retry decorator with exponential backoff
// and jitter for fallible operations against the GitHub API.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirseerhq/sirseer-audit/internal/ghaerror"
)

// Config controls the retry behavior.
type Config struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth of the delay.
	MaxDelay time.Duration
	// RetryIf decides whether a failure is worth retrying. A nil RetryIf
	// retries only failures the classifier marks transient (network errors
	// and rate limits); auth and not-found rejections fail fast.
	RetryIf func(error) bool
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Do invokes op until it succeeds, the attempt budget is exhausted, or the
// context is canceled. The delay before attempt n+1 is
// min(BaseDelay * 2^(n-1), MaxDelay) plus up to 10% random jitter.
//
// The final error is returned unmodified so callers can match sentinels
// with errors.Is.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), config *Config) (T, error) {
	var zero T

	if config == nil {
		config = DefaultConfig()
	}
	retryIf := config.RetryIf
	if retryIf == nil {
		retryIf = ghaerror.IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryIf(err) {
			return zero, err
		}
		if attempt == config.MaxAttempts {
			break
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		select {
		case <-time.After(backoffDelay(config, attempt)):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}

// backoffDelay computes the sleep before the retry following the given
// attempt (1-based), with up to 10% jitter to avoid thundering herds.
func backoffDelay(config *Config, attempt int) time.Duration {
	delay := config.BaseDelay << (attempt - 1)
	if delay > config.MaxDelay || delay <= 0 {
		delay = config.MaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(delay)/10 + 1))
	return delay + jitter
}
