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

package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

// fastConfig returns a config with millisecond backoff suitable for tests.
func fastConfig(maxAttempts int) *Config {
	return &Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		RetryIf:     func(error) bool { return true },
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", fmt.Errorf("page fetch: %w", auditerrors.ErrNetworkFailure)
		}
		return "ok", nil
	}

	got, err := Do(context.Background(), op, fastConfig(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
	if calls != 3 {
		t.Errorf("operation invoked %d times, want 3", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	failure := fmt.Errorf("page fetch: %w", auditerrors.ErrNetworkFailure)
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, failure
	}

	_, err := Do(context.Background(), op, fastConfig(3))
	if !errors.Is(err, auditerrors.ErrNetworkFailure) {
		t.Fatalf("final error not returned unmodified: %v", err)
	}
	if calls != 3 {
		t.Errorf("operation invoked %d times, want exactly 3", calls)
	}
}

func TestDo_SucceedsImmediately(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	got, err := Do(context.Background(), op, fastConfig(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 1 {
		t.Errorf("got %d after %d calls, want 42 after 1", got, calls)
	}
}

func TestDo_DefaultPredicateSkipsPermanentFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", auditerrors.ErrNotFound},
		{"auth", auditerrors.ErrInvalidCredentials},
		{"exchange", auditerrors.ErrCredentialExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			op := func(ctx context.Context) (int, error) {
				calls++
				return 0, fmt.Errorf("listing: %w", tt.err)
			}

			config := &Config{
				MaxAttempts: 3,
				BaseDelay:   time.Millisecond,
				MaxDelay:    5 * time.Millisecond,
			}
			_, err := Do(context.Background(), op, config)
			if !errors.Is(err, tt.err) {
				t.Fatalf("error not propagated: %v", err)
			}
			if calls != 1 {
				t.Errorf("permanent failure retried: %d calls, want 1", calls)
			}
		})
	}
}

func TestDo_DefaultPredicateRetriesTransientFailures(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, fmt.Errorf("listing: %w", auditerrors.ErrRateLimit)
		}
		return 7, nil
	}

	config := &Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
	got, err := Do(context.Background(), op, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 || calls != 2 {
		t.Errorf("got %d after %d calls, want 7 after 2", got, calls)
	}
}

func TestDo_ContextCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, auditerrors.ErrNetworkFailure
	}

	config := &Config{
		MaxAttempts: 5,
		BaseDelay:   time.Hour, // only cancellation can end the wait
		MaxDelay:    time.Hour,
		RetryIf:     func(error) bool { return true },
	}
	_, err := Do(ctx, op, config)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("operation invoked %d times after cancellation, want 1", calls)
	}
}

func TestDo_NilConfigUsesDefaults(t *testing.T) {
	got, err := Do(context.Background(), func(ctx context.Context) (string, error) {
		return "ok", nil
	}, nil)
	if err != nil || got != "ok" {
		t.Fatalf("got (%q, %v), want (ok, nil)", got, err)
	}
}

func TestBackoffDelay_Growth(t *testing.T) {
	config := &Config{
		BaseDelay: time.Second,
		MaxDelay:  10 * time.Second,
	}

	tests := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{1, time.Second, 1100 * time.Millisecond},
		{2, 2 * time.Second, 2200 * time.Millisecond},
		{3, 4 * time.Second, 4400 * time.Millisecond},
		{4, 8 * time.Second, 8800 * time.Millisecond},
		{5, 10 * time.Second, 11 * time.Second}, // capped at MaxDelay
		{6, 10 * time.Second, 11 * time.Second},
	}

	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			delay := backoffDelay(config, tt.attempt)
			if delay < tt.min || delay > tt.max {
				t.Fatalf("attempt %d: delay %v outside [%v, %v]", tt.attempt, delay, tt.min, tt.max)
			}
		}
	}
}
