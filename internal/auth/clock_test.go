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

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

func TestServerClock_ParsesDateHeader(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe used method %s, want HEAD", r.Method)
		}
		w.Header().Set("Date", want.Format(http.TimeFormat))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	clock := NewServerClock(server.URL, server.Client())
	got, err := clock.Now(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestServerClock_MissingDateHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// httptest sets Date automatically; suppress it.
		w.Header()["Date"] = nil
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	clock := NewServerClock(server.URL, server.Client())
	_, err := clock.Now(context.Background())
	if !errors.Is(err, auditerrors.ErrClockSkew) {
		t.Fatalf("expected ErrClockSkew, got %v", err)
	}
}

func TestServerClock_InvalidEndpoint(t *testing.T) {
	// A malformed endpoint fails at request construction. The error must
	// still carry ErrClockSkew and keep the underlying cause visible.
	clock := NewServerClock("http://bad endpoint\n", nil)
	_, err := clock.Now(context.Background())
	if !errors.Is(err, auditerrors.ErrClockSkew) {
		t.Fatalf("expected ErrClockSkew, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid control character") {
		t.Errorf("error hides the construction failure: %v", err)
	}
}

func TestServerClock_UnreachableSource(t *testing.T) {
	// A closed server simulates an unreachable time source. Local time must
	// never be substituted: the error is fatal.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	clock := NewServerClock(server.URL, client)
	_, err := clock.Now(context.Background())
	if !errors.Is(err, auditerrors.ErrClockSkew) {
		t.Fatalf("expected ErrClockSkew, got %v", err)
	}
}
