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
	"fmt"
	"net/http"
	"time"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

// Clock supplies the wall-clock time used to build assertion claims.
type Clock interface {
	// Now returns the current time from the clock's source. It must fail
	// rather than guess when the source is unreachable.
	Now(ctx context.Context) (time.Time, error)
}

// ServerClock reads authoritative time from the API server's Date response
// header. Assertion validation is clock-skew-sensitive, so local wall-clock
// time is deliberately never used as a fallback: an unreachable source is a
// hard failure.
type ServerClock struct {
	endpoint   string
	httpClient *http.Client
}

// NewServerClock creates a ServerClock probing the given API base URL.
func NewServerClock(endpoint string, httpClient *http.Client) *ServerClock {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ServerClock{endpoint: endpoint, httpClient: httpClient}
}

// Now issues an unauthenticated HEAD request to the API root and parses the
// Date header. Any failure maps to ErrClockSkew.
func (c *ServerClock) Now(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("building time probe request: %v: %w", err, auditerrors.ErrClockSkew)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("probing server time: %v: %w", err, auditerrors.ErrClockSkew)
	}
	defer resp.Body.Close()

	dateHeader := resp.Header.Get("Date")
	if dateHeader == "" {
		return time.Time{}, fmt.Errorf("server response carries no Date header: %w", auditerrors.ErrClockSkew)
	}

	serverTime, err := http.ParseTime(dateHeader)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable Date header %q: %w", dateHeader, auditerrors.ErrClockSkew)
	}
	return serverTime, nil
}
