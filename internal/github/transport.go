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

package github

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirseerhq/sirseer-audit/pkg/version"
)

const apiVersionHeader = "2022-11-28"

// authTransport injects per-request authentication and the standard API
// headers. The token is pulled from the TokenSource on every request so a
// refresh that happened mid-run is picked up transparently.
type authTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())

	// An Authorization header already present wins: the token exchange
	// itself authenticates with the signed assertion, not an installation
	// token.
	if cloned.Header.Get("Authorization") == "" {
		token, err := t.tokens.Token(cloned.Context())
		if err != nil {
			return nil, fmt.Errorf("acquiring installation token: %w", err)
		}
		cloned.Header.Set("Authorization", "Bearer "+token)
	}

	setStandardHeaders(cloned)
	return t.base.RoundTrip(cloned)
}

// setStandardHeaders applies the headers every API call carries.
func setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	req.Header.Set("User-Agent", fmt.Sprintf("sirseer-audit/%s", version.Version))
}

// newPooledTransport returns an HTTP transport tuned for sustained API
// traffic.
func newPooledTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}
