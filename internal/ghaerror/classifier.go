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

package ghaerror

import (
	"errors"
	"net/http"
	"strings"

	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
)

// Category is a stable classification of an API failure. The set is closed:
// callers pattern-match on these values and must not fall back to status-code
// switches of their own.
type Category int

const (
	// CategoryUnknown covers failures no other category claims.
	CategoryUnknown Category = iota

	// CategoryAuth covers authentication and authorization rejections.
	CategoryAuth

	// CategoryNotFound covers missing or invisible resources.
	CategoryNotFound

	// CategoryRateLimit covers primary and secondary rate limit responses.
	CategoryRateLimit

	// CategoryNetwork covers connectivity failures and upstream 5xx responses.
	CategoryNetwork

	// CategoryClockSkew covers failures to obtain authoritative server time.
	CategoryClockSkew

	// CategoryExchange covers rejected installation token exchanges.
	CategoryExchange
)

// String returns a short lowercase name for the category, suitable for logs.
func (c Category) String() string {
	switch c {
	case CategoryAuth:
		return "auth"
	case CategoryNotFound:
		return "not_found"
	case CategoryRateLimit:
		return "rate_limit"
	case CategoryNetwork:
		return "network"
	case CategoryClockSkew:
		return "clock_skew"
	case CategoryExchange:
		return "exchange"
	default:
		return "unknown"
	}
}

// Classify maps an error to its Category. Sentinel errors in the chain win;
// string heuristics cover errors originating below the API client.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	switch {
	case errors.Is(err, auditerrors.ErrRateLimit):
		return CategoryRateLimit
	case errors.Is(err, auditerrors.ErrInvalidCredentials):
		return CategoryAuth
	case errors.Is(err, auditerrors.ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, auditerrors.ErrNetworkFailure):
		return CategoryNetwork
	case errors.Is(err, auditerrors.ErrClockSkew):
		return CategoryClockSkew
	case errors.Is(err, auditerrors.ErrCredentialExchange):
		return CategoryExchange
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "rate limit", "429", "secondary limit"):
		return CategoryRateLimit
	case containsAny(errStr, "401", "403", "unauthorized", "forbidden", "bad credentials"):
		return CategoryAuth
	case containsAny(errStr, "404", "not found"):
		return CategoryNotFound
	case containsAny(errStr,
		"connection refused", "connection reset", "no such host", "timeout",
		"temporary failure", "dial tcp", "tls handshake", "network is unreachable",
		"unexpected eof"):
		return CategoryNetwork
	}

	return CategoryUnknown
}

// IsTransient reports whether the error is worth retrying. Only network
// failures and rate limits qualify; auth and not-found rejections will fail
// identically on every attempt.
func IsTransient(err error) bool {
	switch Classify(err) {
	case CategoryNetwork, CategoryRateLimit:
		return true
	default:
		return false
	}
}

// StatusCategory maps an HTTP status code to a Category. Used by the API
// client when building errors from raw responses; 403 is ambiguous between
// auth and rate limiting, so the caller passes the response body for
// disambiguation.
func StatusCategory(status int, body string) Category {
	switch {
	case status == http.StatusUnauthorized:
		return CategoryAuth
	case status == http.StatusForbidden:
		if strings.Contains(strings.ToLower(body), "rate limit") {
			return CategoryRateLimit
		}
		return CategoryAuth
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusTooManyRequests:
		return CategoryRateLimit
	case status >= 500:
		return CategoryNetwork
	default:
		return CategoryUnknown
	}
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
