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
	"crypto/rsa"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	// assertionBackdate shifts the issued-at claim into the past to absorb
	// residual skew between our time source and GitHub's validators.
	assertionBackdate = 60 * time.Second

	// assertionTTL is the assertion lifetime. GitHub rejects anything over
	// ten minutes; five leaves comfortable margin.
	assertionTTL = 5 * time.Minute
)

// Signer produces time-bounded signed app assertions. Stateless; one
// assertion is minted per token exchange.
type Signer struct {
	appID string
	key   *rsa.PrivateKey
}

// NewSigner builds a Signer from a PEM-encoded RSA private key, the format
// GitHub serves when an App key is generated.
func NewSigner(appID string, pemKey []byte) (*Signer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse app private key: %w", err)
	}
	return &Signer{appID: appID, key: key}, nil
}

// Sign mints an RS256 assertion with claims anchored at the given server
// time: issuer = app ID, iat = now − 60s, exp = now + 5m.
func (s *Signer) Sign(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    s.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-assertionBackdate)),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}
	return signed, nil
}
