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
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// testKeyPEM generates a throwaway RSA key in the PEM format GitHub serves.
func testKeyPEM(t *testing.T) ([]byte, *rsa.PublicKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating test key: %v", err)
	}
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return pem.EncodeToMemory(block), &key.PublicKey
}

func TestSigner_ClaimsAnchoredAtServerTime(t *testing.T) {
	pemKey, pubKey := testKeyPEM(t)

	signer, err := NewSigner("12345", pemKey)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	serverNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assertion, err := signer.Sign(serverNow)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(assertion, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			t.Fatalf("unexpected signing method %v", token.Method)
		}
		return pubKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return serverNow }))
	if err != nil {
		t.Fatalf("parsing assertion: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("assertion failed validation")
	}

	if claims.Issuer != "12345" {
		t.Errorf("issuer = %q, want app ID", claims.Issuer)
	}
	if got := claims.IssuedAt.Time; !got.Equal(serverNow.Add(-60 * time.Second)) {
		t.Errorf("iat = %v, want server time minus 60s", got)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(serverNow.Add(5 * time.Minute)) {
		t.Errorf("exp = %v, want server time plus 5m", got)
	}
}

func TestNewSigner_RejectsGarbageKey(t *testing.T) {
	if _, err := NewSigner("12345", []byte("not a pem key")); err == nil {
		t.Fatal("expected error for invalid key material")
	}
}
