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
	"sync"
	"time"
)

// RefreshBuffer is the safety margin before expiry. A credential inside this
// window is treated as already expired so no request is sent with a token
// about to lapse mid-flight.
const RefreshBuffer = 5 * time.Minute

// Credential is an installation-scoped access token with its expiry. Owned
// exclusively by the Manager; mutated only through refresh.
type Credential struct {
	// Token is the opaque bearer value.
	Token string

	// ExpiresAt is the server-reported expiry.
	ExpiresAt time.Time

	// RefreshedAt records when this credential was obtained.
	RefreshedAt time.Time
}

// Valid reports whether the credential is usable at the given instant,
// applying the refresh buffer.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && c.ExpiresAt.Sub(now) > RefreshBuffer
}

// Exchanger swaps a signed assertion for an installation credential. The API
// client implements this against the installation access-token endpoint.
type Exchanger interface {
	ExchangeInstallationToken(ctx context.Context, assertion string) (Credential, error)
}

// Store persists a freshly obtained credential. Saving is best-effort from
// the Manager's point of view: the durable format is the store's concern.
type Store interface {
	SaveCredential(cred Credential) error
}

// Manager owns the current credential and refreshes it on demand. Refreshes
// are serialized: concurrent callers that find the cache stale queue on one
// mutex and re-check the cache once inside, so overlapping calls share a
// single assertion exchange instead of each issuing their own.
type Manager struct {
	signer    *Signer
	clock     Clock
	exchanger Exchanger
	store     Store

	mu   sync.Mutex
	cred Credential
}

// NewManager wires a token lifecycle manager. store may be nil when durable
// caching is disabled.
func NewManager(signer *Signer, clock Clock, exchanger Exchanger, store Store) *Manager {
	return &Manager{
		signer:    signer,
		clock:     clock,
		exchanger: exchanger,
		store:     store,
	}
}

// Prime seeds the in-memory credential, typically from the on-disk cache at
// startup. A stale credential is simply ignored on first use.
func (m *Manager) Prime(cred Credential) {
	m.mu.Lock()
	m.cred = cred
	m.mu.Unlock()
}

// Credential returns a valid installation credential, refreshing if the
// cached one is absent or within the refresh buffer of its expiry. A cache
// hit performs no network call and no side effect.
func (m *Manager) Credential(ctx context.Context) (Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-checked under the lock: a caller that queued behind an in-flight
	// refresh sees its result here and returns without exchanging again.
	if m.cred.Valid(time.Now()) {
		return m.cred, nil
	}

	serverNow, err := m.clock.Now(ctx)
	if err != nil {
		return Credential{}, err
	}

	assertion, err := m.signer.Sign(serverNow)
	if err != nil {
		return Credential{}, err
	}

	cred, err := m.exchanger.ExchangeInstallationToken(ctx, assertion)
	if err != nil {
		return Credential{}, err
	}
	cred.RefreshedAt = serverNow

	if m.store != nil {
		// Persistence is advisory; a failed save must not discard a
		// perfectly good token.
		_ = m.store.SaveCredential(cred)
	}

	m.cred = cred
	return cred, nil
}

// Token returns just the bearer value of a valid credential. It is the
// http transport's token source.
func (m *Manager) Token(ctx context.Context) (string, error) {
	cred, err := m.Credential(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}
