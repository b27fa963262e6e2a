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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirseerhq/sirseer-audit/internal/auth"
	auditerrors "github.com/sirseerhq/sirseer-audit/internal/errors"
	"github.com/sirseerhq/sirseer-audit/internal/ghaerror"
)

// maxResponseBytes bounds response reads to keep a misbehaving endpoint from
// exhausting memory.
const maxResponseBytes = 32 << 20

// AppClient performs the one API call that authenticates with a signed app
// assertion instead of an installation token: the token exchange. It
// implements auth.Exchanger.
type AppClient struct {
	baseURL        string
	installationID int64
	httpClient     *http.Client
}

// NewAppClient creates a client for the installation token exchange endpoint.
func NewAppClient(baseURL string, installationID int64, httpClient *http.Client) *AppClient {
	if httpClient == nil {
		httpClient = &http.Client{Transport: newPooledTransport()}
	}
	return &AppClient{
		baseURL:        baseURL,
		installationID: installationID,
		httpClient:     httpClient,
	}
}

// ExchangeInstallationToken swaps a signed assertion for an installation
// credential. Any non-2xx outcome maps to ErrCredentialExchange carrying the
// upstream status.
func (c *AppClient) ExchangeInstallationToken(ctx context.Context, assertion string) (auth.Credential, error) {
	endpoint := fmt.Sprintf("%s/app/installations/%d/access_tokens", c.baseURL, c.installationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return auth.Credential{}, fmt.Errorf("building exchange request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+assertion)
	setStandardHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return auth.Credential{}, fmt.Errorf("token exchange: %v: %w", err, auditerrors.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return auth.Credential{}, fmt.Errorf("reading exchange response: %w", auditerrors.ErrNetworkFailure)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return auth.Credential{}, fmt.Errorf("exchange rejected with status %d (%s): %w",
			resp.StatusCode, apiMessageFrom(body), auditerrors.ErrCredentialExchange)
	}

	var payload installationTokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return auth.Credential{}, fmt.Errorf("decoding exchange response: %w", err)
	}

	return auth.Credential{
		Token:     payload.Token,
		ExpiresAt: payload.ExpiresAt,
	}, nil
}

// RESTClient implements Client against the GitHub REST API. Authentication is
// handled by the transport, which pulls a fresh installation token from the
// TokenSource per request.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	observer   func()
}

// Option customizes a RESTClient.
type Option func(*RESTClient)

// WithAPICallObserver registers a hook invoked once per API request, used by
// the metadata tracker to count calls.
func WithAPICallObserver(observer func()) Option {
	return func(c *RESTClient) {
		c.observer = observer
	}
}

// NewRESTClient creates a REST client for the given API base URL. All
// requests authenticate with tokens from the provided source.
func NewRESTClient(baseURL string, tokens TokenSource, opts ...Option) *RESTClient {
	client := &RESTClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &authTransport{
				tokens: tokens,
				base:   newPooledTransport(),
			},
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ListInstallationRepositories implements Client. The endpoint wraps its
// items under a "repositories" field.
func (c *RESTClient) ListInstallationRepositories(ctx context.Context, cursor, pageSize int) ([]Repository, error) {
	body, err := c.get(ctx, "/installation/repositories", cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Repository](body, "repositories")
}

// ListOrgTeams implements Client. The endpoint returns a bare array.
func (c *RESTClient) ListOrgTeams(ctx context.Context, org string, cursor, pageSize int) ([]Team, error) {
	body, err := c.get(ctx, fmt.Sprintf("/orgs/%s/teams", url.PathEscape(org)), cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Team](body, "teams")
}

// ListTeamMembers implements Client.
func (c *RESTClient) ListTeamMembers(ctx context.Context, org, teamSlug string, cursor, pageSize int) ([]TeamMember, error) {
	path := fmt.Sprintf("/orgs/%s/teams/%s/members", url.PathEscape(org), url.PathEscape(teamSlug))
	body, err := c.get(ctx, path, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[TeamMember](body, "members")
}

// ListCollaborators implements Client.
func (c *RESTClient) ListCollaborators(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Collaborator, error) {
	path := fmt.Sprintf("/repos/%s/%s/collaborators", url.PathEscape(owner), url.PathEscape(repo))
	body, err := c.get(ctx, path, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Collaborator](body, "collaborators")
}

// ListHooks implements Client.
func (c *RESTClient) ListHooks(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Hook, error) {
	path := fmt.Sprintf("/repos/%s/%s/hooks", url.PathEscape(owner), url.PathEscape(repo))
	body, err := c.get(ctx, path, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Hook](body, "hooks")
}

// ListSecrets implements Client. The endpoint wraps its items under a
// "secrets" field.
func (c *RESTClient) ListSecrets(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Secret, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/secrets", url.PathEscape(owner), url.PathEscape(repo))
	body, err := c.get(ctx, path, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Secret](body, "secrets")
}

// ListVariables implements Client. The endpoint wraps its items under a
// "variables" field.
func (c *RESTClient) ListVariables(ctx context.Context, owner, repo string, cursor, pageSize int) ([]Variable, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/variables", url.PathEscape(owner), url.PathEscape(repo))
	body, err := c.get(ctx, path, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	return decodeList[Variable](body, "variables")
}

// GetTeamMembership implements Client. Unlike the list endpoints this
// returns a single object; it is the only place role and state are exposed.
func (c *RESTClient) GetTeamMembership(ctx context.Context, org, teamSlug, login string) (Membership, error) {
	path := fmt.Sprintf("/orgs/%s/teams/%s/memberships/%s",
		url.PathEscape(org), url.PathEscape(teamSlug), url.PathEscape(login))
	body, err := c.request(ctx, path, nil)
	if err != nil {
		return Membership{}, err
	}

	var membership Membership
	if err := json.Unmarshal(body, &membership); err != nil {
		return Membership{}, fmt.Errorf("decoding membership for %s: %w", login, err)
	}
	return membership, nil
}

// get performs one paginated GET and returns the raw body.
func (c *RESTClient) get(ctx context.Context, path string, cursor, pageSize int) ([]byte, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(cursor))
	query.Set("per_page", strconv.Itoa(pageSize))
	return c.request(ctx, path, query)
}

// request performs one GET against the API and returns the raw body. Non-2xx
// responses are mapped through the classifier to sentinel-carrying errors.
func (c *RESTClient) request(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("building request URL: %w", err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if c.observer != nil {
		c.observer()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %v: %w", path, err, auditerrors.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, auditerrors.ErrNetworkFailure)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(path, resp.StatusCode, body)
	}
	return body, nil
}

// statusError builds a sentinel-carrying error from a non-2xx response so
// callers can match with errors.Is instead of inspecting status codes.
func statusError(path string, status int, body []byte) error {
	message := apiMessageFrom(body)

	var sentinel error
	switch ghaerror.StatusCategory(status, string(body)) {
	case ghaerror.CategoryAuth:
		sentinel = auditerrors.ErrInvalidCredentials
	case ghaerror.CategoryNotFound:
		sentinel = auditerrors.ErrNotFound
	case ghaerror.CategoryRateLimit:
		sentinel = auditerrors.ErrRateLimit
	case ghaerror.CategoryNetwork:
		sentinel = auditerrors.ErrNetworkFailure
	default:
		return fmt.Errorf("GET %s returned status %d (%s)", path, status, message)
	}

	return fmt.Errorf("GET %s returned status %d (%s): %w", path, status, message, sentinel)
}

// apiMessageFrom extracts GitHub's error message from a response body, best
// effort.
func apiMessageFrom(body []byte) string {
	var msg apiMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.Message == "" {
		return "no message"
	}
	return msg.Message
}
