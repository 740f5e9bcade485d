package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trotamundos/internal/logging"
	"trotamundos/internal/models"
)

// expiryLeeway is how close to its exp claim an access token may get before
// the client refreshes it proactively instead of waiting for a 401.
const expiryLeeway = 30 * time.Second

// HTTPClient is the REST implementation of Client. It owns the in-memory
// copy of the bearer credential pair: every authenticated request goes
// through do(), which injects the access token, refreshes it through the
// token-refresh endpoint when it is expired or rejected, and retries the
// original request once with the new token. When a refresh produces new
// tokens the onTokens hook is invoked so the session layer can persist
// them; HTTPClient itself never touches durable storage.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onTokens     func(ctx context.Context, pair TokenPair)
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// WithHTTPClient swaps the underlying *http.Client (timeouts, transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.httpc = h }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:8000").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 12 * time.Second},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

// SetTokens installs the credential pair used for authenticated requests.
func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// ClearTokens drops the in-memory credential pair.
func (c *HTTPClient) ClearTokens() {
	c.SetTokens("", "")
}

// OnTokensRefreshed registers the hook called whenever the refresh
// exchange yields a new pair. The session store registers itself here so
// the persisted copy never goes stale.
func (c *HTTPClient) OnTokensRefreshed(fn func(ctx context.Context, pair TokenPair)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTokens = fn
}

func (c *HTTPClient) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// tokenExpired inspects the exp claim without verifying the signature (the
// client does not hold the signing key). Unreadable tokens are not treated
// as expired; the server is the authority in that case.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < expiryLeeway
}

// refreshTokens exchanges the refresh token for a new access token and
// returns it. Any failure clears the in-memory pair and comes back as
// ErrUnauthorized; the caller is expected to end the session.
func (c *HTTPClient) refreshTokens(ctx context.Context) (string, error) {
	_, refresh := c.tokens()
	if refresh == "" {
		return "", ErrUnauthorized
	}

	resp, data, err := c.send(ctx, http.MethodPost, "/api/token/refresh/", nil, map[string]string{"refresh": refresh}, "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.ClearTokens()
		return "", ErrUnauthorized
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil || pair.Access == "" {
		c.ClearTokens()
		return "", ErrUnauthorized
	}
	if pair.Refresh == "" {
		// Rotation disabled server-side: the old refresh token stays valid.
		pair.Refresh = refresh
	}

	c.mu.Lock()
	c.accessToken = pair.Access
	c.refreshToken = pair.Refresh
	hook := c.onTokens
	c.mu.Unlock()

	c.log.Debug(ctx, "access token refreshed")
	if hook != nil {
		hook(ctx, pair)
	}
	return pair.Access, nil
}

// do runs one API call. For authed requests it injects the current access
// token (refreshing first if the token is already past its exp claim) and,
// on a 401, performs the refresh exchange exactly once before retrying.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var token string
	if authed {
		access, refresh := c.tokens()
		if access != "" && refresh != "" && tokenExpired(access) {
			fresh, err := c.refreshTokens(ctx)
			if err != nil {
				return err
			}
			access = fresh
		}
		token = access
	}

	resp, data, err := c.send(ctx, method, path, query, body, token)
	if err != nil {
		return err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		fresh, err := c.refreshTokens(ctx)
		if err != nil {
			return err
		}
		resp, data, err = c.send(ctx, method, path, query, body, fresh)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// send performs a single HTTP round trip and reads the full body.
// Transport-level failures come back wrapped in ErrUnavailable.
func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body any, token string) (*http.Response, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api request",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, data, nil
}

// statusError maps a non-2xx response to a sentinel or validation error.
func statusError(code int, body []byte) error {
	switch code {
	case http.StatusBadRequest:
		return parseValidationError(body)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}

// parseValidationError decodes the DRF error body, which mixes a
// "detail" string with per-field message lists.
func parseValidationError(body []byte) error {
	ve := &ValidationError{Fields: map[string][]string{}}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ve
	}
	for field, msg := range raw {
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			if field == "detail" || field == "error" {
				ve.Detail = single
			} else {
				ve.Fields[field] = []string{single}
			}
			continue
		}
		var many []string
		if err := json.Unmarshal(msg, &many); err == nil && len(many) > 0 {
			ve.Fields[field] = many
		}
	}
	return ve
}

// decodeList accepts both a bare JSON array and the paginated
// {"count": n, "results": [...]} envelope.
func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return page.Results, nil
}

// getList fetches path and decodes it as a list of T.
func getList[T any](ctx context.Context, c *HTTPClient, path string, query url.Values, authed bool) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw, authed); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/", nil, nil, nil, false)
}

// ObtainToken trades credentials for a token pair and installs it on the
// client. A rejected login comes back as *ValidationError carrying the
// server's message, so callers can show it verbatim.
func (c *HTTPClient) ObtainToken(ctx context.Context, email, password string) (TokenPair, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, data, err := c.send(ctx, http.MethodPost, "/api/token/", nil, payload, "")
	if err != nil {
		return TokenPair{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return TokenPair{}, parseValidationError(data)
	}
	if resp.StatusCode != http.StatusOK {
		return TokenPair{}, statusError(resp.StatusCode, data)
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("decoding token response: %w", err)
	}
	c.SetTokens(pair.Access, pair.Refresh)
	return pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/api/users/register/", nil, reg, nil, false)
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/profile/", nil, nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/api/users/profile/", nil, upd, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Permissions(ctx context.Context) (Permissions, error) {
	var p Permissions
	if err := c.do(ctx, http.MethodGet, "/api/users/permissions/", nil, nil, &p, true); err != nil {
		return Permissions{}, err
	}
	return p, nil
}

func (c *HTTPClient) Articles(ctx context.Context, q ArticleQuery) ([]models.Article, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	for _, tag := range q.Tags {
		query.Add("tags", tag)
	}
	return getList[models.Article](ctx, c, "/api/articles/", query, false)
}

func (c *HTTPClient) Article(ctx context.Context, slug string) (*models.Article, error) {
	var a models.Article
	if err := c.do(ctx, http.MethodGet, "/api/articles/"+url.PathEscape(slug)+"/", nil, nil, &a, false); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) CreateArticle(ctx context.Context, draft ArticleDraft) (*models.Article, error) {
	var a models.Article
	if err := c.do(ctx, http.MethodPost, "/api/articles/create/", nil, draft, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) UpdateArticle(ctx context.Context, slug string, draft ArticleDraft) (*models.Article, error) {
	var a models.Article
	if err := c.do(ctx, http.MethodPatch, "/api/articles/"+url.PathEscape(slug)+"/update/", nil, draft, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/"+url.PathEscape(slug)+"/delete/", nil, nil, nil, true)
}

func (c *HTTPClient) RateArticle(ctx context.Context, slug string, score int) (*models.Rating, error) {
	var r models.Rating
	payload := map[string]int{"score": score}
	if err := c.do(ctx, http.MethodPost, "/api/articles/"+url.PathEscape(slug)+"/rate/", nil, payload, &r, true); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Comments(ctx context.Context, slug string) ([]models.Comment, error) {
	return getList[models.Comment](ctx, c, "/api/articles/"+url.PathEscape(slug)+"/comments/", nil, false)
}

func (c *HTTPClient) AddComment(ctx context.Context, slug, content string) (*models.Comment, error) {
	var cm models.Comment
	payload := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, "/api/articles/"+url.PathEscape(slug)+"/comments/create/", nil, payload, &cm, true); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *HTTPClient) Tags(ctx context.Context) ([]models.Tag, error) {
	return getList[models.Tag](ctx, c, "/api/tags/", nil, false)
}

func (c *HTTPClient) Destinations(ctx context.Context) ([]models.Destination, error) {
	return getList[models.Destination](ctx, c, "/api/destinations/", nil, false)
}

func (c *HTTPClient) Destination(ctx context.Context, slug string) (*models.Destination, error) {
	var d models.Destination
	if err := c.do(ctx, http.MethodGet, "/api/destinations/"+url.PathEscape(slug)+"/", nil, nil, &d, false); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Continents(ctx context.Context) ([]models.Continent, error) {
	return getList[models.Continent](ctx, c, "/api/destinations/continents/", nil, false)
}

func (c *HTTPClient) DestinationsByContinent(ctx context.Context) ([]models.ContinentGroup, error) {
	return getList[models.ContinentGroup](ctx, c, "/api/destinations/by-continent/", nil, false)
}

func (c *HTTPClient) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	return getList[models.Recommendation](ctx, c, "/api/recommendations/", nil, true)
}

func (c *HTTPClient) Interests(ctx context.Context) (*models.Interests, error) {
	var in models.Interests
	if err := c.do(ctx, http.MethodGet, "/api/users/interests/", nil, nil, &in, true); err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *HTTPClient) UpdateInterests(ctx context.Context, tagIDs []int64) (*models.Interests, error) {
	var in models.Interests
	payload := map[string][]int64{"interest_ids": tagIDs}
	if err := c.do(ctx, http.MethodPatch, "/api/users/interests/", nil, payload, &in, true); err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, c, "/api/users/list/", nil, true)
}

func (c *HTTPClient) UpdateUserRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	var u models.User
	payload := map[string]string{"role": role}
	path := fmt.Sprintf("/api/users/%d/update-role/", userID)
	if err := c.do(ctx, http.MethodPatch, path, nil, payload, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}
