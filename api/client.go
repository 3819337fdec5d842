package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/velalabs/vela/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Vela/1.0"
)

// TokenProvider supplies the session token attached to requests. A nil
// provider, or ok=false, sends the request unauthenticated.
type TokenProvider interface {
	Token() (token string, ok bool)
}

// StaticToken is a TokenProvider for a fixed token string.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}

// Client implements domain.SearchAPI, domain.FeedAPI and
// domain.EngageAPI against the discovery backend
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a discovery backend client
func New(baseURL string, tokens TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetTimeout overrides the default per-request timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// doRequest performs an HTTP request, attaching the session token when
// one is available
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("backend request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err)
		return nil, domain.ErrBackendUnreachable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrContentNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// SearchContent returns one result page for a query with filters
func (c *Client) SearchContent(ctx context.Context, req domain.SearchRequest) (domain.Page, error) {
	payload := searchRequestBody{
		Query:   req.Query,
		Filters: mapFiltersOut(req.Filters),
		Page:    req.Page,
		Limit:   req.Limit,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/search", nil, payload)
	if err != nil {
		return domain.Page{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Page{}, fmt.Errorf("failed to parse search response: %w", err)
	}

	return domain.Page{Items: MapContentItems(resp.Results), HasMore: resp.HasMore}, nil
}

// Suggestions returns typeahead completions for a query prefix
func (c *Client) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/search/suggestions", params, nil)
	if err != nil {
		return nil, err
	}

	var resp suggestionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions response: %w", err)
	}

	return resp.Suggestions, nil
}

// Feed returns one page of the personalized home feed
func (c *Client) Feed(ctx context.Context, page, limit int) (domain.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, http.MethodGet, "/feed", params, nil)
	if err != nil {
		return domain.Page{}, err
	}

	var resp feedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Page{}, fmt.Errorf("failed to parse feed response: %w", err)
	}

	return domain.Page{Items: MapContentItems(resp.Feed), HasMore: resp.HasMore}, nil
}

// Trending returns the current trending rail
func (c *Client) Trending(ctx context.Context) ([]domain.ContentItem, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/trending", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp trendingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse trending response: %w", err)
	}

	return MapContentItems(resp.Trending), nil
}

// Categories returns the browsable category list
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse categories response: %w", err)
	}

	return MapCategories(resp.Categories), nil
}

// RecommendedCreators returns creators the user may want to follow
func (c *Client) RecommendedCreators(ctx context.Context, limit int) ([]domain.Creator, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/recommendations/creators", params, nil)
	if err != nil {
		return nil, err
	}

	var resp creatorsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse creators response: %w", err)
	}

	return MapCreators(resp.Creators), nil
}

// RecommendedContent returns content picked for the user
func (c *Client) RecommendedContent(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/recommendations/content", params, nil)
	if err != nil {
		return nil, err
	}

	var resp contentListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse content response: %w", err)
	}

	return MapContentItems(resp.Content), nil
}

// SetFollow follows or unfollows a creator
func (c *Client) SetFollow(ctx context.Context, creatorID string, follow bool) error {
	action := "follow"
	if !follow {
		action = "unfollow"
	}

	payload := followRequestBody{CreatorID: creatorID, Action: action}
	_, err := c.doRequest(ctx, http.MethodPost, "/follow", nil, payload)
	return err
}

// Interact records a content interaction
func (c *Client) Interact(ctx context.Context, contentID string, kind domain.InteractionType) error {
	payload := interactRequestBody{ContentID: contentID, Type: string(kind)}
	_, err := c.doRequest(ctx, http.MethodPost, "/content/interact", nil, payload)
	return err
}
