package music

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	MethodTopArtists = "user.gettopartists"
	MethodTopTracks  = "user.gettoptracks"

	DefaultEndpoint = "https://ws.audioscrobbler.com/2.0"
	periodOverall   = "overall"
)

// Query holds the parameters shared by the top lists.
type Query struct {
	APIKey string
	User   string
	Limit  int
}

// Client fetches top lists from the scrobbling API.
type Client interface {
	TopArtists(ctx context.Context, q Query) ([]Artist, error)
	TopTracks(ctx context.Context, q Query) ([]Song, error)
}

// HTTPError captures unexpected status codes and response bodies.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// APIError is an error reported in the body of a Last.fm response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("last.fm error %d: %s", e.Code, e.Message)
}

// userAgentRoundTripper adds a User-Agent header.
type userAgentRoundTripper struct {
	Wrapped   http.RoundTripper
	UserAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.UserAgent)
	return rt.Wrapped.RoundTrip(clone)
}

// NewHTTPClient wraps base with a User-Agent header and timeout.
func NewHTTPClient(userAgent string, timeout time.Duration, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport: &userAgentRoundTripper{Wrapped: transport, UserAgent: userAgent},
		Timeout:   timeout,
	}
}

type lastfmClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &lastfmClient{endpoint: endpoint, httpClient: httpClient}
}

func (c *lastfmClient) TopArtists(ctx context.Context, q Query) ([]Artist, error) {
	var r topArtistsResponse
	if err := c.getJSON(ctx, MethodTopArtists, q, &r); err != nil {
		return nil, err
	}
	return r.toArtists()
}

func (c *lastfmClient) TopTracks(ctx context.Context, q Query) ([]Song, error) {
	var r topTracksResponse
	if err := c.getJSON(ctx, MethodTopTracks, q, &r); err != nil {
		return nil, err
	}
	return r.toSongs()
}

func (c *lastfmClient) requestURL(method string, q Query) string {
	v := url.Values{}
	v.Set("method", method)
	v.Set("api_key", q.APIKey)
	v.Set("user", q.User)
	v.Set("period", periodOverall)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("format", "json")
	return c.endpoint + "?" + v.Encode()
}

func (c *lastfmClient) getJSON(ctx context.Context, method string, q Query, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(method, q), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != 0 {
			return &APIError{Code: apiErr.Error, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != 0 {
		return &APIError{Code: apiErr.Error, Message: apiErr.Message}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s JSON: %w", method, err)
	}
	return nil
}
