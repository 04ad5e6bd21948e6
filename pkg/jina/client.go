// Package jina provides a client for the Jina AI search API, used both for
// site validation (search pinned to a single domain) and open web search.
package jina

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/namekart/lead-gen-deep-research/internal/domainkey"
)

// Client defines the Jina AI operations used by the pipelines.
type Client interface {
	// FetchSite looks up a domain via search pinned to that site and returns
	// the raw API response. The response is returned for any HTTP status that
	// yields a JSON body; callers must check Success().
	FetchSite(ctx context.Context, domain string) (*Response, error)
	// Search performs an open web search and returns results.
	Search(ctx context.Context, query string, opts ...SearchOption) (*Response, error)
}

// statusOK is the application-level success status the API reports alongside
// HTTP 200. Both must match for a response to count as successful.
const (
	codeOK   = 200
	statusOK = 20000
)

// Response is the parsed Jina API response, success or error shaped.
type Response struct {
	Code            int      `json:"code"`
	Status          int      `json:"status"`
	Message         string   `json:"message,omitempty"`
	ReadableMessage string   `json:"readableMessage,omitempty"`
	Data            []Result `json:"data"`
}

// Result represents a single search result.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Success reports whether the response carries the documented success pair.
func (r *Response) Success() bool {
	return r != nil && r.Code == codeOK && r.Status == statusOK
}

// ErrorMessage extracts a human-readable error from a failed response.
// Returns "" for successful responses.
func (r *Response) ErrorMessage() string {
	if r.Success() {
		return ""
	}
	if r.ReadableMessage != "" {
		return r.ReadableMessage
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("jina error code %d status %d", r.Code, r.Status)
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	siteFilter string
}

// WithSiteFilter restricts search results to a specific domain.
func WithSiteFilter(domain string) SearchOption {
	return func(o *searchOpts) {
		o.siteFilter = domain
	}
}

// Option configures the Jina client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests at rps per second. The validation
// fan-out already bounds in-flight requests; this additionally smooths the
// request rate against the API's rate limits.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	http    *http.Client
}

// NewClient creates a new Jina AI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://s.jina.ai",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FetchSite(ctx context.Context, domain string) (*Response, error) {
	sld := domainkey.SLD(domain)
	if sld == "" {
		return nil, eris.Errorf("jina: no subject label in domain %q", domain)
	}

	reqURL := fmt.Sprintf("%s/?q=%s", c.baseURL, url.QueryEscape(sld))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "jina: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Engine", "direct")
	req.Header.Set("X-Site", domain)

	// The API returns a JSON body even on error statuses (422 etc.), so the
	// body is parsed regardless of status and handed to the caller.
	body, _, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "jina: unmarshal response")
	}
	return &result, nil
}

func (c *httpClient) Search(ctx context.Context, query string, opts ...SearchOption) (*Response, error) {
	so := &searchOpts{}
	for _, opt := range opts {
		opt(so)
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.QueryEscape(query))
	if so.siteFilter != "" {
		reqURL += "?site=" + url.QueryEscape(so.siteFilter)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "jina: create search request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.do(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "jina: search request failed")
	}

	// 422 means no results for the query, not a failure.
	if statusCode == http.StatusUnprocessableEntity {
		return &Response{Code: http.StatusUnprocessableEntity}, nil
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("jina: search unexpected status %d: %s", statusCode, string(body))
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "jina: unmarshal search response")
	}
	return &result, nil
}

// do executes the request under the rate limiter and returns the body and
// status code. Transport failures are the only error path.
func (c *httpClient) do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, eris.Wrap(err, "jina: rate limiter")
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "jina: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "jina: read response body")
	}
	return body, resp.StatusCode, nil
}
