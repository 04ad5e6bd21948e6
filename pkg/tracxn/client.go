// Package tracxn provides a client for the company-info scraper API. It is
// an auxiliary enrichment source; the core pipeline never depends on it.
package tracxn

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the company-info lookup operation.
type Client interface {
	// CompanyInfo fetches scraped company data for a domain. A nil result
	// with nil error means no data was available.
	CompanyInfo(ctx context.Context, companyDomain string) (map[string]any, error)
}

type envelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a company-info client for the given scraper base URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) CompanyInfo(ctx context.Context, companyDomain string) (map[string]any, error) {
	payload, err := json.Marshal(map[string]string{"companyDomain": companyDomain})
	if err != nil {
		return nil, eris.Wrap(err, "tracxn: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/company/tracxn", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "tracxn: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "tracxn: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Missing data is expected for most domains; not an error.
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "tracxn: read response body")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, eris.Wrap(err, "tracxn: unmarshal response")
	}
	if !env.Success || env.Data == nil {
		return nil, nil
	}
	return env.Data, nil
}
