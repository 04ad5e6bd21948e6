// Package dotdb provides a client for the DotDB keyword-matching service,
// which maps keywords to registered domain names carrying that label.
package dotdb

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

// Client defines the DotDB operations used by the lead-gen pipeline.
type Client interface {
	// BulkLeads resolves all keywords to their active domains in a single
	// batched request, returning a mapping from keyword to domain list.
	BulkLeads(ctx context.Context, keywords []string) (map[string][]string, error)
}

// bulkResponse is the wire shape of the bulk leads endpoint. Keywords with
// no data may map to null.
type bulkResponse map[string]*keywordData

type keywordData struct {
	Matches []match `json:"matches"`
}

type match struct {
	Name       string     `json:"name"`
	SiteStatus siteStatus `json:"site_status"`
}

type siteStatus struct {
	ActiveSuffixes []string `json:"active_suffixes"`
}

// Option configures the DotDB client.
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

// NewClient creates a new DotDB client for the given base URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) BulkLeads(ctx context.Context, keywords []string) (map[string][]string, error) {
	if len(keywords) == 0 {
		return map[string][]string{}, nil
	}

	payload, err := json.Marshal(keywords)
	if err != nil {
		return nil, eris.Wrap(err, "dotdb: marshal keywords")
	}

	reqURL := c.baseURL + "/dotdb/getleads/bulk?site_status=active&count_sorting=1"

	const maxAttempts = 3
	backoff := 1 * time.Second

	var body []byte
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if reqErr != nil {
			return nil, eris.Wrap(reqErr, "dotdb: create request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.http.Do(req)
		if doErr != nil {
			lastErr = eris.Wrap(doErr, "dotdb: request failed")
		} else {
			b, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, eris.Wrap(readErr, "dotdb: read response body")
			}
			if resp.StatusCode == http.StatusOK {
				body = b
				lastErr = nil
				break
			}
			lastErr = eris.Errorf("dotdb: status %d: %s", resp.StatusCode, string(b))
			if !retryableStatusCode(resp.StatusCode) {
				return nil, lastErr
			}
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	var raw bulkResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, eris.Wrap(err, "dotdb: unmarshal response")
	}

	return extractDomains(raw), nil
}

// extractDomains flattens each keyword's matches into full domain names by
// joining match names with their active suffixes. Suffixes may or may not
// carry a leading dot.
func extractDomains(raw bulkResponse) map[string][]string {
	out := make(map[string][]string, len(raw))
	for keyword, data := range raw {
		domains := []string{}
		if data != nil {
			for _, m := range data.Matches {
				name := strings.TrimSpace(m.Name)
				if name == "" {
					continue
				}
				for _, suffix := range m.SiteStatus.ActiveSuffixes {
					suffix = strings.TrimLeft(suffix, ".")
					if suffix == "" {
						domains = append(domains, name)
						continue
					}
					domains = append(domains, name+"."+suffix)
				}
			}
		}
		out[keyword] = domains
	}
	return out
}
