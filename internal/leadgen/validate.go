package leadgen

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultValidateConcurrency caps in-flight validation requests; the
// validation service is rate sensitive.
const defaultValidateConcurrency = 10

// validateDomains checks each unique candidate against the site-validation
// service with at most ValidateConcurrency requests in flight. Every domain
// produces a result: transport failures and application errors are recorded
// as unsuccessful, never raised. Returns all results plus the successful
// subsequence of domains.
func (p *DotDBPipeline) validateDomains(ctx context.Context, candidates []string) ([]SiteResult, []string) {
	if len(candidates) == 0 {
		return nil, nil
	}

	unique := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, d := range candidates {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	concurrency := p.cfg.ValidateConcurrency
	if concurrency <= 0 {
		concurrency = defaultValidateConcurrency
	}

	zap.L().Info("validation fan-out",
		zap.Int("domains", len(unique)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]SiteResult, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, domain := range unique {
		g.Go(func() error {
			results[i] = p.validateOne(gctx, domain)
			return nil
		})
	}
	// Workers never return errors; failures land in their result slot.
	_ = g.Wait()

	var active []string
	for _, r := range results {
		if r.Success {
			active = append(active, r.Domain)
		}
	}
	return results, active
}

func (p *DotDBPipeline) validateOne(ctx context.Context, domain string) SiteResult {
	resp, err := p.jina.FetchSite(ctx, domain)
	if err != nil {
		zap.L().Warn("site validation request failed",
			zap.String("domain", domain),
			zap.Error(err),
		)
		return SiteResult{Domain: domain, ErrorMessage: err.Error()}
	}

	if !resp.Success() || len(resp.Data) == 0 {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = "empty response data"
		}
		zap.L().Debug("site validation unsuccessful",
			zap.String("domain", domain),
			zap.String("error", msg),
		)
		return SiteResult{Domain: domain, ErrorMessage: msg}
	}

	first := resp.Data[0]
	return SiteResult{
		Domain:      domain,
		Success:     true,
		Title:       first.Title,
		URL:         first.URL,
		Content:     first.Content,
		Description: first.Description,
	}
}
