package leadgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/domainkey"
)

// lookupDomains sends the whole keyword set to the matching service in one
// batched call, then flattens, de-duplicates, and applies the exact-subject
// filter: a candidate survives only if its second-level label exactly equals
// a generated keyword. The service returns loosely related matches; exactness
// is the accepted precision/recall trade-off. Errors yield an empty set.
func (p *DotDBPipeline) lookupDomains(ctx context.Context, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}

	byKeyword, err := p.dotdb.BulkLeads(ctx, keywords)
	if err != nil {
		zap.L().Warn("dotdb bulk lookup failed", zap.Error(err))
		return nil
	}

	allowed := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			allowed[kw] = true
		}
	}

	var candidates []string
	seen := make(map[string]bool)
	total := 0
	for _, kw := range keywords {
		for _, domain := range byKeyword[kw] {
			if seen[domain] {
				continue
			}
			seen[domain] = true
			total++
			if allowed[domainkey.SLD(domain)] {
				candidates = append(candidates, domain)
			}
		}
	}

	zap.L().Info("dotdb lookup filtered",
		zap.Int("total", total),
		zap.Int("exact_subject", len(candidates)),
		zap.Int("keywords", len(keywords)),
	)
	return candidates
}
