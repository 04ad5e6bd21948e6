package leadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// maxSiteContentChars bounds how much page content is fed to extraction.
const maxSiteContentChars = 4000

// extractSystemPrompt frames per-domain lead extraction. The model must
// reject non-operating sites by returning an empty object.
const extractSystemPrompt = `You are a lead qualification analyst. From the website details provided, extract a single B2B lead ONLY if the site is an actual operating business.

Return {} (an empty JSON object) if ANY of these apply:
- domain-for-sale or brokerage pages ("THIS DOMAIN IS FOR SALE", "Make an Offer", Sedo/Afternic/GoDaddy Auctions mentions, offer forms)
- parked domains, placeholder or under-construction pages
- personal blogs or individual portfolios
- directories, aggregators, or content farms

Otherwise return a JSON object with exactly these keys:
- website: the candidate URL given in the request, verbatim
- detailed_summary: 2-4 sentences on offering, target customers, and differentiators, grounded in the page content
- rationale: 1-2 sentences on why this company is a relevant buyer
- tier: "Tier 1", "Tier 2", or "Tier 3" judged against the classification guidance
- meta_data: object with any of domain, title, signals, geo, contact

Return ONLY the JSON object, with no extra text.`

// extractLeads converts each successful validation result into a lead via
// one text-generation call. Responses that are empty objects, malformed, or
// missing required fields are dropped without retry; they are extraction
// noise, not failures.
func (p *DotDBPipeline) extractLeads(ctx context.Context, results []SiteResult, classificationOutput string) []model.Lead {
	var leads []model.Lead
	for _, r := range results {
		if !r.Success {
			continue
		}

		lead, ok := p.extractOne(ctx, r, classificationOutput)
		if !ok {
			continue
		}
		leads = append(leads, lead)
		zap.L().Info("lead accepted", zap.String("domain", r.Domain))
	}
	return leads
}

func (p *DotDBPipeline) extractOne(ctx context.Context, r SiteResult, classificationOutput string) (model.Lead, bool) {
	candidateURL := r.URL
	if candidateURL == "" {
		candidateURL = "https://" + r.Domain
	}

	content := r.Content
	if len(content) > maxSiteContentChars {
		content = content[:maxSiteContentChars]
	}

	prompt := fmt.Sprintf(`CLASSIFICATION GUIDANCE:
%s

Candidate URL (use verbatim as website): %s

Website:
domain: %s
url: %s
title: %s
description: %s
content: %s`,
		classificationOutput, candidateURL, r.Domain, r.URL, r.Title, r.Description, content)

	text, err := p.gen.Generate(ctx, "dotdb_extract", extractSystemPrompt, prompt)
	if err != nil {
		zap.L().Warn("lead extraction failed", zap.String("domain", r.Domain), zap.Error(err))
		return model.Lead{}, false
	}

	var lead model.Lead
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &lead); err != nil {
		zap.L().Warn("lead extraction returned non-JSON", zap.String("domain", r.Domain))
		return model.Lead{}, false
	}
	if !lead.Valid() {
		// Includes the deliberate {} rejection.
		zap.L().Debug("lead extraction rejected", zap.String("domain", r.Domain))
		return model.Lead{}, false
	}

	lead.Website = candidateURL
	return lead, true
}
