package leadgen

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/domainkey"
	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/dotdb"
	"github.com/namekart/lead-gen-deep-research/pkg/jina"
)

// SiteResult is one site-validation outcome. Failures are retained alongside
// successes for diagnostics; nothing is dropped.
type SiteResult struct {
	Domain       string `json:"domain"`
	Success      bool   `json:"success"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	Content      string `json:"content,omitempty"`
	Description  string `json:"description,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

// dotdbState is private to one DotDB sub-pipeline run and discarded once the
// pipeline yields its leads.
type dotdbState struct {
	DomainName           string       `json:"domain_name"`
	ClassificationOutput string       `json:"classification_output,omitempty"`
	GeneratedKeywords    []string     `json:"generated_keywords,omitempty"`
	CandidateDomains     []string     `json:"candidate_domains,omitempty"`
	ValidationResults    []SiteResult `json:"validation_results,omitempty"`
	ActiveDomains        []string     `json:"active_domains,omitempty"`
	Leads                []model.Lead `json:"leads,omitempty"`
}

// DotDBPipeline is the keyword/registry-matching discovery path: keyword
// generation → bulk lookup → bounded validation → lead extraction, strictly
// in that order, each stage consuming only the prior stage's output.
type DotDBPipeline struct {
	gen   *Generator
	dotdb dotdb.Client
	jina  jina.Client
	cfg   config.LeadgenConfig
}

// NewDotDBPipeline creates the DotDB discovery path with its dependencies.
func NewDotDBPipeline(gen *Generator, dotdbClient dotdb.Client, jinaClient jina.Client, cfg config.LeadgenConfig) *DotDBPipeline {
	return &DotDBPipeline{
		gen:   gen,
		dotdb: dotdbClient,
		jina:  jinaClient,
		cfg:   cfg,
	}
}

// Run executes the sub-pipeline for a domain and returns extracted leads.
// Service failures degrade to an empty result; only cancellation aborts.
func (p *DotDBPipeline) Run(ctx context.Context, domainName, classificationOutput string) ([]model.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "dotdb: run cancelled")
	}

	log := zap.L().With(zap.String("path", "dotdb"), zap.String("domain", domainName))

	state := &dotdbState{
		DomainName:           domainName,
		ClassificationOutput: classificationOutput,
	}

	state.GeneratedKeywords = p.generateKeywords(ctx, domainName)
	log.Info("keywords generated", zap.Int("count", len(state.GeneratedKeywords)))

	state.CandidateDomains = p.lookupDomains(ctx, state.GeneratedKeywords)
	log.Info("candidate domains fetched", zap.Int("count", len(state.CandidateDomains)))

	state.ValidationResults, state.ActiveDomains = p.validateDomains(ctx, state.CandidateDomains)
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "dotdb: run cancelled")
	}
	log.Info("domains validated",
		zap.Int("checked", len(state.ValidationResults)),
		zap.Int("active", len(state.ActiveDomains)),
	)

	state.Leads = p.extractLeads(ctx, state.ValidationResults, classificationOutput)
	log.Info("leads extracted", zap.Int("count", len(state.Leads)))

	return state.Leads, nil
}

// generateKeywords asks the model for tiered keyword families and expands
// the top tier into lookup variants. Generation failure or unparseable
// output degrades to the bare subject label.
func (p *DotDBPipeline) generateKeywords(ctx context.Context, domainName string) []string {
	subject := domainkey.SLD(domainName)
	if subject == "" {
		return nil
	}

	text, err := p.gen.Generate(ctx, "dotdb_keywords", "", keywordGenPrompt(domainName, subject))
	if err != nil {
		zap.L().Warn("keyword generation failed, falling back to subject label",
			zap.String("domain", domainName),
			zap.Error(err),
		)
		text = ""
	}

	return expandKeywords(parseTopTier(text), subject, p.cfg.MaxKeywords)
}
