// Package research implements the open-web discovery path: a supervisor
// seeded with the domain classification plans a bounded set of search
// queries, runs them, and distills the findings into leads.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/leadgen"
	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/jina"
)

// defaultMaxQueries bounds the search fan-out per run.
const defaultMaxQueries = 5

// maxResultsPerQuery bounds how many results per query feed distillation.
const maxResultsPerQuery = 5

const planSystemPrompt = `You plan web searches for domain brokerage lead generation. Given a research brief with tiered buyer personas, propose search queries that will surface real companies matching the personas, prioritizing Tier 1. Respond with ONLY a JSON array of query strings, most promising first.`

const distillSystemPrompt = `You are a lead qualification analyst for domain brokerage. From the search results provided, identify real companies or organizations that match the buyer personas in the research brief.

Respond with ONLY a JSON object of the form:
{"leads": [{"website": "...", "detailed_summary": "...", "rationale": "...", "tier": "Tier 1|Tier 2|Tier 3", "meta_data": {}}]}

Rules:
- website must be the company's official URL taken from a search result
- detailed_summary: 2-4 sentences grounded in the result content
- rationale: why this company would acquire the domain
- skip directories, marketplaces, news articles, and domain-for-sale pages
- return {"leads": []} if nothing qualifies`

// Agent is the default research collaborator. It satisfies the engine's
// Researcher contract.
type Agent struct {
	gen        *leadgen.Generator
	search     jina.Client
	maxQueries int
}

// NewAgent creates a research agent over the shared generator and search
// client.
func NewAgent(gen *leadgen.Generator, search jina.Client, cfg config.ResearchConfig) *Agent {
	maxQueries := cfg.MaxSearchQueries
	if maxQueries <= 0 {
		maxQueries = defaultMaxQueries
	}
	return &Agent{gen: gen, search: search, maxQueries: maxQueries}
}

// Run plans queries from the brief, searches the web, and distills the
// results into leads. Individual query failures degrade to notes; the run
// errors only when planning fails or no search produced anything to
// distill.
func (a *Agent) Run(ctx context.Context, brief string, seed []model.Message) ([]string, []model.Lead, error) {
	queries, err := a.planQueries(ctx, brief, seed)
	if err != nil {
		return nil, nil, err
	}

	var notes []string
	var sb strings.Builder
	resultCount := 0
	for _, q := range queries {
		resp, err := a.search.Search(ctx, q)
		if err != nil {
			notes = append(notes, fmt.Sprintf("search %q failed: %v", q, err))
			continue
		}
		if !resp.Success() {
			notes = append(notes, fmt.Sprintf("search %q rejected: %s", q, resp.ErrorMessage()))
			continue
		}

		results := resp.Data
		if len(results) > maxResultsPerQuery {
			results = results[:maxResultsPerQuery]
		}
		notes = append(notes, fmt.Sprintf("search %q returned %d results", q, len(resp.Data)))
		for _, r := range results {
			resultCount++
			fmt.Fprintf(&sb, "query: %s\nurl: %s\ntitle: %s\ndescription: %s\n\n", q, r.URL, r.Title, r.Description)
		}
	}

	if resultCount == 0 {
		return notes, nil, eris.New("research: no usable search results")
	}

	leads, err := a.distill(ctx, brief, sb.String())
	if err != nil {
		return notes, nil, err
	}

	zap.L().Info("research path complete",
		zap.Int("queries", len(queries)),
		zap.Int("results", resultCount),
		zap.Int("leads", len(leads)),
	)
	return notes, leads, nil
}

// planQueries asks the model for search queries grounded in the seeded
// supervisor conversation.
func (a *Agent) planQueries(ctx context.Context, brief string, seed []model.Message) ([]string, error) {
	var sb strings.Builder
	for _, m := range seed {
		if m.Role == model.MessageRoleSystem {
			continue
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	if sb.Len() == 0 {
		sb.WriteString(brief)
	}
	prompt := fmt.Sprintf("RESEARCH BRIEF:\n%s\nPropose at most %d search queries.", sb.String(), a.maxQueries)

	text, err := a.gen.Generate(ctx, "research_plan", planSystemPrompt, prompt)
	if err != nil {
		return nil, eris.Wrap(err, "research: plan queries")
	}

	var queries []string
	if err := json.Unmarshal([]byte(stripFences(text)), &queries); err != nil {
		return nil, eris.Wrap(err, "research: parse query plan")
	}

	cleaned := make([]string, 0, len(queries))
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		return nil, eris.New("research: empty query plan")
	}
	if len(cleaned) > a.maxQueries {
		cleaned = cleaned[:a.maxQueries]
	}
	return cleaned, nil
}

// distill converts collected search results into qualified leads.
func (a *Agent) distill(ctx context.Context, brief, results string) ([]model.Lead, error) {
	prompt := fmt.Sprintf("RESEARCH BRIEF:\n%s\n\nSEARCH RESULTS:\n%s", brief, results)

	text, err := a.gen.Generate(ctx, "research_distill", distillSystemPrompt, prompt)
	if err != nil {
		return nil, eris.Wrap(err, "research: distill leads")
	}

	var list model.LeadList
	if err := json.Unmarshal([]byte(stripFences(text)), &list); err != nil {
		return nil, eris.Wrap(err, "research: parse leads")
	}

	leads := make([]model.Lead, 0, len(list.Leads))
	for _, l := range list.Leads {
		if l.Valid() {
			leads = append(leads, l)
		}
	}
	return leads, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
