package leadgen

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/dedupe"
	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// DotDBRunner is the keyword-matching discovery path as the engine sees it.
type DotDBRunner interface {
	Run(ctx context.Context, domainName, classificationOutput string) ([]model.Lead, error)
}

// Engine orchestrates one lead-gen run: classify and seed, fan out the two
// discovery paths, join, and deduplicate twice.
type Engine struct {
	gen        *Generator
	researcher Researcher
	dotdbPath  DotDBRunner
	guide      string
}

// NewEngine creates an Engine. The classification guide is loaded once at
// construction (optionally overridden by cfg.PersonasFile).
func NewEngine(gen *Generator, researcher Researcher, dotdbPath DotDBRunner, cfg config.LeadgenConfig) (*Engine, error) {
	guide, err := LoadClassificationGuide(cfg.PersonasFile)
	if err != nil {
		return nil, err
	}
	return &Engine{
		gen:        gen,
		researcher: researcher,
		dotdbPath:  dotdbPath,
		guide:      guide,
	}, nil
}

// Run executes the full state machine for a domain and returns the final
// state. The run fails only when classification cannot seed the paths or
// when both discovery branches fail; a single branch failure degrades to
// that branch contributing nothing.
func (e *Engine) Run(ctx context.Context, domainName string) (*RunState, error) {
	state := NewRunState(domainName)
	log := zap.L().With(zap.String("run_id", state.RunID), zap.String("domain", domainName))
	log.Info("leadgen run starting")

	// Stage 1: classify and seed.
	classification, err := e.gen.Generate(ctx, "classify_and_seed", classifySystemPrompt, classifyPrompt(e.guide, domainName))
	if err != nil {
		return nil, eris.Wrap(err, "leadgen: classify and seed")
	}
	state.Apply(seedUpdates(classification)...)
	log.Info("classification complete", zap.Int("chars", len(classification)))

	// Stage 2: fan out the two discovery paths. Each branch owns its own
	// outputs until the join; neither observes the other's partial state,
	// and one branch failing must not cancel its sibling, so the group
	// carries no shared cancellation.
	var (
		researchNotes []string
		researchLeads []model.Lead
		researchErr   error
		dotdbLeads    []model.Lead
		dotdbErr      error
	)

	var g errgroup.Group
	g.Go(func() error {
		researchNotes, researchLeads, researchErr = e.researcher.Run(ctx, state.ResearchBrief, state.SupervisorMessages)
		if researchErr != nil {
			log.Warn("research path failed", zap.Error(researchErr))
		}
		return nil
	})
	g.Go(func() error {
		dotdbLeads, dotdbErr = e.dotdbPath.Run(ctx, domainName, state.ClassificationOutput)
		if dotdbErr != nil {
			log.Warn("dotdb path failed", zap.Error(dotdbErr))
		}
		return nil
	})

	// Stage 3: join. Branch contributions are folded in only here, under
	// engine control.
	_ = g.Wait()
	if researchErr != nil && dotdbErr != nil {
		return nil, eris.Wrap(researchErr, "leadgen: both discovery paths failed")
	}

	state.Apply(
		appendNotes(researchNotes),
		appendLeads(researchLeads),
		appendLeads(dotdbLeads),
	)
	log.Info("discovery paths joined",
		zap.Int("research_leads", len(researchLeads)),
		zap.Int("dotdb_leads", len(dotdbLeads)),
		zap.Int("notes", len(researchNotes)),
	)

	// Stage 4: first dedup pass replaces the collection.
	state.Apply(setLeads(dedupe.Dedupe(state.Leads)))

	// Stage 5: second pass absorbs loosely-typed duplicates that a hosting
	// serialize/deserialize boundary can reintroduce between stages; when no
	// boundary occurred the pass is a no-op because Dedupe is idempotent.
	state.Apply(setLeads(dedupe.Dedupe(state.Leads)))

	log.Info("leadgen run complete", zap.Int("leads", len(state.Leads)))
	return state, nil
}
