package main

import (
	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/leadgen"
	"github.com/namekart/lead-gen-deep-research/internal/research"
	"github.com/namekart/lead-gen-deep-research/pkg/anthropic"
	"github.com/namekart/lead-gen-deep-research/pkg/dotdb"
	"github.com/namekart/lead-gen-deep-research/pkg/jina"
)

// env bundles the wired clients and engine shared by the commands.
type env struct {
	engine *leadgen.Engine
	dotdb  dotdb.Client
	jina   jina.Client
	gen    *leadgen.Generator
}

// initEnv constructs the client stack and orchestration engine from config.
func initEnv(c *config.Config) (*env, error) {
	anthropicClient := anthropic.NewClient(c.Anthropic.Key)
	dotdbClient := dotdb.NewClient(c.DotDB.URL)
	jinaClient := jina.NewClient(c.Jina.Key,
		jina.WithBaseURL(c.Jina.BaseURL),
		jina.WithRateLimit(c.Jina.RateLimit),
	)

	gen := leadgen.NewGenerator(anthropicClient, c.Anthropic)
	dotdbPath := leadgen.NewDotDBPipeline(gen, dotdbClient, jinaClient, c.Leadgen)
	researcher := research.NewAgent(gen, jinaClient, c.Research)

	engine, err := leadgen.NewEngine(gen, researcher, dotdbPath, c.Leadgen)
	if err != nil {
		return nil, err
	}

	return &env{
		engine: engine,
		dotdb:  dotdbClient,
		jina:   jinaClient,
		gen:    gen,
	}, nil
}
