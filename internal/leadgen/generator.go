package leadgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/resilience"
	"github.com/namekart/lead-gen-deep-research/pkg/anthropic"
)

// Generator issues text-generation calls with bounded retry. Exhausted
// retries surface as errors that stages degrade on rather than propagate.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	retry     resilience.RetryConfig
}

// NewGenerator wraps an Anthropic client with the configured model and
// retry bound.
func NewGenerator(client anthropic.Client, cfg config.AnthropicConfig) *Generator {
	retry := resilience.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	return &Generator{
		client:    client,
		model:     cfg.Model,
		maxTokens: maxTokens,
		retry:     retry,
	}
}

// Generate runs a single prompt (with optional system text) and returns the
// response text. The stage name labels retries and cost attribution.
func (g *Generator) Generate(ctx context.Context, stage, system, prompt string) (string, error) {
	req := anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	}
	if system != "" {
		req.System = []anthropic.SystemBlock{{Text: system}}
	}

	resp, err := resilience.DoVal(ctx, g.retry, stage, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return "", err
	}

	resp.Usage.LogCost(g.model, stage)
	zap.L().Debug("generation complete",
		zap.String("stage", stage),
		zap.String("stop_reason", resp.StopReason),
	)
	return resp.Text(), nil
}
