package leadgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/anthropic"
	"github.com/namekart/lead-gen-deep-research/pkg/jina"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

// promptOf pulls the user prompt out of a captured request argument.
func promptOf(t *testing.T, arg interface{}) string {
	t.Helper()
	req, ok := arg.(anthropic.MessageRequest)
	require.True(t, ok)
	require.NotEmpty(t, req.Messages)
	return req.Messages[len(req.Messages)-1].Content
}

// --- DotDB Mock ---

type mockDotDBClient struct {
	mock.Mock
}

func (m *mockDotDBClient) BulkLeads(ctx context.Context, keywords []string) (map[string][]string, error) {
	args := m.Called(ctx, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

// --- Jina Mock ---

type mockJinaClient struct {
	mock.Mock
}

func (m *mockJinaClient) FetchSite(ctx context.Context, domain string) (*jina.Response, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jina.Response), args.Error(1)
}

func (m *mockJinaClient) Search(ctx context.Context, query string, opts ...jina.SearchOption) (*jina.Response, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jina.Response), args.Error(1)
}

// --- DotDB Path Mock ---

type mockDotDBRunner struct {
	mock.Mock
}

func (m *mockDotDBRunner) Run(ctx context.Context, domainName, classificationOutput string) ([]model.Lead, error) {
	args := m.Called(ctx, domainName, classificationOutput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

// --- Researcher Mock ---

type mockResearcher struct {
	mock.Mock
}

func (m *mockResearcher) Run(ctx context.Context, brief string, seed []model.Message) ([]string, []model.Lead, error) {
	args := m.Called(ctx, brief, seed)
	var notes []string
	if args.Get(0) != nil {
		notes = args.Get(0).([]string)
	}
	var leads []model.Lead
	if args.Get(1) != nil {
		leads = args.Get(1).([]model.Lead)
	}
	return notes, leads, args.Error(2)
}
