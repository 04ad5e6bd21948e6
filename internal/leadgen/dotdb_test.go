package leadgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/namekart/lead-gen-deep-research/internal/config"
	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/jina"
)

func newTestPipeline(llm *mockAnthropicClient, db *mockDotDBClient, jc *mockJinaClient) *DotDBPipeline {
	gen := NewGenerator(llm, config.AnthropicConfig{Model: "test-model", MaxRetries: 1})
	return NewDotDBPipeline(gen, db, jc, config.LeadgenConfig{
		MaxKeywords:         80,
		ValidateConcurrency: 4,
	})
}

func okSite(title, url, content string) *jina.Response {
	return &jina.Response{
		Code:   200,
		Status: 20000,
		Data:   []jina.Result{{Title: title, URL: url, Content: content}},
	}
}

func leadJSON(t *testing.T, lead model.Lead) string {
	t.Helper()
	raw, err := json.Marshal(lead)
	require.NoError(t, err)
	return string(raw)
}

func TestDotDBPipelineRun(t *testing.T) {
	t.Parallel()

	llm := new(mockAnthropicClient)
	db := new(mockDotDBClient)
	jc := new(mockJinaClient)

	// Keyword generation yields one top-tier phrase; the later calls are
	// matched in registration order, so this services the first call only.
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`JSON_TOP_TIER: ["covert camera"]`), nil).Once()

	// Bulk lookup returns one exact-subject match and one off-subject domain.
	db.On("BulkLeads", mock.Anything, []string{"covert-camera", "covertcamera"}).
		Return(map[string][]string{
			"covertcamera":  {"covertcamera.net", "covertcameraworld.net"},
			"covert-camera": {"covert-camera.io"},
		}, nil).Once()

	jc.On("FetchSite", mock.Anything, "covertcamera.net").
		Return(okSite("Covert Camera Store", "https://covertcamera.net", "We sell hidden cameras to businesses."), nil).Once()
	jc.On("FetchSite", mock.Anything, "covert-camera.io").
		Return(okSite("Covert Camera Labs", "https://covert-camera.io", "Security camera engineering."), nil).Once()

	extracted := model.Lead{
		Website:         "ignored, pinned afterwards",
		DetailedSummary: "Sells covert cameras to businesses.",
		Rationale:       "Exact-market operator.",
		Tier:            "Tier 1",
	}
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(leadJSON(t, extracted)), nil).Twice()

	p := newTestPipeline(llm, db, jc)
	leads, err := p.Run(context.Background(), "covertcamera.com", "classification text")
	require.NoError(t, err)
	require.Len(t, leads, 2)
	// Candidate order follows keyword order: the hyphenated variant is
	// generated first, so its match surfaces first.
	assert.Equal(t, "https://covert-camera.io", leads[0].Website)
	assert.Equal(t, "https://covertcamera.net", leads[1].Website)

	llm.AssertExpectations(t)
	db.AssertExpectations(t)
	jc.AssertExpectations(t)
}

func TestDotDBPipelineKeywordFailureFallsBackToSubject(t *testing.T) {
	t.Parallel()

	llm := new(mockAnthropicClient)
	db := new(mockDotDBClient)
	jc := new(mockJinaClient)

	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).Once()
	db.On("BulkLeads", mock.Anything, []string{"covertcamera"}).
		Return(map[string][]string{}, nil).Once()

	p := newTestPipeline(llm, db, jc)
	leads, err := p.Run(context.Background(), "covertcamera.com", "")
	require.NoError(t, err)
	assert.Empty(t, leads)

	db.AssertExpectations(t)
}

func TestDotDBPipelineLookupFailureDegrades(t *testing.T) {
	t.Parallel()

	llm := new(mockAnthropicClient)
	db := new(mockDotDBClient)
	jc := new(mockJinaClient)

	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`JSON_TOP_TIER: ["spycam"]`), nil).Once()
	db.On("BulkLeads", mock.Anything, []string{"spycam"}).
		Return(nil, errors.New("boom")).Once()

	p := newTestPipeline(llm, db, jc)
	leads, err := p.Run(context.Background(), "spycam.com", "")
	require.NoError(t, err)
	assert.Empty(t, leads)

	jc.AssertNotCalled(t, "FetchSite", mock.Anything, mock.Anything)
}
