package leadgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLookupDomainsExactSubjectFilter(t *testing.T) {
	t.Parallel()

	db := new(mockDotDBClient)
	db.On("BulkLeads", mock.Anything, []string{"covertcamera", "spy-camera"}).
		Return(map[string][]string{
			"covertcamera": {
				"covertcamera.net",
				"covertcameraworld.net", // related but inexact, must drop
				"covertcamera.co.uk",
			},
			"spy-camera": {
				"spy-camera.io",
				"bestspy-camera.com",
			},
		}, nil).Once()

	p := newTestPipeline(new(mockAnthropicClient), db, new(mockJinaClient))
	got := p.lookupDomains(context.Background(), []string{"covertcamera", "spy-camera"})

	assert.Equal(t, []string{"covertcamera.net", "covertcamera.co.uk", "spy-camera.io"}, got)
	db.AssertExpectations(t)
}

func TestLookupDomainsDedupesAcrossKeywords(t *testing.T) {
	t.Parallel()

	db := new(mockDotDBClient)
	db.On("BulkLeads", mock.Anything, mock.Anything).
		Return(map[string][]string{
			"camera": {"camera.net", "camera.net", "camera.io"},
			"lens":   {"camera.net"},
		}, nil).Once()

	p := newTestPipeline(new(mockAnthropicClient), db, new(mockJinaClient))
	got := p.lookupDomains(context.Background(), []string{"camera", "lens"})

	assert.Equal(t, []string{"camera.net", "camera.io"}, got)
}

func TestLookupDomainsSingleBatchedCall(t *testing.T) {
	t.Parallel()

	db := new(mockDotDBClient)
	db.On("BulkLeads", mock.Anything, mock.Anything).
		Return(map[string][]string{}, nil)

	p := newTestPipeline(new(mockAnthropicClient), db, new(mockJinaClient))
	keywords := []string{"a", "b", "c", "d", "e"}
	p.lookupDomains(context.Background(), keywords)

	db.AssertNumberOfCalls(t, "BulkLeads", 1)
}

func TestLookupDomainsEmptyKeywords(t *testing.T) {
	t.Parallel()

	db := new(mockDotDBClient)
	p := newTestPipeline(new(mockAnthropicClient), db, new(mockJinaClient))

	assert.Nil(t, p.lookupDomains(context.Background(), nil))
	db.AssertNotCalled(t, "BulkLeads", mock.Anything, mock.Anything)
}
