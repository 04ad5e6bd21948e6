package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namekart/lead-gen-deep-research/internal/model"
	"github.com/namekart/lead-gen-deep-research/pkg/tracxn"
)

func TestEnrichLeads(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CompanyDomain string `json:"companyDomain"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch body.CompanyDomain {
		case "acme.com":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"name": "Acme Corp", "employees": 120},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	leads := []model.Lead{
		{Website: "https://www.acme.com/about", DetailedSummary: "s", Rationale: "r"},
		{Website: "https://unknown.io", DetailedSummary: "s", Rationale: "r"},
	}

	got := enrichLeads(context.Background(), tracxn.NewClient(srv.URL), leads)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Metadata)
	info, ok := got[0].Metadata["company_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", info["name"])

	// Lookup miss leaves the lead untouched.
	assert.Nil(t, got[1].Metadata)
}
