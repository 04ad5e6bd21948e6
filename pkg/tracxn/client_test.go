package tracxn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyInfo_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/company/tracxn", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "acme.com", req["companyDomain"])

		w.Write([]byte(`{"success": true, "data": {"name": "Acme", "employees": 120}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.CompanyInfo(context.Background(), "acme.com")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got["name"])
}

func TestCompanyInfo_NotFoundIsNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.CompanyInfo(context.Background(), "unknown.com")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompanyInfo_UnsuccessfulEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.CompanyInfo(context.Background(), "acme.com")

	require.NoError(t, err)
	assert.Nil(t, got)
}
