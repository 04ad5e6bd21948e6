package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSite_Success(t *testing.T) {
	t.Parallel()

	want := Response{
		Code:   200,
		Status: 20000,
		Data: []Result{{
			Title:       "Covert Camera World",
			URL:         "https://covertcamera.com/",
			Content:     "Surveillance gear for professionals.",
			Description: "Covert cameras and accessories",
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "direct", r.Header.Get("X-Engine"))
		assert.Equal(t, "covertcamera.com", r.Header.Get("X-Site"))
		assert.Equal(t, "covertcamera", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.FetchSite(context.Background(), "covertcamera.com")

	require.NoError(t, err)
	assert.True(t, got.Success())
	require.Len(t, got.Data, 1)
	assert.Equal(t, want.Data[0].Title, got.Data[0].Title)
	assert.Empty(t, got.ErrorMessage())
}

func TestFetchSite_ErrorBodyReturnedNotRaised(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(Response{
			Code:            422,
			Status:          42206,
			ReadableMessage: "no content available for this site",
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.FetchSite(context.Background(), "parked-domain.com")

	require.NoError(t, err)
	assert.False(t, got.Success())
	assert.Equal(t, "no content available for this site", got.ErrorMessage())
}

func TestFetchSite_SuccessRequiresBothCodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Transport-success code without the application-success status.
		json.NewEncoder(w).Encode(Response{Code: 200, Status: 42900, Message: "quota exceeded"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.FetchSite(context.Background(), "example.com")

	require.NoError(t, err)
	assert.False(t, got.Success())
	assert.Equal(t, "quota exceeded", got.ErrorMessage())
}

func TestFetchSite_NoSubjectLabel(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key")
	_, err := client.FetchSite(context.Background(), "   ")
	require.Error(t, err)
}

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/surveillance+camera+suppliers", r.URL.Path)
		json.NewEncoder(w).Encode(Response{
			Code:   200,
			Status: 20000,
			Data:   []Result{{Title: "Supplier A", URL: "https://a.com"}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "surveillance camera suppliers")

	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Supplier A", got.Data[0].Title)
}

func TestSearch_NoResults422(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":422}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Search(context.Background(), "xzqy")

	require.NoError(t, err)
	assert.Empty(t, got.Data)
}

func TestSearch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`internal error`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSearch_SiteFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "example.com", r.URL.Query().Get("site"))
		json.NewEncoder(w).Encode(Response{Code: 200, Status: 20000})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "q", WithSiteFilter("example.com"))
	require.NoError(t, err)
}

func TestFetchSite_RateLimited(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(Response{Code: 200, Status: 20000})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	for range 3 {
		_, err := client.FetchSite(context.Background(), "example.com")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
