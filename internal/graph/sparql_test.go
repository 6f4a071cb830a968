package graph

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/common"
)

func TestSPARQLClientUpdate(t *testing.T) {
	var gotBody, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	client, err := NewSPARQLClient(ts.URL)
	require.NoError(t, err)

	update := `INSERT DATA { <http://javutech.com/a> <http://javutech.com/type> "Entity" . }`
	require.NoError(t, client.Update(context.Background(), update))
	assert.Equal(t, update, gotBody)
	assert.Equal(t, "application/sparql-update", gotContentType)
}

func TestSPARQLClientQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/sparql-query", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/sparql-results+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"results":{"bindings":[]}}`))
	}))
	t.Cleanup(ts.Close)

	client, err := NewSPARQLClient(ts.URL)
	require.NoError(t, err)

	out, err := client.Query(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Contains(t, out, "results")
}

func TestSPARQLClientBadRequestNotRetried(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	t.Cleanup(ts.Close)

	client, err := NewSPARQLClient(ts.URL)
	require.NoError(t, err)

	err = client.Update(context.Background(), "bogus")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSPARQLClientRetriesServerErrors(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	client, err := NewSPARQLClient(ts.URL)
	require.NoError(t, err)
	client.retry = common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond}

	require.NoError(t, client.Update(context.Background(), "INSERT DATA { }"))
	assert.Equal(t, 3, calls)
}

func TestNewSPARQLClientValidation(t *testing.T) {
	_, err := NewSPARQLClient("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
