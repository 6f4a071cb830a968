package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/llm"
)

func newTestServer(t *testing.T, retriever *stubRetriever) *httptest.Server {
	t.Helper()
	if retriever == nil {
		retriever = &stubRetriever{}
	}
	srv := NewServer("127.0.0.1:0", NewService(retriever, llm.NewMockClient("the answer"), nil), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleChat(t *testing.T) {
	retriever := &stubRetriever{results: snippetResults("WBC 6.8")}
	ts := newTestServer(t, retriever)

	resp, err := http.Post(ts.URL+"/chat", "application/json",
		strings.NewReader(`{"question":"What was the WBC count?","top_k":2}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var answer Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	assert.Equal(t, "the answer", answer.Response)
	assert.Equal(t, []string{"WBC 6.8"}, answer.Snippets)
	assert.Equal(t, "mock", answer.Model)
}

func TestHandleChatBadRequest(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/chat", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/chat", "application/json", strings.NewReader(`{"top_k":3}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleChatUpstreamFailure(t *testing.T) {
	mock := llm.NewMockClient("")
	mock.Err = errors.New("model offline")
	srv := NewServer("127.0.0.1:0", NewService(&stubRetriever{}, mock, nil), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/chat", "application/json",
		strings.NewReader(`{"question":"hi"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
