package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/javutech/medpipe/internal/common"
	"github.com/javutech/medpipe/internal/model"
)

// DefaultPrefix is the URI namespace for graph resources.
const DefaultPrefix = "http://javutech.com/"

// InsertStatement serializes a graph as a single SPARQL INSERT DATA update.
// Node types become literal-valued triples, edges become resource triples.
// Spaces in identifiers are replaced with underscores to form URIs.
func InsertStatement(g model.Graph, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	statements := make([]string, 0, len(g.Nodes)+len(g.Edges))
	for _, node := range g.Nodes {
		statements = append(statements,
			fmt.Sprintf("%s <%stype> %q .", uri(prefix, node.ID), prefix, node.Label))
	}
	for _, edge := range g.Edges {
		statements = append(statements,
			fmt.Sprintf("%s %s %s .", uri(prefix, edge.From), uri(prefix, edge.Label), uri(prefix, edge.To)))
	}
	return "INSERT DATA { " + strings.Join(statements, " ") + " }"
}

func uri(prefix, id string) string {
	return "<" + prefix + strings.ReplaceAll(id, " ", "_") + ">"
}

// SPARQLClient talks to a SPARQL 1.1 endpoint over HTTP.
type SPARQLClient struct {
	endpoint string
	http     *http.Client
	retry    common.RetryOptions
}

// NewSPARQLClient creates a client for the given endpoint URL.
func NewSPARQLClient(endpoint string) (*SPARQLClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: SPARQL endpoint", common.ErrMissingConfig)
	}
	return &SPARQLClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		retry:    common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second},
	}, nil
}

// Update executes a SPARQL UPDATE statement.
func (c *SPARQLClient) Update(ctx context.Context, update string) error {
	return common.WithRetry(ctx, func() error {
		_, err := c.post(ctx, update, "application/sparql-update", "")
		return err
	}, c.retry)
}

// Query executes a SPARQL SELECT query and returns the decoded JSON results.
func (c *SPARQLClient) Query(ctx context.Context, query string) (map[string]any, error) {
	var out map[string]any
	err := common.WithRetry(ctx, func() error {
		body, err := c.post(ctx, query, "application/sparql-query", "application/sparql-results+json")
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &out)
	}, c.retry)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SPARQLClient) post(ctx context.Context, body, contentType, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building SPARQL request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading SPARQL response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("SPARQL endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		// client errors are not retryable
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}
	return payload, nil
}
