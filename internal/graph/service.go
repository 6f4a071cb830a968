package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/javutech/medpipe/internal/model"
)

// Service runs the text-to-graph flow: metadata extraction, relation
// extraction, graph assembly, and optionally pushing to the RDF store.
type Service struct {
	extractor RelationExtractor
	client    *SPARQLClient
	prefix    string
	logger    *slog.Logger
}

// NewService builds a graph service. The SPARQL client may be nil when the
// caller only wants local graph JSON.
func NewService(extractor RelationExtractor, client *SPARQLClient, prefix string, logger *slog.Logger) *Service {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{extractor: extractor, client: client, prefix: prefix, logger: logger}
}

// GraphFromText builds the document graph. Relation extraction failure
// degrades to a metadata-only graph rather than failing the document.
func (s *Service) GraphFromText(ctx context.Context, text string) model.Graph {
	metadata := ExtractMetadata(text)

	var triples []model.Triple
	if s.extractor != nil {
		var err error
		triples, err = s.extractor.ExtractRelations(ctx, text)
		if err != nil {
			s.logger.Warn("relation extraction degraded to metadata only", "error", err)
		}
	}

	g := Build(metadata, triples)
	s.logger.Info("graph built",
		"metadata_fields", len(metadata),
		"triples", len(triples),
		"nodes", len(g.Nodes),
		"edges", len(g.Edges))
	return g
}

// Push serializes the graph and sends it to the SPARQL endpoint.
func (s *Service) Push(ctx context.Context, g model.Graph) error {
	if s.client == nil {
		return fmt.Errorf("no SPARQL endpoint configured")
	}
	if len(g.Nodes) == 0 && len(g.Edges) == 0 {
		s.logger.Info("empty graph, nothing to push")
		return nil
	}
	if err := s.client.Update(ctx, InsertStatement(g, s.prefix)); err != nil {
		return fmt.Errorf("pushing graph: %w", err)
	}
	return nil
}
