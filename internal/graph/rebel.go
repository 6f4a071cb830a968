package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/javutech/medpipe/internal/llm"
	"github.com/javutech/medpipe/internal/model"
)

// RelationExtractor produces relation triples from free text.
type RelationExtractor interface {
	ExtractRelations(ctx context.Context, text string) ([]model.Triple, error)
}

// relationPrompt asks the LLM for REBEL-style output: flat triples as
// double-space separated head, tail, relation strides.
const relationPrompt = `Extract factual relations from the medical text below.
Output each relation as three fields separated by two spaces, in the order: head entity, tail entity, relation.
Separate consecutive relations with two spaces as well, all on one line.
Output nothing else.

Text:
%s`

// LLMExtractor implements RelationExtractor on top of the chat LLM.
type LLMExtractor struct {
	client llm.Client
}

// NewLLMExtractor wraps an LLM client as a relation extractor.
func NewLLMExtractor(client llm.Client) *LLMExtractor {
	return &LLMExtractor{client: client}
}

// ExtractRelations asks the model for triples and parses its raw output.
func (e *LLMExtractor) ExtractRelations(ctx context.Context, text string) ([]model.Triple, error) {
	raw, err := e.client.Complete(ctx, fmt.Sprintf(relationPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("relation extraction failed: %w", err)
	}
	return ParseTriples(raw), nil
}

// ParseTriples decodes raw seq2seq relation output. Fields arrive double-space
// separated in head, tail, relation order; incomplete trailing strides are
// dropped.
func ParseTriples(raw string) []model.Triple {
	parts := strings.Split(raw, "  ")
	var triples []model.Triple
	for i := 0; i+2 < len(parts); i += 3 {
		head := strings.TrimSpace(parts[i])
		tail := strings.TrimSpace(parts[i+1])
		relation := strings.TrimSpace(parts[i+2])
		if head != "" && relation != "" && tail != "" {
			triples = append(triples, model.Triple{Head: head, Relation: relation, Tail: tail})
		}
	}
	return triples
}
