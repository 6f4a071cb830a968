package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAndSearchSnippets(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := createTestDocument("Metabolic Panel")
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.IndexSnippets(ctx, doc, []string{
		"Glucose 95 mg/dL within reference range",
		"Creatinine 0.9 mg/dL",
		"   ", // blank snippets are dropped
	}))

	results, err := store.SearchSnippets(ctx, "glucose", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, doc.ID, results[0].Snippet.DocumentID)
	assert.Equal(t, "Metabolic Panel", results[0].Snippet.Title)
	assert.Contains(t, results[0].Snippet.Content, "Glucose 95")
}

func TestSearchSnippetsTopK(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := createTestDocument("Hematology")
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.IndexSnippets(ctx, doc, []string{
		"hemoglobin value one",
		"hemoglobin value two",
		"hemoglobin value three",
	}))

	results, err := store.SearchSnippets(ctx, "hemoglobin", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// non-positive topK falls back to the default
	results, err = store.SearchSnippets(ctx, "hemoglobin", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestSearchSnippetsNoMatch(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := createTestDocument("Radiology")
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.IndexSnippets(ctx, doc, []string{"unremarkable chest x-ray"}))

	results, err := store.SearchSnippets(ctx, "zymurgy", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSnippetsValidation(t *testing.T) {
	store := createTestStorage(t)
	_, err := store.SearchSnippets(context.Background(), "", 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIndexSnippetsReplacesOldIndex(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := createTestDocument("Pathology")
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.IndexSnippets(ctx, doc, []string{"biopsy shows inflammation"}))
	require.NoError(t, store.IndexSnippets(ctx, doc, []string{"margins are clear"}))

	stale, err := store.SearchSnippets(ctx, "inflammation", 3)
	require.NoError(t, err)
	assert.Empty(t, stale)

	fresh, err := store.SearchSnippets(ctx, "margins", 3)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestFTSQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "glucose", `"glucose"`},
		{"multiple terms", "fasting glucose", `"fasting" OR "glucose"`},
		{"punctuation is neutralized", `"DROP TABLE"`, `"DROP" OR "TABLE"`},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ftsQuery(tt.query))
		})
	}
}
