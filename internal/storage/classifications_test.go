package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/model"
)

func saveTestClassification(t *testing.T, store *SQLiteStorage, confidence float64) *model.Document {
	t.Helper()
	ctx := context.Background()
	doc := createTestDocument("Lab Report")
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       doc.ID.String(),
		DocumentType:     model.DocTypeUnstructured,
		ProcessingMethod: model.MethodOCRRequired,
		Confidence:       confidence,
		EvidenceJSON:     `{"text_extraction":{"success":false}}`,
	}))
	return doc
}

func TestSaveAndGetClassification(t *testing.T) {
	store := createTestStorage(t)
	doc := saveTestClassification(t, store, 0.8)

	got, err := store.GetClassification(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocTypeUnstructured, got.DocumentType)
	assert.Equal(t, model.MethodOCRRequired, got.ProcessingMethod)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
	assert.Contains(t, got.EvidenceJSON, "text_extraction")
	assert.Equal(t, model.MethodOCRRequired, got.EffectiveMethod())
}

func TestGetClassificationNotFound(t *testing.T) {
	store := createTestStorage(t)
	_, err := store.GetClassification(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrClassificationNotFound)
}

func TestOverrideRoutingSurvivesReclassification(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	doc := saveTestClassification(t, store, 0.55)

	require.NoError(t, store.OverrideRouting(ctx, doc.ID, model.MethodDirectText))

	// reclassify the same document
	require.NoError(t, store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       doc.ID.String(),
		DocumentType:     model.DocTypeStructured,
		ProcessingMethod: model.MethodOCRRequired,
		Confidence:       0.6,
	}))

	got, err := store.GetClassification(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MethodDirectText, got.OverrideMethod)
	assert.Equal(t, model.MethodDirectText, got.EffectiveMethod())
	assert.Equal(t, model.DocTypeStructured, got.DocumentType)
}

func TestOverrideRoutingValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	err := store.OverrideRouting(ctx, uuid.New(), model.MethodDirectText)
	assert.ErrorIs(t, err, ErrClassificationNotFound)

	doc := saveTestClassification(t, store, 0.7)
	err = store.OverrideRouting(ctx, doc.ID, model.ProcessingMethod("llm_magic"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListLowConfidenceClassifications(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saveTestClassification(t, store, 0.52)
	saveTestClassification(t, store, 0.95)
	saveTestClassification(t, store, 0.61)

	low, err := store.ListLowConfidenceClassifications(ctx, 0.7)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.InDelta(t, 0.52, low[0].Confidence, 1e-9)
	assert.InDelta(t, 0.61, low[1].Confidence, 1e-9)
}

func TestSaveClassificationValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveClassification(ctx, nil), ErrInvalidInput)
	assert.ErrorIs(t, store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       uuid.NewString(),
		ProcessingMethod: model.MethodDirectText,
		Confidence:       1.5,
	}), ErrInvalidInput)
	assert.ErrorIs(t, store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       uuid.NewString(),
		ProcessingMethod: "telepathy",
		Confidence:       0.5,
	}), ErrInvalidInput)
}
