package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/storage"
)

func seededStore(t *testing.T) (*storage.SQLiteStorage, uuid.UUID) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	doc := &model.Document{ID: uuid.New(), Path: "/scans/report.pdf", Title: "Lab Report", PageCount: 2}
	require.NoError(t, store.SaveDocument(ctx, doc))
	require.NoError(t, store.SaveClassification(ctx, &model.StoredClassification{
		DocumentID:       doc.ID.String(),
		DocumentType:     model.DocTypeUnstructured,
		ProcessingMethod: model.MethodOCRRequired,
		Confidence:       0.55,
	}))
	return store, doc.ID
}

func TestLoadReviewItems(t *testing.T) {
	store, docID := seededStore(t)

	items, err := LoadReviewItems(context.Background(), store, 0.7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, docID, items[0].Document.ID)
	assert.Equal(t, "Lab Report", items[0].Document.Title)

	items, err = LoadReviewItems(context.Background(), store, 0.5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOverrideKeyPersistsDecision(t *testing.T) {
	store, docID := seededStore(t)
	items, err := LoadReviewItems(context.Background(), store, 0.7)
	require.NoError(t, err)

	m := NewModel(store, items)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = updated.(Model)

	assert.Contains(t, m.View(), "direct_text_extraction")

	c, err := store.GetClassification(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, model.MethodDirectText, c.OverrideMethod)
	assert.Equal(t, model.MethodDirectText, c.EffectiveMethod())
}

func TestQuitKeys(t *testing.T) {
	store, _ := seededStore(t)
	m := NewModel(store, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptyQueueView(t *testing.T) {
	store, _ := seededStore(t)
	m := NewModel(store, nil)
	assert.Contains(t, m.View(), "No low-confidence classifications")
}
