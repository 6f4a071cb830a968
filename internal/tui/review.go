// Package tui is the interactive review screen for low-confidence
// classifications. Reviewers can override how a document is routed; the
// decision is persisted immediately and honored on re-ingest.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/javutech/medpipe/internal/model"
	"github.com/javutech/medpipe/internal/service"
)

// ReviewItem joins a classification with its document for display.
type ReviewItem struct {
	Document       model.Document
	Classification model.StoredClassification
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))
)

// Model is the bubbletea model for the review screen.
type Model struct {
	store  service.Storage
	table  table.Model
	items  []ReviewItem
	status string
	err    error
}

// NewModel builds the review screen over the given items.
func NewModel(store service.Storage, items []ReviewItem) Model {
	columns := []table.Column{
		{Title: "Document", Width: 32},
		{Title: "Type", Width: 14},
		{Title: "Confidence", Width: 10},
		{Title: "Routing", Width: 24},
		{Title: "Override", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#4ECDC4"))
	t.SetStyles(s)

	m := Model{store: store, table: t, items: items}
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "d":
			m.override(model.MethodDirectText)
		case "o":
			m.override(model.MethodOCRRequired)
		case "backspace":
			m.clearStatus()
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 6)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.items) == 0 {
		return titleStyle.Render("Routing review") + "\n" +
			"No low-confidence classifications to review.\n" +
			helpStyle.Render("q quit")
	}

	view := titleStyle.Render("Routing review") + "\n" + m.table.View()
	if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}
	view += "\n" + helpStyle.Render("↑/↓ select • d route to direct extraction • o route to OCR • q quit")
	return view
}

// override persists the routing decision for the selected row.
func (m *Model) override(method model.ProcessingMethod) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return
	}
	item := &m.items[idx]

	if err := m.store.OverrideRouting(context.Background(), item.Document.ID, method); err != nil {
		m.err = err
		m.status = fmt.Sprintf("failed to save override: %v", err)
		return
	}
	item.Classification.OverrideMethod = method
	m.status = fmt.Sprintf("%s now routes to %s", item.Document.Title, method)
	m.refreshRows()
}

func (m *Model) clearStatus() {
	m.status = ""
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		override := string(item.Classification.OverrideMethod)
		if override == "" {
			override = "-"
		}
		rows = append(rows, table.Row{
			item.Document.Title,
			string(item.Classification.DocumentType),
			fmt.Sprintf("%.2f", item.Classification.Confidence),
			string(item.Classification.ProcessingMethod),
			override,
		})
	}
	m.table.SetRows(rows)
}

// LoadReviewItems fetches classifications at or below maxConfidence with
// their documents. Classifications whose document is missing are skipped.
func LoadReviewItems(ctx context.Context, store service.Storage, maxConfidence float64) ([]ReviewItem, error) {
	classifications, err := store.ListLowConfidenceClassifications(ctx, maxConfidence)
	if err != nil {
		return nil, fmt.Errorf("loading review queue: %w", err)
	}

	items := make([]ReviewItem, 0, len(classifications))
	for _, c := range classifications {
		id, err := uuid.Parse(c.DocumentID)
		if err != nil {
			continue
		}
		doc, err := store.GetDocument(ctx, id)
		if err != nil {
			continue
		}
		items = append(items, ReviewItem{Document: *doc, Classification: c})
	}
	return items, nil
}

// Run starts the review screen and blocks until the reviewer quits.
func Run(ctx context.Context, store service.Storage, maxConfidence float64) error {
	items, err := LoadReviewItems(ctx, store, maxConfidence)
	if err != nil {
		return err
	}
	program := tea.NewProgram(NewModel(store, items), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("review UI failed: %w", err)
	}
	return nil
}
