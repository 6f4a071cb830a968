package ocr

import (
	"strings"
	"unicode"

	"github.com/javutech/medpipe/internal/model"
)

// Row kinds emitted by the table parser.
const (
	RowHeader = "header"
	RowData   = "data"
)

// headerMarkers open a table region when any of them appears in a line.
var headerMarkers = []string{"TEST", "RESULT", "REFERENCE", "RANGE"}

// sectionMarkers close a table region; lab reports follow result tables
// with a clinical-notes section.
var sectionMarkers = []string{"CLINICAL", "NOTES"}

// parseTableRows scans OCR text for lab-report result tables. It is a
// heuristic line classifier: a line naming the usual result-table column
// headers opens a table, numeric multi-column lines inside it are data rows,
// and the clinical-notes section closes it.
func parseTableRows(text string) []model.TableRow {
	var rows []model.TableRow
	inTable := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)

		if containsAny(upper, headerMarkers) {
			inTable = true
			if len(strings.Fields(line)) > 2 {
				rows = append(rows, model.TableRow{Kind: RowHeader, Line: line})
			}
			continue
		}
		if inTable && containsDigit(line) && len(strings.Fields(line)) >= 2 {
			rows = append(rows, model.TableRow{Kind: RowData, Line: line})
		}
		if containsAny(upper, sectionMarkers) {
			inTable = false
		}
	}
	return rows
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}
