package pdf

import (
	"fmt"
	"strings"

	rpdf "rsc.io/pdf"
)

// FallbackResult is what the secondary text extractor could recover.
type FallbackResult struct {
	Text      string
	PageCount int
}

// FallbackText extracts plain text with rsc.io/pdf. It is the second-chance
// extractor used when pdfcpu cannot read a document at all.
//
// rsc.io/pdf panics on malformed input, so the whole pass runs behind a
// recover and reports the panic as an error.
func FallbackText(path string) (result FallbackResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fallback extraction panicked: %v", r)
		}
	}()

	r, err := rpdf.Open(path)
	if err != nil {
		return FallbackResult{}, err
	}

	result.PageCount = r.NumPage()

	var sb strings.Builder
	for i := 1; i <= result.PageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		var lastY float64
		for _, t := range content.Text {
			if lastY != 0 && t.Y != lastY {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.S)
			lastY = t.Y
		}
	}
	result.Text = sb.String()

	return result, nil
}

// FontNames collects the distinct font names referenced by text spans on the
// first maxPages pages (all pages when maxPages <= 0). A non-empty result is
// a strong signal of a digitally authored document.
func FontNames(path string, maxPages int) (names []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font scan panicked: %v", r)
		}
	}()

	r, err := rpdf.Open(path)
	if err != nil {
		return nil, err
	}

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}

	seen := make(map[string]bool)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			if t.Font != "" && !seen[t.Font] {
				seen[t.Font] = true
				names = append(names, t.Font)
			}
		}
	}
	return names, nil
}
