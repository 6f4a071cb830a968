package pipeline

import (
	"strings"
)

// DefaultChunkSize bounds snippet length in runes. Snippets are the
// retrieval unit; oversized ones dilute relevance ranking and blow up chat
// prompts.
const DefaultChunkSize = 1000

// SplitSnippets chunks document text into indexable snippets. Paragraphs
// (blank-line separated) are packed together up to maxLen runes; a single
// oversized paragraph is split hard at the boundary.
func SplitSnippets(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	var snippets []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			snippets = append(snippets, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		runes := []rune(para)
		for len(runes) > maxLen {
			flush()
			snippets = append(snippets, strings.TrimSpace(string(runes[:maxLen])))
			runes = runes[maxLen:]
		}
		para = strings.TrimSpace(string(runes))
		if para == "" {
			continue
		}
		paraLen := len([]rune(para))
		if currentLen > 0 && currentLen+paraLen+2 > maxLen {
			flush()
		}
		if currentLen > 0 {
			current.WriteString("\n\n")
			currentLen += 2
		}
		current.WriteString(para)
		currentLen += paraLen
	}
	flush()
	return snippets
}
