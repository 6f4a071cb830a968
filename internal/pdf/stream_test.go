package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple Tj operator",
			input: "BT\n(Hello World) Tj\nET",
			want:  "Hello World",
		},
		{
			name:  "TJ array with kerning",
			input: "[(Hemo) -20 (globin)] TJ",
			want:  "Hemoglobin",
		},
		{
			name:  "positioning inserts separator",
			input: "(Patient) Tj\n1 0 0 1 72 700 Td\n(Name) Tj",
			want:  "Patient Name",
		},
		{
			name:  "next-line show operator",
			input: "(Line one) Tj\n(Line two) '",
			want:  "Line one Line two",
		},
		{
			name:  "empty stream",
			input: "",
			want:  "",
		},
		{
			name:  "operators without text",
			input: "q\n1 0 0 1 0 0 cm\nQ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textFromContentStream([]byte(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "abc", want: "abc"},
		{name: "escaped parens", input: `\(x\)`, want: "(x)"},
		{name: "newline escape", input: `a\nb`, want: "a\nb"},
		{name: "octal space", input: `a\040b`, want: "a b"},
		{name: "backslash", input: `a\\b`, want: `a\b`},
		{name: "trailing backslash", input: `a\`, want: `a\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeLiteral([]byte(tt.input)))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeWhitespace("  a\n\nb\t c  "))
	assert.Equal(t, "", normalizeWhitespace("\n\t "))
}
