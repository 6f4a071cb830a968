// Package graph turns document text into a patient knowledge graph and
// serializes it as SPARQL for an RDF store.
package graph

import (
	"regexp"
	"strings"
)

// Metadata keys recognized in document text.
const (
	KeyPatientName = "Patient Name"
	KeyPatientID   = "Patient ID"
	KeyDOB         = "DOB"
	KeyGender      = "Gender"
	KeyDoctor      = "Doctor"
)

var metadataPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyPatientName, regexp.MustCompile(`Patient Name:\s*(.+)`)},
	{KeyPatientID, regexp.MustCompile(`Patient ID:\s*(.+)`)},
	{KeyDOB, regexp.MustCompile(`Date of Birth:\s*(.+)`)},
	{KeyGender, regexp.MustCompile(`Gender:\s*(.+)`)},
	{KeyDoctor, regexp.MustCompile(`(Dr\.\s*[A-Za-z ]+)`)},
}

// ExtractMetadata pulls patient and physician fields out of report text.
// Each pattern takes its first match; absent fields are simply omitted.
func ExtractMetadata(text string) map[string]string {
	metadata := make(map[string]string)
	for _, p := range metadataPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			metadata[p.key] = strings.TrimSpace(m[1])
		}
	}
	return metadata
}
