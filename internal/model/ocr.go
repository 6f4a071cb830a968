package model

// Word is a single recognized word with its Tesseract confidence (0-100).
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// OCRPass is the outcome of one OCR configuration applied to a page image.
type OCRPass struct {
	Name      string `json:"name"`
	Config    string `json:"config"`
	Text      string `json:"text"`
	Err       string `json:"error,omitempty"`
	CharCount int    `json:"char_count"`
}

// TableRow is one heuristically recovered row of a lab-report table.
type TableRow struct {
	Kind string `json:"kind"` // "header" or "data"
	Line string `json:"line"`
}

// OCRPageResult aggregates all passes over a single page and the parsed
// table content from the best pass.
type OCRPageResult struct {
	BestPass   string     `json:"best_method"`
	BestConfig string     `json:"best_config"`
	FullText   string     `json:"full_text"`
	Passes     []OCRPass  `json:"all_methods"`
	TableRows  []TableRow `json:"table_data"`
	Page       int        `json:"page"`
}
