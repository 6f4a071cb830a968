// Package pdf wraps the PDF libraries used by the pipeline behind small,
// purpose-built readers: a pdfcpu-backed Document for structure-aware access
// (text, metadata, images, annotations), an rsc.io/pdf fallback for plain
// text and font spans, and a poppler-backed page renderer for OCR input.
package pdf
