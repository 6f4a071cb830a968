package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ImageInfo describes one embedded raster image. Width and height are the
// image's own pixel dimensions as recorded in its XObject dictionary, not
// the size it is drawn at on the page.
type ImageInfo struct {
	Width  int
	Height int
}

// PageSize is a page's media box dimensions in PDF points.
type PageSize struct {
	Width  float64
	Height float64
}

// Document provides structure-aware access to a PDF via pdfcpu.
type Document struct {
	ctx  *model.Context
	path string
}

// Open reads, validates, and optimizes the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	return &Document{ctx: ctx, path: path}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Metadata returns the document information dictionary entries that the
// classifier cares about. Missing entries are omitted.
func (d *Document) Metadata() map[string]string {
	md := make(map[string]string)
	for key, val := range map[string]string{
		"title":    d.ctx.Title,
		"author":   d.ctx.Author,
		"creator":  d.ctx.Creator,
		"producer": d.ctx.Producer,
	} {
		if val != "" {
			md[key] = val
		}
	}
	return md
}

// PageText extracts the text of a single page from its content stream.
// Pages that cannot be parsed yield an empty string.
func (d *Document) PageText(pageNr int) string {
	return extractPageText(d.ctx, pageNr)
}

// Text concatenates the text of all pages, newline separated.
func (d *Document) Text() string {
	var out []byte
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		t := d.PageText(pageNr)
		if t == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, t...)
	}
	return string(out)
}

// PageSizes returns the media box dimensions of every page, in points.
func (d *Document) PageSizes() ([]PageSize, error) {
	dims, err := d.ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("page dimensions: %w", err)
	}
	sizes := make([]PageSize, len(dims))
	for i, dim := range dims {
		sizes[i] = PageSize{Width: dim.Width, Height: dim.Height}
	}
	return sizes, nil
}

// PageImages lists the embedded raster images of a page with their pixel
// dimensions. Images whose dictionaries lack width or height are skipped.
func (d *Document) PageImages(pageNr int) []ImageInfo {
	if d.ctx.Optimize == nil {
		return nil
	}

	var infos []ImageInfo
	for _, objNr := range pdfcpu.ImageObjNrs(d.ctx, pageNr) {
		entry := d.ctx.Table[objNr]
		if entry == nil || entry.Free {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		w := sd.IntEntry("Width")
		h := sd.IntEntry("Height")
		if w == nil || h == nil {
			continue
		}
		infos = append(infos, ImageInfo{Width: *w, Height: *h})
	}
	return infos
}

// HasFormFields reports whether the document carries AcroForm fields.
func (d *Document) HasFormFields() bool {
	rootDict, err := d.ctx.Catalog()
	if err != nil {
		return false
	}
	obj, found := rootDict.Find("AcroForm")
	if !found {
		return false
	}
	acro, err := d.ctx.DereferenceDict(obj)
	if err != nil || acro == nil {
		return false
	}
	return len(acro.ArrayEntry("Fields")) > 0
}

// HasAnnotations reports whether any of the first maxPages pages carries
// annotations. Lookup failures are treated as "no annotations".
func (d *Document) HasAnnotations(maxPages int) bool {
	if maxPages < 1 {
		return false
	}
	n := d.ctx.PageCount
	if n > maxPages {
		n = maxPages
	}

	f, err := os.Open(d.path)
	if err != nil {
		return false
	}
	defer f.Close()

	pageAnnots, err := api.Annotations(f, []string{fmt.Sprintf("1-%d", n)}, model.NewDefaultConfiguration())
	if err != nil {
		return false
	}
	for _, annots := range pageAnnots {
		if len(annots) > 0 {
			return true
		}
	}
	return false
}
