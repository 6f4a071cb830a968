package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/javutech/medpipe/internal/common"
)

// Renderer rasterizes single PDF pages. Rendering and OCR are the dominant
// latency sources of the pipeline, so callers should bound each call with a
// context deadline.
type Renderer interface {
	RenderPage(ctx context.Context, path string, page, dpi int) ([]byte, error)
}

// PopplerRenderer renders pages by shelling out to poppler's pdftoppm.
type PopplerRenderer struct {
	// Binary is the pdftoppm executable; defaults to "pdftoppm" on PATH.
	Binary string
}

// RenderPage renders one page (1-based) to PNG bytes at the given DPI.
func (p *PopplerRenderer) RenderPage(ctx context.Context, path string, page, dpi int) ([]byte, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftoppm"
	}

	tmpDir, err := os.MkdirTemp("", "medpipe_render_")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	outPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, bin,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		path,
		outPrefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrRenderFailed, string(out), err)
	}

	data, err := os.ReadFile(outPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRenderFailed, err)
	}
	return data, nil
}
