//go:build !ocr

package ocr

func newEngine(_ string) (Engine, error) {
	return nil, ErrOCRNotEnabled
}
