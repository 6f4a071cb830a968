package ocr

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javutech/medpipe/internal/model"
)

// ExportTablesXLSX returns an XLSX workbook (as bytes) containing the parsed
// table rows of every page, one row per recovered line. Pages without table
// rows are skipped.
func ExportTablesXLSX(results []model.OCRPageResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Lab Tables"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Page", "Row Type", "Content"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, page := range results {
		for _, tr := range page.TableRows {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			write(1, page.Page)
			write(2, tr.Kind)
			write(3, tr.Line)
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 90)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
