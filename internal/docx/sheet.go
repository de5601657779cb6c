package docx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readSheetText returns the cells of the workbook's first sheet, one non-empty cell per line, row by row
func readSheetText(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var buf strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			buf.WriteString(cell)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}
