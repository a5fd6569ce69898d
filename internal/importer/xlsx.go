package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads the first sheet of an uploaded workbook into raw rows
// (header text -> cell value). The first row is the header row. Cell-level
// typing is excelize's concern; everything downstream goes through MapColumns.
func ParseWorkbook(r io.Reader) ([]map[string]interface{}, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return []map[string]interface{}{}, nil
	}

	header := rows[0]
	out := make([]map[string]interface{}, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]interface{}, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}
