package ingest

import (
	"fmt"
	"io"

	"github.com/optilens/optilens/internal/models"
	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a workbook. GetRows trims trailing
// empty cells per row, so short rows are padded with missing values.
func readXLSX(r io.Reader, path string) (models.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return models.Table{}, fmt.Errorf("ingest: open workbook %s: %w", path, err)
	}
	defer wb.Close() //nolint:errcheck

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return models.Table{}, fmt.Errorf("ingest: %s: workbook has no sheets", path)
	}
	records, err := wb.GetRows(sheet)
	if err != nil {
		return models.Table{}, fmt.Errorf("ingest: read sheet %q of %s: %w", sheet, path, err)
	}
	if len(records) < 2 {
		return models.Table{}, fmt.Errorf("ingest: %s: sheet needs a header row and at least one data row", path)
	}

	headers := records[0]
	rows := make([]models.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row := make(models.Row, len(headers))
		for j, h := range headers {
			if j < len(record) {
				row[h] = models.Coerce(record[j])
			} else {
				row[h] = models.Missing()
			}
		}
		rows = append(rows, row)
	}

	return models.NewTable(headers, rows), nil
}
