package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/optilens/optilens/internal/models"
)

// readCSV reads a header-rowed CSV export. The csv reader rejects
// records whose field count differs from the header's.
func readCSV(r io.Reader, path string) (models.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("ingest: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return models.Table{}, fmt.Errorf("ingest: %s is empty (no header row)", path)
	}

	headers := records[0]
	if len(headers) > 0 {
		// Excel prepends a BOM when saving CSV.
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	rows := make([]models.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(models.Row, len(headers))
		for j, h := range headers {
			row[h] = models.Coerce(record[j])
		}
		rows = append(rows, row)
	}

	return models.NewTable(headers, rows), nil
}
