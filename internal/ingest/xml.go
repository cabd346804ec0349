package ingest

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/optilens/optilens/internal/models"
)

// SpreadsheetML 2003 schema types. MetaTrader writes every element in
// the spreadsheet namespace, so the tags pin it explicitly.

type xmlWorkbook struct {
	Worksheets []xmlWorksheet `xml:"urn:schemas-microsoft-com:office:spreadsheet Worksheet"`
}

type xmlWorksheet struct {
	Table *xmlTable `xml:"urn:schemas-microsoft-com:office:spreadsheet Table"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"urn:schemas-microsoft-com:office:spreadsheet Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"urn:schemas-microsoft-com:office:spreadsheet Cell"`
}

type xmlCell struct {
	Data *xmlData `xml:"urn:schemas-microsoft-com:office:spreadsheet Data"`
}

type xmlData struct {
	Text string `xml:",chardata"`
}

func (c xmlCell) text() string {
	if c.Data == nil {
		return ""
	}
	return c.Data.Text
}

// readXML reads the first worksheet of a SpreadsheetML document. The
// first table row is the header; rows without cells are skipped and
// rows shorter than the header are padded with missing values.
func readXML(r io.Reader, path string) (models.Table, error) {
	var wb xmlWorkbook
	if err := xml.NewDecoder(r).Decode(&wb); err != nil {
		return models.Table{}, fmt.Errorf("ingest: parse %s: %w", path, err)
	}
	if len(wb.Worksheets) == 0 {
		return models.Table{}, fmt.Errorf("ingest: %s: no Worksheet node", path)
	}
	table := wb.Worksheets[0].Table
	if table == nil {
		return models.Table{}, fmt.Errorf("ingest: %s: worksheet has no Table node", path)
	}
	if len(table.Rows) < 2 {
		return models.Table{}, fmt.Errorf("ingest: %s: table needs a header row and at least one data row", path)
	}

	headers := make([]string, 0, len(table.Rows[0].Cells))
	for _, cell := range table.Rows[0].Cells {
		headers = append(headers, cell.text())
	}

	rows := make([]models.Row, 0, len(table.Rows)-1)
	for _, xr := range table.Rows[1:] {
		if len(xr.Cells) == 0 {
			continue
		}
		row := make(models.Row, len(headers))
		for i, h := range headers {
			if i < len(xr.Cells) {
				row[h] = models.Coerce(xr.Cells[i].text())
			} else {
				row[h] = models.Missing()
			}
		}
		rows = append(rows, row)
	}

	return models.NewTable(headers, rows), nil
}
