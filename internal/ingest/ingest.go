// Package ingest reads optimizer exports into tables.
//
// The primary format is the MetaTrader 5 optimization report, an Excel
// 2003 SpreadsheetML document. CSV files with a header row and XLSX
// workbooks are accepted as well, and XML/CSV inputs may additionally
// be gzip-compressed.
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/optilens/optilens/internal/models"
)

var extensions = []string{".xml", ".csv", ".xlsx", ".xml.gz", ".csv.gz"}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Stem returns the base identifier of an input file: the file name
// without directory, compression suffix, or format extension. Report
// artifacts are named after it.
func Stem(path string) string {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = name[:len(name)-len(".gz")]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Load reads one export file into a table, picking the parser from the
// file extension and transparently gunzipping .gz inputs.
func Load(path string) (models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return models.Table{}, fmt.Errorf("ingest: gunzip %s: %w", path, err)
		}
		defer gz.Close() //nolint:errcheck
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	var tbl models.Table
	switch filepath.Ext(name) {
	case ".xml":
		tbl, err = readXML(r, path)
	case ".csv":
		tbl, err = readCSV(r, path)
	case ".xlsx":
		tbl, err = readXLSX(r, path)
	default:
		return models.Table{}, fmt.Errorf("ingest: %s: unsupported file type", path)
	}
	if err != nil {
		return models.Table{}, err
	}

	slog.Debug("export loaded", "path", path, "columns", len(tbl.Columns), "rows", len(tbl.Rows), "parameters", len(tbl.Schema.Parameters))
	return tbl, nil
}
