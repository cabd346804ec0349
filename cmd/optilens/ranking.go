package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/optilens/optilens/internal/models"
)

// Column width bounds (display columns) for the terminal ranking table.
const (
	minCellWidth = 5
	maxCellWidth = 24
)

var countPrinter = message.NewPrinter(language.English)

// rankedRows returns the rows of an analysis sorted by composite score,
// best first. Rows without a score sort as zero, and the sort is stable
// so equal scores keep their table order.
func rankedRows(a *models.Analysis) []models.Row {
	rows := make([]models.Row, len(a.Rows))
	copy(rows, a.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rowScore(rows[i]) > rowScore(rows[j])
	})
	return rows
}

func rowScore(row models.Row) float64 {
	f, ok := row[models.ScoreColumn].Numeric()
	if !ok {
		return 0
	}
	return f
}

// limitRows caps the ranking at n rows; n <= 0 means every row.
func limitRows(rows []models.Row, n int) []models.Row {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}

// cellText renders one ranking cell. The composite score is fixed to
// three decimals to match the HTML report; missing values print empty.
func cellText(row models.Row, column string) string {
	v, ok := row[column]
	if !ok {
		return ""
	}
	if column == models.ScoreColumn {
		f, numeric := v.Numeric()
		if !numeric {
			return ""
		}
		return strconv.FormatFloat(f, 'f', 3, 64)
	}
	return v.Display()
}

// printRankingTable writes the ranking in the report's column order.
// Pareto-efficient runs carry a * marker in the leftmost column.
func printRankingTable(w io.Writer, a *models.Analysis, rows []models.Row, total int) {
	headers := make([]string, len(a.TableColumns))
	widths := make([]int, len(a.TableColumns))
	for i, col := range a.TableColumns {
		headers[i] = truncateCell(models.DisplayName(col), maxCellWidth)
		widths[i] = minCellWidth
		if hw := runewidth.StringWidth(headers[i]); hw > widths[i] {
			widths[i] = hw
		}
	}

	// Compute dynamic column widths from the widest cell, clamped so one
	// verbose value cannot blow up the whole table.
	lines := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(a.TableColumns))
		for i, col := range a.TableColumns {
			line[i] = truncateCell(cellText(row, col), maxCellWidth)
			if cw := runewidth.StringWidth(line[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
		lines[r] = line
	}

	totalWidth := 2 // marker column and its gap
	for _, cw := range widths {
		totalWidth += cw + 2
	}

	fmt.Fprintf(w, "\n")                                                            //nolint:errcheck
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", totalWidth))                         //nolint:errcheck
	fmt.Fprintf(w, " RUN RANKING - %s (analyzed %s)\n", a.SourceFile, a.AnalyzedAt) //nolint:errcheck
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", totalWidth))                         //nolint:errcheck

	fmt.Fprintf(w, "  ") //nolint:errcheck
	for i, h := range headers {
		fmt.Fprintf(w, "%s  ", padRight(h, widths[i])) //nolint:errcheck
	}
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("─", totalWidth)) //nolint:errcheck

	for r, line := range lines {
		marker := " "
		if rows[r][models.ParetoColumn].True() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s ", marker) //nolint:errcheck
		for i, cell := range line {
			fmt.Fprintf(w, "%s  ", padRight(cell, widths[i])) //nolint:errcheck
		}
		fmt.Fprintf(w, "\n") //nolint:errcheck
	}

	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth))                                              //nolint:errcheck
	countPrinter.Fprintf(w, "Showing %d of %d runs. * marks Pareto-efficient runs.\n", len(rows), total) //nolint:errcheck
}

// truncateCell shortens a cell to maxLen display columns, replacing the
// last rune with "…" if needed.
func truncateCell(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
