package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "xwstats/internal/errors"
)

// readXLSX parses an XLSX export into raw rows. The sheet holding the solve
// table is located by scanning for a header row that carries the required
// columns, so exports with extra cover sheets still load.
func (l *Loader) readXLSX(ctx context.Context, path string) ([]rawSolve, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open xlsx", err).WithContext("path", path)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		headerRow := findHeaderRow(rows)
		if headerRow < 0 {
			continue
		}

		l.logger.DebugContext(ctx, "found solve table in sheet",
			slog.String("path", path),
			slog.String("sheet", sheet),
			slog.Int("header_row", headerRow))

		index, err := mapHeader(rows[headerRow])
		if err != nil {
			return nil, err
		}
		return parseRows(index, dropBlankRows(rows[headerRow+1:]))
	}

	return nil, apperrors.NewSchemaError("no sheet contains the solve record columns", nil).
		WithContext("path", path)
}

// findHeaderRow returns the index of the first row that looks like the solve
// table header, or -1. Only the first few rows are considered.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		rowText := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(rowText, colDate) && strings.Contains(rowText, colSolved) {
			return i
		}
	}
	return -1
}

// dropBlankRows removes fully empty trailing/embedded rows, which excelize
// reports for formatted but unused cells.
func dropBlankRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		blank := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, row)
		}
	}
	return kept
}
