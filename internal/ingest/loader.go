package ingest

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "xwstats/internal/errors"
	"xwstats/pkg/contracts/domain"
)

// Loader reads a raw solve export and produces the normalized record table
// every card builder consumes. CSV is the primary format; XLSX exports are
// accepted as an alternative.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the export at path and returns the normalized, chronologically
// sorted record table. A missing file is an InputNotFound failure; a missing
// required column or malformed cell is a SchemaError. Both are fatal to the
// pipeline run.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.SolveRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewInputNotFoundError(path, err)
	}

	var raw []rawSolve
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		raw, err = l.readXLSX(ctx, path)
	default:
		raw, err = l.readCSV(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	records := Normalize(raw)
	l.logger.InfoContext(ctx, "normalized solve records",
		slog.String("path", path),
		slog.Int("raw_rows", len(raw)),
		slog.Int("qualifying_rows", len(records)))
	return records, nil
}

// readCSV parses a CSV export into raw rows.
func (l *Loader) readCSV(ctx context.Context, path string) ([]rawSolve, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputNotFoundError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read csv", err).WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewSchemaError("csv file has no header row", nil).WithContext("path", path)
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	l.logger.DebugContext(ctx, "parsed csv header",
		slog.String("path", path),
		slog.Int("columns", len(rows[0])))

	return parseRows(index, rows[1:])
}
