package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "xwstats/internal/errors"
)

// Column names of the raw solve export, as produced by the upstream
// flattening step.
const (
	colDate     = "print_date"
	colSolved   = "solved"
	colPercent  = "percent_filled"
	colSeconds  = "secondsSpentSolving"
	colPuzzleID = "puzzle_id"
	colStar     = "star"
	colAuthor   = "author"
)

// requiredColumns must all be present in the header row. author is optional.
var requiredColumns = []string{colDate, colSolved, colPercent, colSeconds, colPuzzleID, colStar}

// goldStar is the star value that marks a hint-free solve.
const goldStar = "Gold"

// rawSolve is one unfiltered row of the export. Unsolved puzzles commonly
// have blank numeric cells, which parse as zero.
type rawSolve struct {
	date          time.Time
	puzzleID      int64
	solved        bool
	percentFilled float64
	seconds       int64
	author        string
	star          string
}

// mapHeader locates the required columns in the header row and returns a
// column-name to index mapping. Missing required columns are a SchemaError.
func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}
	return index, nil
}

// parseRows converts raw cell rows into rawSolve values using the header
// mapping. Cell values of the wrong type are a SchemaError.
func parseRows(index map[string]int, rows [][]string) ([]rawSolve, error) {
	solves := make([]rawSolve, 0, len(rows))
	for i, row := range rows {
		solve, err := parseRow(index, row)
		if err != nil {
			return nil, apperrors.NewSchemaError(fmt.Sprintf("row %d: %v", i+1, err), err).
				WithContext("row", i+1)
		}
		solves = append(solves, solve)
	}
	return solves, nil
}

func parseRow(index map[string]int, row []string) (rawSolve, error) {
	var s rawSolve
	var err error

	if s.date, err = time.Parse("2006-01-02", cell(row, index[colDate])); err != nil {
		return s, fmt.Errorf("invalid %s: %w", colDate, err)
	}
	if s.solved, err = parseBool(cell(row, index[colSolved])); err != nil {
		return s, fmt.Errorf("invalid %s: %w", colSolved, err)
	}
	if s.percentFilled, err = parseFloatCell(cell(row, index[colPercent])); err != nil {
		return s, fmt.Errorf("invalid %s: %w", colPercent, err)
	}
	if s.seconds, err = parseIntCell(cell(row, index[colSeconds])); err != nil {
		return s, fmt.Errorf("invalid %s: %w", colSeconds, err)
	}
	if s.seconds < 0 {
		return s, fmt.Errorf("negative %s", colSeconds)
	}
	if s.puzzleID, err = parseIntCell(cell(row, index[colPuzzleID])); err != nil {
		return s, fmt.Errorf("invalid %s: %w", colPuzzleID, err)
	}
	s.star = strings.TrimSpace(cell(row, index[colStar]))
	if idx, ok := index[colAuthor]; ok {
		s.author = strings.TrimSpace(cell(row, idx))
	}
	return s, nil
}

// cell returns the row value at idx, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}

// parseFloatCell parses a float cell, treating blank as zero.
func parseFloatCell(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// parseIntCell parses an integer cell, treating blank as zero. The export
// occasionally renders integers as floats (e.g. "754.0").
func parseIntCell(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	return int64(f), nil
}
