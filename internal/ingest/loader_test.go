package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xwstats/internal/errors"
)

const csvHeader = "author,percent_filled,print_date,puzzle_id,secondsSpentSolving,solved,star\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsInputNotFound(err))
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, csvHeader+
		"Jane Doe,100,2025-01-06,101,600,True,Gold\n"+
		"John Roe,100,2025-01-07,102,720,True,\n"+
		",85,2025-01-08,103,,False,\n")

	loader := NewLoader(slog.Default())
	records, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Jane Doe", records[0].Author)
	assert.Equal(t, int64(101), records[0].PuzzleID)
	assert.True(t, records[0].GoldStar)
	assert.False(t, records[1].GoldStar)
	assert.Equal(t, 12.0, records[1].ElapsedMinutes)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, "print_date,solved,star\n2025-01-06,True,Gold\n")

	loader := NewLoader(slog.Default())
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, apperrors.IsSchema(err))
	assert.Contains(t, err.Error(), "percent_filled")
}

func TestLoadCSVMalformedCell(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			name: "bad date",
			row:  "A,100,06/01/2025,101,600,True,Gold\n",
		},
		{
			name: "bad seconds",
			row:  "A,100,2025-01-06,101,ten,True,Gold\n",
		},
		{
			name: "negative seconds",
			row:  "A,100,2025-01-06,101,-5,True,Gold\n",
		},
		{
			name: "bad solved flag",
			row:  "A,100,2025-01-06,101,600,maybe,Gold\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(slog.Default())
			_, err := loader.Load(context.Background(), writeCSV(t, csvHeader+tt.row))
			require.Error(t, err)
			assert.True(t, apperrors.IsSchema(err))
		})
	}
}

func TestLoadCSVFloatishIntegerCells(t *testing.T) {
	// The upstream flattener occasionally renders integers as floats
	path := writeCSV(t, csvHeader+"A,100.0,2025-01-06,101.0,600.0,True,Gold\n")

	loader := NewLoader(slog.Default())
	records, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(600), records[0].ElapsedSeconds)
	assert.Equal(t, int64(101), records[0].PuzzleID)
}
