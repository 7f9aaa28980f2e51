package cards

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xwstats/internal/errors"
	"xwstats/internal/exporter"
	"xwstats/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGenerator(t *testing.T, dir string) *Generator {
	t.Helper()
	writer := exporter.NewJSONWriter(dir, testLogger())
	gen, err := NewGenerator(testLogger(), writer, DefaultOptions())
	require.NoError(t, err)
	return gen
}

func TestGenerateAllWritesAllCards(t *testing.T) {
	dir := t.TempDir()
	gen := newTestGenerator(t, dir)

	records := table(t,
		solve(t, "2025-01-06", 600),
		solve(t, "2025-01-07", 900),
		solve(t, "2025-01-13", 1200),
		solve(t, "2025-01-20", 1800),
	)

	manifest, err := gen.GenerateAll(records)
	require.NoError(t, err)
	require.NotNil(t, manifest)

	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, 4, manifest.InputRows)
	require.Len(t, manifest.Cards, 6)

	for _, status := range manifest.Cards {
		assert.Equal(t, "ok", status.Status, status.Name)
		assert.Empty(t, status.Error)
		assert.FileExists(t, filepath.Join(dir, status.File))
	}

	for _, name := range append(domain.CardNames(), ManifestName) {
		assert.FileExists(t, filepath.Join(dir, name+".json"))
	}
}

func TestGenerateAllCardFilesAreDeterministic(t *testing.T) {
	records := table(t,
		solve(t, "2025-01-06", 615),
		solve(t, "2025-01-07", 1234),
		solve(t, "2025-01-13", 901),
		solve(t, "2025-01-14", 888),
		solve(t, "2025-01-20", 1789),
	)

	dirA := t.TempDir()
	dirB := t.TempDir()

	_, err := newTestGenerator(t, dirA).GenerateAll(records)
	require.NoError(t, err)
	_, err = newTestGenerator(t, dirB).GenerateAll(records)
	require.NoError(t, err)

	// The manifest carries a run id and timestamp, so only the six card
	// documents are compared byte for byte.
	for _, name := range domain.CardNames() {
		a, err := os.ReadFile(filepath.Join(dirA, name+".json"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name+".json"))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestGenerateAllPartialSuccess(t *testing.T) {
	dir := t.TempDir()
	gen := newTestGenerator(t, dir)

	// An empty table fails the summary but the row-oriented cards still
	// produce valid empty documents.
	manifest, err := gen.GenerateAll(nil)
	require.NoError(t, err, "partial success is not a process failure")
	require.Len(t, manifest.Cards, 6)

	byName := map[string]CardStatus{}
	for _, status := range manifest.Cards {
		byName[status.Name] = status
	}

	summary := byName[domain.CardSummary]
	assert.Equal(t, "failed", summary.Status)
	assert.NotEmpty(t, summary.Error)
	assert.NoFileExists(t, filepath.Join(dir, domain.CardSummary+".json"))

	for _, name := range []string{domain.CardWeekly, domain.CardHistogram, domain.CardEvolution, domain.CardSlowest, domain.CardFastest} {
		assert.Equal(t, "ok", byName[name].Status, name)
		assert.FileExists(t, filepath.Join(dir, name+".json"))
	}

	// Empty row-oriented cards marshal as JSON arrays, not null
	data, readErr := os.ReadFile(filepath.Join(dir, domain.CardSlowest+".json"))
	require.NoError(t, readErr)
	var rows []domain.OutlierRow
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Equal(t, byte('['), data[0])
}

func TestGenerateAllManifestRoundTrips(t *testing.T) {
	dir := t.TempDir()
	gen := newTestGenerator(t, dir)

	records := table(t, solve(t, "2025-01-06", 600))
	written, err := gen.GenerateAll(records)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ManifestName+".json"))
	require.NoError(t, err)

	var read Manifest
	require.NoError(t, json.Unmarshal(data, &read))
	assert.Equal(t, written.RunID, read.RunID)
	assert.Equal(t, written.InputRows, read.InputRows)
	assert.Len(t, read.Cards, 6)
}

func TestNewGeneratorRejectsInvalidOptions(t *testing.T) {
	writer := exporter.NewJSONWriter(t.TempDir(), testLogger())

	tests := []struct {
		name string
		opts Options
	}{
		{"zero buckets", Options{BucketCount: 0, TopN: 10}},
		{"negative top n", Options{BucketCount: 8, TopN: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(testLogger(), writer, tt.opts)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfig(err))
		})
	}
}
