// Package exporter writes derived card documents to the output directory.
package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "xwstats/internal/errors"
)

// JSONWriter writes card documents as pretty-printed JSON files. Marshaling
// is struct-driven, so output bytes are deterministic for identical input.
type JSONWriter struct {
	dir    string
	logger *slog.Logger
}

// NewJSONWriter creates a writer rooted at the given output directory.
func NewJSONWriter(dir string, logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{dir: dir, logger: logger}
}

// WriteDocument marshals doc and writes it as <name>.json in the output
// directory, creating the directory if needed. Returns the written filename.
func (w *JSONWriter) WriteDocument(name string, doc interface{}) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to marshal %s", name), err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err).
			WithContext("dir", w.dir)
	}

	filename := name + ".json"
	fullPath := filepath.Join(w.dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s", filename), err).
			WithContext("path", fullPath)
	}

	w.logger.Debug("wrote card document",
		slog.String("file", filename),
		slog.Int("bytes", len(data)))
	return filename, nil
}

// Dir returns the output directory the writer is rooted at.
func (w *JSONWriter) Dir() string { return w.dir }
