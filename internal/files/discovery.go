// Package files locates pipeline inputs and generated card documents on disk.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "xwstats/internal/errors"
)

// exportExtensions are the raw solve export formats the loader understands.
var exportExtensions = map[string]bool{".csv": true, ".xlsx": true}

// FindLatestExport returns the most recently modified solve export in dir.
// Used when no explicit input file is configured.
func FindLatestExport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apperrors.NewInputNotFoundError(dir, err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !exportExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = entry.Name()
			newestMod = info.ModTime().UnixNano()
		}
	}

	if newest == "" {
		return "", apperrors.NewInputNotFoundError(dir, nil).
			WithContext("hint", "no .csv or .xlsx export in input directory")
	}
	return filepath.Join(dir, newest), nil
}

// ListCardDocuments returns the card JSON filenames present in the output
// directory, sorted by name. The run manifest is included.
func ListCardDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, apperrors.NewStorageError("failed to read cards directory", err).
			WithContext("dir", dir)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
