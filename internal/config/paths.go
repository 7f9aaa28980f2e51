package config

import (
	"os"
	"path/filepath"
)

// applyDefaults derives the per-purpose directories from DataDir when they
// are not set explicitly.
func (p *PathsConfig) applyDefaults() {
	if p.DataDir == "" {
		p.DataDir = "data"
	}
	if p.InputDir == "" {
		p.InputDir = filepath.Join(p.DataDir, "input")
	}
	if p.CardsDir == "" {
		p.CardsDir = filepath.Join(p.DataDir, "cards")
	}
	if p.LogsDir == "" {
		p.LogsDir = filepath.Join(p.DataDir, "logs")
	}
}

// EnsureDirectories creates all configured directories if missing.
func (p *PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.InputDir, p.CardsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// GetCardPath returns the full path of a generated card document.
func (p *PathsConfig) GetCardPath(filename string) string {
	return filepath.Join(p.CardsDir, filename)
}

// GetInputPath returns the full path of a file in the input directory.
func (p *PathsConfig) GetInputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// GetLogPath returns the full path of a log file.
func (p *PathsConfig) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
