package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite document store
	Vectors  string // Fingerprint vector storage (chromem-go)
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	vectors := cfg.Embedding.DataDir
	if vectors == "" {
		vectors = filepath.Join(cfg.BaseDir, "vectors")
	}
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "skillpath.db"),
		Vectors:  vectors,
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory.
// Prefers a dotted home directory for visibility; falls back to the XDG
// data dir when the home directory cannot be resolved.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.DataHome, "skillpath")
	}
	return filepath.Join(home, ".skillpath")
}
