package config

import (
	"os"
	"path/filepath"
)

// Config holds configuration for the flowcraft CLI.
type Config struct {
	OutputDir string // Directory for generated pipeline files (default ".")
	RecipeDir string // Extra recipe directory, empty to use builtins only
	DBPath    string // SQLite database path (default ~/.flowcraft/flowcraft.db, ":memory:" for testing)
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		OutputDir: ".",
		DBPath:    DefaultDBPath(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultDBPath returns the build history database location under the
// user's home directory, falling back to the working directory when the
// home directory cannot be determined.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "flowcraft.db"
	}
	return filepath.Join(home, ".flowcraft", "flowcraft.db")
}
