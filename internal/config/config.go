// Package config resolves runtime settings from the environment with
// documented local-development defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env if present; a missing file is not an error.
	godotenv.Load()
}

// Config holds the settings the CLI and SDK consumers need.
type Config struct {
	// APIURL is the origin of the editorial API. The /api/v1 prefix is
	// appended by the client if missing.
	APIURL string
	// DataDir holds the session database.
	DataDir string
}

// Load reads configuration from the environment, falling back to defaults:
// INKWELL_API_URL defaults to http://localhost:8000, INKWELL_DATA_DIR to
// ~/.inkwell (or ./.inkwell when the home directory is unknown).
func Load() *Config {
	return &Config{
		APIURL:  getEnv("INKWELL_API_URL", "http://localhost:8000"),
		DataDir: getEnv("INKWELL_DATA_DIR", defaultDataDir()),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".inkwell"
	}
	return filepath.Join(home, ".inkwell")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
