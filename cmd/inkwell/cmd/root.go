// Package cmd implements the inkwell CLI: a terminal reader and authoring
// client for the editorial magazine API.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwellmag/inkwell/client"
	"github.com/inkwellmag/inkwell/internal/config"
	"github.com/inkwellmag/inkwell/session"
)

var (
	apiURL  string
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Inkwell is a terminal client for the editorial magazine",
	Long: `Browse, search, and author articles from the terminal.
Sessions persist between runs; sign in once with "inkwell login".

Configuration comes from flags, the environment (INKWELL_API_URL,
INKWELL_DATA_DIR), or a .env file, in that order of precedence.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API origin (default http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the session database (default ~/.inkwell)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log request details to stderr")
}

// newClient builds the SDK client with a file-backed session store. The
// returned closer must be called when the command finishes.
func newClient() (*client.Client, func(), error) {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := session.NewBoltStoreFromFile(filepath.Join(cfg.DataDir, "session.db"), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c := client.New(cfg.APIURL, store, client.WithLogger(logger))
	c.Auth.OnSessionInvalidated(func() {
		fmt.Fprintln(os.Stderr, "Session expired. You have been signed out.")
	})
	return c, func() { store.Close() }, nil
}
