package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwellmag/inkwell/internal/mockapi"
)

var demoPort int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local editorial API with seeded demo content",
	Long: `Starts an in-memory stand-in for the editorial API, seeded with demo
categories, authors (password "demo123"), articles, and comments. Point the
CLI at it with --api-url, and browse the API docs at /api/v1/docs.

All state lives in memory and is lost on exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mock := mockapi.New()
		mock.Seed()

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", demoPort),
			Handler:           mock.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("demo server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Demo API listening on http://localhost:%d\n", demoPort)
		fmt.Printf("Try: inkwell --api-url http://localhost:%d posts list\n", demoPort)
		fmt.Printf("Docs: http://localhost:%d/api/v1/docs\n\n", demoPort)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("demo server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	demoCmd.Flags().IntVarP(&demoPort, "port", "p", 8000, "Port to listen on")
	rootCmd.AddCommand(demoCmd)
}
