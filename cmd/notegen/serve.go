package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cooperrobillard/linkedin-note/internal/server"
)

var (
	servePort     int
	serveSettings string
	serveVerbose  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing extraction, generation and settings endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSettings, "settings", "", "Path to settings.json (defaults to the user config directory)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	srv, err := server.New(server.Config{
		Port:         servePort,
		SettingsPath: serveSettings,
		Verbose:      serveVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
