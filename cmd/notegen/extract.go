package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cooperrobillard/linkedin-note/internal/document"
	"github.com/cooperrobillard/linkedin-note/internal/extract"
	"github.com/cooperrobillard/linkedin-note/internal/observability"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

var (
	extractURL     string
	extractFile    string
	extractJSON    bool
	extractVerbose bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract profile fields from a LinkedIn profile page",
	Long: `Extract name, headline, current role, company, education, activity and
skills from a profile page. The page comes from a headless browser (--url,
requires Chrome) or from saved HTML (--file, or "-" for stdin).`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Profile URL to render in a headless browser (mutually exclusive with --file)")
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to saved profile HTML, or - for stdin")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the profile as JSON instead of the formatted box")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	profile, err := extractProfile(ctx, extractURL, extractFile, extractVerbose)
	if err != nil {
		return err
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}
	observability.NewPrinter(os.Stdout).PrintProfile(profile)
	return nil
}

// extractProfile resolves the page source and runs extraction. Shared with
// the generate command.
func extractProfile(ctx context.Context, url, file string, verbose bool) (*types.ExtractedProfile, error) {
	if (url == "") == (file == "") {
		return nil, fmt.Errorf("exactly one of --url or --file is required")
	}

	extractor := &extract.Extractor{Verbose: verbose}

	if url != "" {
		src, err := document.NewBrowserSource(ctx, url, document.BrowserOptions{Verbose: verbose})
		if err != nil {
			return nil, fmt.Errorf("failed to open page: %w", err)
		}
		defer src.Close()
		return extractor.Extract(ctx, src)
	}

	html, err := readInput(file)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(ctx, document.NewStaticSource(html))
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
