package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cooperrobillard/linkedin-note/internal/config"
	"github.com/cooperrobillard/linkedin-note/internal/llm"
	"github.com/cooperrobillard/linkedin-note/internal/observability"
	"github.com/cooperrobillard/linkedin-note/internal/pipeline"
	"github.com/cooperrobillard/linkedin-note/internal/prompts"
	"github.com/cooperrobillard/linkedin-note/internal/ratelimit"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

var (
	genURL      string
	genFile     string
	genProfile  string
	genSettings string
	genGuidance string
	genTone     string
	genAPIKey   string
	genJSON     bool
	genVerbose  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate connection-note variants for a profile",
	Long: `Run the full pipeline for one profile: extraction (unless --profile
supplies pre-extracted JSON), prompt assembly, the remote completion call and
candidate repair. Without a configured API key the deterministic template
fallback still produces a note.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genURL, "url", "", "Profile URL to render in a headless browser")
	generateCmd.Flags().StringVarP(&genFile, "file", "f", "", "Path to saved profile HTML, or - for stdin")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "Path to pre-extracted profile JSON (skips extraction)")
	generateCmd.Flags().StringVar(&genSettings, "settings", "", "Path to settings.json (defaults to the user config directory)")
	generateCmd.Flags().StringVarP(&genGuidance, "guidance", "g", "", "Free-text guidance steering what the note emphasizes")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Tone override: neutral, friendly or formal")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "API key (optional, defaults to OPENAI_API_KEY env var or settings)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the result as JSON instead of the formatted box")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	settings, err := config.Load(genSettings)
	if err != nil {
		return err
	}
	if genAPIKey != "" {
		settings.APIKey = genAPIKey
	}
	verbose := genVerbose || settings.Verbose

	profile, err := loadProfile(ctx, verbose)
	if err != nil {
		return err
	}

	req := pipeline.BuildRequest(profile, settings, genGuidance, types.Tone(genTone))

	// Remember the per-run overrides for the next invocation.
	settings.UserGuidance = req.UserGuidance
	if genTone != "" {
		settings.LastTone = types.Tone(genTone)
	}
	if err := settings.Save(genSettings); err != nil {
		log.Printf("[CLI] failed to persist settings: %v", err)
	}

	var completer llm.Completer
	if settings.HasCredential() {
		completer = llm.NewClient(llm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.APIBase,
			Model:   settings.Model,
		})
	}

	orch := pipeline.NewOrchestrator(completer, ratelimit.NewSpacer(ratelimit.DefaultMinSpacing))
	orch.Verbose = verbose
	result := orch.Generate(ctx, req)

	if genJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printer := observability.NewPrinter(os.Stdout)
	if verbose {
		printer.PrintProfile(profile)
		prompt := prompts.Build(req)
		printer.PrintPrompt(prompt.System, prompt.User)
	}
	printer.PrintResult(result)
	return nil
}

// loadProfile resolves the profile from --profile JSON or by extracting from
// --url/--file.
func loadProfile(ctx context.Context, verbose bool) (*types.ExtractedProfile, error) {
	if genProfile != "" {
		data, err := os.ReadFile(genProfile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", genProfile, err)
		}
		var profile types.ExtractedProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
		}
		return &profile, nil
	}
	return extractProfile(ctx, genURL, genFile, verbose)
}
