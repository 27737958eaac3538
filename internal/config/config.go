// Package config loads, validates and persists the note-generation settings.
// Settings come from a JSON file, with the credential overridable from the
// environment so the key never has to live on disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/cooperrobillard/linkedin-note/internal/llm"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// Built-in defaults applied to any field the settings file leaves empty.
const (
	DefaultModel           = "gpt-4o-mini"
	DefaultIdentityLine    = "I'm a current Boston College student."
	DefaultCompanyTemplate = "Strong interest in {{company}}."
)

var validate = validator.New()

// Settings is the persisted configuration. All fields are optional in the
// file; Load fills the gaps with defaults.
type Settings struct {
	// APIKey authenticates against the completions endpoint. Empty means
	// every generation run takes the template-fallback path.
	APIKey  string `json:"api_key,omitempty"`
	APIBase string `json:"api_base,omitempty" validate:"omitempty,url"`
	Model   string `json:"model,omitempty"`

	// IdentityLine is asserted verbatim in every note.
	IdentityLine string `json:"identity_line,omitempty"`
	// CompanyTemplate contains a single {{company}} placeholder.
	CompanyTemplate string `json:"company_template,omitempty"`

	Tone types.Tone `json:"tone,omitempty" validate:"omitempty,oneof=neutral friendly formal"`
	// IncludeCompany is a pointer so an explicit false in the file survives
	// the defaults merge.
	IncludeCompany *bool `json:"include_company,omitempty"`

	// UserGuidance and LastTone persist the most recent per-run overrides so
	// the next run starts from them.
	UserGuidance string     `json:"user_guidance,omitempty"`
	LastTone     types.Tone `json:"last_tone,omitempty" validate:"omitempty,oneof=neutral friendly formal"`

	Verbose bool `json:"verbose,omitempty"`

	// fileAPIKey is the credential as it appeared in the settings file. Save
	// writes this value back instead of APIKey, so a key injected from the
	// environment or a flag stays in memory only. StoreAPIKey updates both.
	fileAPIKey string
}

// DefaultPath is the settings file location used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(dir, "linkedin-note", "settings.json")
}

// Load reads settings from path, layers the environment on top and fills
// remaining gaps with defaults. A missing file is not an error; it yields
// the defaults. A present but malformed or invalid file is.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	var s Settings
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings JSON: %w", err)
		}
	}

	s.fileAPIKey = s.APIKey
	s.applyEnv()
	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints via the struct tags.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// applyEnv lets the environment override the credential and endpoint fields.
func (s *Settings) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("NOTEGEN_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("NOTEGEN_API_BASE"); v != "" {
		s.APIBase = v
	}
	if v := os.Getenv("NOTEGEN_MODEL"); v != "" {
		s.Model = v
	}
}

func (s *Settings) applyDefaults() {
	if s.APIBase == "" {
		s.APIBase = llm.DefaultBaseURL
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.IdentityLine == "" {
		s.IdentityLine = DefaultIdentityLine
	}
	if s.CompanyTemplate == "" {
		s.CompanyTemplate = DefaultCompanyTemplate
	}
	if s.Tone == "" {
		s.Tone = types.ToneNeutral
	}
	if s.IncludeCompany == nil {
		t := true
		s.IncludeCompany = &t
	}
}

// StoreAPIKey sets the credential for this session and marks it for
// persistence by the next Save.
func (s *Settings) StoreAPIKey(key string) {
	s.APIKey = key
	s.fileAPIKey = key
}

// Save writes the settings back to path, creating parent directories. Only a
// stored credential is written; one injected from the environment or a flag
// never reaches the file. The file is written 0600 since it may hold a
// stored credential.
func (s *Settings) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	out := *s
	out.APIKey = s.fileAPIKey
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// EffectiveTone prefers the remembered per-run override over the configured
// tone.
func (s *Settings) EffectiveTone() types.Tone {
	if s.LastTone != "" {
		return s.LastTone
	}
	return s.Tone
}

// IncludeCompanyEnabled resolves the pointer field with its default of true.
func (s *Settings) IncludeCompanyEnabled() bool {
	return s.IncludeCompany == nil || *s.IncludeCompany
}

// HasCredential reports whether a key is configured.
func (s *Settings) HasCredential() bool {
	return s.APIKey != ""
}
