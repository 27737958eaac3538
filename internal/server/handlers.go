package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/cooperrobillard/linkedin-note/internal/config"
	"github.com/cooperrobillard/linkedin-note/internal/document"
	"github.com/cooperrobillard/linkedin-note/internal/pipeline"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// extractRequest is the body for POST /v1/extract.
type extractRequest struct {
	HTML string `json:"html"`
}

// generateRequest is the body for POST /v1/generate. Either a pre-extracted
// profile or raw HTML must be supplied; guidance and tone override the
// persisted settings for this run and are remembered for the next one.
type generateRequest struct {
	HTML     string                  `json:"html,omitempty"`
	Profile  *types.ExtractedProfile `json:"profile,omitempty"`
	Guidance string                  `json:"guidance,omitempty"`
	Tone     types.Tone              `json:"tone,omitempty"`
}

// settingsView is the settings representation returned to clients. The
// credential itself never leaves the server.
type settingsView struct {
	config.Settings
	APIKeySet bool `json:"api_key_set"`
}

// handleExtract parses profile fields out of submitted HTML.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.HTML == "" {
		s.errorResponse(w, http.StatusBadRequest, "html is required")
		return
	}

	profile, err := s.extractor.Extract(r.Context(), document.NewStaticSource(req.HTML))
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGenerate runs the full pipeline for one profile. Bursts coalesce:
// when a newer request supersedes one still waiting its turn, the superseded
// call gets 409.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile := req.Profile
	if profile == nil {
		if req.HTML == "" {
			s.errorResponse(w, http.StatusBadRequest, "profile or html is required")
			return
		}
		var err error
		profile, err = s.extractor.Extract(r.Context(), document.NewStaticSource(req.HTML))
		if err != nil {
			s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	s.mu.Lock()
	genReq := pipeline.BuildRequest(profile, s.settings, req.Guidance, req.Tone)
	s.rememberOverrides(genReq.UserGuidance, req.Tone)
	runner := s.runner
	s.mu.Unlock()

	result, ok := <-runner.Submit(r.Context(), genReq)
	if !ok {
		s.errorResponse(w, http.StatusConflict, "superseded by a newer request")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// rememberOverrides persists the per-run guidance and tone so the next run
// starts from them. Called under s.mu.
func (s *Server) rememberOverrides(guidance string, tone types.Tone) {
	changed := false
	if guidance != s.settings.UserGuidance {
		s.settings.UserGuidance = guidance
		changed = true
	}
	if tone != "" && tone != s.settings.LastTone {
		s.settings.LastTone = tone
		changed = true
	}
	if changed {
		// Persisting the overrides is best-effort; the run proceeds.
		if err := s.settings.Save(s.settingsPath); err != nil {
			log.Printf("[SERVER] failed to persist settings: %v", err)
		}
	}
}

// handleGetSettings returns the active settings with the credential masked.
func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	view := settingsView{Settings: *s.settings, APIKeySet: s.settings.HasCredential()}
	s.mu.Unlock()
	view.Settings.APIKey = ""
	s.jsonResponse(w, http.StatusOK, view)
}

// handlePutSettings merges the submitted fields into the current settings,
// persists them and rewires the pipeline for the new credential/model.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read body")
		return
	}

	// Decoding onto a copy of the current settings gives partial-update
	// semantics: omitted fields keep their values.
	updated := *s.settings
	if err := json.Unmarshal(body, &updated); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// A key submitted here is a deliberate store; mark it for persistence.
	// Keys that entered the settings from the environment are never written.
	var creds struct {
		APIKey *string `json:"api_key"`
	}
	if err := json.Unmarshal(body, &creds); err == nil && creds.APIKey != nil {
		updated.StoreAPIKey(*creds.APIKey)
	}
	if err := updated.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := updated.Save(s.settingsPath); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.settings = &updated
	s.rebuildRunner()

	view := settingsView{Settings: updated, APIKeySet: updated.HasCredential()}
	view.Settings.APIKey = ""
	s.jsonResponse(w, http.StatusOK, view)
}
