// Package server provides the HTTP API over the extraction and note
// generation pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cooperrobillard/linkedin-note/internal/config"
	"github.com/cooperrobillard/linkedin-note/internal/extract"
	"github.com/cooperrobillard/linkedin-note/internal/llm"
	"github.com/cooperrobillard/linkedin-note/internal/pipeline"
	"github.com/cooperrobillard/linkedin-note/internal/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	extractor  *extract.Extractor
	spacer     *ratelimit.Spacer

	mu           sync.Mutex
	settings     *config.Settings
	settingsPath string
	runner       *pipeline.Runner
}

// Config holds server configuration
type Config struct {
	Port         int
	SettingsPath string
	Verbose      bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	settings, err := config.Load(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s := &Server{
		extractor:    &extract.Extractor{},
		spacer:       ratelimit.NewSpacer(ratelimit.DefaultMinSpacing),
		settings:     settings,
		settingsPath: cfg.SettingsPath,
	}
	s.extractor.Verbose = cfg.Verbose || settings.Verbose
	s.rebuildRunner()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /v1/settings", s.handlePutSettings)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// rebuildRunner swaps in a pipeline wired for the current settings. Called
// under s.mu except from New.
func (s *Server) rebuildRunner() {
	var completer llm.Completer
	if s.settings.HasCredential() {
		completer = llm.NewClient(llm.Config{
			APIKey:  s.settings.APIKey,
			BaseURL: s.settings.APIBase,
			Model:   s.settings.Model,
		})
	}
	orch := pipeline.NewOrchestrator(completer, s.spacer)
	orch.Verbose = s.settings.Verbose
	s.runner = pipeline.NewRunner(orch)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVER] error: %v", err)
		}
	}()

	<-stop
	log.Println("[SERVER] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[SERVER] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[SERVER] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
