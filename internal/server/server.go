// Package server provides the HTTP REST API for the deck generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/deck-generator/internal/config"
	"github.com/jonathan/deck-generator/internal/db"
	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/pipeline"
	"github.com/jonathan/deck-generator/internal/server/middleware"
	"github.com/jonathan/deck-generator/internal/types"
)

// runFunc executes one generation request. Extracted so handler tests can
// swap in a stub instead of a live model client.
type runFunc func(ctx context.Context, req *types.GenerationRequest, onProgress pipeline.ProgressCallback) (*types.Document, *types.PipelineRecord, error)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	client     llm.Client
	run        runFunc
	verbose    bool

	// jwtService is nil when JWT_SECRET is unset; generation endpoints are
	// then served without authentication.
	jwtService *JWTService
	passwords  *config.PasswordConfig
	accessHash string
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Verbose     bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	client, err := llm.NewClient(context.Background(), nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	s := &Server{
		client:  client,
		verbose: cfg.Verbose,
	}
	s.run = s.runPipeline

	// Persistence is optional; without it runs are served from memory only
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)

		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		s.passwords = passwordConfig
		s.accessHash = os.Getenv("ACCESS_PASSWORD_HASH")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router with middleware applied
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	generate := http.Handler(http.HandlerFunc(s.handleGenerate))
	stream := http.Handler(http.HandlerFunc(s.handleGenerateStream))
	if s.jwtService != nil {
		authn := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
		generate = authn(generate)
		stream = authn(stream)
	}
	mux.Handle("POST /generate", generate)
	mux.Handle("POST /generate/stream", stream)

	mux.HandleFunc("POST /auth/token", s.handleToken)

	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /runs/{id}/document", s.handleRunDocument)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

// runPipeline is the production runFunc. A fresh pipeline per request keeps
// the progress callback scoped to its own connection.
func (s *Server) runPipeline(ctx context.Context, req *types.GenerationRequest, onProgress pipeline.ProgressCallback) (*types.Document, *types.PipelineRecord, error) {
	p := pipeline.New(s.client, pipeline.Options{
		Database:   s.db,
		Verbose:    s.verbose,
		OnProgress: onProgress,
	})
	return p.Run(ctx, req)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	if err := s.client.Close(); err != nil {
		log.Printf("Error closing model client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
