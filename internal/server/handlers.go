package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/deck-generator/internal/db"
	"github.com/jonathan/deck-generator/internal/pipeline"
	"github.com/jonathan/deck-generator/internal/types"
)

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	Document *types.Document       `json:"document"`
	Record   *types.PipelineRecord `json:"record"`
}

// RunSummary represents one run in /runs listings
type RunSummary struct {
	RunID         string `json:"run_id"`
	Topic         string `json:"topic"`
	StrategyID    string `json:"strategy_id,omitempty"`
	Status        string `json:"status"`
	RecoveryLevel int    `json:"recovery_level"`
	CreatedAt     string `json:"created_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
}

// TokenRequest represents the request body for /auth/token
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse represents the response for /auth/token
type TokenResponse struct {
	Token           string `json:"token"`
	ExpirationHours int    `json:"expiration_hours"`
}

// handleGenerate runs the full pipeline synchronously and returns the document
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, record, err := s.run(r.Context(), &req, nil)
	if err != nil {
		log.Printf("Generation run failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Document: doc,
		Record:   record,
	})
}

// handleGenerateStream runs the pipeline and streams progress via SSE.
// The final document is delivered as a "document" event before "complete".
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming generation run...")

	doc, record, err := s.run(r.Context(), &req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		log.Printf("Generation run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("document", doc); err != nil {
		log.Printf("Error writing document event: %v", err)
	}
	sse.WriteComplete(record.ID.String(), db.StatusCompleted)
	log.Printf("Streaming generation run completed")
}

// handleToken issues a JWT for the configured access password
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil || s.accessHash == "" {
		s.errorResponse(w, http.StatusServiceUnavailable, "Authentication is not configured")
		return
	}

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Password == "" {
		s.errorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	if !s.passwords.VerifyPassword(req.Password, s.accessHash) {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, TokenResponse{
		Token:           token,
		ExpirationHours: s.jwtService.config.ExpirationHours,
	})
}

// handleListRuns returns recent generation runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, runSummary(run))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": summaries})
}

// handleGetRun returns the status of one generation run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, runSummary(*run))
}

// handleRunDocument returns the assembled document artifact of a run
func (s *Server) handleRunDocument(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Database is not configured")
		return
	}

	runID, ok := s.parseRunID(w, r)
	if !ok {
		return
	}

	content, err := s.db.GetArtifact(r.Context(), runID, db.StepDocument)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	// Stored artifact is already the document JSON
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("Error writing document response: %v", err)
	}
}

// parseRunID extracts and parses the {id} path value, writing the error
// response itself on failure.
func (s *Server) parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return uuid.Nil, false
	}

	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return uuid.Nil, false
	}
	return runID, true
}

func runSummary(run db.Run) RunSummary {
	summary := RunSummary{
		RunID:         run.ID.String(),
		Topic:         run.Topic,
		StrategyID:    run.StrategyID,
		Status:        run.Status,
		RecoveryLevel: run.RecoveryLevel,
		CreatedAt:     run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		summary.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return summary
}
