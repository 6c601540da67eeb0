// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi is the HTTP shell over the answer engine. It is glue:
// request decoding, status mapping, and JSON encoding only — every
// matching decision lives in the engine.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pdiddy/answer-engine/internal/engine"
	"github.com/pdiddy/answer-engine/internal/history"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// Server routes HTTP requests to the engine and history store.
type Server struct {
	engine  *engine.Engine
	history *history.Store
	reload  func(ctx context.Context) error
}

// New builds a Server. history may be nil (feedback and stats degrade);
// reload may be nil (the /reload endpoint reports 501).
func New(e *engine.Engine, h *history.Store, reload func(ctx context.Context) error) *Server {
	return &Server{engine: e, history: h, reload: reload}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("POST /reload", s.handleReload)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "status": "error"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	size := 0
	if gen := s.engine.Generation(); gen != nil {
		size = gen.Corpus.Size()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "answer-engine is running",
		"endpoints": map[string]string{
			"chat":     "/chat (POST)",
			"health":   "/health (GET)",
			"stats":    "/stats (GET)",
			"feedback": "/feedback (POST)",
			"reload":   "/reload (POST)",
		},
		"qa_pairs_loaded": size,
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Intent     string  `json:"intent,omitempty"`
	Status     string  `json:"status"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload, err := s.engine.Answer(r.Context(), req.Message)
	switch {
	case errors.Is(err, engine.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "no message provided")
		return
	case errors.Is(err, engine.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "service is still initializing")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:   payload.Text,
		Confidence: payload.Confidence,
		Source:     string(payload.Source),
		Intent:     payload.Intent,
		Status:     "success",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.engine.State()
	size := 0
	if gen := s.engine.Generation(); gen != nil {
		size = gen.Corpus.Size()
	}

	status := http.StatusOK
	if state == types.StateInitializing {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":          "healthy",
		"state":           state.String(),
		"qa_pairs_loaded": size,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{}
	if gen := s.engine.Generation(); gen != nil {
		stats["total_qa_pairs"] = gen.Corpus.Size()
		stats["vector_dimension"] = gen.Space.Dimension()
	}
	if s.history != nil {
		learning, err := s.history.LearningStats(r.Context())
		if err == nil {
			stats["learning"] = learning
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

type feedbackRequest struct {
	UserInput     string   `json:"user_input"`
	Response      string   `json:"response"`
	FeedbackScore *float64 `json:"feedback_score"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "feedback store not configured")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserInput == "" || req.Response == "" {
		writeError(w, http.StatusBadRequest, "missing user_input or response")
		return
	}
	if req.FeedbackScore == nil || *req.FeedbackScore < -1 || *req.FeedbackScore > 1 {
		writeError(w, http.StatusBadRequest, "feedback_score must be between -1 and 1")
		return
	}

	multiplier, err := s.history.ApplyFeedback(r.Context(), req.UserInput, req.Response, *req.FeedbackScore)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"multiplier": multiplier,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		writeError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	if err := s.reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	size := 0
	if gen := s.engine.Generation(); gen != nil {
		size = gen.Corpus.Size()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"qa_pairs_loaded": size,
	})
}
