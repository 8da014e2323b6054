//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the CareerSpark HTTP API: goal intake, plan
// streaming over SSE and WebSocket, and session memory inspection.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/careerspark/careerspark/chat"
	"github.com/careerspark/careerspark/log"
	"github.com/careerspark/careerspark/memory"
	"github.com/careerspark/careerspark/orchestrator"
	"github.com/careerspark/careerspark/validator"
)

const (
	serviceName    = "CareerSpark API"
	serviceVersion = "2.0.0"
	framework      = "Go + AWS Bedrock AgentCore"
)

// Planner produces the supervisor event stream for one career goal. It
// is satisfied by *orchestrator.Orchestrator.
type Planner interface {
	Invoke(ctx context.Context, goal, sessionID string, userContext map[string]string) (<-chan orchestrator.OutputEvent, error)
}

// AgentInfo describes the configured supervisor agent, reported by the
// status endpoint.
type AgentInfo struct {
	PlannerID      string `json:"planner_id"`
	PlannerAliasID string `json:"planner_alias_id"`
	Region         string `json:"region"`
}

// Option configures the Server.
type Option func(*Server)

// WithChatService wires the intro/classification chat helpers.
func WithChatService(svc *chat.Service) Option {
	return func(s *Server) { s.chat = svc }
}

// WithMemoryService enables the session memory endpoints.
func WithMemoryService(svc memory.Service) Option {
	return func(s *Server) { s.memory = svc }
}

// WithAgentInfo sets the agent configuration reported by /api/status.
func WithAgentInfo(info AgentInfo) Option {
	return func(s *Server) { s.agentInfo = info }
}

// WithAllowedOrigins overrides the CORS allow-list.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// Server is the CareerSpark HTTP API server.
type Server struct {
	router         *mux.Router
	planner        Planner
	chat           *chat.Service
	memory         memory.Service
	agentInfo      AgentInfo
	allowedOrigins []string
}

// New creates the API server around a planner.
func New(planner Planner, opts ...Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		planner: planner,
		allowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:5174",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.HandleFunc("/api/intro", s.handleIntro).Methods(http.MethodPost)
	s.router.HandleFunc("/api/plan", s.handlePlan).Methods(http.MethodPost)
	s.router.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/process-career-goal", s.handleProcessGoal).Methods(http.MethodPost)
	s.router.HandleFunc("/api/validate", s.handleValidate).Methods(http.MethodPost)

	s.router.HandleFunc("/api/memory/{sessionId}", s.handleReadMemory).Methods(http.MethodGet)
	s.router.HandleFunc("/api/memory/{sessionId}", s.handleClearMemory).Methods(http.MethodDelete)

	s.router.HandleFunc("/ws/plan", s.handlePlanWS).Methods(http.MethodGet)

	preflight := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.router.HandleFunc("/api/intro", preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/api/plan", preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/api/process-career-goal", preflight).Methods(http.MethodOptions)
}

// ---- Request/response payloads ------------------------------------------

// IntroRequest asks for the welcoming intro message.
type IntroRequest struct {
	Goal      string `json:"goal"`
	SessionID string `json:"session_id,omitempty"`
}

// PlanRequest starts a supervised plan stream. Profile fields are
// optional; "about" and "contact_email" are accepted as legacy aliases
// for "bio" and "user_email".
type PlanRequest struct {
	Goal      string `json:"goal"`
	SessionID string `json:"session_id,omitempty"`

	UserName       string `json:"user_name,omitempty"`
	UserEmail      string `json:"user_email,omitempty"`
	UserPhone      string `json:"user_phone,omitempty"`
	UserLocation   string `json:"user_location,omitempty"`
	UserMajor      string `json:"user_major,omitempty"`
	GraduationYear string `json:"graduation_year,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Bio            string `json:"bio,omitempty"`
	CareerGoal     string `json:"career_goal,omitempty"`
	StudentYear    string `json:"student_year,omitempty"`
	CoursesTaken   string `json:"courses_taken,omitempty"`
	TimeCommitment string `json:"time_commitment,omitempty"`
	Skills         string `json:"skills,omitempty"`
	Experience     string `json:"experience,omitempty"`

	About        string `json:"about,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// ProcessGoalRequest rewrites a natural-language goal.
type ProcessGoalRequest struct {
	Goal string `json:"goal"`
}

// ValidateRequest checks a collaborator output against the expected
// frontend format.
type ValidateRequest struct {
	AgentType string `json:"agent_type"`
	Text      string `json:"text"`
}

// userContext mirrors the session attributes forwarded to the
// supervisor. All keys are present once any profile field is set.
func (r *PlanRequest) userContext() map[string]string {
	email := r.UserEmail
	if email == "" {
		email = r.ContactEmail
	}
	bio := r.Bio
	if bio == "" {
		bio = r.About
	}
	ctx := map[string]string{
		"user_name":       r.UserName,
		"user_email":      email,
		"user_phone":      r.UserPhone,
		"user_location":   r.UserLocation,
		"user_major":      r.UserMajor,
		"graduation_year": r.GraduationYear,
		"gpa":             r.GPA,
		"career_goal":     r.CareerGoal,
		"bio":             bio,
		"student_year":    r.StudentYear,
		"courses_taken":   r.CoursesTaken,
		"time_commitment": r.TimeCommitment,
		"skills":          r.Skills,
		"experience":      r.Experience,
	}
	for _, v := range ctx {
		if v != "" {
			return ctx
		}
	}
	return nil
}

// ---- Handlers ------------------------------------------------------------

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   serviceName,
		"version":   serviceVersion,
		"framework": framework,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is operational",
	})
}

func (s *Server) handleIntro(w http.ResponseWriter, r *http.Request) {
	var req IntroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.Body.Close()

	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		s.writeError(w, http.StatusBadRequest, "Goal is required.")
		return
	}
	if s.chat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Intro generation is not configured.")
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = newSessionID()
	}

	allowed, verdict := s.chat.ClassifyGoal(r.Context(), goal)
	if !allowed {
		s.writeError(w, http.StatusBadRequest, verdict)
		return
	}
	message, err := s.chat.IntroMessage(r.Context(), goal)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to generate introduction: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Goal) == "" {
		s.writeError(w, http.StatusBadRequest, "Goal is required.")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "Streaming unsupported.")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = newSessionID()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	log.Infof("starting SSE stream: session=%s goal=%q", sessionID, truncateGoal(req.Goal))

	// Session ID first so the client can correlate follow-ups.
	writeSSE(w, flusher, map[string]string{"type": "session", "session_id": sessionID})

	events, err := s.planner.Invoke(r.Context(), req.Goal, sessionID, req.userContext())
	if err != nil {
		writeSSE(w, flusher, map[string]string{"type": "error", "message": err.Error()})
		return
	}

	failed := false
	for ev := range events {
		if ev.Type == orchestrator.OutputError {
			failed = true
		}
		writeSSE(w, flusher, ev)
	}
	if !failed {
		writeSSE(w, flusher, map[string]string{"type": "done"})
	}
	log.Infof("SSE stream finished: session=%s", sessionID)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"agents_configured": s.agentInfo.PlannerID != "",
		"planner_id":        s.agentInfo.PlannerID,
		"planner_alias_id":  s.agentInfo.PlannerAliasID,
		"region":            s.agentInfo.Region,
	})
}

func (s *Server) handleProcessGoal(w http.ResponseWriter, r *http.Request) {
	var req ProcessGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Goal) == "" {
		s.writeError(w, http.StatusBadRequest, "Career goal is required.")
		return
	}
	if s.chat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Goal processing is not configured.")
		return
	}
	processed := s.chat.ProcessCareerGoal(r.Context(), req.Goal)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"original_goal":  req.Goal,
		"processed_goal": processed,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.Body.Close()

	s.writeJSON(w, http.StatusOK, validator.ValidateAgentOutput(req.AgentType, req.Text))
}

func (s *Server) handleReadMemory(w http.ResponseWriter, r *http.Request) {
	if s.memory == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Session memory is not configured.")
		return
	}
	sessionID := mux.Vars(r)["sessionId"]
	actor := r.URL.Query().Get("actor")
	events, err := s.memory.ReadEvents(r.Context(), sessionID, actor, 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if events == nil {
		events = []memory.Event{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"events":     events,
	})
}

func (s *Server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	if s.memory == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Session memory is not configured.")
		return
	}
	sessionID := mux.Vars(r)["sessionId"]
	if err := s.memory.Clear(r.Context(), sessionID); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"status":     "cleared",
	})
}

// ---- Helpers -------------------------------------------------------------

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal SSE event: %v", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func truncateGoal(goal string) string {
	if len(goal) > 100 {
		return goal[:100] + "..."
	}
	return goal
}
