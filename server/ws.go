//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/careerspark/careerspark/log"
	"github.com/careerspark/careerspark/orchestrator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS allow-list; the browser
	// cannot preflight WebSocket upgrades.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handlePlanWS streams plan events over a WebSocket. The client sends one
// PlanRequest as JSON; the server answers with the same event sequence as
// the SSE endpoint and closes after the terminal event.
func (s *Server) handlePlanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req PlanRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(map[string]string{"type": "error", "message": "invalid plan request"})
		return
	}
	if req.Goal == "" {
		_ = conn.WriteJSON(map[string]string{"type": "error", "message": "Goal is required."})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = newSessionID()
	}
	if err := conn.WriteJSON(map[string]string{"type": "session", "session_id": sessionID}); err != nil {
		return
	}

	events, err := s.planner.Invoke(r.Context(), req.Goal, sessionID, req.userContext())
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"type": "error", "message": err.Error()})
		return
	}

	failed := false
	for ev := range events {
		if ev.Type == orchestrator.OutputError {
			failed = true
		}
		if err := conn.WriteJSON(ev); err != nil {
			log.Warnf("websocket write failed, dropping stream: session=%s err=%v", sessionID, err)
			return
		}
	}
	if !failed {
		_ = conn.WriteJSON(map[string]string{"type": "done"})
	}
}
