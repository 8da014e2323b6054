//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package memory provides the session memory service: an append-only store
// of cross-agent conversation events, keyed by session and actor. The
// managed memory backend it mirrors is opaque, so implementations only
// need the small surface the backend consumes.
package memory

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Roles attached to recorded events.
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// TruncateLimit bounds the text length persisted per event, to avoid
// pushing extremely long payloads into the backing store.
const TruncateLimit = 1800

// ErrSessionIDRequired is returned when a session ID is missing.
var ErrSessionIDRequired = errors.New("memory: sessionID is required")

// Event is one recorded agent or user action within a session.
type Event struct {
	SessionID string    `json:"session_id"`
	Actor     string    `json:"actor"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Service persists and reads session memory events.
type Service interface {
	// RecordEvents persists one or more events. Events with empty text
	// are skipped.
	RecordEvents(ctx context.Context, events []Event) error

	// ReadEvents returns up to limit events for the session, oldest
	// first. actor narrows the result to one actor when non-empty.
	ReadEvents(ctx context.Context, sessionID, actor string, limit int) ([]Event, error)

	// Clear removes all events recorded for the session.
	Clear(ctx context.Context, sessionID string) error
}

// RecordUserGoal captures the raw user request.
func RecordUserGoal(ctx context.Context, svc Service, sessionID, goal string) error {
	if svc == nil || goal == "" {
		return nil
	}
	return svc.RecordEvents(ctx, []Event{{
		SessionID: sessionID,
		Actor:     "Student",
		Role:      RoleUser,
		Text:      goal,
		Timestamp: time.Now().UTC(),
	}})
}

// RecordAgentOutput persists an individual agent's response.
func RecordAgentOutput(ctx context.Context, svc Service, sessionID, agentName, text string) error {
	if svc == nil || text == "" {
		return nil
	}
	return svc.RecordEvents(ctx, []Event{{
		SessionID: sessionID,
		Actor:     agentName,
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}})
}

// Truncate bounds text to TruncateLimit runes, marking the cut with an
// ellipsis.
func Truncate(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= TruncateLimit {
		return text
	}
	return strings.TrimSpace(string(runes[:TruncateLimit-2])) + " …"
}
