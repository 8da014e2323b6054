//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides the in-memory memory service implementation.
package inmemory

import (
	"context"
	"sync"

	"github.com/careerspark/careerspark/memory"
)

var _ memory.Service = (*Service)(nil)

// Service is an in-memory implementation of memory.Service, suitable for
// tests and single-process deployments.
type Service struct {
	mu       sync.RWMutex
	sessions map[string][]memory.Event // sessionID -> events, oldest first
}

// NewService creates a new in-memory memory service.
func NewService() *Service {
	return &Service{sessions: make(map[string][]memory.Event)}
}

// RecordEvents persists one or more events.
func (s *Service) RecordEvents(ctx context.Context, events []memory.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range events {
		if event.Text == "" {
			continue
		}
		if event.SessionID == "" {
			return memory.ErrSessionIDRequired
		}
		event.Text = memory.Truncate(event.Text)
		s.sessions[event.SessionID] = append(s.sessions[event.SessionID], event)
	}
	return nil
}

// ReadEvents returns up to limit events for the session, oldest first.
func (s *Service) ReadEvents(ctx context.Context, sessionID, actor string, limit int) ([]memory.Event, error) {
	if sessionID == "" {
		return nil, memory.ErrSessionIDRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []memory.Event
	for _, event := range s.sessions[sessionID] {
		if actor != "" && event.Actor != actor {
			continue
		}
		out = append(out, event)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// Clear removes all events recorded for the session.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return memory.ErrSessionIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
