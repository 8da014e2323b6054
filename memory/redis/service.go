//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package redis provides the redis memory service.
//
// Storage structure:
//
//	Memory: one list per session [Event(json)...], appended in arrival order.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/careerspark/careerspark/memory"
	storage "github.com/careerspark/careerspark/storage/redis"
)

var _ memory.Service = (*Service)(nil)

const defaultKeyPrefix = "careerspark:memory"

// Service is the redis memory service.
type Service struct {
	opts   options
	client redis.UniversalClient
}

// NewService creates a new redis memory service.
func NewService(opt ...Option) (*Service, error) {
	opts := options{keyPrefix: defaultKeyPrefix}
	for _, o := range opt {
		o(&opts)
	}
	client := opts.client
	if client == nil {
		if opts.url == "" {
			return nil, fmt.Errorf("redis memory: either a client or a URL is required")
		}
		built, err := storage.GetClientBuilder()(storage.WithClientBuilderURL(opts.url))
		if err != nil {
			return nil, fmt.Errorf("redis memory: %w", err)
		}
		client = built
	}
	return &Service{opts: opts, client: client}, nil
}

// RecordEvents persists one or more events.
func (s *Service) RecordEvents(ctx context.Context, events []memory.Event) error {
	for _, event := range events {
		if event.Text == "" {
			continue
		}
		if event.SessionID == "" {
			return memory.ErrSessionIDRequired
		}
		event.Text = memory.Truncate(event.Text)
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("redis memory: marshal event: %w", err)
		}
		key := s.sessionKey(event.SessionID)
		if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
			return fmt.Errorf("redis memory: record event: %w", err)
		}
		if s.opts.ttl > 0 {
			if err := s.client.Expire(ctx, key, s.opts.ttl).Err(); err != nil {
				return fmt.Errorf("redis memory: refresh expiry: %w", err)
			}
		}
	}
	return nil
}

// ReadEvents returns up to limit events for the session, oldest first.
func (s *Service) ReadEvents(ctx context.Context, sessionID, actor string, limit int) ([]memory.Event, error) {
	if sessionID == "" {
		return nil, memory.ErrSessionIDRequired
	}
	raw, err := s.client.LRange(ctx, s.sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis memory: read events: %w", err)
	}
	var out []memory.Event
	for _, item := range raw {
		var event memory.Event
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			// A corrupt entry should not poison the whole read.
			continue
		}
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
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis memory: clear session: %w", err)
	}
	return nil
}

func (s *Service) sessionKey(sessionID string) string {
	return s.opts.keyPrefix + ":" + sessionID
}
