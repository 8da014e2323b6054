//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package memory

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/careerspark/careerspark/log"
)

const (
	defaultRecorderWorkers = 4
	defaultRecordTimeout   = 10 * time.Second
)

// Recorder persists memory events asynchronously so that slow backend
// writes never stall a streaming invocation. Failed writes are logged and
// dropped; session memory is best-effort.
type Recorder struct {
	svc     Service
	pool    *ants.Pool
	timeout time.Duration
}

// NewRecorder creates a recorder flushing to svc on a small worker pool.
func NewRecorder(svc Service) (*Recorder, error) {
	pool, err := ants.NewPool(defaultRecorderWorkers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Recorder{svc: svc, pool: pool, timeout: defaultRecordTimeout}, nil
}

// RecordUserGoal asynchronously captures the raw user request.
func (r *Recorder) RecordUserGoal(sessionID, goal string) {
	r.submit(func(ctx context.Context) error {
		return RecordUserGoal(ctx, r.svc, sessionID, goal)
	})
}

// RecordAgentOutput asynchronously persists an agent's response.
func (r *Recorder) RecordAgentOutput(sessionID, agentName, text string) {
	r.submit(func(ctx context.Context) error {
		return RecordAgentOutput(ctx, r.svc, sessionID, agentName, text)
	})
}

// Close releases the worker pool. Pending tasks may be dropped.
func (r *Recorder) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Release()
}

func (r *Recorder) submit(fn func(ctx context.Context) error) {
	if r == nil || r.svc == nil {
		return
	}
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warnf("memory: failed to persist event: %v", err)
		}
	})
	if err != nil {
		log.Warnf("memory: recorder pool rejected task: %v", err)
	}
}
