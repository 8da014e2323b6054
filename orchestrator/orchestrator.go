//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package orchestrator drives supervisor-agent invocations and normalizes
// the orchestration trace events they stream back. One Invoke call produces
// one ordered sequence of output events: verbatim text chunks, plus
// progress records describing sub-agent and tool activity.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/careerspark/careerspark/agentcore"
	"github.com/careerspark/careerspark/log"
	"github.com/careerspark/careerspark/memory"
	"github.com/careerspark/careerspark/retry"
	"github.com/careerspark/careerspark/telemetry/trace"
)

// ErrGoalRequired is returned when the goal is empty or blank.
var ErrGoalRequired = errors.New("orchestrator: goal is required")

// DefaultRetryPolicy retries stream initiation on throttling errors:
// 3 attempts total, backoff 1s then 2s.
func DefaultRetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Second,
		BackoffFactor:   2.0,
		RetryOn:         retry.ConditionFunc(agentcore.IsThrottling),
	}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRetryPolicy overrides the stream-initiation retry policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(o *Orchestrator) { o.policy = policy }
}

// WithRecorder sets the memory recorder that captures the user goal and
// the supervisor's final output. Nil disables recording.
func WithRecorder(recorder *memory.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = recorder }
}

// Orchestrator invokes the supervisor agent. Instances are safe for
// concurrent use: per-invocation state lives in the call, never on the
// struct.
type Orchestrator struct {
	invoker      agentcore.Invoker
	agentID      string
	agentAliasID string
	policy       retry.Policy
	recorder     *memory.Recorder
}

// New creates an Orchestrator targeting one supervisor agent.
func New(invoker agentcore.Invoker, agentID, agentAliasID string, opt ...Option) *Orchestrator {
	o := &Orchestrator{
		invoker:      invoker,
		agentID:      agentID,
		agentAliasID: agentAliasID,
		policy:       DefaultRetryPolicy(),
	}
	for _, op := range opt {
		op(o)
	}
	return o
}

// Invoke asks the supervisor for a plan and returns the ordered sequence of
// output events for this invocation. Stream initiation failures (after
// throttling retries are exhausted) are returned directly; once a channel
// is returned it is closed when the upstream stream ends, with a terminal
// error event appended if the stream fails mid-way. Cancelling ctx stops
// consumption and releases the upstream connection.
func (o *Orchestrator) Invoke(ctx context.Context, goal, sessionID string, userContext map[string]string) (<-chan OutputEvent, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, ErrGoalRequired
	}
	ctx, span := trace.Tracer.Start(ctx, "invoke_supervisor")
	span.SetAttributes(attribute.String("session.id", sessionID))

	req := &agentcore.InvokeRequest{
		AgentID:           o.agentID,
		AgentAliasID:      o.agentAliasID,
		SessionID:         sessionID,
		InputText:         BuildInputText(goal, userContext),
		EnableTrace:       true,
		SessionAttributes: userContext,
	}
	log.Infof("invoking supervisor agent: session=%s", sessionID)

	var stream agentcore.Stream
	err := retry.Do(ctx, o.policy, func(ctx context.Context) error {
		s, err := o.invoker.InvokeAgent(ctx, req)
		if err != nil {
			if agentcore.IsThrottling(err) {
				log.Warnf("supervisor invocation throttled, may retry: session=%s", sessionID)
			}
			return err
		}
		stream = s
		return nil
	})
	if err != nil {
		span.End()
		return nil, fmt.Errorf("open supervisor stream: %w", err)
	}

	if o.recorder != nil {
		o.recorder.RecordUserGoal(sessionID, goal)
	}

	out := make(chan OutputEvent)
	go o.pump(ctx, span, stream, sessionID, out)
	return out, nil
}

// pump consumes the upstream stream, normalizing trace events and passing
// chunks through in order. State is local: counters and the pending
// correlation table start empty here and die with this call.
func (o *Orchestrator) pump(ctx context.Context, span trace.Span, stream agentcore.Stream, sessionID string, out chan<- OutputEvent) {
	defer close(out)
	defer span.End()
	defer func() {
		if err := stream.Close(); err != nil {
			log.Debugf("closing supervisor stream: %v", err)
		}
	}()

	st := newInvocationState()
	var finalText strings.Builder
	chunkCount, traceCount := 0, 0

	for ev := range stream.Events() {
		var outEvent OutputEvent
		switch {
		case ev.Chunk != nil:
			chunkCount++
			text := ev.Chunk.Text()
			finalText.WriteString(text)
			outEvent = OutputEvent{Type: OutputChunk, SessionID: sessionID, Text: text}
		case ev.Trace != nil:
			traceCount++
			rec := normalize(ev.Trace, sessionID, st)
			if rec == nil {
				continue
			}
			o.recordCollaboratorOutput(sessionID, rec)
			outEvent = OutputEvent{Type: OutputTrace, SessionID: sessionID, Data: rec}
		default:
			continue
		}
		select {
		case out <- outEvent:
		case <-ctx.Done():
			return
		}
	}

	if err := stream.Err(); err != nil {
		log.Errorf("supervisor stream failed: session=%s err=%v", sessionID, err)
		select {
		case out <- OutputEvent{Type: OutputError, SessionID: sessionID, Message: err.Error()}:
		case <-ctx.Done():
		}
		return
	}

	if o.recorder != nil && finalText.Len() > 0 {
		o.recorder.RecordAgentOutput(sessionID, "Supervisor", finalText.String())
	}
	log.Infof("supervisor stream completed: session=%s chunks=%d traces=%d",
		sessionID, chunkCount, traceCount)
}

func (o *Orchestrator) recordCollaboratorOutput(sessionID string, rec *ProgressRecord) {
	if o.recorder == nil || rec.CollaboratorResponse == nil {
		return
	}
	resp := rec.CollaboratorResponse
	if resp.Agent == "" || resp.Output == "" {
		return
	}
	o.recorder.RecordAgentOutput(sessionID, resp.Agent, resp.Output)
}
