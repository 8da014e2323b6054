//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package orchestrator

import "fmt"

// invocationState is the mutable state of one invocation: per-name call
// counters and the pending tool-call correlation table. A fresh value is
// created for every Invoke call and discarded at the end, so concurrent
// invocations never share correlation state.
type invocationState struct {
	counters map[string]int
	pending  map[string]pendingToolCall
}

// pendingToolCall holds the descriptive fields of a started tool or
// knowledge-base invocation until its completion arrives.
type pendingToolCall struct {
	kind         ToolCallKind
	name         string
	functionName string
	parameters   map[string]string
	callID       string
}

func newInvocationState() *invocationState {
	return &invocationState{
		counters: make(map[string]int),
		pending:  make(map[string]pendingToolCall),
	}
}

// nextCallID increments the counter for name and returns the resulting
// call identifier. Counters are 1-indexed.
func (s *invocationState) nextCallID(sessionID, name string) string {
	s.counters[name]++
	return callID(sessionID, name, s.counters[name])
}

// currentCallID returns the call identifier for the most recently started
// invocation of name, if any. Last-started semantics: with no trace ID
// supplied for collaborator calls this is a best-effort correlation.
func (s *invocationState) currentCallID(sessionID, name string) (string, bool) {
	n, ok := s.counters[name]
	if !ok {
		return "", false
	}
	return callID(sessionID, name, n), true
}

// storePending records a started tool call under its trace ID.
func (s *invocationState) storePending(traceID string, call pendingToolCall) {
	if traceID == "" {
		return
	}
	s.pending[traceID] = call
}

// takePending consumes the pending entry for traceID, at most once.
func (s *invocationState) takePending(traceID string) (pendingToolCall, bool) {
	call, ok := s.pending[traceID]
	if ok {
		delete(s.pending, traceID)
	}
	return call, ok
}

func callID(sessionID, name string, n int) string {
	return fmt.Sprintf("%s_%s_%d", sessionID, name, n)
}
