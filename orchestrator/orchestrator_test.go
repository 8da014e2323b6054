//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerspark/careerspark/agentcore"
	"github.com/careerspark/careerspark/retry"
)

// fakeStream replays a fixed event sequence.
type fakeStream struct {
	ch  chan agentcore.StreamEvent
	err error

	mu     sync.Mutex
	closed bool
}

func newFakeStream(err error, events ...agentcore.StreamEvent) *fakeStream {
	ch := make(chan agentcore.StreamEvent, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return &fakeStream{ch: ch, err: err}
}

func (f *fakeStream) Events() <-chan agentcore.StreamEvent { return f.ch }

func (f *fakeStream) Err() error { return f.err }

func (f *fakeStream) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeStream) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeInvoker returns the next queued stream or error per call.
type fakeInvoker struct {
	mu       sync.Mutex
	attempts int
	open     func(attempt int) (agentcore.Stream, error)
	lastReq  *agentcore.InvokeRequest
}

func (f *fakeInvoker) InvokeAgent(ctx context.Context, req *agentcore.InvokeRequest) (agentcore.Stream, error) {
	f.mu.Lock()
	f.attempts++
	attempt := f.attempts
	f.lastReq = req
	f.mu.Unlock()
	return f.open(attempt)
}

func immediatePolicy(delays *[]time.Duration) retry.Policy {
	p := DefaultRetryPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
	return p
}

func chunkEvent(text string) agentcore.StreamEvent {
	return agentcore.StreamEvent{Chunk: &agentcore.Chunk{Bytes: []byte(text)}}
}

func traceEvent(orch agentcore.Orchestration) agentcore.StreamEvent {
	return agentcore.StreamEvent{Trace: &agentcore.Trace{Orchestration: orch}}
}

func collect(t *testing.T, ch <-chan OutputEvent) []OutputEvent {
	t.Helper()
	var out []OutputEvent
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

func TestInvokeRequiresGoal(t *testing.T) {
	o := New(&fakeInvoker{}, "agent", "alias")
	_, err := o.Invoke(context.Background(), "   ", "abc", nil)
	assert.ErrorIs(t, err, ErrGoalRequired)
}

func TestInvokeExampleScenario(t *testing.T) {
	stream := newFakeStream(nil,
		traceEvent(&agentcore.Reasoning{Text: "Let me check course data"}),
		traceEvent(&agentcore.InvocationStarted{
			Kind:         agentcore.KindTool,
			TraceID:      "t1",
			ToolName:     "NebulaAPI",
			FunctionName: "get_course_information",
		}),
		traceEvent(&agentcore.InvocationCompleted{
			Kind:       agentcore.KindTool,
			TraceID:    "t1",
			OutputText: "CS 1337 found",
			ElapsedMs:  120,
		}),
		chunkEvent("Here is your plan: ..."),
	)
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return stream, nil }}
	o := New(invoker, "agent", "alias")

	ch, err := o.Invoke(context.Background(), "become a backend engineer", "abc", nil)
	require.NoError(t, err)
	events := collect(t, ch)
	require.Len(t, events, 4)

	assert.Equal(t, OutputTrace, events[0].Type)
	assert.Equal(t, "Let me check course data", events[0].Data.Reasoning)
	assert.Equal(t, StatusProgress, events[0].Data.Status)

	require.Len(t, events[1].Data.ToolCalls, 1)
	assert.Equal(t, ToolStatusCalling, events[1].Data.ToolCalls[0].Status)

	require.Len(t, events[2].Data.ToolCalls, 1)
	assert.Equal(t, ToolStatusCompleted, events[2].Data.ToolCalls[0].Status)
	assert.Equal(t, int64(120), events[2].Data.ToolCalls[0].ElapsedMs)

	assert.Equal(t, OutputChunk, events[3].Type)
	assert.Equal(t, "Here is your plan: ...", events[3].Text)
	assert.Equal(t, "abc", events[3].SessionID)

	assert.True(t, stream.isClosed())
}

func TestInvokeRetriesThrottlingOnInitiation(t *testing.T) {
	var delays []time.Duration
	throttled := errors.New("ThrottlingException: rate exceeded")
	stream := newFakeStream(nil, chunkEvent("ok"))
	invoker := &fakeInvoker{open: func(attempt int) (agentcore.Stream, error) {
		if attempt <= 2 {
			return nil, throttled
		}
		return stream, nil
	}}
	o := New(invoker, "agent", "alias", WithRetryPolicy(immediatePolicy(&delays)))

	ch, err := o.Invoke(context.Background(), "goal", "abc", nil)
	require.NoError(t, err)
	events := collect(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].Text)
	assert.Equal(t, 3, invoker.attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestInvokeFailsAfterRetryExhaustion(t *testing.T) {
	throttled := errors.New("rate exceeded")
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return nil, throttled }}
	o := New(invoker, "agent", "alias", WithRetryPolicy(immediatePolicy(nil)))

	_, err := o.Invoke(context.Background(), "goal", "abc", nil)
	require.Error(t, err)
	assert.Equal(t, 3, invoker.attempts)
}

func TestInvokeDoesNotRetryOtherInitiationErrors(t *testing.T) {
	fatal := errors.New("access denied")
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return nil, fatal }}
	o := New(invoker, "agent", "alias", WithRetryPolicy(immediatePolicy(nil)))

	_, err := o.Invoke(context.Background(), "goal", "abc", nil)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, invoker.attempts)
}

func TestChunkPassThroughPreservesOrder(t *testing.T) {
	stream := newFakeStream(nil,
		chunkEvent("alpha "),
		traceEvent(&agentcore.Reasoning{Text: "thinking"}),
		chunkEvent("beta"),
	)
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return stream, nil }}
	o := New(invoker, "agent", "alias")

	ch, err := o.Invoke(context.Background(), "goal", "abc", nil)
	require.NoError(t, err)
	events := collect(t, ch)
	require.Len(t, events, 3)
	assert.Equal(t, OutputChunk, events[0].Type)
	assert.Equal(t, "alpha ", events[0].Text)
	assert.Equal(t, OutputTrace, events[1].Type)
	assert.Equal(t, OutputChunk, events[2].Type)
	assert.Equal(t, "beta", events[2].Text)
}

func TestMidStreamFailureEmitsErrorEvent(t *testing.T) {
	stream := newFakeStream(errors.New("connection reset"), chunkEvent("partial"))
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return stream, nil }}
	o := New(invoker, "agent", "alias")

	ch, err := o.Invoke(context.Background(), "goal", "abc", nil)
	require.NoError(t, err)
	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, OutputChunk, events[0].Type)
	assert.Equal(t, OutputError, events[1].Type)
	assert.Equal(t, "connection reset", events[1].Message)
	assert.Equal(t, 1, invoker.attempts, "mid-stream failures are not retried")
}

func TestStateIsolationAcrossSequentialInvokes(t *testing.T) {
	// First call leaves a dangling tool start for trace ID t1.
	first := newFakeStream(nil, traceEvent(&agentcore.InvocationStarted{
		Kind: agentcore.KindTool, TraceID: "t1", ToolName: "NebulaAPI",
	}))
	// Second call completes t1 without ever starting it in this call.
	second := newFakeStream(nil, traceEvent(&agentcore.InvocationCompleted{
		Kind: agentcore.KindTool, TraceID: "t1", OutputText: "course details",
	}))
	streams := []agentcore.Stream{first, second}
	var calls int
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) {
		s := streams[calls]
		calls++
		return s, nil
	}}
	o := New(invoker, "agent", "alias")

	ch, err := o.Invoke(context.Background(), "goal", "abc", nil)
	require.NoError(t, err)
	collect(t, ch)

	ch, err = o.Invoke(context.Background(), "goal", "abc", nil)
	require.NoError(t, err)
	events := collect(t, ch)
	require.Len(t, events, 1)
	require.Len(t, events[0].Data.ToolCalls, 1)
	// The dangling t1 from the first call must not resolve here.
	assert.Equal(t, "Course Catalog Tools", events[0].Data.ToolCalls[0].Name)
}

func TestInvokeForwardsRequestFields(t *testing.T) {
	stream := newFakeStream(nil)
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return stream, nil }}
	o := New(invoker, "agent-1", "alias-1")

	userContext := map[string]string{"user_major": "Computer Science"}
	ch, err := o.Invoke(context.Background(), "become a data engineer", "sess-9", userContext)
	require.NoError(t, err)
	collect(t, ch)

	req := invoker.lastReq
	require.NotNil(t, req)
	assert.Equal(t, "agent-1", req.AgentID)
	assert.Equal(t, "alias-1", req.AgentAliasID)
	assert.Equal(t, "sess-9", req.SessionID)
	assert.True(t, req.EnableTrace)
	assert.Equal(t, userContext, req.SessionAttributes)
	assert.Contains(t, req.InputText, "Create a comprehensive career plan for: become a data engineer")
	assert.Contains(t, req.InputText, "Major: Computer Science")
}

func TestConsumerCancellationReleasesStream(t *testing.T) {
	// An unclosed channel keeps the stream open until cancellation.
	ch := make(chan agentcore.StreamEvent, 2)
	ch <- chunkEvent("first")
	stream := &fakeStream{ch: ch}
	invoker := &fakeInvoker{open: func(int) (agentcore.Stream, error) { return stream, nil }}
	o := New(invoker, "agent", "alias")

	ctx, cancel := context.WithCancel(context.Background())
	out, err := o.Invoke(ctx, "goal", "abc", nil)
	require.NoError(t, err)

	ev := <-out
	assert.Equal(t, "first", ev.Text)
	cancel()
	ch <- chunkEvent("second") // pump observes cancellation on send

	assert.Eventually(t, func() bool {
		select {
		case _, open := <-out:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.True(t, stream.isClosed())
}
