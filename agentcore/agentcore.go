//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package agentcore defines the boundary to the managed supervisor-agent
// runtime. The runtime is consumed as an opaque streaming API: one invoke
// call yields an ordered stream of text chunks and orchestration trace
// events. Concrete transports (the Bedrock agent runtime adapter) live in
// subpackages; everything above this boundary works on the typed event
// union declared here.
package agentcore

import "context"

// InvokeRequest carries the parameters for one supervisor invocation.
type InvokeRequest struct {
	// AgentID is the supervisor agent identifier.
	AgentID string
	// AgentAliasID is the supervisor agent alias identifier.
	AgentAliasID string
	// SessionID is the opaque conversation identifier. Reusing the same
	// value lets the runtime maintain conversational continuity.
	SessionID string
	// InputText is the fully rendered prompt.
	InputText string
	// EnableTrace requests orchestration trace events alongside chunks.
	EnableTrace bool
	// SessionAttributes are optional key/value pairs forwarded to the
	// runtime as session state.
	SessionAttributes map[string]string
}

// Stream is one open streaming response. Events are delivered in upstream
// order on the Events channel, which is closed when the stream ends.
// Err reports a mid-stream transport failure, if any, after the channel
// closes. Close releases the underlying connection and is safe to call on
// every exit path.
type Stream interface {
	Events() <-chan StreamEvent
	Err() error
	Close() error
}

// Invoker opens streaming supervisor invocations.
type Invoker interface {
	InvokeAgent(ctx context.Context, req *InvokeRequest) (Stream, error)
}
