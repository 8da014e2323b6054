//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package agentcore

// InvocationKind identifies what kind of sub-invocation a trace event
// describes.
type InvocationKind string

// Invocation kinds observed in orchestration traces.
const (
	KindCollaborator    InvocationKind = "COLLABORATOR"
	KindTool            InvocationKind = "TOOL"
	KindKnowledgeLookup InvocationKind = "KNOWLEDGE_LOOKUP"
)

// StreamEvent is the tagged union of upstream streaming events. Exactly one
// of Chunk and Trace is non-nil.
type StreamEvent struct {
	Chunk *Chunk
	Trace *Trace
}

// Chunk is a piece of generated output text.
type Chunk struct {
	Bytes []byte
}

// Text returns the decoded chunk text.
func (c *Chunk) Text() string {
	if c == nil {
		return ""
	}
	return string(c.Bytes)
}

// Trace describes one orchestration step of the supervisor or one of its
// collaborators.
type Trace struct {
	// CollaboratorName is set when the step was executed by a named
	// sub-agent rather than the supervisor itself.
	CollaboratorName string
	// Orchestration is the decoded payload, or nil when the upstream
	// event carried nothing this boundary understands.
	Orchestration Orchestration
}

// AgentLabel returns a display label for the agent that produced the step.
func (t *Trace) AgentLabel() string {
	if t == nil || t.CollaboratorName == "" {
		return "Supervisor"
	}
	return "Collaborator: " + t.CollaboratorName
}

// Orchestration is the closed union of trace payload variants. Upstream
// payloads that match none of the variants decode to nil rather than an
// error, so a partially understood stream still normalizes.
type Orchestration interface {
	isOrchestration()
}

// Reasoning is a model rationale step.
type Reasoning struct {
	Text string
}

// InvocationStarted marks the start of a collaborator, tool, or
// knowledge-base sub-invocation.
type InvocationStarted struct {
	Kind    InvocationKind
	TraceID string

	// Collaborator fields. The upstream protocol supplies no trace ID
	// for collaborator calls, so correlation for them is counter-based.
	CollaboratorName string
	InputText        string

	// Tool (action group) fields.
	ToolName     string
	FunctionName string
	Parameters   map[string]string

	// Knowledge-base lookup fields.
	Query string
}

// InvocationCompleted marks the completion of a sub-invocation.
type InvocationCompleted struct {
	Kind    InvocationKind
	TraceID string

	CollaboratorName string
	OutputText       string
	ReferenceCount   int
	ElapsedMs        int64
	RequestID        string
}

// Failure reports a failed orchestration step.
type Failure struct {
	Reason string
}

func (*Reasoning) isOrchestration()           {}
func (*InvocationStarted) isOrchestration()   {}
func (*InvocationCompleted) isOrchestration() {}
func (*Failure) isOrchestration()             {}
