//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package orchestrator

// Status is the lifecycle state a progress record reports.
type Status string

// Progress record statuses.
const (
	StatusProgress  Status = "progress"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ToolCallKind distinguishes action-group tool calls from knowledge-base
// lookups.
type ToolCallKind string

// Tool call kinds.
const (
	ToolKindActionGroup   ToolCallKind = "action_group"
	ToolKindKnowledgeBase ToolCallKind = "knowledge_base"
)

// ToolCallStatus is the state of one tool call within a progress record.
type ToolCallStatus string

// Tool call statuses.
const (
	ToolStatusCalling   ToolCallStatus = "calling"
	ToolStatusCompleted ToolCallStatus = "completed"
)

// ProgressRecord is the normalized, client-facing representation of one
// orchestration trace event. Field names match the frontend contract.
type ProgressRecord struct {
	Agent                string                `json:"agent"`
	Status               Status                `json:"status"`
	SupervisorSessionKey string                `json:"supervisor_session_key"`
	CallID               string                `json:"call_id,omitempty"`
	Reasoning            string                `json:"reasoning,omitempty"`
	CallingCollaborator  string                `json:"calling_collaborator,omitempty"`
	InputText            string                `json:"input_text,omitempty"`
	CollaboratorResponse *CollaboratorResponse `json:"collaborator_response,omitempty"`
	ToolCalls            []ToolCallRecord      `json:"tool_calls,omitempty"`
	FailureReason        string                `json:"failure_reason,omitempty"`
}

// CollaboratorResponse is a completed sub-agent response.
type CollaboratorResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// ToolCallRecord describes one tool or knowledge-base call.
type ToolCallRecord struct {
	Kind           ToolCallKind      `json:"kind"`
	Name           string            `json:"name"`
	FunctionName   string            `json:"function_name,omitempty"`
	Status         ToolCallStatus    `json:"status"`
	Parameters     map[string]string `json:"parameters,omitempty"`
	ResultText     string            `json:"result_text,omitempty"`
	ElapsedMs      int64             `json:"elapsed_ms,omitempty"`
	ReferenceCount int               `json:"reference_count,omitempty"`
}

// meaningful reports whether the record carries content worth emitting.
// Failed records are always meaningful.
func (r *ProgressRecord) meaningful() bool {
	if r.Status == StatusFailed {
		return true
	}
	return r.Reasoning != "" ||
		r.CallingCollaborator != "" ||
		r.CollaboratorResponse != nil ||
		len(r.ToolCalls) > 0
}

// OutputEventType tags one consumer-facing output event.
type OutputEventType string

// Output event types.
const (
	OutputChunk OutputEventType = "chunk"
	OutputTrace OutputEventType = "trace"
	OutputError OutputEventType = "error"
)

// OutputEvent is one element of the consumer-facing sequence produced by an
// invocation: a verbatim text chunk, a normalized trace record, or a
// terminal mid-stream error.
type OutputEvent struct {
	Type      OutputEventType `json:"type"`
	SessionID string          `json:"session_id"`
	Text      string          `json:"text,omitempty"`
	Data      *ProgressRecord `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
}
