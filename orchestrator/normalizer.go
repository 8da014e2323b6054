//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package orchestrator

import (
	"strings"

	"github.com/careerspark/careerspark/agentcore"
)

// normalize converts one upstream trace event into a progress record.
// It returns nil when the event carries nothing worth showing a client.
// The per-invocation state is mutated in place; text chunks never reach
// this function. normalize must tolerate any partial trace shape the
// upstream produces.
func normalize(trace *agentcore.Trace, sessionID string, st *invocationState) *ProgressRecord {
	if trace == nil {
		return nil
	}
	rec := &ProgressRecord{
		Agent:                trace.AgentLabel(),
		Status:               StatusProgress,
		SupervisorSessionKey: "supervisor_" + sessionID,
	}
	switch orch := trace.Orchestration.(type) {
	case *agentcore.Failure:
		// Failures bypass the meaningful-content filter.
		rec.Status = StatusFailed
		rec.FailureReason = orch.Reason
		return rec
	case *agentcore.Reasoning:
		rec.Reasoning = orch.Text
	case *agentcore.InvocationStarted:
		normalizeStarted(orch, sessionID, st, rec)
	case *agentcore.InvocationCompleted:
		normalizeCompleted(orch, sessionID, st, rec)
	}
	if !rec.meaningful() {
		return nil
	}
	return rec
}

func normalizeStarted(started *agentcore.InvocationStarted, sessionID string, st *invocationState, rec *ProgressRecord) {
	rec.Status = StatusStarted
	switch started.Kind {
	case agentcore.KindCollaborator:
		if started.CollaboratorName == "" {
			return
		}
		// Collaborator calls carry no trace ID upstream, so correlation
		// rides on the per-name counter instead.
		rec.CallID = st.nextCallID(sessionID, started.CollaboratorName)
		rec.CallingCollaborator = started.CollaboratorName
		rec.InputText = started.InputText
	case agentcore.KindTool:
		name := started.ToolName
		if name == "" {
			name = "Agent Tools"
		}
		id := st.nextCallID(sessionID, name)
		rec.CallID = id
		st.storePending(started.TraceID, pendingToolCall{
			kind:         ToolKindActionGroup,
			name:         name,
			functionName: started.FunctionName,
			parameters:   started.Parameters,
			callID:       id,
		})
		rec.ToolCalls = append(rec.ToolCalls, ToolCallRecord{
			Kind:         ToolKindActionGroup,
			Name:         name,
			FunctionName: started.FunctionName,
			Status:       ToolStatusCalling,
			Parameters:   started.Parameters,
		})
	case agentcore.KindKnowledgeLookup:
		name := started.ToolName
		if name == "" {
			name = "Knowledge Base"
		}
		id := st.nextCallID(sessionID, name)
		rec.CallID = id
		params := map[string]string{}
		if started.Query != "" {
			params["query"] = started.Query
		}
		st.storePending(started.TraceID, pendingToolCall{
			kind:       ToolKindKnowledgeBase,
			name:       name,
			parameters: params,
			callID:     id,
		})
		rec.ToolCalls = append(rec.ToolCalls, ToolCallRecord{
			Kind:       ToolKindKnowledgeBase,
			Name:       name,
			Status:     ToolStatusCalling,
			Parameters: params,
		})
	}
}

func normalizeCompleted(completed *agentcore.InvocationCompleted, sessionID string, st *invocationState, rec *ProgressRecord) {
	rec.Status = StatusCompleted
	switch completed.Kind {
	case agentcore.KindCollaborator:
		rec.CollaboratorResponse = &CollaboratorResponse{
			Agent:  completed.CollaboratorName,
			Output: completed.OutputText,
		}
		if id, ok := st.currentCallID(sessionID, completed.CollaboratorName); ok {
			rec.CallID = id
		}
	case agentcore.KindTool, agentcore.KindKnowledgeLookup:
		pending, ok := st.takePending(completed.TraceID)
		if !ok {
			rec.ToolCalls = append(rec.ToolCalls, fallbackToolCall(completed))
			return
		}
		rec.CallID = pending.callID
		rec.ToolCalls = append(rec.ToolCalls, ToolCallRecord{
			Kind:           pending.kind,
			Name:           pending.name,
			FunctionName:   pending.functionName,
			Status:         ToolStatusCompleted,
			Parameters:     pending.parameters,
			ResultText:     completed.OutputText,
			ElapsedMs:      completed.ElapsedMs,
			ReferenceCount: completed.ReferenceCount,
		})
	}
}

// fallbackToolCall classifies a completion whose start was never observed
// (lost correlation, duplicate completion, or a restart mid-call). The
// keyword table is deliberately small: the goal is to avoid dropping the
// event, not to classify accurately.
func fallbackToolCall(completed *agentcore.InvocationCompleted) ToolCallRecord {
	kind := ToolKindActionGroup
	if completed.Kind == agentcore.KindKnowledgeLookup {
		kind = ToolKindKnowledgeBase
	}
	return ToolCallRecord{
		Kind:           kind,
		Name:           classifyToolOutput(completed.OutputText),
		Status:         ToolStatusCompleted,
		ResultText:     "Results delivered to the supervisor.",
		ElapsedMs:      completed.ElapsedMs,
		ReferenceCount: completed.ReferenceCount,
	}
}

func classifyToolOutput(output string) string {
	lowered := strings.ToLower(output)
	switch {
	case strings.Contains(lowered, "job") || strings.Contains(lowered, "hiring"):
		return "Job Market Tools"
	case strings.Contains(lowered, "course") || strings.Contains(lowered, "cs "):
		return "Course Catalog Tools"
	case strings.Contains(lowered, "project") || strings.Contains(lowered, "portfolio"):
		return "Project Advisor Tools"
	default:
		return "Agent Tools"
	}
}
