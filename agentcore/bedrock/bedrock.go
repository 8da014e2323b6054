//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package bedrock adapts the AWS Bedrock agent runtime to the agentcore
// boundary. It maps the SDK's response-stream union members onto the typed
// event union; union members the mapping does not recognize are skipped so
// the consumer never sees a partially decoded event.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/careerspark/careerspark/agentcore"
	"github.com/careerspark/careerspark/log"
)

// Invoker opens streaming invocations against the Bedrock agent runtime.
type Invoker struct {
	client *bedrockagentruntime.Client
}

var _ agentcore.Invoker = (*Invoker)(nil)

// New creates a Bedrock invoker. Without WithClient the default AWS
// configuration chain is used, optionally pinned to WithRegion.
func New(ctx context.Context, opt ...Option) (*Invoker, error) {
	opts := newOptions(opt...)
	if opts.client != nil {
		return &Invoker{client: opts.client}, nil
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Invoker{client: bedrockagentruntime.NewFromConfig(awsCfg)}, nil
}

// InvokeAgent opens one streaming supervisor invocation.
func (i *Invoker) InvokeAgent(ctx context.Context, req *agentcore.InvokeRequest) (agentcore.Stream, error) {
	input := &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(req.AgentID),
		AgentAliasId: aws.String(req.AgentAliasID),
		SessionId:    aws.String(req.SessionID),
		InputText:    aws.String(req.InputText),
		EnableTrace:  aws.Bool(req.EnableTrace),
	}
	if len(req.SessionAttributes) > 0 {
		input.SessionState = &types.SessionState{
			SessionAttributes: req.SessionAttributes,
		}
	}
	out, err := i.client.InvokeAgent(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("invoke agent: %w", err)
	}
	s := &stream{
		upstream: out.GetStream(),
		events:   make(chan agentcore.StreamEvent),
	}
	go s.pump(ctx)
	return s, nil
}

// stream wraps the SDK event stream behind the agentcore.Stream contract.
type stream struct {
	upstream *bedrockagentruntime.InvokeAgentEventStream
	events   chan agentcore.StreamEvent
}

func (s *stream) Events() <-chan agentcore.StreamEvent { return s.events }

func (s *stream) Err() error { return s.upstream.Err() }

func (s *stream) Close() error { return s.upstream.Close() }

func (s *stream) pump(ctx context.Context) {
	defer close(s.events)
	for raw := range s.upstream.Events() {
		ev, ok := mapResponseStream(raw)
		if !ok {
			continue
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// mapResponseStream converts one SDK response-stream member to a boundary
// event. ok is false for members the consumer has no use for.
func mapResponseStream(raw types.ResponseStream) (agentcore.StreamEvent, bool) {
	switch v := raw.(type) {
	case *types.ResponseStreamMemberChunk:
		return agentcore.StreamEvent{Chunk: &agentcore.Chunk{Bytes: v.Value.Bytes}}, true
	case *types.ResponseStreamMemberTrace:
		return agentcore.StreamEvent{Trace: mapTracePart(v.Value)}, true
	default:
		log.Debugf("bedrock: skipping unhandled response stream member %T", raw)
		return agentcore.StreamEvent{}, false
	}
}

func mapTracePart(part types.TracePart) *agentcore.Trace {
	return &agentcore.Trace{
		CollaboratorName: aws.ToString(part.CollaboratorName),
		Orchestration:    mapTrace(part.Trace),
	}
}

func mapTrace(trace types.Trace) agentcore.Orchestration {
	switch v := trace.(type) {
	case *types.TraceMemberOrchestrationTrace:
		return mapOrchestrationTrace(v.Value)
	case *types.TraceMemberFailureTrace:
		return &agentcore.Failure{Reason: aws.ToString(v.Value.FailureReason)}
	default:
		return nil
	}
}

func mapOrchestrationTrace(orch types.OrchestrationTrace) agentcore.Orchestration {
	switch v := orch.(type) {
	case *types.OrchestrationTraceMemberRationale:
		text := aws.ToString(v.Value.Text)
		if text == "" {
			return nil
		}
		return &agentcore.Reasoning{Text: text}
	case *types.OrchestrationTraceMemberInvocationInput:
		return mapInvocationInput(v.Value)
	case *types.OrchestrationTraceMemberObservation:
		return mapObservation(v.Value)
	default:
		return nil
	}
}

func mapInvocationInput(in types.InvocationInput) agentcore.Orchestration {
	switch in.InvocationType {
	case types.InvocationTypeAgentCollaborator:
		collab := in.AgentCollaboratorInvocationInput
		if collab == nil {
			return nil
		}
		started := &agentcore.InvocationStarted{
			Kind:             agentcore.KindCollaborator,
			TraceID:          aws.ToString(in.TraceId),
			CollaboratorName: aws.ToString(collab.AgentCollaboratorName),
		}
		if collab.Input != nil {
			started.InputText = aws.ToString(collab.Input.Text)
		}
		return started
	case types.InvocationTypeActionGroup:
		action := in.ActionGroupInvocationInput
		if action == nil {
			return nil
		}
		return &agentcore.InvocationStarted{
			Kind:         agentcore.KindTool,
			TraceID:      aws.ToString(in.TraceId),
			ToolName:     aws.ToString(action.ActionGroupName),
			FunctionName: aws.ToString(action.Function),
			Parameters:   mapParameters(action.Parameters),
		}
	case types.InvocationTypeKnowledgeBase:
		lookup := in.KnowledgeBaseLookupInput
		if lookup == nil {
			return nil
		}
		return &agentcore.InvocationStarted{
			Kind:     agentcore.KindKnowledgeLookup,
			TraceID:  aws.ToString(in.TraceId),
			ToolName: aws.ToString(lookup.KnowledgeBaseId),
			Query:    aws.ToString(lookup.Text),
		}
	default:
		return nil
	}
}

func mapObservation(obs types.Observation) agentcore.Orchestration {
	switch obs.Type {
	case types.TypeAgentCollaborator:
		collab := obs.AgentCollaboratorInvocationOutput
		if collab == nil {
			return nil
		}
		completed := &agentcore.InvocationCompleted{
			Kind:             agentcore.KindCollaborator,
			TraceID:          aws.ToString(obs.TraceId),
			CollaboratorName: aws.ToString(collab.AgentCollaboratorName),
		}
		if collab.Output != nil {
			completed.OutputText = aws.ToString(collab.Output.Text)
		}
		return completed
	case types.TypeActionGroup:
		action := obs.ActionGroupInvocationOutput
		if action == nil {
			return nil
		}
		completed := &agentcore.InvocationCompleted{
			Kind:       agentcore.KindTool,
			TraceID:    aws.ToString(obs.TraceId),
			OutputText: aws.ToString(action.Text),
		}
		applyMetadata(completed, action.Metadata)
		return completed
	case types.TypeKnowledgeBase:
		lookup := obs.KnowledgeBaseLookupOutput
		if lookup == nil {
			return nil
		}
		completed := &agentcore.InvocationCompleted{
			Kind:           agentcore.KindKnowledgeLookup,
			TraceID:        aws.ToString(obs.TraceId),
			ReferenceCount: len(lookup.RetrievedReferences),
		}
		applyMetadata(completed, lookup.Metadata)
		return completed
	default:
		return nil
	}
}

func applyMetadata(completed *agentcore.InvocationCompleted, meta *types.Metadata) {
	if meta == nil {
		return
	}
	completed.ElapsedMs = aws.ToInt64(meta.TotalTimeMs)
	completed.RequestID = aws.ToString(meta.ClientRequestId)
}

func mapParameters(params []types.Parameter) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for _, p := range params {
		name := aws.ToString(p.Name)
		if name == "" {
			continue
		}
		out[name] = aws.ToString(p.Value)
	}
	return out
}
