//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package chat provides the lightweight model-backed helpers that run
// before and around a supervisor invocation: goal classification, the
// welcoming intro message, and goal rewriting. These are single
// completions, not orchestrated agent runs.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerspark/careerspark/log"
)

// Completer produces one chat completion for a system prompt and a user
// prompt. Implementations wrap a concrete model provider.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest describes one single-turn completion.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// goalKeywords backs the heuristic classifier used when the model is
// unavailable.
var goalKeywords = []string{
	"career",
	"job",
	"role",
	"position",
	"engineer",
	"consult",
	"manager",
	"designer",
	"analyst",
}

// Service exposes the chat helpers. A nil Completer degrades every
// operation to its deterministic fallback.
type Service struct {
	completer Completer
}

// NewService creates a chat service on top of completer.
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// ClassifyGoal decides whether goal is a legitimate career goal. It
// returns the verdict text alongside the decision; the text starts with
// "ALLOW:" or "REJECT:".
func (s *Service) ClassifyGoal(ctx context.Context, goal string) (bool, string) {
	prompt := "Determine if the following user statement expresses a legitimate career goal or request for career guidance.\n" +
		"Respond with either:\n" +
		"ALLOW: <very short rationale>\n" +
		"REJECT: <brief reason why it's not a career goal>\n\n" +
		"User statement: " + strings.TrimSpace(goal) + "\n"

	result, err := s.complete(ctx, CompletionRequest{
		System:      "You are a strict classifier for career-goal intents.",
		Prompt:      prompt,
		MaxTokens:   60,
		Temperature: 0,
	})
	if err != nil {
		log.Warnf("chat: classifier unavailable, using keyword heuristic: %v", err)
		return classifyByKeywords(goal)
	}

	upper := strings.ToUpper(result)
	switch {
	case strings.HasPrefix(upper, "ALLOW"):
		return true, result
	case strings.HasPrefix(upper, "REJECT"):
		return false, result
	default:
		return false, fmt.Sprintf("REJECT: Unexpected classifier output (%s)", result)
	}
}

// IntroMessage generates the two-sentence welcome shown before plan
// streaming starts.
func (s *Service) IntroMessage(ctx context.Context, goal string) (string, error) {
	prompt := "The student said their primary career goal is: " + goal + ".\n" +
		"Respond in exactly two sentences:\n" +
		"1) Celebrate the goal and mention one or two exciting aspects or opportunities, including a concise salary hint if known.\n" +
		"2) Ask them to share their current year, recent courses or experiences, and weekly time commitment; remind them they can sign up later so their details are saved.\n" +
		"Keep the tone upbeat, stay under 70 words total, and focus strictly on academics, skills, and career planning."

	return s.complete(ctx, CompletionRequest{
		System:      "You are a concise, energizing career coach who keeps responses under 120 words.",
		Prompt:      prompt,
		MaxTokens:   180,
		Temperature: 0.3,
	})
}

// ProcessCareerGoal rewrites a natural-language goal into a polished
// career goal statement. On model failure the original goal is returned
// unchanged.
func (s *Service) ProcessCareerGoal(ctx context.Context, goal string) string {
	prompt := "Transform this natural language career goal into a clear, professional career goal statement:\n\n" +
		"Original: " + goal + "\n\n" +
		"Create a single, well-written paragraph (3-4 sentences) that describes their career aspirations. " +
		"Write it as a flowing narrative, not a bulleted list. " +
		"Start with their desired role, mention key skills/technologies, and end with their long-term vision. " +
		"Make it sound natural and professional, like something they would write in a bio or resume summary. " +
		"Output ONLY the career goal statement, no introductory text or explanations."

	result, err := s.complete(ctx, CompletionRequest{
		System: "You are a career guidance expert. Output ONLY the career goal statement. " +
			"Do not include any introductory text, explanations, or formatting. Just return the goal statement itself.",
		Prompt:      prompt,
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		log.Warnf("chat: goal rewriting unavailable, returning original goal: %v", err)
		return goal
	}
	return result
}

func (s *Service) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if s == nil || s.completer == nil {
		return "", fmt.Errorf("chat: no completer configured")
	}
	result, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

func classifyByKeywords(goal string) (bool, string) {
	lowered := strings.ToLower(goal)
	for _, word := range goalKeywords {
		if strings.Contains(lowered, word) {
			return true, "ALLOW: heuristic keyword match"
		}
	}
	return false, "REJECT: does not appear to be a role or career goal."
}
