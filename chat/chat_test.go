//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	result  string
	err     error
	lastReq CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.lastReq = req
	return f.result, f.err
}

func TestClassifyGoalAllow(t *testing.T) {
	svc := NewService(&fakeCompleter{result: "ALLOW: clear software engineering goal"})
	allowed, verdict := svc.ClassifyGoal(context.Background(), "become a software engineer")
	assert.True(t, allowed)
	assert.Equal(t, "ALLOW: clear software engineering goal", verdict)
}

func TestClassifyGoalReject(t *testing.T) {
	svc := NewService(&fakeCompleter{result: "REJECT: asking for a cookie recipe"})
	allowed, verdict := svc.ClassifyGoal(context.Background(), "bake me cookies")
	assert.False(t, allowed)
	assert.Contains(t, verdict, "REJECT")
}

func TestClassifyGoalUnexpectedOutputRejects(t *testing.T) {
	svc := NewService(&fakeCompleter{result: "MAYBE?"})
	allowed, verdict := svc.ClassifyGoal(context.Background(), "become a software engineer")
	assert.False(t, allowed)
	assert.Contains(t, verdict, "Unexpected classifier output")
}

func TestClassifyGoalFallsBackToKeywords(t *testing.T) {
	svc := NewService(&fakeCompleter{err: errors.New("model unavailable")})

	allowed, verdict := svc.ClassifyGoal(context.Background(), "I want a data analyst position")
	assert.True(t, allowed)
	assert.Equal(t, "ALLOW: heuristic keyword match", verdict)

	allowed, verdict = svc.ClassifyGoal(context.Background(), "what is the weather today")
	assert.False(t, allowed)
	assert.Contains(t, verdict, "REJECT")
}

func TestClassifyGoalNilCompleterUsesKeywords(t *testing.T) {
	svc := NewService(nil)
	allowed, _ := svc.ClassifyGoal(context.Background(), "become an engineer")
	assert.True(t, allowed)
}

func TestIntroMessage(t *testing.T) {
	fake := &fakeCompleter{result: "  Great goal! Tell me about your background.  "}
	svc := NewService(fake)
	msg, err := svc.IntroMessage(context.Background(), "become a game developer")
	require.NoError(t, err)
	assert.Equal(t, "Great goal! Tell me about your background.", msg)
	assert.Contains(t, fake.lastReq.Prompt, "become a game developer")
	assert.Equal(t, int64(180), fake.lastReq.MaxTokens)
}

func TestIntroMessageErrorPropagates(t *testing.T) {
	svc := NewService(&fakeCompleter{err: errors.New("model unavailable")})
	_, err := svc.IntroMessage(context.Background(), "goal")
	assert.Error(t, err)
}

func TestProcessCareerGoal(t *testing.T) {
	svc := NewService(&fakeCompleter{result: "I aspire to lead cloud infrastructure teams."})
	got := svc.ProcessCareerGoal(context.Background(), "i wanna do cloud stuff")
	assert.Equal(t, "I aspire to lead cloud infrastructure teams.", got)
}

func TestProcessCareerGoalFallsBackToOriginal(t *testing.T) {
	svc := NewService(&fakeCompleter{err: errors.New("model unavailable")})
	got := svc.ProcessCareerGoal(context.Background(), "i wanna do cloud stuff")
	assert.Equal(t, "i wanna do cloud stuff", got)
}
