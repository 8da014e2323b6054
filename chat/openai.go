//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package chat

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultModel = "gpt-4o-mini"

// Option configures the OpenAI completer.
type Option func(*options)

type options struct {
	apiKey  string
	baseURL string
	model   string
}

// WithAPIKey sets the API key. When empty the SDK falls back to the
// OPENAI_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// OpenAICompleter implements Completer on the OpenAI chat completions
// API.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

var _ Completer = (*OpenAICompleter)(nil)

// NewOpenAICompleter creates an OpenAI-backed completer.
func NewOpenAICompleter(opt ...Option) *OpenAICompleter {
	o := &options{model: defaultModel}
	for _, op := range opt {
		op(o)
	}
	var clientOpts []openaiopt.RequestOption
	if o.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.apiKey))
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.baseURL))
	}
	return &OpenAICompleter{
		client: openai.NewClient(clientOpts...),
		model:  o.model,
	}
}

// Complete issues one non-streaming chat completion.
func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return completion.Choices[0].Message.Content, nil
}
