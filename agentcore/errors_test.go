//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package agentcore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsThrottlingSentinel(t *testing.T) {
	assert.True(t, IsThrottling(ErrThrottled))
	assert.True(t, IsThrottling(fmt.Errorf("invoke agent: %w", ErrThrottled)))
}

func TestIsThrottlingAPIError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"}
	assert.True(t, IsThrottling(apiErr))
	assert.True(t, IsThrottling(fmt.Errorf("wrapped: %w", apiErr)))

	other := &smithy.GenericAPIError{Code: "ValidationException", Message: "bad input"}
	assert.False(t, IsThrottling(other))
}

func TestIsThrottlingMessageFallback(t *testing.T) {
	assert.True(t, IsThrottling(errors.New("Rate exceeded")))
	assert.True(t, IsThrottling(errors.New("request was throttled by upstream")))
	assert.False(t, IsThrottling(errors.New("connection reset")))
	assert.False(t, IsThrottling(nil))
}

func TestTraceAgentLabel(t *testing.T) {
	assert.Equal(t, "Supervisor", (&Trace{}).AgentLabel())
	assert.Equal(t, "Supervisor", (*Trace)(nil).AgentLabel())
	assert.Equal(t, "Collaborator: JobMarketAgent",
		(&Trace{CollaboratorName: "JobMarketAgent"}).AgentLabel())
}
