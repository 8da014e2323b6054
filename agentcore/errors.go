//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package agentcore

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrThrottled indicates the runtime rejected a call because of rate
// limiting. Adapters wrap their provider-specific throttling errors so
// callers can match with errors.Is.
var ErrThrottled = errors.New("agentcore: request throttled")

// IsThrottling reports whether err represents a rate-limit rejection.
// It matches the ErrThrottled sentinel, smithy API throttling codes, and,
// as a last resort, throttling-shaped error text.
func IsThrottling(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrThrottled) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "TooManyRequestsException", "throttlingException":
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "throttl") || strings.Contains(msg, "rate exceeded")
}
