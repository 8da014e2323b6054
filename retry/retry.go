//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package retry provides a small reusable retry policy with exponential backoff.
package retry

import (
	"context"
	"math"
	"time"
)

// Condition determines whether an error is retryable.
type Condition interface {
	Match(err error) bool
}

// ConditionFunc is an adapter to allow the use of ordinary
// functions as Condition.
type ConditionFunc func(error) bool

// Match calls f(err).
func (f ConditionFunc) Match(err error) bool { return f(err) }

// Policy defines retry configuration. Attempts are counted inclusive of the
// first try, so MaxAttempts=3 means 1 initial try + up to 2 retries.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	BackoffFactor   float64
	MaxInterval     time.Duration
	RetryOn         Condition

	// Sleep overrides the wait between attempts; nil uses a
	// context-aware time.Sleep equivalent.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NextDelay returns the backoff delay after the given attempt number.
// attempt starts at 1 for the first try.
func (p Policy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := p.BackoffFactor
	if factor <= 0 {
		factor = 1.0
	}
	delay := float64(p.InitialInterval)
	if attempt > 1 {
		delay *= math.Pow(factor, float64(attempt-1))
	}
	if p.MaxInterval > 0 {
		delay = math.Min(delay, float64(p.MaxInterval))
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// ShouldRetry reports whether the given error matches the policy's condition.
func (p Policy) ShouldRetry(err error) bool {
	if err == nil || p.RetryOn == nil {
		return false
	}
	return p.RetryOn.Match(err)
}

// Do runs fn until it succeeds, the error is not retryable, the attempt
// budget is exhausted, or ctx is done. The last error is returned unwrapped
// so callers can classify it with errors.Is/As.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts || !p.ShouldRetry(lastErr) {
			break
		}
		if err := sleep(ctx, p.NextDelay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
