//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures the redis memory service.
type Option func(*options)

type options struct {
	client    redis.UniversalClient
	url       string
	keyPrefix string
	ttl       time.Duration
}

// WithClient supplies a preconfigured redis client.
func WithClient(client redis.UniversalClient) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithURL sets the redis connection URL, e.g. redis://127.0.0.1:6379/0.
// Ignored when a client is supplied via WithClient.
func WithURL(url string) Option {
	return func(o *options) {
		o.url = url
	}
}

// WithKeyPrefix overrides the key prefix used for session lists.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.keyPrefix = prefix
	}
}

// WithTTL sets the expiry applied to session lists on every write.
// Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}
