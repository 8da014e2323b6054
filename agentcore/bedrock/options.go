//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

package bedrock

import "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"

// Option configures the Bedrock invoker.
type Option func(*options)

type options struct {
	region string
	client *bedrockagentruntime.Client
}

// WithRegion sets the AWS region used when loading the default
// configuration. Ignored when a client is supplied via WithClient.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithClient supplies a preconfigured Bedrock agent runtime client,
// bypassing default AWS configuration loading.
func WithClient(client *bedrockagentruntime.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}
