// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAWSConfig_Region(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-1"))
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-1", cfg.Region)
}

func TestLoadAWSConfig_Retryer(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(),
		WithRegion("ap-southeast-1"),
		WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = 7
			})
		}))
	require.NoError(t, err)
	require.NotNil(t, cfg.Retryer)
	assert.Equal(t, 7, cfg.Retryer().MaxAttempts())
}

func TestLoadAWSConfig_StaticCreds(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-1"))
	require.NoError(t, err)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
}

func TestWithS3BaseEndpoint(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-1"))
	require.NoError(t, err)

	client := NewS3(cfg, WithS3BaseEndpoint("http://localhost:9000"))
	opts := client.Options()
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
}
