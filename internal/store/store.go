// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/config"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store/local"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store/s3"
)

// Store is a source of the dataset file. Fetch materializes the dataset on
// local disk and returns its path; implementations decide how much of that
// is cache and how much is download.
type Store interface {
	// Fetch returns the local path of the current dataset, downloading when
	// the cached copy is stale or force is set.
	Fetch(ctx context.Context, force bool) (string, error)
	// FetchVersion returns the local path of the dataset version matching
	// spec (empty spec means the current version).
	FetchVersion(ctx context.Context, spec string) (string, error)
	// Versions lists the known dataset versions, newest first.
	Versions(ctx context.Context) ([]Version, error)
	String() string
}

// Version describes one stored revision of the dataset.
type Version = s3.Version

// NewStore figures out where the dataset lives and returns the matching
// Store. An explicit --file flag or a dataset.path config entry selects the
// local store; otherwise the S3 store is built from the deployment secrets
// (S3_BUCKET_NAME, S3_FILE_KEY, AWS_REGION) with config fallbacks.
func NewStore(ctx context.Context, cmd *cli.Command) (Store, error) {
	path := cmd.String("file")
	if path == "" {
		path, _ = config.GetString("dataset.path", "")
	}
	if path != "" {
		return local.NewStoreLocal(path), nil
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		bucket, _ = config.GetString("s3.bucket", "")
	}
	key := os.Getenv("S3_FILE_KEY")
	if key == "" {
		key, _ = config.GetString("s3.key", "")
	}
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("no dataset source configured: set S3_BUCKET_NAME/S3_FILE_KEY, s3.bucket/s3.key, or --file")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region, _ = config.GetString("s3.region", "ap-southeast-1")
	}
	profile, _ := config.GetString("s3.profile", "")

	be := s3.NewStoreS3(ctx, cmd,
		s3.WithBucket(bucket),
		s3.WithKey(key),
		s3.WithRegion(region),
		s3.WithProfile(profile),
	)
	log.Debugf("store: %s", be)

	return be, nil
}

// FreshnessOf is a convenience for the sync command: it returns the age of
// the local copy at path, or zero if it does not exist.
func FreshnessOf(path string) time.Duration {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return time.Since(info.ModTime())
}
