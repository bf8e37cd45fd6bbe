// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	awsx "github.com/phuongdvk47ds/sample.dashboard/internal/aws"
	"github.com/phuongdvk47ds/sample.dashboard/internal/cache"
	"github.com/phuongdvk47ds/sample.dashboard/internal/config"
)

// Version describes one stored revision of the dataset object.
type Version struct {
	ID           string
	LastModified time.Time
	Size         int64
	ETag         string
	Latest       bool
}

// StoreS3 serves the dataset from an S3 object, keeping an ETag-validated
// copy in the local cache.
type StoreS3 struct {
	Ctx     context.Context
	Cmd     *cli.Command
	Bucket  string
	Key     string
	Region  string
	Profile string

	client *s3v2.Client
}

type Option func(*StoreS3)

func WithBucket(bucket string) Option {
	return func(be *StoreS3) { be.Bucket = bucket }
}

func WithKey(key string) Option {
	return func(be *StoreS3) { be.Key = key }
}

func WithRegion(region string) Option {
	return func(be *StoreS3) { be.Region = region }
}

func WithProfile(profile string) Option {
	return func(be *StoreS3) { be.Profile = profile }
}

func NewStoreS3(ctx context.Context, cmd *cli.Command, opts ...Option) *StoreS3 {
	be := &StoreS3{Ctx: ctx, Cmd: cmd}
	for _, opt := range opts {
		opt(be)
	}
	return be
}

// Fetch returns the local path of the current dataset. A cached copy whose
// sidecar metadata still matches HeadObject is used without downloading.
func (be *StoreS3) Fetch(ctx context.Context, force bool) (string, error) {
	if err := be.purge(); err != nil {
		log.Warnf("failed to purge cache: %v", err)
	}

	path, exists := cache.EntryPath([]string{be.Bucket}, be.Key)

	if !force && exists && cache.Enabled() {
		if !be.changed(ctx, path) {
			log.Debugf("using cached dataset for s3://%s/%s", be.Bucket, be.Key)
			return path, nil
		}
	}

	log.Debugf("downloading dataset from s3://%s/%s", be.Bucket, be.Key)
	return be.download(ctx, "")
}

// FetchVersion returns the local path of the dataset version matching spec.
// Versioned objects are immutable, so a cached copy never needs
// revalidation.
func (be *StoreS3) FetchVersion(ctx context.Context, spec string) (string, error) {
	if spec == "" || spec == "~0" {
		return be.Fetch(ctx, false)
	}

	versions, err := be.Versions(ctx)
	if err != nil {
		return "", err
	}
	version, err := Find(versions, spec)
	if err != nil {
		return "", err
	}

	if entry, ok := cache.Read([]string{be.Bucket}, be.Key+"@"+version.ID); ok {
		log.Debugf("using cached dataset version %s", version.ID)
		return entry.Path, nil
	}

	return be.download(ctx, version.ID)
}

// Versions lists the object versions of the dataset key, newest first.
// Delete markers mask everything older than the most recent one, the same
// way a deleted-and-reuploaded object reads through the S3 API.
func (be *StoreS3) Versions(ctx context.Context) ([]Version, error) {
	svc, err := be.s3(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := svc.ListObjectVersions(ctx, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(be.Bucket),
		Prefix: awsv2.String(be.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list object versions: %w", err)
	}

	var mostRecentDelete time.Time
	for _, d := range raw.DeleteMarkers {
		// The prefix is literally a prefix, so siblings of the dataset key can
		// come back too. Only exact matches count.
		if awsv2.ToString(d.Key) != be.Key {
			log.Debugf("throwing away delete marker %s", awsv2.ToString(d.Key))
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	var versions []Version
	for _, v := range raw.Versions {
		if awsv2.ToString(v.Key) != be.Key {
			log.Debugf("throwing away %s", awsv2.ToString(v.Key))
			continue
		}
		if v.LastModified != nil && v.LastModified.Before(mostRecentDelete) {
			continue
		}

		versions = append(versions, Version{
			ID:           awsv2.ToString(v.VersionId),
			LastModified: awsv2.ToTime(v.LastModified),
			Size:         awsv2.ToInt64(v.Size),
			ETag:         trimETag(awsv2.ToString(v.ETag)),
			Latest:       awsv2.ToBool(v.IsLatest),
		})
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].LastModified.After(versions[j].LastModified)
	})

	if be.Cmd != nil {
		limit := int(be.Cmd.Int("limit"))
		if limit > 0 && len(versions) > limit {
			versions = versions[:limit]
		}
	}

	return versions, nil
}

// Head returns the sidecar-comparable metadata of the current S3 object.
func (be *StoreS3) Head(ctx context.Context) (cache.Meta, error) {
	svc, err := be.s3(ctx)
	if err != nil {
		return cache.Meta{}, err
	}

	resp, err := svc.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(be.Bucket),
		Key:    awsv2.String(be.Key),
	})
	if err != nil {
		return cache.Meta{}, fmt.Errorf("failed to head s3://%s/%s: %w", be.Bucket, be.Key, err)
	}

	return cache.Meta{
		ETag:         trimETag(awsv2.ToString(resp.ETag)),
		Size:         awsv2.ToInt64(resp.ContentLength),
		LastModified: awsv2.ToTime(resp.LastModified).Unix(),
	}, nil
}

// Changed reports whether the S3 object differs from the local cached copy.
func (be *StoreS3) Changed(ctx context.Context) (bool, error) {
	path, exists := cache.EntryPath([]string{be.Bucket}, be.Key)
	if !exists {
		return true, nil
	}
	local, ok := cache.ReadMeta(path)
	if !ok {
		return true, nil
	}
	remote, err := be.Head(ctx)
	if err != nil {
		return true, err
	}
	return !local.Matches(remote), nil
}

func (be *StoreS3) String() string {
	return fmt.Sprintf("s3://%s/%s", be.Bucket, be.Key)
}

// changed is the best-effort variant used on the Fetch path: a failed
// HeadObject reads as changed so the download surfaces the real error.
func (be *StoreS3) changed(ctx context.Context, path string) bool {
	local, ok := cache.ReadMeta(path)
	if !ok {
		return true
	}
	remote, err := be.Head(ctx)
	if err != nil {
		log.Warnf("failed to get remote metadata: %v", err)
		return true
	}
	return !local.Matches(remote)
}

// download gets the object (optionally a specific version), writes it into
// the cache, and records the sidecar metadata.
func (be *StoreS3) download(ctx context.Context, versionID string) (string, error) {
	svc, err := be.s3(ctx)
	if err != nil {
		return "", err
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(be.Bucket),
		Key:    awsv2.String(be.Key),
	}
	if versionID != "" {
		input.VersionId = awsv2.String(versionID)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read S3 object body: %w", err)
	}

	clearKey := be.Key
	if versionID != "" {
		clearKey += "@" + versionID
	}

	path, err := cache.Write([]string{be.Bucket}, clearKey, data)
	if err != nil {
		return "", err
	}
	if path == "" {
		// Cache disabled; park the download in a temp file instead.
		path, err = writeTemp(data)
		if err != nil {
			return "", err
		}
		return path, nil
	}

	meta := cache.Meta{
		ETag:         trimETag(awsv2.ToString(result.ETag)),
		Size:         int64(len(data)),
		LastModified: awsv2.ToTime(result.LastModified).Unix(),
	}
	if err := cache.WriteMeta(path, meta); err != nil {
		log.Warnf("failed to write cache metadata: %v", err)
	}

	return path, nil
}

func (be *StoreS3) s3(ctx context.Context) (*s3v2.Client, error) {
	if be.client != nil {
		return be.client, nil
	}

	var opts []awsx.Option
	if be.Region != "" {
		opts = append(opts, awsx.WithRegion(be.Region))
	}
	if be.Profile != "" {
		opts = append(opts, awsx.WithProfile(be.Profile))
	}
	if attempts, _ := config.GetInt("s3.retries", 0); attempts > 0 {
		opts = append(opts, awsx.WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = attempts
			})
		}))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3opts []func(*s3v2.Options)
	if endpoint, _ := config.GetString("s3.endpoint", ""); endpoint != "" {
		s3opts = append(s3opts, awsx.WithS3BaseEndpoint(endpoint))
	}

	be.client = awsx.NewS3(cfg, s3opts...)
	return be.client, nil
}

func (be *StoreS3) purge() error {
	hours, _ := config.GetInt("cache.clean", 0)
	return cache.Purge(hours)
}

// writeTemp parks a download outside the cache tree.
func writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp("", "stockctl-*.parquet")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Name(), nil
}

// trimETag strips the quotes the S3 API wraps around ETag values.
func trimETag(etag string) string {
	if len(etag) >= 2 && etag[0] == '"' && etag[len(etag)-1] == '"' {
		return etag[1 : len(etag)-1]
	}
	return etag
}
