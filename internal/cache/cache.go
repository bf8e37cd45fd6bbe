// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Meta is the sidecar metadata stored next to a cached dataset. It carries
// the remote object's identity so a cached copy can be revalidated without
// downloading.
type Meta struct {
	ETag         string `json:"etag"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"last_modified"`
}

// Matches reports whether the cached copy described by m is still the same
// object as the remote one. ETag and size are compared; the modification
// time is informational only.
func (m Meta) Matches(remote Meta) bool {
	return m.ETag == remote.ETag && m.Size == remote.Size
}

// Dir resolves the base cache directory.
// Precedence:
//  1. LOCAL_CACHE_DIR, if set and non-empty (the deployment secret)
//  2. STOCKCTL_CACHE_DIR, if set and non-empty
//  3. os.UserCacheDir()/stockctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("LOCAL_CACHE_DIR"); ok && c != "" {
		return expandHome(c), true
	}
	if c, ok := os.LookupEnv("STOCKCTL_CACHE_DIR"); ok && c != "" {
		return expandHome(c), true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "stockctl"), true
	}
	return "", false
}

// Enabled returns true unless STOCKCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("STOCKCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns the absolute path where a cache entry would live given
// subdirectory components and the clear-text key. It also returns true if a
// file currently exists at that path.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	encoded := encodeKey(clearKey)
	p := filepath.Join(append([]string{base}, append(subdirs, encoded)...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, _ error) error {
		if info == nil {
			return nil
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read attempts to read a cached entry.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	b = bytes.TrimSpace(b)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
	}, true
}

// Write stores data for the given key beneath subdirs. Creates directories as needed.
func Write(subdirs []string, clearKey string, data []byte) (string, error) {
	if !Enabled() {
		return "", nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return "", nil // treat as disabled.
	}
	encoded := encodeKey(clearKey)
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encoded)
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		// Don't leave a partial entry behind to be mistaken for a dataset.
		_ = os.Remove(p)
		return "", fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cached %s (%s)", p, humanize.Bytes(uint64(len(data))))
	return p, nil
}

// WriteMeta stores the sidecar metadata for the cached file at path.
func WriteMeta(path string, m Meta) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal cache metadata: %w", err)
	}
	if err := os.WriteFile(path+".meta", data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write cache metadata: %w", err)
	}
	return nil
}

// ReadMeta loads the sidecar metadata for the cached file at path.
func ReadMeta(path string) (Meta, bool) {
	data, err := os.ReadFile(path + ".meta")
	if err != nil {
		return Meta{}, false
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, false
	}
	return m, true
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}

// expandHome expands a leading ~ the way the shell would.
func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
	}
	return p
}
