// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuongdvk47ds/sample.dashboard/internal/store/s3"
)

// StoreLocal serves the dataset straight from a file on disk. There is
// nothing to cache and only one version to speak of.
type StoreLocal struct {
	Path string
}

func NewStoreLocal(path string) *StoreLocal {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return &StoreLocal{Path: path}
}

func (be *StoreLocal) Fetch(ctx context.Context, force bool) (string, error) {
	if _, err := os.Stat(be.Path); err != nil {
		return "", fmt.Errorf("dataset file not found: %s", be.Path)
	}
	return be.Path, nil
}

func (be *StoreLocal) FetchVersion(ctx context.Context, spec string) (string, error) {
	if spec != "" && spec != "~0" {
		return "", fmt.Errorf("local dataset has no versions to match %q", spec)
	}
	return be.Fetch(ctx, false)
}

// Versions returns a single pseudo-version built from the file stat, so
// version-aware callers work unchanged against a local file.
func (be *StoreLocal) Versions(ctx context.Context) ([]s3.Version, error) {
	info, err := os.Stat(be.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset file not found: %s", be.Path)
	}
	return []s3.Version{{
		ID:           be.Path,
		LastModified: info.ModTime(),
		Size:         info.Size(),
		Latest:       true,
	}}, nil
}

func (be *StoreLocal) String() string {
	return be.Path
}
