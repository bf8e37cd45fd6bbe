// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVersions() []Version {
	now := time.Now()
	return []Version{
		{ID: "3z9xKj", LastModified: now, Latest: true},
		{ID: "2mPq7d", LastModified: now.Add(-24 * time.Hour)},
		{ID: "1aB4Tn", LastModified: now.Add(-48 * time.Hour)},
	}
}

func TestFind(t *testing.T) {
	versions := testVersions()

	tests := []struct {
		name    string
		spec    string
		wantID  string
		wantErr string
	}{
		{name: "empty spec is newest", spec: "", wantID: "3z9xKj"},
		{name: "relative zero", spec: "~0", wantID: "3z9xKj"},
		{name: "relative back one", spec: "~1", wantID: "2mPq7d"},
		{name: "relative back two", spec: "~2", wantID: "1aB4Tn"},
		{name: "relative out of range", spec: "~3", wantErr: "out of range"},
		{name: "full id", spec: "2mPq7d", wantID: "2mPq7d"},
		{name: "id prefix", spec: "1a", wantID: "1aB4Tn"},
		{name: "unknown id", spec: "zz", wantErr: "no version matching"},
		{name: "negative relative", spec: "~-1", wantErr: "invalid version spec"},
		{name: "garbage relative", spec: "~x", wantErr: "invalid version spec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(versions, tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestFind_Empty(t *testing.T) {
	_, err := Find(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no versions available")
}

func TestTrimETag(t *testing.T) {
	assert.Equal(t, "abc123", trimETag(`"abc123"`))
	assert.Equal(t, "abc123", trimETag("abc123"))
	assert.Equal(t, "76a4deff-2", trimETag(`"76a4deff-2"`))
	assert.Equal(t, "", trimETag(""))
}
