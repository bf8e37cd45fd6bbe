// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"fmt"
	"strconv"
	"strings"
)

// Find resolves a version spec against the version list (newest first).
// A spec can be -
//
//	empty / ~0  - the current version.
//	~N          - the version N back from current.
//	id          - a version-id prefix; the newest match wins.
func Find(versions []Version, spec string) (Version, error) {
	if len(versions) == 0 {
		return Version{}, fmt.Errorf("no versions available")
	}

	if spec == "" {
		return versions[0], nil
	}

	if strings.HasPrefix(spec, "~") {
		index, err := strconv.Atoi(spec[1:])
		if err != nil || index < 0 {
			return Version{}, fmt.Errorf("invalid version spec %q", spec)
		}
		if index > len(versions)-1 {
			return Version{}, fmt.Errorf("index %d out of range for versions of length %d", index, len(versions))
		}
		return versions[index], nil
	}

	// It's an ID, go find it. This is a starts-with search: a full ID behaves
	// like equals, a partial ID returns the first (ie. newest) match.
	for _, v := range versions {
		if strings.HasPrefix(v.ID, spec) {
			return v, nil
		}
	}

	return Version{}, fmt.Errorf("no version matching %q", spec)
}
