// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the provided spec. The spec
// is a comma-separated list of output keys, each optionally prefixed with -
// for descending order and/or ! for a case-sensitive string comparison.
// String comparisons are case-insensitive by default. An empty spec leaves
// the dataset untouched.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	keys := strings.Split(spec, ",")

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, key := range keys {
			key = strings.TrimSpace(key)

			descending := strings.HasPrefix(key, "-")
			key = strings.TrimPrefix(key, "-")

			caseSensitive := strings.HasPrefix(key, "!")
			key = strings.TrimPrefix(key, "!")

			cmp := compareValues(dataset[i][key], dataset[j][key], caseSensitive)
			if cmp == 0 {
				// Tie on this key, let the next one break it.
				continue
			}
			if descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues compares two row values. Numbers compare numerically,
// everything else falls back to a string comparison of the rendered value.
func compareValues(a, b interface{}, caseSensitive bool) int {
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
