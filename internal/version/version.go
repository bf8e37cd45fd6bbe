// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package version

// Version is stamped at build time via -ldflags.
var Version = "dev"
