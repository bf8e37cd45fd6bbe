// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

// stockctl is the main package for the stockctl command line tool. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
package main
