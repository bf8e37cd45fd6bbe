// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for stockctl. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
