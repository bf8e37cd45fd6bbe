// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store"
)

// SyncCommandAction is the action handler for the "sync" subcommand. It
// refreshes the local dataset copy, or with --check only reports whether the
// remote object has changed.
func SyncCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "sync") {
		return nil
	}

	st, err := store.NewStore(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("store: %s", st)

	if cmd.Bool("check") {
		checker, ok := st.(interface {
			Changed(context.Context) (bool, error)
		})
		if !ok {
			fmt.Printf("%s is local, nothing to check\n", st)
			return nil
		}

		changed, err := checker.Changed(ctx)
		if err != nil {
			return err
		}
		if changed {
			fmt.Printf("%s has changed, run stockctl sync to refresh\n", st)
		} else {
			fmt.Printf("%s is up to date\n", st)
		}
		return nil
	}

	path, err := st.Fetch(ctx, cmd.Bool("force"))
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat synced dataset: %w", err)
	}

	fmt.Printf("%s -> %s (%s, synced %s ago)\n",
		st, path,
		humanize.Bytes(uint64(info.Size())),
		store.FreshnessOf(path).Round(time.Second))

	return nil
}

// SyncCommandBuilder constructs the cli.Command for "sync", wiring metadata,
// flags, and action/validator handlers.
func SyncCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "refresh the local dataset copy",
		UsageText: `stockctl sync [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "download even when the cached copy is current",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "report whether the remote dataset has changed, without downloading",
			},
			NewFileFlag("sync", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := SyncCommandValidator(ctx, c); err != nil {
				return err
			}
			return SyncCommandAction(ctx, c)
		},
	}
}

// SyncCommandValidator performs validation for "sync" and delegates to
// GlobalFlagsValidator.
func SyncCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
