// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/chart"
	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store"
	"github.com/phuongdvk47ds/sample.dashboard/internal/tui"
)

// UiCommandAction is the action handler for the "ui" subcommand. It opens the
// interactive dashboard over the dataset.
func UiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "ui") {
		return nil
	}

	st, err := store.NewStore(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("store: %s", st)

	path, err := st.Fetch(ctx, false)
	if err != nil {
		return err
	}
	ds, err := market.Load(path)
	if err != nil {
		return err
	}

	refresh := func(rctx context.Context) (*market.Dataset, error) {
		p, err := st.Fetch(rctx, true)
		if err != nil {
			return nil, err
		}
		return market.Load(p)
	}

	opts := chart.Options{
		Color:  cmd.Bool("color"),
		Volume: cmd.Bool("volume"),
	}

	return tui.Run(ds, refresh, opts)
}

// UiCommandBuilder constructs the cli.Command for "ui", wiring metadata,
// flags, and action/validator handlers.
func UiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ui",
		Usage:     "interactive dashboard",
		UsageText: `stockctl ui [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color candles by direction",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("ui.color", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("color", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "volume",
				Usage: "add a volume lane under charts",
			},
			NewFileFlag("ui", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := UiCommandValidator(ctx, c); err != nil {
				return err
			}
			return UiCommandAction(ctx, c)
		},
	}
}

// UiCommandValidator performs validation for "ui" and delegates to
// GlobalFlagsValidator.
func UiCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
