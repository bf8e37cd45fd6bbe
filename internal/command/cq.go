// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/chart"
	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
)

// CqCommandAction is the action handler for the "cq" subcommand. It renders a
// candlestick chart for the selected ticker, or one chart per ticker when no
// ticker is given.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cq") {
		return nil
	}

	from, err := ParseDateFlag(cmd, "from")
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := ParseDateFlag(cmd, "to")
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}

	ds, err := LoadDataset(ctx, cmd)
	if err != nil {
		return err
	}

	opts := chart.Options{
		Height: int(cmd.Int("height")),
		Width:  int(cmd.Int("width")),
		Color:  cmd.Bool("color"),
		Volume: cmd.Bool("volume"),
	}

	tickers := ds.Tickers()
	if ticker := cmd.String("ticker"); ticker != "" {
		if !ds.HasTicker(ticker) {
			return fmt.Errorf("unknown ticker %q; run stockctl tq for the list", ticker)
		}
		tickers = []string{ticker}
	}

	for i, ticker := range tickers {
		if i > 0 {
			fmt.Println()
		}

		bars := ds.Select(ticker, from, to)
		if len(bars) == 0 {
			fmt.Printf("%s: no data in range\n", ticker)
			continue
		}

		last := bars[len(bars)-1]
		fmt.Printf("%s  close %v  (%d sessions)\n", ticker, last.Close, len(bars))
		fmt.Print(chart.Render(bars, opts))
	}

	return nil
}

// CqCommandBuilder constructs the cli.Command for "cq", wiring metadata,
// flags, and action/validator handlers.
func CqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cq",
		Usage:     "candlestick chart query",
		UsageText: `stockctl cq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "height",
				Usage: "chart height in rows",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cq.height", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 16,
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "maximum candles per chart",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cq.width", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 60,
			},
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color candles by direction",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cq.color", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("color", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "volume",
				Usage: "add a volume lane under the chart",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "first trading day to include (YYYY-MM-DD)",
				Validator: func(value string) error {
					return FlagValidators(value, DateValidator)
				},
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "last trading day to include (YYYY-MM-DD)",
				Validator: func(value string) error {
					return FlagValidators(value, DateValidator)
				},
			},
			NewTickerFlag(),
			NewFileFlag("cq", meta.Config.Source),
			NewSvFlag(),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CqCommandValidator(ctx, c); err != nil {
				return err
			}
			return CqCommandAction(ctx, c)
		},
	}
}

// CqCommandValidator performs validation for "cq" and delegates to
// GlobalFlagsValidator.
func CqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
