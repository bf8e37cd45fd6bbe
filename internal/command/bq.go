// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
)

// BqCommandAction is the action handler for the "bq" subcommand. It lists
// OHLCV bars, optionally restricted to a ticker and an inclusive date range.
func BqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "bq") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(market.Bar{})) {
		return nil
	}

	attrs := BuildAttrs(cmd, "ticker", "date", "open", "high", "low", "close", "volume")
	log.Debugf("attrs: %v", attrs)

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

	ticker := cmd.String("ticker")
	if ticker != "" && !ds.HasTicker(ticker) {
		return fmt.Errorf("unknown ticker %q; run stockctl tq for the list", ticker)
	}

	bars := ds.Select(ticker, from, to)
	log.Debugf("selected %d of %d bars", len(bars), ds.Len())

	// --limit is applied by the output pipeline after --sort.
	if err := EmitRows(bars, attrs, cmd); err != nil {
		return err
	}

	return nil
}

// BqCommandBuilder constructs the cli.Command for "bq", wiring metadata,
// flags, and action/validator handlers.
func BqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "bq",
		Usage:     "bar query",
		UsageText: `stockctl bq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit bars returned",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("bq.limit", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("limit", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 99999,
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
			NewFileFlag("bq", meta.Config.Source),
			NewSvFlag(),
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags("bq")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := BqCommandValidator(ctx, c); err != nil {
				return err
			}
			return BqCommandAction(ctx, c)
		},
	}
}

// BqCommandValidator performs validation for "bq" and delegates to
// GlobalFlagsValidator.
func BqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
