// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
)

// TqCommandAction is the action handler for the "tq" subcommand. It lists one
// summary row per ticker in the dataset, supports --tldr/--schema short-
// circuits, and emits results per common flags.
func TqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "tq") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(market.Summary{})) {
		return nil
	}

	attrs := BuildAttrs(cmd, "ticker", "bars", "first", "last", "low", "high", "close", "volume")
	log.Debugf("attrs: %v", attrs)

	ds, err := LoadDataset(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("dataset: %d bars, %d tickers", ds.Len(), len(ds.Tickers()))

	if err := EmitRows(ds.Summaries(), attrs, cmd); err != nil {
		return err
	}

	return nil
}

// TqCommandBuilder constructs the cli.Command for "tq", wiring metadata,
// flags, and action/validator handlers.
func TqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tq",
		Usage:     "ticker query",
		UsageText: `stockctl tq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewFileFlag("tq", meta.Config.Source),
			NewSvFlag(),
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags("tq")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := TqCommandValidator(ctx, c); err != nil {
				return err
			}
			return TqCommandAction(ctx, c)
		},
	}
}

// TqCommandValidator performs validation for "tq" and delegates to
// GlobalFlagsValidator.
func TqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
