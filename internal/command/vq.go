// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store"
)

// versionRow is the emitted shape of one dataset version.
type versionRow struct {
	ID           string `json:"id"`
	LastModified string `json:"last_modified"`
	Age          string `json:"age"`
	Size         int64  `json:"size"`
	ETag         string `json:"etag"`
	Latest       bool   `json:"latest"`
}

// VqCommandAction is the action handler for the "vq" subcommand. It lists
// the stored versions of the dataset object, newest first.
func VqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "vq") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(versionRow{})) {
		return nil
	}

	attrs := BuildAttrs(cmd, "id", "last_modified", "age", "size", "latest")
	log.Debugf("attrs: %v", attrs)

	st, err := store.NewStore(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("store: %s", st)

	versions, err := st.Versions(ctx)
	if err != nil {
		return err
	}
	log.Debugf("versions: %d", len(versions))

	rows := make([]versionRow, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, versionRow{
			ID:           v.ID,
			LastModified: v.LastModified.Format(time.RFC3339),
			Age:          humanize.Time(v.LastModified),
			Size:         v.Size,
			ETag:         v.ETag,
			Latest:       v.Latest,
		})
	}

	if err := EmitRows(rows, attrs, cmd); err != nil {
		return err
	}

	return nil
}

// VqCommandBuilder constructs the cli.Command for "vq", wiring metadata,
// flags, and action/validator handlers.
func VqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "vq",
		Usage:     "dataset version query",
		UsageText: `stockctl vq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit versions returned",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("vq.limit", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("limit", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 99999,
			},
			NewFileFlag("vq", meta.Config.Source),
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags("vq")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := VqCommandValidator(ctx, c); err != nil {
				return err
			}
			return VqCommandAction(ctx, c)
		},
	}
}

// VqCommandValidator performs validation for "vq" and delegates to
// GlobalFlagsValidator.
func VqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
