// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"
	"reflect"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/attrs"
	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
	"github.com/phuongdvk47ds/sample.dashboard/internal/meta"
	"github.com/phuongdvk47ds/sample.dashboard/internal/output"
	"github.com/phuongdvk47ds/sample.dashboard/internal/store"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr stockctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "stockctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the row schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRows marshals a row slice as JSON and passes it to the common output
// routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command) error {
	raw, err := market.EncodeRows(rows)
	if err != nil {
		return err
	}
	output.SliceDiceSpit(raw, al, cmd, "", os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadDataset figures out the dataset source, materializes the requested
// version on disk (honoring the cache) and parses it.
func LoadDataset(ctx context.Context, cmd *cli.Command) (*market.Dataset, error) {
	st, err := store.NewStore(ctx, cmd)
	if err != nil {
		return nil, err
	}
	log.Debugf("store: %s", st)

	path, err := st.FetchVersion(ctx, cmd.String("sv"))
	if err != nil {
		return nil, err
	}
	log.Debugf("dataset path: %s", path)

	return market.Load(path)
}

// ParseDateFlag returns the named flag as a day. A missing flag value leaves
// that bound open.
func ParseDateFlag(cmd *cli.Command, name string) (time.Time, error) {
	s := cmd.String(name)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(market.DateLayout, s)
}
