// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/parquet-go/parquet-go"
)

// rawBar mirrors the column layout of the upstream dataset. The angle
// brackets are literal; the exporter writes them into the column names.
type rawBar struct {
	Ticker string  `parquet:"<Ticker>"`
	Day    int64   `parquet:"<DTYYYYMMDD>"`
	Open   float64 `parquet:"<Open>"`
	High   float64 `parquet:"<High>"`
	Low    float64 `parquet:"<Low>"`
	Close  float64 `parquet:"<Close>"`
	Volume int64   `parquet:"<Volume>"`
}

// requiredColumns are the columns a dataset file must carry to be usable.
var requiredColumns = []string{
	"<Ticker>", "<DTYYYYMMDD>", "<Open>", "<High>", "<Low>", "<Close>", "<Volume>",
}

// Load reads the parquet dataset at path, validates its schema, and returns
// the normalized Dataset.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet footer: %w", err)
	}

	if err := checkSchema(pf); err != nil {
		return nil, err
	}

	raws, err := parquet.Read[rawBar](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to decode parquet rows: %w", err)
	}
	log.Debugf("decoded %d rows from %s", len(raws), path)

	bars := make([]Bar, 0, len(raws))
	for _, r := range raws {
		day, err := ParseDay(r.Day)
		if err != nil {
			return nil, err
		}
		bars = append(bars, Bar{
			Ticker: r.Ticker,
			Date:   day,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}

	return NewDataset(bars), nil
}

// checkSchema verifies that every required column is present.
func checkSchema(pf *parquet.File) error {
	present := make(map[string]bool)
	for _, field := range pf.Schema().Fields() {
		present[field.Name()] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("parquet file missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
