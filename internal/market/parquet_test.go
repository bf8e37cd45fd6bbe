// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestParquet(t *testing.T, rows []rawBar) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.parquet")
	require.NoError(t, parquet.WriteFile(path, rows))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestParquet(t, []rawBar{
		{Ticker: "VNM", Day: 20250103, Open: 66, High: 67, Low: 65.5, Close: 66.5, Volume: 1200},
		{Ticker: "FPT", Day: 20250102, Open: 120, High: 122, Low: 119, Close: 121, Volume: 3000},
		{Ticker: "VNM", Day: 20250102, Open: 65, High: 66.2, Low: 64.8, Close: 66, Volume: 1000},
	})

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"FPT", "VNM"}, ds.Tickers())

	bars := ds.Select("VNM", time.Time{}, time.Time{})
	require.Len(t, bars, 2)
	assert.Equal(t, "2025-01-02", bars[0].Date.Format(DateLayout))
	assert.Equal(t, 66.0, bars[0].Close)
	assert.Equal(t, int64(1200), bars[1].Volume)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.parquet"))
	assert.Error(t, err)
}

func TestLoad_WrongSchema(t *testing.T) {
	type notBars struct {
		Name  string `parquet:"name"`
		Count int64  `parquet:"count"`
	}
	path := filepath.Join(t.TempDir(), "other.parquet")
	require.NoError(t, parquet.WriteFile(path, []notBars{{Name: "x", Count: 1}}))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "<Ticker>")
}

func TestLoad_BadDay(t *testing.T) {
	path := writeTestParquet(t, []rawBar{
		{Ticker: "VNM", Day: 20259999, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
	})

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trading day")
}
