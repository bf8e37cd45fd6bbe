// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func day(t *testing.T, yyyymmdd int64) Date {
	t.Helper()
	d, err := ParseDay(yyyymmdd)
	require.NoError(t, err)
	return d
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	return NewDataset([]Bar{
		{Ticker: "VNM", Date: day(t, 20250103), Open: 66, High: 67, Low: 65.5, Close: 66.5, Volume: 1200},
		{Ticker: "FPT", Date: day(t, 20250102), Open: 120, High: 122, Low: 119, Close: 121, Volume: 3000},
		{Ticker: "VNM", Date: day(t, 20250102), Open: 65, High: 66.2, Low: 64.8, Close: 66, Volume: 1000},
		{Ticker: "FPT", Date: day(t, 20250103), Open: 121, High: 125, Low: 120.5, Close: 124, Volume: 4500},
		{Ticker: "VNM", Date: day(t, 20250106), Open: 66.5, High: 66.8, Low: 64, Close: 64.2, Volume: 900},
	})
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay(20250102)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", d.Format(DateLayout))

	_, err = ParseDay(20251345)
	assert.Error(t, err)

	_, err = ParseDay(0)
	assert.Error(t, err)
}

func TestNewDataset_SortsByTickerThenDate(t *testing.T) {
	ds := testDataset(t)

	bars := ds.Select("", time.Time{}, time.Time{})
	require.Len(t, bars, 5)

	assert.Equal(t, "FPT", bars[0].Ticker)
	assert.Equal(t, "2025-01-02", bars[0].Date.Format(DateLayout))
	assert.Equal(t, "FPT", bars[1].Ticker)
	assert.Equal(t, "2025-01-03", bars[1].Date.Format(DateLayout))
	assert.Equal(t, "VNM", bars[2].Ticker)
	assert.Equal(t, "2025-01-02", bars[2].Date.Format(DateLayout))
}

func TestDataset_Tickers(t *testing.T) {
	ds := testDataset(t)
	assert.Equal(t, []string{"FPT", "VNM"}, ds.Tickers())
	assert.True(t, ds.HasTicker("VNM"))
	assert.False(t, ds.HasTicker("SSI"))
}

func TestDataset_Select(t *testing.T) {
	ds := testDataset(t)

	from, err := time.Parse(DateLayout, "2025-01-03")
	require.NoError(t, err)

	tests := []struct {
		name   string
		ticker string
		from   time.Time
		to     time.Time
		want   int
	}{
		{name: "by ticker", ticker: "VNM", want: 3},
		{name: "by ticker and from", ticker: "VNM", from: from, want: 2},
		{name: "to bound inclusive", ticker: "", to: from, want: 4},
		{name: "unknown ticker", ticker: "SSI", want: 0},
		{name: "everything", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.Select(tt.ticker, tt.from, tt.to)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDataset_Summaries(t *testing.T) {
	ds := testDataset(t)

	summaries := ds.Summaries()
	require.Len(t, summaries, 2)

	fpt := summaries[0]
	assert.Equal(t, "FPT", fpt.Ticker)
	assert.Equal(t, 2, fpt.Bars)
	assert.Equal(t, "2025-01-02", fpt.First.Format(DateLayout))
	assert.Equal(t, "2025-01-03", fpt.Last.Format(DateLayout))
	assert.Equal(t, 119.0, fpt.Low)
	assert.Equal(t, 125.0, fpt.High)
	assert.Equal(t, 124.0, fpt.Close)
	assert.Equal(t, int64(7500), fpt.Volume)

	vnm := summaries[1]
	assert.Equal(t, "VNM", vnm.Ticker)
	assert.Equal(t, 3, vnm.Bars)
	assert.Equal(t, 64.0, vnm.Low)
	assert.Equal(t, 64.2, vnm.Close)
	assert.Equal(t, int64(3100), vnm.Volume)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := day(t, 20250102)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"02/01/2025"`), &got))
}

func TestEncodeRows(t *testing.T) {
	ds := testDataset(t)

	raw, err := EncodeRows(ds.Summaries())
	require.NoError(t, err)

	parsed := gjson.Parse(raw.String())
	require.True(t, parsed.IsArray())
	assert.Equal(t, "FPT", parsed.Get("0.ticker").String())
	assert.Equal(t, int64(7500), parsed.Get("0.volume").Int())
	assert.Equal(t, "2025-01-06", parsed.Get("1.last").String())
}
