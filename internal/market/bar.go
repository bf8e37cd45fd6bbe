// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format for dates in encoded rows.
const DateLayout = "2006-01-02"

// Bar is a single OHLCV candle for one ticker on one trading day.
type Bar struct {
	Ticker string  `json:"ticker"`
	Date   Date    `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Summary aggregates all bars of one ticker.
type Summary struct {
	Ticker string  `json:"ticker"`
	Bars   int     `json:"bars"`
	First  Date    `json:"first"`
	Last   Date    `json:"last"`
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Date is a civil day that marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDay parses the dataset's numeric YYYYMMDD day encoding.
func ParseDay(yyyymmdd int64) (Date, error) {
	t, err := time.Parse("20060102", fmt.Sprintf("%08d", yyyymmdd))
	if err != nil {
		return Date{}, fmt.Errorf("invalid trading day %d: %w", yyyymmdd, err)
	}
	return Date{t}, nil
}

// Dataset is the full collection of bars, sorted by (ticker, date).
type Dataset struct {
	bars []Bar
}

// NewDataset normalizes the bars into a Dataset. The input is sorted by
// ticker and then date, matching the order every consumer expects.
func NewDataset(bars []Bar) *Dataset {
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Ticker != bars[j].Ticker {
			return bars[i].Ticker < bars[j].Ticker
		}
		return bars[i].Date.Before(bars[j].Date.Time)
	})
	return &Dataset{bars: bars}
}

// Len returns the total number of bars.
func (ds *Dataset) Len() int {
	return len(ds.bars)
}

// Tickers returns the distinct tickers in the dataset, sorted.
func (ds *Dataset) Tickers() []string {
	var tickers []string
	for _, b := range ds.bars {
		if len(tickers) == 0 || tickers[len(tickers)-1] != b.Ticker {
			tickers = append(tickers, b.Ticker)
		}
	}
	return tickers
}

// HasTicker reports whether the dataset contains any bars for ticker.
func (ds *Dataset) HasTicker(ticker string) bool {
	for _, b := range ds.bars {
		if b.Ticker == ticker {
			return true
		}
	}
	return false
}

// Select returns the bars matching the ticker and inclusive date range. An
// empty ticker matches all tickers; zero bounds leave that side open.
func (ds *Dataset) Select(ticker string, from, to time.Time) []Bar {
	var result []Bar
	for _, b := range ds.bars {
		if ticker != "" && b.Ticker != ticker {
			continue
		}
		if !from.IsZero() && b.Date.Before(from) {
			continue
		}
		if !to.IsZero() && b.Date.After(to) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// Summaries returns one Summary per ticker, in ticker order.
func (ds *Dataset) Summaries() []Summary {
	var result []Summary
	for _, b := range ds.bars {
		if len(result) == 0 || result[len(result)-1].Ticker != b.Ticker {
			result = append(result, Summary{
				Ticker: b.Ticker,
				First:  b.Date,
				Low:    b.Low,
				High:   b.High,
			})
		}
		s := &result[len(result)-1]
		s.Bars++
		s.Last = b.Date
		if b.Low < s.Low {
			s.Low = b.Low
		}
		if b.High > s.High {
			s.High = b.High
		}
		s.Close = b.Close
		s.Volume += b.Volume
	}
	return result
}

// EncodeRows marshals any row slice into the JSON buffer consumed by the
// output pipeline.
func EncodeRows(rows any) (bytes.Buffer, error) {
	var raw bytes.Buffer
	data, err := json.Marshal(rows)
	if err != nil {
		return raw, fmt.Errorf("failed to marshal rows: %w", err)
	}
	raw.Write(data)
	return raw, nil
}
