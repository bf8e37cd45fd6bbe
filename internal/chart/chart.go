// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

// Package chart renders OHLCV bars as a terminal candlestick chart.
package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/phuongdvk47ds/sample.dashboard/internal/config"
	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
)

const (
	defaultHeight = 16
	defaultWidth  = 60

	bodyRune = '█'
	wickRune = '│'
	gapRune  = ' '
)

// Options controls the chart geometry and coloring.
type Options struct {
	// Height is the number of price rows. Zero means the default.
	Height int
	// Width is the maximum number of candles. Older bars are dropped when
	// the series is longer. Zero means the default.
	Width int
	// Color enables the up/down candle coloring.
	Color bool
	// Volume adds a volume lane under the price grid.
	Volume bool
}

// Render draws the bars as a candlestick chart and returns it as a string.
// Sessions that close at or above their open paint in the up color, the rest
// in the down color.
func Render(bars []market.Bar, opts Options) string {
	if len(bars) == 0 {
		return "no data\n"
	}

	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	// Keep the most recent candles when the series is too long.
	if len(bars) > width {
		bars = bars[len(bars)-width:]
	}

	low, high := priceRange(bars)

	// A flat series still needs a non-zero span to scale against.
	span := high - low
	if span == 0 {
		span = 1
	}

	level := func(price float64) int {
		l := int((price - low) / span * float64(height-1))
		if l < 0 {
			l = 0
		}
		if l > height-1 {
			l = height - 1
		}
		return l
	}

	// grid[row][col], row 0 is the cheapest price.
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = make([]rune, len(bars))
		for c := range grid[r] {
			grid[r][c] = gapRune
		}
	}

	up := make([]bool, len(bars))
	for c, bar := range bars {
		up[c] = bar.Close >= bar.Open

		for r := level(bar.Low); r <= level(bar.High); r++ {
			grid[r][c] = wickRune
		}

		bodyLow, bodyHigh := bar.Open, bar.Close
		if bodyLow > bodyHigh {
			bodyLow, bodyHigh = bodyHigh, bodyLow
		}
		for r := level(bodyLow); r <= level(bodyHigh); r++ {
			grid[r][c] = bodyRune
		}
	}

	upStyle, downStyle := styles(opts.Color)

	var b strings.Builder

	labelWidth := 0
	labels := axisLabels(low, high, height)
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	// Emit top row first so the expensive prices sit on top.
	for r := height - 1; r >= 0; r-- {
		fmt.Fprintf(&b, "%*s ", labelWidth, labels[r])
		for c := range bars {
			cell := string(grid[r][c])
			if grid[r][c] != gapRune {
				if up[c] {
					cell = upStyle.Render(cell)
				} else {
					cell = downStyle.Render(cell)
				}
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	if opts.Volume {
		b.WriteString(volumeLane(bars, up, upStyle, downStyle, labelWidth))
	}

	b.WriteString(axisFooter(bars, labelWidth))

	return b.String()
}

// RenderTicker is the convenience used by the cq command: it selects the
// ticker's bars from the dataset and titles the chart.
func RenderTicker(ds *market.Dataset, ticker string, opts Options) string {
	bars := ds.Select(ticker, time.Time{}, time.Time{})
	if len(bars) == 0 {
		return fmt.Sprintf("%s: no data\n", ticker)
	}

	last := bars[len(bars)-1]
	title := fmt.Sprintf("%s  close %s  (%d sessions)\n",
		ticker, trimFloat(last.Close), len(bars))

	return title + Render(bars, opts)
}

// priceRange returns the lowest low and highest high across the bars.
func priceRange(bars []market.Bar) (low float64, high float64) {
	low, high = bars[0].Low, bars[0].High
	for _, bar := range bars[1:] {
		if bar.Low < low {
			low = bar.Low
		}
		if bar.High > high {
			high = bar.High
		}
	}
	return low, high
}

// axisLabels builds one price label per row. Only the bottom, middle and top
// rows get a label so the axis stays quiet.
func axisLabels(low, high float64, height int) []string {
	labels := make([]string, height)
	labels[0] = trimFloat(low)
	labels[height-1] = trimFloat(high)
	labels[height/2] = trimFloat(low + (high-low)/2)
	return labels
}

// axisFooter renders the date range under the grid.
func axisFooter(bars []market.Bar, labelWidth int) string {
	first := bars[0].Date.Format(market.DateLayout)
	last := bars[len(bars)-1].Date.Format(market.DateLayout)

	if len(bars) == 1 {
		return fmt.Sprintf("%*s %s\n", labelWidth, "", first)
	}

	gap := len(bars) - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return fmt.Sprintf("%*s %s%s%s\n", labelWidth, "", first, strings.Repeat(" ", gap), last)
}

// volumeLane renders a single-row lane scaled against the busiest session.
func volumeLane(bars []market.Bar, up []bool, upStyle, downStyle lipgloss.Style, labelWidth int) string {
	shades := []rune(" ▁▂▃▄▅▆▇█")

	var max int64
	for _, bar := range bars {
		if bar.Volume > max {
			max = bar.Volume
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s ", labelWidth, "vol")
	for c, bar := range bars {
		idx := int(bar.Volume * int64(len(shades)-1) / max)
		cell := string(shades[idx])
		if cell != " " {
			if up[c] {
				cell = upStyle.Render(cell)
			} else {
				cell = downStyle.Render(cell)
			}
		}
		b.WriteString(cell)
	}
	b.WriteByte('\n')
	return b.String()
}

// Sparkline renders the closes as a one-line shade run, newest on the
// right. Width caps the number of sessions shown.
func Sparkline(bars []market.Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	if len(bars) > width {
		bars = bars[len(bars)-width:]
	}

	shades := []rune("▁▂▃▄▅▆▇█")

	low, high := bars[0].Close, bars[0].Close
	for _, bar := range bars[1:] {
		if bar.Close < low {
			low = bar.Close
		}
		if bar.Close > high {
			high = bar.Close
		}
	}
	span := high - low
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, bar := range bars {
		idx := int((bar.Close - low) / span * float64(len(shades)-1))
		b.WriteRune(shades[idx])
	}
	return b.String()
}

// styles returns the up/down candle styles. Colors come from the config with
// the usual green/red defaults.
func styles(color bool) (up lipgloss.Style, down lipgloss.Style) {
	up = lipgloss.NewStyle()
	down = lipgloss.NewStyle()

	if !color {
		return up, down
	}

	upColor, _ := config.GetString("colors.up", "#00b894")
	downColor, _ := config.GetString("colors.down", "#d63031")

	up = up.Foreground(lipgloss.Color(upColor))
	down = down.Foreground(lipgloss.Color(downColor))
	return up, down
}

// trimFloat renders a price without trailing decimal noise.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
