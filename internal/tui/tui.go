// Copyright © 2025 Phuong Dang phuongdvk47ds@gmail.com
// SPDX-License-Identifier: MIT

// Package tui implements the interactive dashboard behind `stockctl ui`: a
// ticker list that opens into a candlestick chart, with on-demand refresh
// from the dataset store.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phuongdvk47ds/sample.dashboard/internal/chart"
	"github.com/phuongdvk47ds/sample.dashboard/internal/market"
)

// Refresher re-materializes the dataset, bypassing the cache.
type Refresher func(context.Context) (*market.Dataset, error)

// tickerItem adapts a market.Summary to the bubbles list.
type tickerItem struct {
	summary market.Summary
	spark   string
}

func (i tickerItem) Title() string {
	if i.spark == "" {
		return i.summary.Ticker
	}
	return i.summary.Ticker + "  " + i.spark
}

func (i tickerItem) Description() string {
	return fmt.Sprintf("%d sessions, close %v, %s .. %s",
		i.summary.Bars,
		i.summary.Close,
		i.summary.First.Format(market.DateLayout),
		i.summary.Last.Format(market.DateLayout))
}

func (i tickerItem) FilterValue() string { return i.summary.Ticker }

// datasetMsg delivers a refreshed dataset to the model.
type datasetMsg struct {
	dataset *market.Dataset
}

// errMsg delivers a refresh failure to the model.
type errMsg struct {
	err error
}

const (
	modeList  = "list"
	modeChart = "chart"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d63031")).Padding(0, 1)
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	dataset *market.Dataset
	refresh Refresher
	opts    chart.Options

	list   list.Model
	mode   string
	ticker string

	width      int
	height     int
	refreshing bool
	refreshed  time.Time
	err        error
}

// NewModel builds the dashboard model over a loaded dataset. refresh may be
// nil for a local dataset that has nothing to refresh from.
func NewModel(ds *market.Dataset, refresh Refresher, opts chart.Options) Model {
	l := list.New(tickerItems(ds), list.NewDefaultDelegate(), 0, 0)
	l.Title = "stockctl"
	l.SetShowStatusBar(false)

	return Model{
		dataset:   ds,
		refresh:   refresh,
		opts:      opts,
		list:      l,
		mode:      modeList,
		refreshed: time.Now(),
	}
}

func tickerItems(ds *market.Dataset) []list.Item {
	summaries := ds.Summaries()
	items := make([]list.Item, 0, len(summaries))
	for _, s := range summaries {
		spark := chart.Sparkline(ds.Select(s.Ticker, time.Time{}, time.Time{}), 20)
		items = append(items, tickerItem{summary: s, spark: spark})
	}
	return items
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't steal keys while the list filter is typing.
		if m.mode == modeList && m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.mode == modeChart {
				m.mode = modeList
				return m, nil
			}

		case "enter":
			if m.mode == modeList {
				if item, ok := m.list.SelectedItem().(tickerItem); ok {
					m.ticker = item.summary.Ticker
					m.mode = modeChart
				}
				return m, nil
			}

		case "r":
			if m.refresh != nil && !m.refreshing {
				m.refreshing = true
				m.err = nil
				return m, m.refreshCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case datasetMsg:
		m.refreshing = false
		m.refreshed = time.Now()
		m.dataset = msg.dataset
		m.list.SetItems(tickerItems(msg.dataset))
		return m, nil

	case errMsg:
		m.refreshing = false
		m.err = msg.err
		return m, nil
	}

	if m.mode == modeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) refreshCmd() tea.Cmd {
	refresh := m.refresh
	return func() tea.Msg {
		ds, err := refresh(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return datasetMsg{dataset: ds}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeChart:
		return m.chartView()
	default:
		return m.listView()
	}
}

func (m Model) listView() string {
	view := m.list.View()
	if m.err != nil {
		view += "\n" + errStyle.Render("refresh failed: "+m.err.Error())
	}
	view += "\n" + statusStyle.Render(m.statusLine())
	return view
}

func (m Model) chartView() string {
	opts := m.opts
	if m.width > 0 {
		// Leave room for the axis labels.
		opts.Width = m.width - 12
	}
	if m.height > 0 {
		opts.Height = m.height - 6
	}

	view := titleStyle.Render(m.ticker) + "\n"
	view += chart.RenderTicker(m.dataset, m.ticker, opts)
	view += statusStyle.Render("esc back · r refresh · q quit")
	return view
}

func (m Model) statusLine() string {
	if m.refreshing {
		return "refreshing..."
	}
	line := fmt.Sprintf("%d bars · synced %s", m.dataset.Len(), m.refreshed.Format("15:04:05"))
	if m.refresh != nil {
		line += " · r refresh"
	}
	return line + " · enter chart · q quit"
}

// Run starts the dashboard and blocks until the user quits.
func Run(ds *market.Dataset, refresh Refresher, opts chart.Options) error {
	p := tea.NewProgram(NewModel(ds, refresh, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
