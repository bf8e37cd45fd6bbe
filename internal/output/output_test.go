// Copyright (c) 2025 Phuong Dang <phuongdvk47ds@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/phuongdvk47ds/sample.dashboard/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"ticker": "VNM", "close": 56000.0, "date": "2025-06-20"},
		{"ticker": "FPT", "close": 121500.0, "date": "2025-06-18"},
		{"ticker": "HPG", "close": 27850.0, "date": "2025-06-19"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by ticker",
			spec:      "ticker",
			wantOrder: []string{"FPT", "HPG", "VNM"},
		},
		{
			name:      "descending by ticker",
			spec:      "-ticker",
			wantOrder: []string{"VNM", "HPG", "FPT"},
		},
		{
			name:      "ascending by close",
			spec:      "close",
			wantOrder: []string{"HPG", "VNM", "FPT"},
		},
		{
			name:      "descending by close",
			spec:      "-close",
			wantOrder: []string{"FPT", "VNM", "HPG"},
		},
		{
			name:      "case sensitive",
			spec:      "!ticker",
			wantOrder: []string{"FPT", "HPG", "VNM"},
		},
		{
			name:      "ascending by date",
			spec:      "date",
			wantOrder: []string{"FPT", "HPG", "VNM"},
		},
		{
			name:      "multiple fields",
			spec:      "date,ticker",
			wantOrder: []string{"FPT", "HPG", "VNM"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"VNM", "FPT", "HPG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedTicker := range tt.wantOrder {
				assert.Equal(t, expectedTicker, data[i]["ticker"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_Stability(t *testing.T) {
	data := []map[string]interface{}{
		{"ticker": "VNM", "date": "2025-06-20"},
		{"ticker": "VNM", "date": "2025-06-18"},
		{"ticker": "FPT", "date": "2025-06-19"},
	}

	// Ties on ticker keep their relative order.
	SortDataset(data, "ticker")
	assert.Equal(t, "FPT", data[0]["ticker"])
	assert.Equal(t, "2025-06-20", data[1]["date"])
	assert.Equal(t, "2025-06-18", data[2]["date"])
}

func runSliceDiceSpit(t *testing.T, raw string, al attrs.AttrList, args ...string) string {
	t.Helper()

	var in bytes.Buffer
	in.WriteString(raw)

	var out bytes.Buffer
	cmd := &cli.Command{
		Name: "x",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output"},
			&cli.StringFlag{Name: "sort"},
			&cli.StringFlag{Name: "filter"},
			&cli.IntFlag{Name: "limit"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			SliceDiceSpit(in, al, c, "", &out)
			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"x"}, args...))
	require.NoError(t, err)
	return out.String()
}

func TestSliceDiceSpit_LimitAfterSort(t *testing.T) {
	raw := `[{"date":"2025-01-01"},{"date":"2025-01-03"},{"date":"2025-01-02"}]`
	al := attrs.AttrList{{Key: "date", OutputKey: "date", Include: true}}

	// The newest row survives a descending sort with a limit of one.
	got := runSliceDiceSpit(t, raw, al, "--output", "json", "--sort=-date", "--limit", "1")
	assert.Equal(t, `[{"date":"2025-01-03"}]`, got)

	// Ascending keeps the oldest.
	got = runSliceDiceSpit(t, raw, al, "--output", "json", "--sort", "date", "--limit", "1")
	assert.Equal(t, `[{"date":"2025-01-01"}]`, got)

	// No limit keeps everything.
	got = runSliceDiceSpit(t, raw, al, "--output", "json", "--sort", "date")
	assert.Contains(t, got, "2025-01-01")
	assert.Contains(t, got, "2025-01-03")
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "VNM",
			want:  "VNM",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "int64",
			value: int64(1250000),
			want:  "1250000",
		},
		{
			name:  "whole float drops decimal point",
			value: 56000.0,
			want:  "56000",
		},
		{
			name:  "fractional float keeps precision",
			value: 88.5,
			want:  "88.5",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "bool false is zero value",
			value: false,
			want:  "",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "map",
			value: map[string]int{"x": 1},
			want:  `{"x":1}`,
		},
		{
			name:  "zero value int",
			value: 0,
			want:  "",
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		s    string
		typ  string
		want Tag
	}{
		{
			name: "simple tag",
			s:    "ticker",
			typ:  "string",
			want: Tag{Name: "ticker", Type: "string"},
		},
		{
			name: "tag with options",
			s:    "volume,omitempty",
			typ:  "int64",
			want: Tag{Name: "volume", Type: "int64"},
		},
		{
			name: "skipped field",
			s:    "-",
			want: Tag{},
		},
		{
			name: "empty string",
			s:    "",
			want: Tag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.s, tt.typ)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTag_Print(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{
			name: "with name",
			tag:  Tag{Name: "close", Type: "float64"},
			want: "close (float64)",
		},
		{
			name: "empty tag",
			tag:  Tag{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tag.Print()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpSchemaWalker(t *testing.T) {
	type row struct {
		Ticker string  `json:"ticker"`
		Close  float64 `json:"close"`
		Hidden string  `json:"-"`
		NoTag  string
	}

	tags := DumpSchemaWalker(reflect.TypeOf(row{}))
	assert.Len(t, tags, 2)
	assert.Equal(t, "ticker", tags[0].Name)
	assert.Equal(t, "close", tags[1].Name)
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	// Should return strings (may be empty or defaults)
	assert.IsType(t, "", header)
	assert.IsType(t, "", even)
	assert.IsType(t, "", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"ticker": "VNM", "close": 56000.0},
		{"ticker": "FPT", "close": 121500.0},
		{"ticker": "HPG", "close": 27850.0},
	}

	spec := "ticker"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, spec)
	}
}

func BenchmarkInterfaceToString(b *testing.B) {
	values := []interface{}{
		"VNM",
		42,
		88.5,
		true,
		nil,
		[]string{"a", "b"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InterfaceToString(v)
		}
	}
}
