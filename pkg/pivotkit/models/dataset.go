// Package models defines the data structures flowing through the pivotkit pipeline.
package models

import (
	"fmt"
	"strconv"
	"time"
)

// Kind classifies a column's values. It is assigned once at load time and
// never re-derived by later pipeline stages.
type Kind string

const (
	// KindNumeric marks columns whose non-empty cells all parse as numbers.
	KindNumeric Kind = "numeric"
	// KindCategorical marks text-valued columns.
	KindCategorical Kind = "categorical"
	// KindDatetime marks columns detected as date/time-like, either by value
	// or because the column name contains "date" or "time".
	KindDatetime Kind = "datetime"
	// KindUnknown marks columns with no data to classify.
	KindUnknown Kind = "unknown"
)

// Column is a single named column. Values holds one entry per row; nil means
// the cell is missing. Non-nil values are int64, float64, string or time.Time.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// TabularDataset is an in-memory rectangular table of named, typed columns.
// All columns hold the same number of rows.
type TabularDataset struct {
	Columns []Column
}

// RowCount returns the number of rows.
func (d *TabularDataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnNames returns the column names in order.
func (d *TabularDataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or false if absent.
func (d *TabularDataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// Row returns the values of row i in column order.
func (d *TabularDataset) Row(i int) []any {
	row := make([]any, len(d.Columns))
	for j, c := range d.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Records returns the dataset as one record per row, keyed by column name.
func (d *TabularDataset) Records() []map[string]any {
	records := make([]map[string]any, 0, d.RowCount())
	for i := 0; i < d.RowCount(); i++ {
		rec := make(map[string]any, len(d.Columns))
		for _, c := range d.Columns {
			rec[c.Name] = c.Values[i]
		}
		records = append(records, rec)
	}
	return records
}

// Stringify renders a cell value in its canonical string form. Missing cells
// render as the empty string; date/time values use RFC 3339.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
