// Package dataset loads tabular source files and cleans them into dense,
// fully-typed in-memory tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoInput indicates the source location is empty or absent.
var ErrNoInput = errors.New("no input file found")

// ErrUnsupportedFormat indicates the source file extension is not a supported
// tabular format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// dateLayouts are tried in order when parsing cells of datetime-like columns.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Load reads a tabular source into a TabularDataset. The path may be a file
// or a directory; for a directory the first entry in sorted order is used.
/// Supported formats by extension: .xlsx/.xlsm (spreadsheet) and .csv
// (delimited text).
func Load(path string) (*models.TabularDataset, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		path, err = firstEntry(path)
		if err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	case ".csv":
		return loadCSV(path)
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls workbooks are not readable, convert to .xlsx", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// firstEntry returns the first regular file in dir, sorted by name.
func firstEntry(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoInput, dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: directory %s is empty", ErrNoInput, dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// loadWorkbook reads the first sheet of an OOXML workbook.
func loadWorkbook(path string) (*models.TabularDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrNoInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// loadCSV reads a delimited text file.
func loadCSV(path string) (*models.TabularDataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// fromRows builds a typed dataset from raw string rows. The first row is the
// header; column kinds are inferred once here and fixed thereafter.
func fromRows(rows [][]string) (*models.TabularDataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: source has no rows", ErrNoInput)
	}

	headers := rows[0]
	body := rows[1:]

	columns := make([]models.Column, len(headers))
	for j, name := range headers {
		kind := classify(name, body, j)
		values := make([]any, len(body))
		for i, row := range body {
			raw := ""
			if j < len(row) {
				raw = row[j]
			}
			values[i] = parseCell(raw, kind)
		}
		columns[j] = models.Column{Name: name, Kind: kind, Values: values}
	}

	return &models.TabularDataset{Columns: columns}, nil
}

// classify infers a column's kind from its name and sampled values. A name
// containing "date" or "time" (case-insensitive) forces KindDatetime, even
// when the column holds unrelated data.
func classify(name string, body [][]string, col int) models.Kind {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
		return models.KindDatetime
	}

	sawValue := false
	allNumeric := true
	for _, row := range body {
		if col >= len(row) || row[col] == "" {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			allNumeric = false
			break
		}
	}

	switch {
	case !sawValue:
		return models.KindUnknown
	case allNumeric:
		return models.KindNumeric
	default:
		return models.KindCategorical
	}
}

// parseCell converts a raw cell to its typed value. Empty cells are missing
// (nil). Numeric cells use the int64 then float64 ladder; datetime-like cells
// try the known date layouts before falling back to the same ladder.
func parseCell(raw string, kind models.Kind) any {
	if raw == "" {
		return nil
	}

	if kind == models.KindDatetime {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}

	if kind == models.KindDatetime || kind == models.KindNumeric {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}

	return raw
}
