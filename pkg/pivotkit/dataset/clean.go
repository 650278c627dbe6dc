package dataset

import (
	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// CleaningPolicy names the cleaning steps applied to a loaded dataset. The
// three drop steps default to true and are the current contract; they are
// fields rather than inline logic so a future loosening (e.g. imputation
// instead of whole-row deletion) is a policy change, not a code change.
type CleaningPolicy struct {
	// ColumnsToRemove are dropped if present; absent names are ignored.
	ColumnsToRemove []string
	// DropEmptyRows removes rows where every cell is missing.
	DropEmptyRows bool
	// DropEmptyColumns removes columns where every cell is missing.
	DropEmptyColumns bool
	// DropRowsWithMissing removes every row containing at least one missing
	// cell. Intentionally aggressive.
	DropRowsWithMissing bool
}

// DefaultCleaningPolicy returns the standard policy with all drop steps on.
func DefaultCleaningPolicy() CleaningPolicy {
	return CleaningPolicy{
		DropEmptyRows:       true,
		DropEmptyColumns:    true,
		DropRowsWithMissing: true,
	}
}

// Clean applies the policy and returns a new, fully dense dataset. Cleaning
// has no error path: a zero-row result is valid and flows downstream.
func Clean(ds *models.TabularDataset, policy CleaningPolicy, logger *zap.Logger) *models.TabularDataset {
	out := ds

	if policy.DropEmptyRows {
		out = dropRows(out, func(row []any) bool { return allMissing(row) })
	}
	if policy.DropEmptyColumns {
		out = dropColumns(out, func(c models.Column) bool { return allMissing(c.Values) })
	}
	if policy.DropRowsWithMissing {
		out = dropRows(out, anyMissing)
	}
	if len(policy.ColumnsToRemove) > 0 {
		remove := make(map[string]bool, len(policy.ColumnsToRemove))
		for _, name := range policy.ColumnsToRemove {
			remove[name] = true
		}
		out = dropColumns(out, func(c models.Column) bool { return remove[c.Name] })
	}

	logger.Debug("cleaned dataset",
		zap.Int("rows_before", ds.RowCount()),
		zap.Int("rows_after", out.RowCount()),
		zap.Int("columns_before", len(ds.Columns)),
		zap.Int("columns_after", len(out.Columns)),
	)
	return out
}

// dropRows returns a copy of ds without the rows for which drop returns true.
func dropRows(ds *models.TabularDataset, drop func([]any) bool) *models.TabularDataset {
	var keep []int
	for i := 0; i < ds.RowCount(); i++ {
		if !drop(ds.Row(i)) {
			keep = append(keep, i)
		}
	}

	columns := make([]models.Column, len(ds.Columns))
	for j, c := range ds.Columns {
		values := make([]any, len(keep))
		for k, i := range keep {
			values[k] = c.Values[i]
		}
		columns[j] = models.Column{Name: c.Name, Kind: c.Kind, Values: values}
	}
	return &models.TabularDataset{Columns: columns}
}

// dropColumns returns a copy of ds without the columns for which drop returns
// true, preserving column order.
func dropColumns(ds *models.TabularDataset, drop func(models.Column) bool) *models.TabularDataset {
	var columns []models.Column
	for _, c := range ds.Columns {
		if !drop(c) {
			columns = append(columns, c)
		}
	}
	return &models.TabularDataset{Columns: columns}
}

func allMissing(values []any) bool {
	for _, v := range values {
		if !isMissing(v) {
			return false
		}
	}
	return true
}

func anyMissing(values []any) bool {
	for _, v := range values {
		if isMissing(v) {
			return true
		}
	}
	return false
}

// isMissing treats nil and empty-string cells as missing.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
