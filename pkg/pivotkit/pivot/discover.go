// Package pivot selects column relationships and builds their summary tables.
package pivot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// ErrNoUsableColumns indicates cleaning left no categorical or numeric column
// to summarize.
var ErrNoUsableColumns = errors.New("no usable columns to generate relationships")

// Relationship is the column (or column pair) a pivot table summarizes.
// Second is empty for a single-column frequency relationship.
type Relationship struct {
	First  string
	Second string
}

// Title returns the relationship's display title.
func (r Relationship) Title() string {
	if r.Second == "" {
		return fmt.Sprintf("%s Frequency", r.First)
	}
	return fmt.Sprintf("%s vs %s", r.First, r.Second)
}

// Discover selects the relationships to summarize. Selection is deterministic
// and follows a strict priority order:
//
//  1. Two or more categorical columns: rank them by descending distinct-value
//     count (ties keep original column order), form all 2-combinations in
//     ranked order, and keep the first max(1, relations) of them.
//  2. Exactly one categorical column: a single frequency relationship on it.
//  3. At least one numeric column: a single frequency relationship on the
//     first numeric column, counting distinct values (no binning).
//  4. Otherwise ErrNoUsableColumns.
//
// Datetime-like columns never participate; their kind was fixed at load time.
func Discover(ds *models.TabularDataset, relations int) ([]Relationship, error) {
	if relations < 1 {
		relations = 1
	}

	var categorical, numeric []string
	for _, c := range ds.Columns {
		switch c.Kind {
		case models.KindCategorical:
			categorical = append(categorical, c.Name)
		case models.KindNumeric:
			numeric = append(numeric, c.Name)
		}
	}

	switch {
	case len(categorical) >= 2:
		ranked := rankByCardinality(ds, categorical)
		return combinations(ranked, relations), nil
	case len(categorical) == 1:
		return []Relationship{{First: categorical[0]}}, nil
	case len(numeric) >= 1:
		return []Relationship{{First: numeric[0]}}, nil
	default:
		return nil, ErrNoUsableColumns
	}
}

// rankByCardinality orders column names by descending distinct-value count,
// keeping the original order for ties.
func rankByCardinality(ds *models.TabularDataset, names []string) []string {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		distinct := make(map[string]bool)
		for _, v := range col.Values {
			distinct[models.Stringify(v)] = true
		}
		counts[name] = len(distinct)
	}

	ranked := append([]string(nil), names...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

// combinations generates all 2-combinations of ranked in order and keeps the
// first limit of them.
func combinations(ranked []string, limit int) []Relationship {
	var rels []Relationship
	for i := 0; i < len(ranked) && len(rels) < limit; i++ {
		for j := i + 1; j < len(ranked) && len(rels) < limit; j++ {
			rels = append(rels, Relationship{First: ranked[i], Second: ranked[j]})
		}
	}
	return rels
}
