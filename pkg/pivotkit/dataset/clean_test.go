package dataset

import (
	"math/rand"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

func testDataset(columns ...models.Column) *models.TabularDataset {
	return &models.TabularDataset{Columns: columns}
}

func TestCleanDropsFullyEmptyRowsAndColumns(t *testing.T) {
	ds := testDataset(
		models.Column{Name: "a", Kind: models.KindCategorical, Values: []any{"x", nil, "y"}},
		models.Column{Name: "b", Kind: models.KindCategorical, Values: []any{"p", nil, "q"}},
		models.Column{Name: "empty", Kind: models.KindUnknown, Values: []any{nil, nil, nil}},
	)

	out := Clean(ds, DefaultCleaningPolicy(), zap.NewNop())

	if len(out.Columns) != 2 {
		t.Fatalf("Expected empty column to be dropped, got %d columns", len(out.Columns))
	}
	if out.RowCount() != 2 {
		t.Errorf("Expected empty row to be dropped, got %d rows", out.RowCount())
	}
}

func TestCleanDropsRowsWithAnyMissing(t *testing.T) {
	ds := testDataset(
		models.Column{Name: "a", Kind: models.KindCategorical, Values: []any{"x", "y", "z"}},
		models.Column{Name: "b", Kind: models.KindCategorical, Values: []any{"p", "", "q"}},
	)

	out := Clean(ds, DefaultCleaningPolicy(), zap.NewNop())

	if out.RowCount() != 2 {
		t.Fatalf("Expected row with empty-string cell to be dropped, got %d rows", out.RowCount())
	}
	if out.Columns[0].Values[1] != "z" {
		t.Errorf("Expected surviving rows x,z; got %v", out.Columns[0].Values)
	}
}

func TestCleanRemovesNamedColumns(t *testing.T) {
	ds := testDataset(
		models.Column{Name: "keep", Kind: models.KindCategorical, Values: []any{"x"}},
		models.Column{Name: "drop", Kind: models.KindCategorical, Values: []any{"y"}},
	)

	policy := DefaultCleaningPolicy()
	policy.ColumnsToRemove = []string{"drop", "not-present"}
	out := Clean(ds, policy, zap.NewNop())

	if len(out.Columns) != 1 || out.Columns[0].Name != "keep" {
		t.Errorf("Expected only 'keep' to survive, got %v", out.ColumnNames())
	}
}

func TestCleanEmptyResultIsValid(t *testing.T) {
	ds := testDataset(
		models.Column{Name: "a", Kind: models.KindCategorical, Values: []any{"x", "y"}},
		models.Column{Name: "b", Kind: models.KindCategorical, Values: []any{nil, nil}},
	)

	out := Clean(ds, DefaultCleaningPolicy(), zap.NewNop())

	if out.RowCount() != 2 {
		t.Errorf("Dropping the all-missing column should keep both rows, got %d", out.RowCount())
	}

	// Now make every row partially missing: the result is empty but valid.
	ds2 := testDataset(
		models.Column{Name: "a", Kind: models.KindCategorical, Values: []any{"x", nil}},
		models.Column{Name: "b", Kind: models.KindCategorical, Values: []any{nil, "y"}},
	)
	out2 := Clean(ds2, DefaultCleaningPolicy(), zap.NewNop())
	if out2.RowCount() != 0 {
		t.Errorf("Expected zero rows, got %d", out2.RowCount())
	}
	if len(out2.Columns) != 2 {
		t.Errorf("Columns with data must survive even when all rows drop, got %d", len(out2.Columns))
	}
}

// TestCleanDensityInvariant clears randomly sparse matrices and verifies the
// result is fully dense: no missing cell, no all-empty row or column.
func TestCleanDensityInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		const rows, cols = 50, 8
		columns := make([]models.Column, cols)
		for j := 0; j < cols; j++ {
			values := make([]any, rows)
			for i := 0; i < rows; i++ {
				if rng.Float64() < 0.3 {
					values[i] = nil
				} else {
					values[i] = "v" + strconv.Itoa(rng.Intn(5))
				}
			}
			columns[j] = models.Column{Name: "c" + strconv.Itoa(j), Kind: models.KindCategorical, Values: values}
		}

		out := Clean(testDataset(columns...), DefaultCleaningPolicy(), zap.NewNop())

		for _, c := range out.Columns {
			if len(c.Values) != out.RowCount() {
				t.Fatalf("trial %d: ragged column %q", trial, c.Name)
			}
			hasValue := false
			for i, v := range c.Values {
				if v == nil || v == "" {
					t.Fatalf("trial %d: missing cell survived in %q row %d", trial, c.Name, i)
				}
				hasValue = true
			}
			if out.RowCount() > 0 && !hasValue {
				t.Fatalf("trial %d: empty column %q survived", trial, c.Name)
			}
		}
	}
}
