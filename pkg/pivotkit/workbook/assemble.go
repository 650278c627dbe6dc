// Package workbook assembles the multi-sheet output document: cleaned data,
// consolidated pivot tables, and an optional dashboard with embedded charts.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/models"
)

// Sheet names, in workbook order.
const (
	SheetCleaned   = "CleanedData"
	SheetPivots    = "PivotTables"
	SheetDashboard = "Dashboard"
)

// Dashboard layout: charts anchor two per row on a fixed grid.
const (
	chartRowStart   = 5
	chartColStart   = 2
	chartRowSpacing = 25
	chartColSpacing = 10
)

// Assemble builds the output workbook. The dashboard sheet is created only
// when withDashboard is true and at least one pivot exists; charts without an
// image, or whose image fails to embed, are skipped in the anchor sequence
// without leaving gaps. A nil logger disables logging; the caller owns
// closing the returned file.
func Assemble(ds *models.TabularDataset, pivots []*models.PivotTable, charts []models.ChartSpec, withDashboard bool, logger *zap.Logger) (*excelize.File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCleaned); err != nil {
		return nil, fmt.Errorf("rename data sheet: %w", err)
	}
	if err := writeCleanedSheet(f, ds); err != nil {
		return nil, err
	}
	if err := writePivotSheet(f, pivots); err != nil {
		return nil, err
	}
	if withDashboard && len(pivots) > 0 {
		if err := writeDashboardSheet(f, charts, logger); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// writeCleanedSheet lays out the dense dataset as a header row plus one row
// per record, in original column order.
func writeCleanedSheet(f *excelize.File, ds *models.TabularDataset) error {
	for j, name := range ds.ColumnNames() {
		if err := setCell(f, SheetCleaned, j+1, 1, name); err != nil {
			return err
		}
	}
	for i := 0; i < ds.RowCount(); i++ {
		for j, v := range ds.Row(i) {
			if err := setCell(f, SheetCleaned, j+1, i+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// writePivotSheet renders every pivot sequentially: a bold title row merged
// across the pivot's width, the rectangular layout, then two blank rows.
func writePivotSheet(f *excelize.File, pivots []*models.PivotTable) error {
	if _, err := f.NewSheet(SheetPivots); err != nil {
		return fmt.Errorf("create pivot sheet: %w", err)
	}

	banner, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("pivot banner style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("pivot title style: %w", err)
	}

	if err := f.SetCellValue(SheetPivots, "A1", "📌 All Pivot Tables"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetPivots, "A1", "A1", banner); err != nil {
		return err
	}

	row := 3
	for _, p := range pivots {
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(1+len(p.Headers), row)
		if err != nil {
			return err
		}
		if err := f.MergeCell(SheetPivots, start, end); err != nil {
			return fmt.Errorf("merge pivot title: %w", err)
		}
		if err := f.SetCellValue(SheetPivots, start, "Pivot: "+p.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetPivots, start, start, bold); err != nil {
			return err
		}
		row++

		for _, cells := range p.Rows() {
			for j, v := range cells {
				if err := setCell(f, SheetPivots, j+1, row, v); err != nil {
					return err
				}
			}
			row++
		}
		row += 2
	}
	return nil
}

// writeDashboardSheet creates the gridline-free dashboard with a title banner
// and every successfully rendered chart image on the two-per-row grid. An
// image that fails to embed degrades that chart only: it is logged and
// skipped without consuming an anchor.
func writeDashboardSheet(f *excelize.File, charts []models.ChartSpec, logger *zap.Logger) error {
	if _, err := f.NewSheet(SheetDashboard); err != nil {
		return fmt.Errorf("create dashboard sheet: %w", err)
	}

	showGrid := false
	if err := f.SetSheetView(SheetDashboard, 0, &excelize.ViewOptions{ShowGridLines: &showGrid}); err != nil {
		return fmt.Errorf("hide dashboard gridlines: %w", err)
	}

	banner, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("dashboard banner style: %w", err)
	}
	if err := f.SetCellValue(SheetDashboard, "B2", "📊 Dashboard - Auto Generated"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetDashboard, "B2", "B2", banner); err != nil {
		return err
	}

	position := 0
	for _, spec := range charts {
		if len(spec.Image) == 0 {
			continue
		}
		col := chartColStart + (position%2)*chartColSpacing
		row := chartRowStart + (position/2)*chartRowSpacing
		anchor, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		pic := &excelize.Picture{
			Extension: ".png",
			File:      spec.Image,
			Format:    &excelize.GraphicOptions{},
		}
		if err := f.AddPictureFromBytes(SheetDashboard, anchor, pic); err != nil {
			logger.Warn("failed to embed chart image, chart skipped",
				zap.String("chart", spec.Title),
				zap.Error(err),
			)
			continue
		}
		position++
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}
