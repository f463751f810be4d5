package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// BuildXLSX renders a calendar as a colored grid workbook laid out like
// the field templates: title row, blank row, header row, then one row per
// activity from row 4. Marked cells carry an X plus their resolved fill,
// so an exported workbook parses back into the same calendar.
func BuildXLSX(cal *model.CalendarResult) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Calendar"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	axis := periodAxis(cal)

	title := fmt.Sprintf("Activity Calendar (%s): %s", cal.CalendarType, cal.SourceFile)
	f.SetCellValue(sheetName, "A1", title)

	f.SetCellValue(sheetName, "A3", "Activity")
	for i, label := range axis {
		cell, err := excelize.CoordinatesToCellName(i+2, 3)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, label)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 3, 3, headerStyle)

	// One style per distinct color, cached across cells.
	fillStyles := map[string]int{}
	markerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build marker style: %w", err)
	}

	for i, a := range cal.Activities {
		row := i + 4
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), a.Name)

		for col, label := range axis {
			color, marked := a.PeriodColors[label]
			if !marked {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, "X")

			styleID := markerStyle
			if color != nil {
				styleID, err = cachedFillStyle(f, fillStyles, *color)
				if err != nil {
					return nil, err
				}
			}
			f.SetCellStyle(sheetName, cell, cell, styleID)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	if len(axis) > 0 {
		last, _ := excelize.ColumnNumberToName(len(axis) + 1)
		f.SetColWidth(sheetName, "B", last, 12)
	}

	if err := addSummarySheet(f, cal); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func cachedFillStyle(f *excelize.File, cache map[string]int, color string) (int, error) {
	if id, ok := cache[color]; ok {
		return id, nil
	}
	hex := strings.TrimPrefix(color, "#")
	id, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to build fill style for %s: %w", color, err)
	}
	cache[color] = id
	return id, nil
}

func addSummarySheet(f *excelize.File, cal *model.CalendarResult) error {
	sheetName := "Summary"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Source File", cal.SourceFile},
		{"Calendar Type", string(cal.CalendarType)},
		{"Region", cal.Hints.Region},
		{"District", cal.Hints.District},
		{"Commodity", cal.Hints.Commodity},
		{"Poultry Type", cal.Hints.PoultryType},
		{"Year", cal.Hints.Year},
		{"Sheets Processed", cal.Stats.SheetsProcessed},
		{"Activities Extracted", cal.Stats.ActivitiesExtracted},
		{"Activities Excluded", cal.Stats.ActivitiesExcluded},
		{"Colors Resolved", fmt.Sprintf("%.0f%%", cal.Stats.ColorsResolvedRatio*100)},
		{"Color Palette", strings.Join(cal.ColorPalette, ", ")},
	}
	for i, pair := range rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+1), pair[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+1), pair[1])
	}

	for i, d := range cal.Diagnostics {
		row := len(rows) + 2 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Diagnostic")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d.Sheet+": "+d.Note)
	}

	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "B", 60)
	return nil
}
