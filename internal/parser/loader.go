package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// LoadWorkbook opens raw upload bytes into the in-memory grid model.
// Dispatch is by filename extension: .xlsx and friends go through the
// archive reader, .csv degrades to a single colorless sheet, and legacy
// .xls is rejected outright.
func LoadWorkbook(data []byte, filename string, hints model.UploadHints, limits Limits) (*model.Workbook, error) {
	if limits.MaxFileBytes > 0 && int64(len(data)) > limits.MaxFileBytes {
		return nil, resourceLimit(fmt.Sprintf("file is %d bytes, limit %d", len(data), limits.MaxFileBytes), nil)
	}

	wb := &model.Workbook{Filename: filepath.Base(filename), Hints: hints}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		sheet, err := loadCSV(data, filename, limits)
		if err != nil {
			return nil, err
		}
		wb.Sheets = []*model.Sheet{sheet}
		return wb, nil
	case ".xls":
		return nil, unreadable("legacy .xls workbooks are not supported, re-save as .xlsx", nil)
	default:
		sheets, err := loadXLSX(data, limits)
		if err != nil {
			return nil, err
		}
		wb.Sheets = sheets
		return wb, nil
	}
}

func loadXLSX(data []byte, limits Limits) ([]*model.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, unreadable("cannot open workbook", err)
	}
	defer f.Close()

	// Fill descriptors come straight from the styles part; a workbook
	// with a broken styles part still loads, just without colors.
	fills, err := readStyleFills(data)
	if err != nil {
		fills = &styleFills{}
	}

	names := f.GetSheetList()
	if limits.MaxSheets > 0 && len(names) > limits.MaxSheets {
		return nil, resourceLimit(fmt.Sprintf("workbook has %d sheets, limit %d", len(names), limits.MaxSheets), nil)
	}

	sheets := make([]*model.Sheet, 0, len(names))
	for _, name := range names {
		sheet, err := loadSheet(f, name, fills, limits)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func loadSheet(f *excelize.File, name string, fills *styleFills, limits Limits) (*model.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		// Unreadable single sheets degrade to an empty grid; the
		// detector will surface a diagnostic for them.
		return &model.Sheet{Name: name}, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if limits.MaxCellsPerSheet > 0 && len(rows)*width > limits.MaxCellsPerSheet {
		return nil, resourceLimit(fmt.Sprintf("sheet %q has %d cells, limit %d", name, len(rows)*width, limits.MaxCellsPerSheet), nil)
	}

	grid := make([][]model.Cell, len(rows))
	for r, row := range rows {
		cells := make([]model.Cell, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(row) {
				raw = row[c]
			}
			cells[c] = model.Cell{
				Value: parseCellValue(raw),
				Fill:  cellFill(f, name, fills, r, c),
			}
		}
		grid[r] = cells
	}
	return &model.Sheet{Name: name, Grid: grid}, nil
}

func cellFill(f *excelize.File, sheet string, fills *styleFills, row, col int) model.Fill {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return model.Fill{}
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return model.Fill{}
	}
	return fills.fillForStyle(styleID)
}

func loadCSV(data []byte, filename string, limits Limits) (*model.Sheet, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, unreadable("malformed csv", err)
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if limits.MaxCellsPerSheet > 0 && len(records)*width > limits.MaxCellsPerSheet {
		return nil, resourceLimit(fmt.Sprintf("csv has %d cells, limit %d", len(records)*width, limits.MaxCellsPerSheet), nil)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	grid := make([][]model.Cell, len(records))
	for i, rec := range records {
		cells := make([]model.Cell, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(rec) {
				raw = rec[c]
			}
			cells[c] = model.Cell{Value: parseCellValue(raw)}
		}
		grid[i] = cells
	}
	return &model.Sheet{Name: name, Grid: grid}, nil
}

// parseCellValue maps raw cell text to the tagged value model without
// coercion: numeric-looking text from a text cell still arrives here as
// the raw stored string, so the split is purely syntactic.
func parseCellValue(raw string) model.CellValue {
	if raw == "" {
		return model.EmptyValue()
	}
	if !plainNumeric(raw) {
		return model.TextValue(raw)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.TextValue(raw)
	}
	return model.NumberValue(f)
}

// plainNumeric pre-screens for decimal notation so ParseFloat never
// accepts hex floats or Inf spellings from cell text.
func plainNumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '+' || r == '-' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return true
}
