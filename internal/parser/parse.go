package parser

import (
	"context"
	"sort"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// Parse runs the full pipeline over one upload: load, detect, extract,
// classify, aggregate. The only fatal outcomes are ErrUnreadable and
// ErrResourceLimit; everything else degrades to diagnostics inside the
// result.
func Parse(ctx context.Context, data []byte, filename string, hints model.UploadHints, opts Options) (*model.CalendarResult, error) {
	wb, err := LoadWorkbook(data, filename, hints, opts.Limits)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, wb, opts)
}

// Aggregate merges per-sheet extraction into one calendar result. The
// deadline is checked between sheets, which is the granularity a single
// upload needs.
func Aggregate(ctx context.Context, wb *model.Workbook, opts Options) (*model.CalendarResult, error) {
	res := &model.CalendarResult{
		SourceFile:   wb.Filename,
		Hints:        wb.Hints,
		Activities:   []*model.Activity{},
		ColorPalette: []string{},
		Diagnostics:  []model.Diagnostic{},
	}

	paletteSet := make(map[string]struct{})
	var sheetTypes []model.CalendarType
	markers, resolved := 0, 0

	for _, sheet := range wb.Sheets {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, resourceLimit("parse deadline exceeded", err)
			}
		}
		res.Stats.SheetsProcessed++

		cm := DetectStructure(sheet)
		if !cm.HasActivityColumn() {
			res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
				Sheet: sheet.Name, Note: "no activity column detected in header rows",
			})
			continue
		}
		if len(cm.TimeAxis) == 0 {
			res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
				Sheet: sheet.Name, Note: "no month or week columns detected",
			})
			continue
		}

		sheetTypes = append(sheetTypes, Classify(cm, wb.Hints))

		acts, tally := ExtractActivities(sheet, cm, opts)
		res.Stats.ActivitiesExtracted += tally.Extracted
		res.Stats.ActivitiesExcluded += tally.Excluded
		markers += tally.MarkerCells
		resolved += tally.ResolvedCells

		if tally.Extracted == 0 {
			res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
				Sheet: sheet.Name, Note: "structure detected but no activity rows extracted",
			})
		}

		res.Activities = append(res.Activities, acts...)
		for _, a := range acts {
			for _, c := range a.PeriodColors {
				if c != nil {
					paletteSet[*c] = struct{}{}
				}
			}
		}
	}

	for hex := range paletteSet {
		res.ColorPalette = append(res.ColorPalette, hex)
	}
	sort.Strings(res.ColorPalette)

	if markers > 0 {
		res.Stats.ColorsResolvedRatio = float64(resolved) / float64(markers)
	}
	res.CalendarType = classifyWorkbook(sheetTypes, wb.Hints)
	return res, nil
}
