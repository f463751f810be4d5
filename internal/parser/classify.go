package parser

import "github.com/samankwah/agromet-sub002/internal/model"

// Classify infers the calendar type of one sheet from its detected time
// axis. The axis majority decides; the upload hints only settle near-equal
// mixed axes, never override a clear majority. A tie goes to cycle because
// week columns never appear on real seasonal templates, while stray month
// words show up on cycle sheets regularly.
func Classify(cm model.ColumnMap, hints model.UploadHints) model.CalendarType {
	months := cm.MonthColumns()
	weeks := cm.WeekColumns()

	if months == 0 && weeks == 0 {
		return hintedType(hints)
	}

	if months > 0 && weeks > 0 && absDiff(months, weeks) <= 1 {
		if hints.HasPoultry() {
			return model.CalendarCycle
		}
		if hints.HasCommodity() {
			return model.CalendarSeasonal
		}
	}

	if weeks >= months {
		return model.CalendarCycle
	}
	return model.CalendarSeasonal
}

// classifyWorkbook merges per-sheet types into the workbook type with the
// same tie rule: any tie goes to cycle.
func classifyWorkbook(types []model.CalendarType, hints model.UploadHints) model.CalendarType {
	cycles, seasonals := 0, 0
	for _, t := range types {
		if t == model.CalendarCycle {
			cycles++
		} else {
			seasonals++
		}
	}
	if cycles == 0 && seasonals == 0 {
		return hintedType(hints)
	}
	if cycles >= seasonals && cycles > 0 {
		return model.CalendarCycle
	}
	return model.CalendarSeasonal
}

func hintedType(hints model.UploadHints) model.CalendarType {
	if hints.HasPoultry() {
		return model.CalendarCycle
	}
	return model.CalendarSeasonal
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
