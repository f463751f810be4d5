package parser

import (
	"sort"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// headerScanRows bounds the header search. Field templates put their
// headers in the first rows; scanning deeper starts matching data cells
// that happen to contain month words.
const headerScanRows = 3

// DetectStructure locates the activity column and the time-axis columns
// of one sheet. Scan order is row-major over the first rows, and the
// first cell to claim a role wins: a second "JAN" column or a second
// activity header is ignored.
func DetectStructure(sheet *model.Sheet) model.ColumnMap {
	cm := model.ColumnMap{ActivityColumn: -1}
	claimed := make(map[int]bool)
	seenLabels := make(map[string]bool)

	maxRow := sheet.Rows()
	if maxRow > headerScanRows {
		maxRow = headerScanRows
	}

	for row := 0; row < maxRow; row++ {
		for col := 0; col < sheet.Cols(); col++ {
			if claimed[col] {
				continue
			}
			token := normalizeToken(sheet.Cell(row, col).Value.Literal())
			if token == "" {
				continue
			}

			if cm.ActivityColumn < 0 && isActivityHeader(token) {
				cm.ActivityColumn = col
				claimed[col] = true
				continue
			}

			if m, label, ok := matchMonth(token); ok {
				if seenLabels[label] {
					continue
				}
				cm.TimeAxis = append(cm.TimeAxis, model.TimeAxisColumn{
					Column: col, Label: label, Kind: model.PeriodMonth, Seq: m,
				})
				claimed[col] = true
				seenLabels[label] = true
				continue
			}

			if w, label, ok := matchWeek(token); ok {
				if seenLabels[label] {
					continue
				}
				cm.TimeAxis = append(cm.TimeAxis, model.TimeAxisColumn{
					Column: col, Label: label, Kind: model.PeriodWeek, Seq: w,
				})
				claimed[col] = true
				seenLabels[label] = true
			}
		}
	}

	// Templates scramble column order often enough that the axis is
	// re-sorted chronologically instead of trusting sheet order.
	sort.SliceStable(cm.TimeAxis, func(i, j int) bool {
		a, b := cm.TimeAxis[i], cm.TimeAxis[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.Column < b.Column
	})

	return cm
}
