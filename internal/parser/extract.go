package parser

import (
	"strings"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// dataStartRow is the first grid row treated as data. Everything above is
// header or title territory regardless of where the headers matched.
const dataStartRow = 3

// ExtractTally counts row- and cell-level outcomes of one sheet for the
// workbook stats.
type ExtractTally struct {
	Extracted     int
	Excluded      int
	MarkerCells   int
	ResolvedCells int
}

// ExtractActivities walks the data rows of a sheet and derives one
// activity per usable row. Rows whose activity cell is empty, a bare row
// number, or a header echo are not data rows and pass silently; a data
// row with no marker in any time-axis column is dropped and counted, so
// no activity ever gets a fabricated time span.
func ExtractActivities(sheet *model.Sheet, cm model.ColumnMap, opts Options) ([]*model.Activity, ExtractTally) {
	var tally ExtractTally
	if !cm.HasActivityColumn() || len(cm.TimeAxis) == 0 {
		return nil, tally
	}

	var acts []*model.Activity
	for row := dataStartRow; row < sheet.Rows(); row++ {
		rawName := strings.TrimSpace(sheet.Cell(row, cm.ActivityColumn).Value.Literal())
		if rawName == "" || isBareInteger(rawName) || isHeaderEcho(rawName) {
			continue
		}
		name := CleanName(rawName)
		if name == "" {
			continue
		}

		colors := make(map[string]*string)
		var span []model.TimeAxisColumn
		var dominant *string
		for _, tac := range cm.TimeAxis {
			cell := sheet.Cell(row, tac.Column)
			text := strings.TrimSpace(cell.Value.Literal())

			marked := text != "" && isMarker(text)
			if !marked && opts.ColorOnlyMarkers && text == "" {
				_, marked = ResolveFill(cell.Fill)
			}
			if !marked {
				continue
			}

			tally.MarkerCells++
			span = append(span, tac)
			if hex, ok := ResolveFill(cell.Fill); ok {
				tally.ResolvedCells++
				c := hex
				colors[tac.Label] = &c
				if dominant == nil {
					dominant = &c
				}
			} else {
				colors[tac.Label] = nil
			}
		}

		if len(span) == 0 {
			tally.Excluded++
			continue
		}

		tally.Extracted++
		acts = append(acts, &model.Activity{
			Name:          name,
			StartPeriod:   span[0].Label,
			EndPeriod:     span[len(span)-1].Label,
			PeriodColors:  colors,
			DominantColor: dominant,
			SourceSheet:   sheet.Name,
			SourceRow:     row + 1,
		})
	}
	return acts, tally
}
