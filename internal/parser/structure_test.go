package parser

import (
	"testing"

	"github.com/samankwah/agromet-sub002/internal/model"
)

func textRow(cells ...string) []model.Cell {
	row := make([]model.Cell, len(cells))
	for i, c := range cells {
		if c != "" {
			row[i] = model.Cell{Value: model.TextValue(c)}
		}
	}
	return row
}

func gridSheet(name string, rows ...[]model.Cell) *model.Sheet {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	grid := make([][]model.Cell, len(rows))
	for i, r := range rows {
		padded := make([]model.Cell, width)
		copy(padded, r)
		grid[i] = padded
	}
	return &model.Sheet{Name: name, Grid: grid}
}

func TestDetectStructure_Basic(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("S/N", "Activity", "JAN", "FEB", "MAR"),
	)
	cm := DetectStructure(sheet)

	if got, want := cm.ActivityColumn, 1; got != want {
		t.Fatalf("ActivityColumn=%d, want %d", got, want)
	}
	if got, want := len(cm.TimeAxis), 3; got != want {
		t.Fatalf("len(TimeAxis)=%d, want %d", got, want)
	}
	wantLabels := []string{"January", "February", "March"}
	for i, w := range wantLabels {
		if cm.TimeAxis[i].Label != w {
			t.Fatalf("TimeAxis[%d].Label=%q, want %q", i, cm.TimeAxis[i].Label, w)
		}
	}
}

func TestDetectStructure_ReordersChronologically(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("Activity", "MAR", "JAN", "FEB"),
	)
	cm := DetectStructure(sheet)

	if got, want := len(cm.TimeAxis), 3; got != want {
		t.Fatalf("len(TimeAxis)=%d, want %d", got, want)
	}
	if cm.TimeAxis[0].Label != "January" || cm.TimeAxis[0].Column != 2 {
		t.Fatalf("TimeAxis[0]=%+v", cm.TimeAxis[0])
	}
	if cm.TimeAxis[1].Label != "February" || cm.TimeAxis[1].Column != 3 {
		t.Fatalf("TimeAxis[1]=%+v", cm.TimeAxis[1])
	}
	if cm.TimeAxis[2].Label != "March" || cm.TimeAxis[2].Column != 1 {
		t.Fatalf("TimeAxis[2]=%+v", cm.TimeAxis[2])
	}
}

func TestDetectStructure_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("Activity", "Stage", "JAN", "JAN"),
	)
	cm := DetectStructure(sheet)

	if got, want := cm.ActivityColumn, 0; got != want {
		t.Fatalf("ActivityColumn=%d, want %d", got, want)
	}
	if got, want := len(cm.TimeAxis), 1; got != want {
		t.Fatalf("len(TimeAxis)=%d, want %d", got, want)
	}
	if cm.TimeAxis[0].Column != 2 {
		t.Fatalf("duplicate JAN should keep column 2, got %d", cm.TimeAxis[0].Column)
	}
}

func TestDetectStructure_ScansOnlyHeaderRows(t *testing.T) {
	t.Parallel()

	// Headers on the third row are still found.
	sheet := gridSheet("Maize",
		textRow("Crop Calendar 2025"),
		textRow(""),
		textRow("Activity", "JAN", "FEB"),
	)
	cm := DetectStructure(sheet)
	if cm.ActivityColumn != 0 || len(cm.TimeAxis) != 2 {
		t.Fatalf("third-row headers missed: %+v", cm)
	}

	// Headers on the fourth row are data territory, not headers.
	sheet = gridSheet("Maize",
		textRow("Crop Calendar 2025"),
		textRow(""),
		textRow(""),
		textRow("Activity", "JAN", "FEB"),
	)
	cm = DetectStructure(sheet)
	if cm.HasActivityColumn() || len(cm.TimeAxis) != 0 {
		t.Fatalf("fourth-row cells treated as headers: %+v", cm)
	}
}

func TestDetectStructure_MixedAxisAndCase(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Broilers",
		textRow("stage", "January", "WEEK 2", "wk1"),
	)
	cm := DetectStructure(sheet)

	if got, want := cm.MonthColumns(), 1; got != want {
		t.Fatalf("MonthColumns=%d, want %d", got, want)
	}
	if got, want := cm.WeekColumns(), 2; got != want {
		t.Fatalf("WeekColumns=%d, want %d", got, want)
	}
	// Months sort ahead of weeks, weeks by number.
	if cm.TimeAxis[0].Label != "January" || cm.TimeAxis[1].Label != "Week 1" || cm.TimeAxis[2].Label != "Week 2" {
		t.Fatalf("axis order wrong: %+v", cm.TimeAxis)
	}
}

func TestDetectStructure_NoFalsePositives(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Notes",
		textRow("janitor", "mayhem", "weekend", "remarks"),
	)
	cm := DetectStructure(sheet)
	if cm.HasActivityColumn() {
		t.Fatalf("ActivityColumn=%d on unrelated headers", cm.ActivityColumn)
	}
	if len(cm.TimeAxis) != 0 {
		t.Fatalf("TimeAxis=%+v on unrelated headers", cm.TimeAxis)
	}
}

func TestDetectStructure_EmptySheet(t *testing.T) {
	t.Parallel()

	cm := DetectStructure(&model.Sheet{Name: "Blank"})
	if cm.HasActivityColumn() || len(cm.TimeAxis) != 0 {
		t.Fatalf("empty sheet produced structure: %+v", cm)
	}
}
