package parser

import (
	"testing"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// solidFill mimics the usual writer layout: auto background, real color
// in the foreground slot.
func solidFill(argb string) model.Fill {
	return model.Fill{
		Background: model.FillColor{Kind: model.FillIndexed, Index: 64},
		Foreground: model.FillColor{Kind: model.FillARGB, Hex: argb},
	}
}

func markedCell(text, argb string) model.Cell {
	return model.Cell{Value: model.TextValue(text), Fill: solidFill(argb)}
}

func TestExtractActivities_MarkedRow(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("S/N", "Activity", "JAN", "FEB", "MAR"),
		textRow(),
		textRow(),
		[]model.Cell{
			{Value: model.TextValue("1")},
			{Value: model.TextValue("Land Prep")},
			markedCell("X", "FFFF0000"),
			markedCell("X", "FFFF0000"),
			{},
		},
	)
	cm := DetectStructure(sheet)
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())

	if got, want := len(acts), 1; got != want {
		t.Fatalf("len(acts)=%d, want %d", got, want)
	}
	a := acts[0]
	if a.Name != "Land Prep" {
		t.Fatalf("Name=%q", a.Name)
	}
	if a.StartPeriod != "January" || a.EndPeriod != "February" {
		t.Fatalf("span=%q..%q", a.StartPeriod, a.EndPeriod)
	}
	if len(a.PeriodColors) != 2 {
		t.Fatalf("PeriodColors=%v", a.PeriodColors)
	}
	for _, label := range []string{"January", "February"} {
		c, ok := a.PeriodColors[label]
		if !ok || c == nil || *c != "#FF0000" {
			t.Fatalf("PeriodColors[%s]=%v", label, c)
		}
	}
	if a.DominantColor == nil || *a.DominantColor != "#FF0000" {
		t.Fatalf("DominantColor=%v", a.DominantColor)
	}
	if a.SourceSheet != "Maize" || a.SourceRow != 4 {
		t.Fatalf("source=%q row %d", a.SourceSheet, a.SourceRow)
	}
	if tally.Extracted != 1 || tally.Excluded != 0 || tally.MarkerCells != 2 || tally.ResolvedCells != 2 {
		t.Fatalf("tally=%+v", tally)
	}
}

func TestExtractActivities_NoMarkersDropsRow(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("S/N", "Activity", "JAN", "FEB"),
		textRow(),
		textRow(),
		textRow("1", "Land Prep", "", ""),
	)
	cm := DetectStructure(sheet)
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())

	if len(acts) != 0 {
		t.Fatalf("expected no activities, got %d", len(acts))
	}
	if got, want := tally.Excluded, 1; got != want {
		t.Fatalf("Excluded=%d, want %d", got, want)
	}
}

func TestExtractActivities_SkipsArtifactRows(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("S/N", "Activity", "JAN", "FEB"),
		textRow(),
		textRow(),
		textRow("", "", "X", "X"),
		textRow("", "7", "X", "X"),
		textRow("", "Activity", "X", "X"),
		textRow("", "S/N", "X", ""),
	)
	cm := DetectStructure(sheet)
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())

	if len(acts) != 0 {
		t.Fatalf("artifact rows extracted: %+v", acts[0])
	}
	// Artifact rows are not data rows, so nothing counts as excluded.
	if tally.Excluded != 0 {
		t.Fatalf("Excluded=%d, want 0", tally.Excluded)
	}
}

func TestExtractActivities_NumericAndRangeMarkers(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Broilers",
		textRow("Stage", "WK1", "WK2", "WK3"),
		textRow(),
		textRow(),
		[]model.Cell{
			{Value: model.TextValue("Brooding")},
			{Value: model.NumberValue(1)},
			{Value: model.NumberValue(2.5)},
			{Value: model.TextValue("12-15")},
		},
	)
	cm := DetectStructure(sheet)
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())

	if len(acts) != 1 {
		t.Fatalf("len(acts)=%d", len(acts))
	}
	if acts[0].StartPeriod != "Week 1" || acts[0].EndPeriod != "Week 3" {
		t.Fatalf("span=%q..%q", acts[0].StartPeriod, acts[0].EndPeriod)
	}
	if tally.MarkerCells != 3 {
		t.Fatalf("MarkerCells=%d", tally.MarkerCells)
	}
}

func TestExtractActivities_UnresolvedColorStaysNull(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("Activity", "JAN", "FEB"),
		textRow(),
		textRow(),
		[]model.Cell{
			{Value: model.TextValue("Weeding")},
			{Value: model.TextValue("X")},
			markedCell("X", "FF70AD47"),
		},
	)
	cm := DetectStructure(sheet)
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())

	if len(acts) != 1 {
		t.Fatalf("len(acts)=%d", len(acts))
	}
	a := acts[0]
	if c, ok := a.PeriodColors["January"]; !ok || c != nil {
		t.Fatalf("marker without fill should map to null, got %v", c)
	}
	if c := a.PeriodColors["February"]; c == nil || *c != "#70AD47" {
		t.Fatalf("PeriodColors[February]=%v", c)
	}
	// Dominant is the first resolved color in chronological order, even
	// when an earlier marked cell had no resolvable fill.
	if a.DominantColor == nil || *a.DominantColor != "#70AD47" {
		t.Fatalf("DominantColor=%v", a.DominantColor)
	}
	if tally.MarkerCells != 2 || tally.ResolvedCells != 1 {
		t.Fatalf("tally=%+v", tally)
	}
}

func TestExtractActivities_ColorOnlyMarkers(t *testing.T) {
	t.Parallel()

	row := []model.Cell{
		{Value: model.TextValue("Harvesting")},
		{Fill: solidFill("FFFFD700")},
		{},
	}
	sheet := gridSheet("Maize",
		textRow("Activity", "JAN", "FEB"),
		textRow(),
		textRow(),
		row,
	)
	cm := DetectStructure(sheet)

	// Off by default: a filled but empty cell is not a marker and the
	// row has no span at all.
	acts, tally := ExtractActivities(sheet, cm, DefaultOptions())
	if len(acts) != 0 || tally.Excluded != 1 {
		t.Fatalf("strict mode extracted: acts=%d tally=%+v", len(acts), tally)
	}

	opts := DefaultOptions()
	opts.ColorOnlyMarkers = true
	acts, tally = ExtractActivities(sheet, cm, opts)
	if len(acts) != 1 || tally.Excluded != 0 {
		t.Fatalf("lenient mode: acts=%d tally=%+v", len(acts), tally)
	}
	if acts[0].StartPeriod != "January" || acts[0].EndPeriod != "January" {
		t.Fatalf("span=%q..%q", acts[0].StartPeriod, acts[0].EndPeriod)
	}
	if c := acts[0].PeriodColors["January"]; c == nil || *c != "#FFD700" {
		t.Fatalf("PeriodColors[January]=%v", c)
	}
}

func TestExtractActivities_CleansNames(t *testing.T) {
	t.Parallel()

	sheet := gridSheet("Maize",
		textRow("Activity", "JAN"),
		textRow(),
		textRow(),
		textRow("1. Land Preparation", "X"),
		textRow("2nd Weeding", "X"),
	)
	cm := DetectStructure(sheet)
	acts, _ := ExtractActivities(sheet, cm, DefaultOptions())

	if len(acts) != 2 {
		t.Fatalf("len(acts)=%d", len(acts))
	}
	if acts[0].Name != "Land Preparation" {
		t.Fatalf("Name=%q", acts[0].Name)
	}
	if acts[1].Name != "2nd Weeding" {
		t.Fatalf("Name=%q", acts[1].Name)
	}
}
