package parser

import (
	"testing"

	"github.com/samankwah/agromet-sub002/internal/model"
)

func axisOf(months, weeks int) model.ColumnMap {
	cm := model.ColumnMap{ActivityColumn: 0}
	for i := 0; i < months; i++ {
		cm.TimeAxis = append(cm.TimeAxis, model.TimeAxisColumn{
			Column: 1 + i, Label: canonicalMonthLabel(i + 1), Kind: model.PeriodMonth, Seq: i + 1,
		})
	}
	for i := 0; i < weeks; i++ {
		cm.TimeAxis = append(cm.TimeAxis, model.TimeAxisColumn{
			Column: 1 + months + i, Label: canonicalWeekLabel(i + 1), Kind: model.PeriodWeek, Seq: i + 1,
		})
	}
	return cm
}

func TestClassify_Majority(t *testing.T) {
	t.Parallel()

	if got := Classify(axisOf(12, 0), model.UploadHints{}); got != model.CalendarSeasonal {
		t.Fatalf("12 months => %v", got)
	}
	if got := Classify(axisOf(0, 8), model.UploadHints{}); got != model.CalendarCycle {
		t.Fatalf("8 weeks => %v", got)
	}
	if got := Classify(axisOf(6, 2), model.UploadHints{}); got != model.CalendarSeasonal {
		t.Fatalf("6 months 2 weeks => %v", got)
	}
	if got := Classify(axisOf(2, 6), model.UploadHints{}); got != model.CalendarCycle {
		t.Fatalf("2 months 6 weeks => %v", got)
	}
}

func TestClassify_TieGoesToCycle(t *testing.T) {
	t.Parallel()

	if got := Classify(axisOf(3, 3), model.UploadHints{}); got != model.CalendarCycle {
		t.Fatalf("3 months 3 weeks => %v", got)
	}
}

func TestClassify_HintSettlesNearEqual(t *testing.T) {
	t.Parallel()

	poultry := model.UploadHints{PoultryType: "broilers"}
	crop := model.UploadHints{Commodity: "maize"}

	if got := Classify(axisOf(3, 3), crop); got != model.CalendarSeasonal {
		t.Fatalf("near-equal with commodity hint => %v", got)
	}
	if got := Classify(axisOf(4, 3), poultry); got != model.CalendarCycle {
		t.Fatalf("near-equal with poultry hint => %v", got)
	}

	// A clear majority is never overridden by a hint.
	if got := Classify(axisOf(10, 1), poultry); got != model.CalendarSeasonal {
		t.Fatalf("clear month majority with poultry hint => %v", got)
	}
	if got := Classify(axisOf(1, 10), crop); got != model.CalendarCycle {
		t.Fatalf("clear week majority with commodity hint => %v", got)
	}
}

func TestClassify_NoAxisFallsBackToHints(t *testing.T) {
	t.Parallel()

	if got := Classify(axisOf(0, 0), model.UploadHints{PoultryType: "layers"}); got != model.CalendarCycle {
		t.Fatalf("no axis with poultry hint => %v", got)
	}
	if got := Classify(axisOf(0, 0), model.UploadHints{}); got != model.CalendarSeasonal {
		t.Fatalf("no axis without hints => %v", got)
	}
}

func TestClassifyWorkbook(t *testing.T) {
	t.Parallel()

	s, c := model.CalendarSeasonal, model.CalendarCycle

	if got := classifyWorkbook([]model.CalendarType{s, s, c}, model.UploadHints{}); got != s {
		t.Fatalf("seasonal majority => %v", got)
	}
	if got := classifyWorkbook([]model.CalendarType{s, c}, model.UploadHints{}); got != c {
		t.Fatalf("tie => %v", got)
	}
	if got := classifyWorkbook(nil, model.UploadHints{PoultryType: "broilers"}); got != c {
		t.Fatalf("no sheets with poultry hint => %v", got)
	}
	if got := classifyWorkbook(nil, model.UploadHints{}); got != s {
		t.Fatalf("no sheets without hints => %v", got)
	}
}
