package parser

import "testing"

func TestMatchMonth_AbbrevAndFull(t *testing.T) {
	t.Parallel()

	if m, label, ok := matchMonth("jan"); !ok || m != 1 || label != "January" {
		t.Fatalf("jan => (%d, %q, %v)", m, label, ok)
	}
	if m, label, ok := matchMonth("december"); !ok || m != 12 || label != "December" {
		t.Fatalf("december => (%d, %q, %v)", m, label, ok)
	}
	if m, label, ok := matchMonth("may"); !ok || m != 5 || label != "May" {
		t.Fatalf("may => (%d, %q, %v)", m, label, ok)
	}
}

func TestMatchMonth_ExactTokenOnly(t *testing.T) {
	t.Parallel()

	// Substrings must not match: "janitor" is not January.
	if _, _, ok := matchMonth("janitor"); ok {
		t.Fatalf("janitor matched as month")
	}
	if _, _, ok := matchMonth("mayo"); ok {
		t.Fatalf("mayo matched as month")
	}
	if _, _, ok := matchMonth(""); ok {
		t.Fatalf("empty token matched as month")
	}
}

func TestMatchWeek(t *testing.T) {
	t.Parallel()

	if w, label, ok := matchWeek("wk3"); !ok || w != 3 || label != "Week 3" {
		t.Fatalf("wk3 => (%d, %q, %v)", w, label, ok)
	}
	if w, label, ok := matchWeek("week 12"); !ok || w != 12 || label != "Week 12" {
		t.Fatalf("week 12 => (%d, %q, %v)", w, label, ok)
	}
	if w, label, ok := matchWeek("week4"); !ok || w != 4 || label != "Week 4" {
		t.Fatalf("week4 => (%d, %q, %v)", w, label, ok)
	}
	if _, _, ok := matchWeek("weekend"); ok {
		t.Fatalf("weekend matched as week")
	}
	if _, _, ok := matchWeek("wk"); ok {
		t.Fatalf("wk without number matched as week")
	}
	if _, _, ok := matchWeek("week 0"); ok {
		t.Fatalf("week 0 matched as week")
	}
}

func TestIsActivityHeader(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"activity", "activities", "farm activity", "stage", "production stage"} {
		if !isActivityHeader(token) {
			t.Fatalf("%q not recognized as activity header", token)
		}
	}
	for _, token := range []string{"s/n", "jan", "remarks", ""} {
		if isActivityHeader(token) {
			t.Fatalf("%q wrongly recognized as activity header", token)
		}
	}
}

func TestIsMarker(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"X", "x", "✓", "•", "7", "3.5", "12-15", "Jun-Aug", "*"} {
		if !isMarker(text) {
			t.Fatalf("%q not recognized as marker", text)
		}
	}
	for _, text := range []string{"Land preparation", "ongoing", "no"} {
		if isMarker(text) {
			t.Fatalf("%q wrongly recognized as marker", text)
		}
	}
}

// Every named rule must fire on its own canonical sample, independent of
// the rest of the table.
func TestMarkerRules_Vocabulary(t *testing.T) {
	t.Parallel()

	samples := map[string]string{
		"single_char": "*",
		"symbol":      "✓",
		"numeric":     "3.5",
		"date_range":  "Jun-Aug",
	}
	for _, rule := range markerRules {
		sample, ok := samples[rule.name]
		if !ok {
			t.Fatalf("no sample for rule %s", rule.name)
		}
		if !rule.match(sample) {
			t.Fatalf("rule %s rejects %q", rule.name, sample)
		}
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	if got := CleanName("1. Land Preparation"); got != "Land Preparation" {
		t.Fatalf("got %q", got)
	}
	if got := CleanName("12) Fertilizer Application"); got != "Fertilizer Application" {
		t.Fatalf("got %q", got)
	}
	if got := CleanName("3 Harvesting"); got != "Harvesting" {
		t.Fatalf("got %q", got)
	}
	if got := CleanName("| Brooding"); got != "Brooding" {
		t.Fatalf("got %q", got)
	}
	if got := CleanName("  2 - Vaccination  "); got != "Vaccination" {
		t.Fatalf("got %q", got)
	}
	// Ordinal words survive: the prefix rule only eats list numbering.
	if got := CleanName("2nd Weeding"); got != "2nd Weeding" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1. Land Preparation",
		"| 4) Transplanting",
		"2nd Weeding",
		"Harvesting",
		"",
	}
	for _, in := range inputs {
		once := CleanName(in)
		if twice := CleanName(once); twice != once {
			t.Fatalf("CleanName(%q) not idempotent: %q then %q", in, once, twice)
		}
	}
}

func TestHeaderEchoAndBareInteger(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"S/N", "Activity", "STAGE", "stage"} {
		if !isHeaderEcho(text) {
			t.Fatalf("%q not recognized as header echo", text)
		}
	}
	if isHeaderEcho("Land Preparation") {
		t.Fatalf("activity name flagged as header echo")
	}

	if !isBareInteger("42") {
		t.Fatalf("42 not a bare integer")
	}
	if isBareInteger("42a") || isBareInteger("4.2") || isBareInteger("") {
		t.Fatalf("non-integers flagged as bare integer")
	}
}

func TestSortPeriodLabels(t *testing.T) {
	t.Parallel()

	got := SortPeriodLabels([]string{"Week 10", "March", "Week 2", "January", "December"})
	want := []string{"January", "March", "December", "Week 2", "Week 10"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
