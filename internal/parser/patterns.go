package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// The heuristic vocabulary lives in these tables so a new template quirk
// means a table entry, not another branch in the scan loops.

// activityHeaderKeywords mark a header cell as the activity name column.
// Matched by substring against the normalized cell text.
var activityHeaderKeywords = []string{"activity", "stage"}

// headerEchoTokens are header words that reappear inside the data region
// of messy sheets. Rows whose activity cell is one of these are skipped.
var headerEchoTokens = []string{"s/n", "stage", "activity"}

var monthAbbrevs = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// monthNames doubles as the canonical label table: matches of either form
// canonicalize to these, title-cased.
var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var (
	weekCompactRe = regexp.MustCompile(`^wk(\d+)$`)
	weekFullRe    = regexp.MustCompile(`^week\s*(\d+)$`)

	bareIntRe       = regexp.MustCompile(`^\d+$`)
	numericMarkerRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

	// leadingNumberRe strips list numbering ("3. ", "12) ", "4 - ") but not
	// ordinal words, so "2nd Weeding" keeps its name.
	leadingNumberRe = regexp.MustCompile(`^\d+\s*[.):-]\s*|^\d+\s+`)
)

// markerRule is one entry in the ordered marker table. The first rule that
// accepts the trimmed cell text makes the cell a marker.
type markerRule struct {
	name  string
	match func(text string) bool
}

var markerRules = []markerRule{
	{"single_char", func(s string) bool {
		return utf8.RuneCountInString(s) == 1
	}},
	{"symbol", func(s string) bool {
		switch strings.ToLower(s) {
		case "x", "✓", "•":
			return true
		}
		return false
	}},
	{"numeric", func(s string) bool {
		return numericMarkerRe.MatchString(s)
	}},
	{"date_range", func(s string) bool {
		return strings.Contains(s, "-")
	}},
}

// normalizeToken prepares cell text for table matching: trim and lower.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isActivityHeader reports whether a normalized header cell names the
// activity column.
func isActivityHeader(token string) bool {
	for _, kw := range activityHeaderKeywords {
		if strings.Contains(token, kw) {
			return true
		}
	}
	return false
}

// matchMonth matches an exact month token, abbreviated or full, and
// returns the month number and canonical label.
func matchMonth(token string) (int, string, bool) {
	for i, abbrev := range monthAbbrevs {
		if token == abbrev || token == monthNames[i] {
			return i + 1, canonicalMonthLabel(i + 1), true
		}
	}
	return 0, "", false
}

// matchWeek matches an exact week token ("wk3", "week 3") and returns the
// week number and canonical label.
func matchWeek(token string) (int, string, bool) {
	m := weekCompactRe.FindStringSubmatch(token)
	if m == nil {
		m = weekFullRe.FindStringSubmatch(token)
	}
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return 0, "", false
	}
	return n, canonicalWeekLabel(n), true
}

func canonicalMonthLabel(month int) string {
	name := monthNames[month-1]
	return strings.ToUpper(name[:1]) + name[1:]
}

func canonicalWeekLabel(week int) string {
	return "Week " + strconv.Itoa(week)
}

// isMarker reports whether trimmed cell text marks its period as active.
func isMarker(text string) bool {
	for _, rule := range markerRules {
		if rule.match(text) {
			return true
		}
	}
	return false
}

// isBareInteger reports a row-number artifact in the activity cell.
func isBareInteger(text string) bool {
	return bareIntRe.MatchString(text)
}

// isHeaderEcho reports a header word repeated inside the data region.
func isHeaderEcho(text string) bool {
	norm := normalizeToken(text)
	for _, tok := range headerEchoTokens {
		if norm == tok {
			return true
		}
	}
	return false
}

// CleanName normalizes a raw activity cell into a display name: strips
// leading list numbering and leading pipe characters, then trims. Runs to
// a fixed point, so cleaning an already-clean name changes nothing.
func CleanName(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := strings.TrimSpace(strings.TrimLeft(s, "|"))
		next = leadingNumberRe.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}

// PeriodSortKey returns the chronological key for a canonical period
// label: months order 1..12 before weeks. Unknown labels sort last.
func PeriodSortKey(label string) (int, bool) {
	norm := normalizeToken(label)
	if m, _, ok := matchMonth(norm); ok {
		return m, true
	}
	if w, _, ok := matchWeek(norm); ok {
		return 100 + w, true
	}
	return 0, false
}

// SortPeriodLabels orders canonical period labels chronologically,
// January..December then Week 1..Week N. The input is not modified.
func SortPeriodLabels(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	sort.SliceStable(out, func(i, j int) bool {
		ki, oki := PeriodSortKey(out[i])
		kj, okj := PeriodSortKey(out[j])
		if oki != okj {
			return oki
		}
		if ki != kj {
			return ki < kj
		}
		return out[i] < out[j]
	})
	return out
}
