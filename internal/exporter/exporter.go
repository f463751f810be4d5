package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samankwah/agromet-sub002/internal/model"
	"github.com/samankwah/agromet-sub002/internal/parser"
)

// Format is an export target format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string from a query parameter.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the response content type for a format.
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Filename suggests an attachment filename for a calendar export.
func Filename(cal *model.CalendarResult, format Format) string {
	base := strings.TrimSuffix(cal.SourceFile, filepath.Ext(cal.SourceFile))
	if base == "" {
		base = "calendar"
	}
	return base + "-calendar." + string(format)
}

// Write renders one calendar to w in the requested format.
func Write(w io.Writer, format Format, cal *model.CalendarResult) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, cal)
	case FormatXLSX:
		f, err := BuildXLSX(cal)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.Write(w)
	default:
		return WriteJSON(w, cal, true)
	}
}

// WriteCSV writes one calendar as flat activity rows. Period colors are
// packed into a single label=color list so the file stays one row per
// activity regardless of calendar length.
func WriteCSV(w io.Writer, cal *model.CalendarResult) error {
	cw := csv.NewWriter(w)

	header := []string{"Activity", "Start Period", "End Period", "Dominant Color", "Periods", "Source Sheet", "Source Row"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range cal.Activities {
		record := []string{
			a.Name,
			a.StartPeriod,
			a.EndPeriod,
			colorOrEmpty(a.DominantColor),
			packPeriods(a.PeriodColors),
			a.SourceSheet,
			strconv.Itoa(a.SourceRow),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the calendar result as JSON.
func WriteJSON(w io.Writer, cal *model.CalendarResult, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func colorOrEmpty(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}

func packPeriods(colors map[string]*string) string {
	labels := make([]string, 0, len(colors))
	for label := range colors {
		labels = append(labels, label)
	}
	labels = parser.SortPeriodLabels(labels)

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, label+"="+colorOrEmpty(colors[label]))
	}
	return strings.Join(parts, ";")
}

// periodAxis builds the chronological union of all period labels marked
// anywhere in the calendar.
func periodAxis(cal *model.CalendarResult) []string {
	seen := map[string]bool{}
	labels := []string{}
	for _, a := range cal.Activities {
		for label := range a.PeriodColors {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return parser.SortPeriodLabels(labels)
}
