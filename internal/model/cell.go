package model

import "strconv"

// CellValueKind tags the literal content of a grid cell.
type CellValueKind int

const (
	CellEmpty CellValueKind = iota
	CellText
	CellNumber
)

// CellValue is the literal cell content. The loader never coerces between
// kinds: "1" read as text stays text, 1 read as a number stays a number.
type CellValue struct {
	Kind   CellValueKind
	Text   string
	Number float64
}

func EmptyValue() CellValue {
	return CellValue{Kind: CellEmpty}
}

func TextValue(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

func NumberValue(f float64) CellValue {
	return CellValue{Kind: CellNumber, Number: f}
}

func (v CellValue) IsEmpty() bool {
	return v.Kind == CellEmpty
}

// Literal renders the value the way it appears in the sheet, for matching
// against header and marker tables. Numbers render without an exponent.
func (v CellValue) Literal() string {
	switch v.Kind {
	case CellText:
		return v.Text
	case CellNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// FillKind tags the encoding of one raw fill color reference.
type FillKind int

const (
	FillNone FillKind = iota
	FillRGB     // 6-digit RRGGBB
	FillARGB    // 8-digit AARRGGBB
	FillIndexed // legacy palette index
	FillTheme   // theme slot plus tint
)

// FillColor is a single color reference exactly as the styles part encodes
// it. Resolution to a display color happens later, in the parser.
type FillColor struct {
	Kind  FillKind
	Hex   string
	Index int
	Theme int
	Tint  float64
}

func (c FillColor) IsZero() bool {
	return c.Kind == FillNone
}

// Fill is a cell's raw pattern fill: both color slots are kept because
// real files are split on which slot carries the marking color.
type Fill struct {
	Background FillColor
	Foreground FillColor
}

func (f Fill) IsZero() bool {
	return f.Background.IsZero() && f.Foreground.IsZero()
}

// Cell is one grid cell: literal value plus raw fill descriptor.
type Cell struct {
	Value CellValue
	Fill  Fill
}

// Sheet is a parsed worksheet as a dense zero-based (row, column) grid.
// Rows are padded to a common width so styled-but-empty cells survive.
type Sheet struct {
	Name string
	Grid [][]Cell
}

func (s *Sheet) Rows() int {
	return len(s.Grid)
}

func (s *Sheet) Cols() int {
	if len(s.Grid) == 0 {
		return 0
	}
	return len(s.Grid[0])
}

// Cell returns the cell at (row, col), or a zero cell when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Grid) {
		return Cell{}
	}
	if col < 0 || col >= len(s.Grid[row]) {
		return Cell{}
	}
	return s.Grid[row][col]
}

// UploadHints is the metadata bundle submitted alongside an upload. Hints
// never gate extraction; they only bias classification and get persisted.
type UploadHints struct {
	Region      string `json:"region"`
	District    string `json:"district"`
	Commodity   string `json:"commodity"`
	PoultryType string `json:"poultryType"`
	Year        int    `json:"year"`
}

// HasCommodity reports whether a crop commodity hint was supplied.
func (h UploadHints) HasCommodity() bool {
	return h.Commodity != ""
}

// HasPoultry reports whether a poultry production hint was supplied.
func (h UploadHints) HasPoultry() bool {
	return h.PoultryType != ""
}

// Workbook is one upload after loading: every sheet, plus the hints that
// arrived with the file.
type Workbook struct {
	Filename string
	Hints    UploadHints
	Sheets   []*Sheet
}

// PeriodKind distinguishes the two time-axis families.
type PeriodKind int

const (
	PeriodMonth PeriodKind = iota
	PeriodWeek
)

// TimeAxisColumn is one detected period column. Seq is the chronological
// key within its kind: month number 1..12 or week number.
type TimeAxisColumn struct {
	Column int
	Label  string
	Kind   PeriodKind
	Seq    int
}

// ColumnMap locates the activity column and the ordered time axis of one
// sheet. ActivityColumn is -1 when no header matched.
type ColumnMap struct {
	ActivityColumn int
	TimeAxis       []TimeAxisColumn
}

// HasActivityColumn reports whether an activity header was found.
func (m ColumnMap) HasActivityColumn() bool {
	return m.ActivityColumn >= 0
}

// MonthColumns counts time-axis columns labeled with calendar months.
func (m ColumnMap) MonthColumns() int {
	n := 0
	for _, c := range m.TimeAxis {
		if c.Kind == PeriodMonth {
			n++
		}
	}
	return n
}

// WeekColumns counts time-axis columns labeled with production weeks.
func (m ColumnMap) WeekColumns() int {
	n := 0
	for _, c := range m.TimeAxis {
		if c.Kind == PeriodWeek {
			n++
		}
	}
	return n
}
