package model

// CalendarType classifies how a sheet's time axis is anchored.
type CalendarType string

const (
	// CalendarSeasonal follows fixed calendar months (crop calendars).
	CalendarSeasonal CalendarType = "seasonal"
	// CalendarCycle follows relative production weeks (poultry cycles).
	CalendarCycle CalendarType = "cycle"
)

// Activity is one extracted calendar row: a named activity and the periods
// it spans, with the resolved fill color per marked period. A nil color
// means the cell was marked but its fill could not be resolved.
type Activity struct {
	ID            string             `json:"id,omitempty"`
	Name          string             `json:"name"`
	StartPeriod   string             `json:"startPeriod"`
	EndPeriod     string             `json:"endPeriod"`
	PeriodColors  map[string]*string `json:"periodColors"`
	DominantColor *string            `json:"dominantColor"`
	SourceSheet   string             `json:"sourceSheet"`
	SourceRow     int                `json:"sourceRow"`
}

// Diagnostic is a non-fatal per-sheet note surfaced to the caller instead
// of failing the upload.
type Diagnostic struct {
	Sheet string `json:"sheet"`
	Note  string `json:"note"`
}

// ExtractionStats summarizes one parse across all sheets.
type ExtractionStats struct {
	SheetsProcessed     int     `json:"sheetsProcessed"`
	ActivitiesExtracted int     `json:"activitiesExtracted"`
	ActivitiesExcluded  int     `json:"activitiesExcluded"`
	ColorsResolvedRatio float64 `json:"colorsResolvedRatio"`
}

// CalendarResult is the complete product of one upload parse.
type CalendarResult struct {
	ID           string          `json:"id,omitempty"`
	SourceFile   string          `json:"sourceFile"`
	CalendarType CalendarType    `json:"calendarType"`
	Hints        UploadHints     `json:"hints"`
	Activities   []*Activity     `json:"activities"`
	ColorPalette []string        `json:"colorPalette"`
	Stats        ExtractionStats `json:"stats"`
	Diagnostics  []Diagnostic    `json:"diagnostics"`
}

// CalendarSummary is the list-view projection of a stored calendar.
type CalendarSummary struct {
	ID            string       `json:"id"`
	SourceFile    string       `json:"sourceFile"`
	CalendarType  CalendarType `json:"calendarType"`
	Region        string       `json:"region"`
	District      string       `json:"district"`
	Commodity     string       `json:"commodity"`
	PoultryType   string       `json:"poultryType"`
	Year          int          `json:"year"`
	ActivityCount int          `json:"activityCount"`
	CreatedAt     string       `json:"createdAt"`
}
