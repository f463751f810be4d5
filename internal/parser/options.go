// Package parser turns uploaded spreadsheet bytes into calendar results.
// The pipeline is pure: no I/O beyond the bytes handed in, no logging, and
// the same input always produces the same activities.
package parser

// Limits are the resource ceilings enforced while loading. Exceeding any
// of them fails the parse with ErrResourceLimit.
type Limits struct {
	// MaxFileBytes caps the upload size. Zero means no cap.
	MaxFileBytes int64
	// MaxSheets caps the worksheet count of one workbook.
	MaxSheets int
	// MaxCellsPerSheet caps rows*columns of one sheet's grid.
	MaxCellsPerSheet int
}

// DefaultLimits matches the ceilings the service applies to uploads.
func DefaultLimits() Limits {
	return Limits{
		MaxFileBytes:     20 << 20,
		MaxSheets:        30,
		MaxCellsPerSheet: 500000,
	}
}

// Options configures a single parse.
type Options struct {
	// ColorOnlyMarkers treats an empty cell that carries a resolvable
	// fill as a marker. Off by default: the field templates always put
	// text in marked cells, and color-only marking pulls in stray
	// formatting on loose sheets.
	ColorOnlyMarkers bool
	// Limits are the load-time resource ceilings.
	Limits Limits
}

// DefaultOptions returns the options the service uses for uploads.
func DefaultOptions() Options {
	return Options{
		ColorOnlyMarkers: false,
		Limits:           DefaultLimits(),
	}
}
