package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// The styles part is read directly from the archive because the high-level
// reader API only exposes computed display colors. Extraction needs the raw
// descriptors (rgb vs indexed vs theme+tint) to drive the strategy chain.

const stylesPartPath = "xl/styles.xml"

type xlsxStyleSheet struct {
	Fills   xlsxFills   `xml:"fills"`
	CellXfs xlsxCellXfs `xml:"cellXfs"`
}

type xlsxFills struct {
	Fill []xlsxFill `xml:"fill"`
}

type xlsxFill struct {
	PatternFill *xlsxPatternFill `xml:"patternFill"`
}

type xlsxPatternFill struct {
	PatternType string     `xml:"patternType,attr"`
	FgColor     *xlsxColor `xml:"fgColor"`
	BgColor     *xlsxColor `xml:"bgColor"`
}

type xlsxColor struct {
	RGB     string  `xml:"rgb,attr"`
	Indexed *int    `xml:"indexed,attr"`
	Theme   *int    `xml:"theme,attr"`
	Tint    float64 `xml:"tint,attr"`
	Auto    bool    `xml:"auto,attr"`
}

type xlsxCellXfs struct {
	Xf []xlsxXf `xml:"xf"`
}

type xlsxXf struct {
	FillID *int `xml:"fillId,attr"`
}

// styleFills maps a cell's style index to its raw fill descriptor.
type styleFills struct {
	byStyle []model.Fill
}

// readStyleFills parses the styles part out of raw workbook bytes. A
// workbook without a styles part yields an empty table, not an error.
func readStyleFills(data []byte) (*styleFills, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open workbook archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == stylesPartPath {
			part = f
			break
		}
	}
	if part == nil {
		return &styleFills{}, nil
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open styles part: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read styles part: %w", err)
	}

	var sheet xlsxStyleSheet
	if err := xml.Unmarshal(raw, &sheet); err != nil {
		return nil, fmt.Errorf("decode styles part: %w", err)
	}

	fills := make([]model.Fill, len(sheet.Fills.Fill))
	for i, f := range sheet.Fills.Fill {
		fills[i] = toFill(f.PatternFill)
	}

	byStyle := make([]model.Fill, len(sheet.CellXfs.Xf))
	for i, xf := range sheet.CellXfs.Xf {
		if xf.FillID == nil {
			continue
		}
		id := *xf.FillID
		if id < 0 || id >= len(fills) {
			continue
		}
		byStyle[i] = fills[id]
	}

	return &styleFills{byStyle: byStyle}, nil
}

// fillForStyle returns the raw fill for a cell style index, or a zero fill
// for out-of-range indexes and unstyled cells.
func (s *styleFills) fillForStyle(styleID int) model.Fill {
	if styleID < 0 || styleID >= len(s.byStyle) {
		return model.Fill{}
	}
	return s.byStyle[styleID]
}

func toFill(p *xlsxPatternFill) model.Fill {
	if p == nil || p.PatternType == "none" {
		return model.Fill{}
	}
	return model.Fill{
		Background: toFillColor(p.BgColor),
		Foreground: toFillColor(p.FgColor),
	}
}

// toFillColor keeps the most specific reference present on the element:
// explicit rgb beats indexed beats theme. Auto colors carry no usable
// value and map to none.
func toFillColor(c *xlsxColor) model.FillColor {
	if c == nil || c.Auto {
		return model.FillColor{}
	}
	if c.RGB != "" {
		switch len(c.RGB) {
		case 8:
			return model.FillColor{Kind: model.FillARGB, Hex: c.RGB}
		case 6:
			return model.FillColor{Kind: model.FillRGB, Hex: c.RGB}
		}
		return model.FillColor{}
	}
	if c.Indexed != nil {
		return model.FillColor{Kind: model.FillIndexed, Index: *c.Indexed}
	}
	if c.Theme != nil {
		return model.FillColor{Kind: model.FillTheme, Theme: *c.Theme, Tint: c.Tint}
	}
	return model.FillColor{}
}
