package parser

import (
	"fmt"
	"math"
	"strconv"
)

// indexedPalette is the legacy indexed color table: slots 0..63 are the
// standard workbook palette, 64 is the system auto slot (no fixed RGB, an
// empty entry falls through the strategy chain), and 65..69 are the custom
// slots the field upload templates use for activity marking.
var indexedPalette = [70]string{
	0: "000000", 1: "FFFFFF", 2: "FF0000", 3: "00FF00",
	4: "0000FF", 5: "FFFF00", 6: "FF00FF", 7: "00FFFF",
	8: "000000", 9: "FFFFFF", 10: "FF0000", 11: "00FF00",
	12: "0000FF", 13: "FFFF00", 14: "FF00FF", 15: "00FFFF",
	16: "800000", 17: "008000", 18: "000080", 19: "808000",
	20: "800080", 21: "008080", 22: "C0C0C0", 23: "808080",
	24: "9999FF", 25: "993366", 26: "FFFFCC", 27: "CCFFFF",
	28: "660066", 29: "FF8080", 30: "0066CC", 31: "CCCCFF",
	32: "000080", 33: "FF00FF", 34: "FFFF00", 35: "00FFFF",
	36: "800080", 37: "800000", 38: "008080", 39: "0000FF",
	40: "00CCFF", 41: "CCFFFF", 42: "CCFFCC", 43: "FFFF99",
	44: "99CCFF", 45: "FF99CC", 46: "CC99FF", 47: "FFCC99",
	48: "3366FF", 49: "33CCCC", 50: "99CC00", 51: "FFCC00",
	52: "FF9900", 53: "FF6600", 54: "666699", 55: "969696",
	56: "003366", 57: "339966", 58: "003300", 59: "333300",
	60: "993300", 61: "993366", 62: "333399", 63: "333333",

	64: "", // system auto, resolved by fallthrough

	65: "6B8E23", // vegetative green
	66: "A0522D", // land preparation brown
	67: "FFD700", // harvest gold
	68: "87CEEB", // irrigation blue
	69: "9ACD32", // nursery green
}

// themePalette is the default Office theme in cell-reference order:
// 0 background1, 1 text1, 2 background2, 3 text2, 4..9 accent1..6.
var themePalette = [10]string{
	"FFFFFF", "000000", "E7E6E6", "44546A",
	"4472C4", "ED7D31", "A5A5A5", "FFC000",
	"5B9BD5", "70AD47",
}

// applyTint shifts a theme color toward white (tint > 0) or black
// (tint < 0), linearly per channel.
func applyTint(hex string, tint float64) string {
	if tint == 0 {
		return hex
	}
	r, g, b, err := splitHex(hex)
	if err != nil {
		return hex
	}
	if tint > 0 {
		r = r + (255-r)*tint
		g = g + (255-g)*tint
		b = b + (255-b)*tint
	} else {
		r = r * (1 + tint)
		g = g * (1 + tint)
		b = b * (1 + tint)
	}
	return fmt.Sprintf("%02X%02X%02X", clampChannel(r), clampChannel(g), clampChannel(b))
}

func splitHex(hex string) (r, g, b float64, err error) {
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("bad hex color %q", hex)
	}
	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, err
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, err
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, err
	}
	return float64(rv), float64(gv), float64(bv), nil
}

func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
