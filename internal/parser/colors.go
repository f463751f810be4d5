package parser

import (
	"strings"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// colorStrategy is one step of the resolution chain. Strategies are tried
// in table order; the first one that produces a color wins, and a strategy
// that does not recognize the reference just passes it along.
type colorStrategy struct {
	name    string
	resolve func(ref model.FillColor) (string, bool)
}

var colorStrategies = []colorStrategy{
	{"rgb", resolveRGB},
	{"argb", resolveARGB},
	{"indexed", resolveIndexed},
	{"theme", resolveTheme},
}

func resolveRGB(ref model.FillColor) (string, bool) {
	if ref.Kind != model.FillRGB {
		return "", false
	}
	return canonicalHex(ref.Hex)
}

func resolveARGB(ref model.FillColor) (string, bool) {
	if ref.Kind != model.FillARGB {
		return "", false
	}
	if len(ref.Hex) != 8 {
		return "", false
	}
	return canonicalHex(ref.Hex[2:])
}

func resolveIndexed(ref model.FillColor) (string, bool) {
	if ref.Kind != model.FillIndexed {
		return "", false
	}
	if ref.Index < 0 || ref.Index >= len(indexedPalette) {
		return "", false
	}
	entry := indexedPalette[ref.Index]
	if entry == "" {
		return "", false
	}
	return "#" + entry, true
}

func resolveTheme(ref model.FillColor) (string, bool) {
	if ref.Kind != model.FillTheme {
		return "", false
	}
	if ref.Theme < 0 || ref.Theme >= len(themePalette) {
		return "", false
	}
	return "#" + applyTint(themePalette[ref.Theme], ref.Tint), true
}

// canonicalHex validates a 6-digit hex color and uppercases it.
func canonicalHex(hex string) (string, bool) {
	if len(hex) != 6 {
		return "", false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return "", false
		}
	}
	return "#" + strings.ToUpper(hex), true
}

// ResolveColor resolves one raw color reference to canonical "#RRGGBB"
// form. A false result means no strategy recognized the reference; the
// caller records the cell as marked-without-color rather than failing.
func ResolveColor(ref model.FillColor) (string, bool) {
	if ref.IsZero() {
		return "", false
	}
	for _, s := range colorStrategies {
		if hex, ok := s.resolve(ref); ok {
			return hex, true
		}
	}
	return "", false
}

// ResolveFill resolves a cell's fill. The background slot is consulted
// first because the field templates put the marking color there; the
// foreground slot covers writers that fill the other way around.
func ResolveFill(fill model.Fill) (string, bool) {
	if hex, ok := ResolveColor(fill.Background); ok {
		return hex, true
	}
	return ResolveColor(fill.Foreground)
}
