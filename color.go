package gestaltwerk

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors maps a curated set of CSS-style color keywords (the
// teacher's own colors.go keyed these the same way, hyphenated, for a
// much larger palette covering the full 256-color terminal range) to hex
// RGB strings. gestaltwerk keeps the naming convention but trims the
// table to the colors actually useful to style authors writing a color
// by name; anything else is reachable through
// rgb()/rgba() or a literal hex string.
var namedColors = map[string]string{
	"black":          "#000000",
	"white":          "#ffffff",
	"red":            "#ff0000",
	"green":          "#008000",
	"blue":           "#0000ff",
	"yellow":         "#ffff00",
	"orange":         "#ffa500",
	"purple":         "#800080",
	"pink":           "#ffc0cb",
	"gray":           "#808080",
	"grey":           "#808080",
	"cyan":           "#00ffff",
	"magenta":        "#ff00ff",
	"brown":          "#a52a2a",
	"gold":           "#ffd700",
	"silver":         "#c0c0c0",
	"navy":           "#000080",
	"teal":           "#008080",
	"olive":          "#808000",
	"maroon":         "#800000",
	"lime":           "#00ff00",
	"indigo":         "#4b0082",
	"violet":         "#ee82ee",
	"crimson":        "#dc143c",
	"coral":          "#ff7f50",
	"salmon":         "#fa8072",
	"khaki":          "#f0e68c",
	"lavender":       "#e6e6fa",
	"turquoise":      "#40e0d0",
	"plum":           "#dda0dd",
	"tan":            "#d2b48c",
	"chocolate":      "#d2691e",
	"dark-blue":      "#00008b",
	"dark-green":     "#006400",
	"dark-red":       "#8b0000",
	"dark-gray":      "#a9a9a9",
	"dark-grey":      "#a9a9a9",
	"light-blue":     "#add8e6",
	"light-green":    "#90ee90",
	"light-gray":     "#d3d3d3",
	"light-grey":     "#d3d3d3",
	"midnight-blue":  "#191970",
	"forest-green":   "#228b22",
	"steel-blue":     "#4682b4",
	"hot-pink":       "#ff69b4",
	"deep-pink":      "#ff1493",
	"sky-blue":       "#87ceeb",
	"royal-blue":     "#4169e1",
	"sea-green":      "#2e8b57",
	"slate-gray":     "#708090",
	"slate-grey":     "#708090",
	"tomato":         "#ff6347",
	"orchid":         "#da70d6",
	"peru":           "#cd853f",
	"wheat":          "#f5deb3",
	"ivory":          "#fffff0",
	"beige":          "#f5f5dc",
	"azure":          "#f0ffff",
	"honeydew":       "#f0fff0",
	"snow":           "#fffafa",
	"linen":          "#faf0e6",
}

// ParseColor parses a color name or "#rgb"/"#rrggbb" hex string into a
// go-colorful Color. Unlike the teacher's own ParseColor (which returns
// a tcell.Color), this stays renderer-agnostic: a concrete Visitor is
// responsible for converting the result to its own color type.
func ParseColor(str string) (colorful.Color, error) {
	if strings.HasPrefix(str, "#") {
		c, err := colorful.Hex(expandHex(str))
		if err != nil {
			return colorful.Color{}, fmt.Errorf("gestaltwerk: invalid hex color %q: %w", str, err)
		}
		return c, nil
	}
	hex, ok := namedColors[str]
	if !ok {
		return colorful.Color{}, fmt.Errorf("gestaltwerk: unknown color name %q", str)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, err
	}
	return c, nil
}

// expandHex expands a 3-digit "#rgb" shorthand into "#rrggbb"; 6-digit
// strings pass through unchanged.
func expandHex(s string) string {
	body := s[1:]
	if len(body) != 3 {
		return s
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, c := range body {
		b.WriteRune(c)
		b.WriteRune(c)
	}
	return b.String()
}

// registerColorFuncs installs the default rgb/rgba style functions on
// every Manager, grounded directly on
// original_source/webrender/src/lib.rs's `manager.add_func_raw("rgb",
// rgb)` / `"rgba"` -- the only two color functions generic enough to be
// core defaults rather than renderer-specific registrations (see
// SPEC_FULL.md §F.4 item 3).
func registerColorFuncs(styles *Styles) {
	styles.addFunc("rgb", func(args []Value) (Value, error) {
		r, g, b, err := colorComponents3(args)
		if err != nil {
			return Value{}, err
		}
		c := colorful.Color{R: r, G: g, B: b}.Clamped()
		return String(c.Hex()), nil
	})
	styles.addFunc("rgba", func(args []Value) (Value, error) {
		if len(args) != 4 {
			return Value{}, fmt.Errorf("rgba expects 4 arguments, got %d", len(args))
		}
		r, g, b, err := colorComponents3(args[:3])
		if err != nil {
			return Value{}, err
		}
		a, ok := args[3].Float64()
		if !ok {
			return Value{}, fmt.Errorf("rgba alpha argument must be numeric")
		}
		c := colorful.Color{R: r, G: g, B: b}.Clamped()
		alpha := clamp255(a)
		return String(c.Hex() + fmt.Sprintf("%02x", alpha)), nil
	})
}

func colorComponents3(args []Value) (r, g, b float64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("rgb expects 3 arguments, got %d", len(args))
	}
	vals := make([]float64, 3)
	for i, a := range args {
		f, ok := a.Float64()
		if !ok {
			return 0, 0, 0, fmt.Errorf("rgb arguments must be numeric")
		}
		vals[i] = f / 255
	}
	return vals[0], vals[1], vals[2], nil
}

func clamp255(f float64) int {
	v := int(f)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
