package css

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses #RRGGBB, #RRGGBBAA, #RGB, rgb(), rgba() and SVG color
// names. Anything else is opaque black.
func ParseColor(value string) Color {
	if c, ok := lookupColor(value); ok {
		return c
	}
	return Black
}

func lookupColor(value string) (Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))

	if hex, ok := strings.CutPrefix(v, "#"); ok {
		return parseHex(hex)
	}
	if args, ok := functionArgs(v, "rgba"); ok && len(args) == 4 {
		return parseRGB(args[:3], args[3])
	}
	if args, ok := functionArgs(v, "rgb"); ok && len(args) == 3 {
		return parseRGB(args, "1")
	}
	if c, ok := colornames.Map[v]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
	}
	return Color{}, false
}

func parseHex(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, false
	}

	var ch [4]uint8
	for i := 0; i < len(hex)/2; i++ {
		n, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = uint8(n)
	}

	alpha := 1.0
	if len(hex) == 8 {
		alpha = float64(ch[3]) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}

// functionArgs splits "name(a, b, c)" into its trimmed arguments.
func functionArgs(v, name string) ([]string, bool) {
	inner, ok := strings.CutPrefix(v, name+"(")
	if !ok {
		return nil, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return nil, false
	}
	args := strings.Split(inner, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args, true
}

func parseRGB(rgb []string, alpha string) (Color, bool) {
	var ch [3]uint8
	for i, s := range rgb {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = uint8(n)
	}
	a, err := strconv.ParseFloat(alpha, 64)
	if err != nil || math.IsNaN(a) {
		return Color{}, false
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: min(max(a, 0), 1)}, true
}
