package css

import (
	"math"
	"strconv"
	"strings"
)

// ParseStylesheet parses rules of the form "selector { declarations }".
//
// Rules are split on '}' and each rule on its first '{'. Comments are
// removed first. A comma-separated selector list registers the rule under
// every selector, and child combinators are normalized so "div>p" and
// "div > p" are the same key. At-rules are skipped. When a selector occurs
// twice the later rule replaces the earlier one.
func ParseStylesheet(text string) Stylesheet {
	sheet := Stylesheet{}
	for _, rule := range strings.Split(stripComments(text), "}") {
		selectors, body, ok := strings.Cut(rule, "{")
		if !ok {
			continue
		}
		style := NewStyle()
		ApplyDeclarations(body, &style)
		for _, sel := range strings.Split(selectors, ",") {
			sel = NormalizeSelector(sel)
			if sel == "" || strings.HasPrefix(sel, "@") {
				continue
			}
			sheet[sel] = style
		}
	}
	return sheet
}

// NormalizeSelector collapses whitespace and puts single spaces around '>'.
func NormalizeSelector(sel string) string {
	sel = strings.ReplaceAll(sel, ">", " > ")
	return strings.Join(strings.Fields(sel), " ")
}

func stripComments(text string) string {
	if !strings.Contains(text, "/*") {
		return text
	}
	var b strings.Builder
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			break
		}
		text = text[start+2+end+2:]
	}
	return b.String()
}

// ApplyDeclarations applies "property: value" pairs separated by ';' to s.
// A declaration that does not split into exactly two parts on ':' is dropped,
// as are unknown properties. A trailing !important is ignored.
func ApplyDeclarations(text string, s *Style) {
	for _, decl := range strings.Split(text, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		parts := strings.Split(decl, ":")
		if len(parts) != 2 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if v, ok := strings.CutSuffix(value, "!important"); ok {
			value = strings.TrimSpace(v)
		}
		applyProperty(s, property, value)
	}
}

func applyProperty(s *Style, property, value string) {
	keyword := strings.ToLower(value)

	switch property {
	case "display":
		switch keyword {
		case "inline":
			s.Display = DisplayInline
		case "inline-block":
			s.Display = DisplayInlineBlock
		case "none":
			s.Display = DisplayNone
		default:
			s.Display = DisplayBlock
		}
	case "margin":
		s.Margin = parseSides(value)
	case "padding":
		s.Padding = parseSides(value)
	case "border", "border-width":
		s.BorderWidth = parseSides(value)
	case "font-size":
		if v, ok := ParseLength(value); ok {
			s.FontSize = v
		}
	case "font-family":
		s.FontFamily = ptr(strings.Trim(value, `"'`))
	case "color":
		s.Color = ParseColor(value)
	case "background", "background-color":
		if keyword == "none" || keyword == "transparent" {
			s.Background = nil
			return
		}
		s.Background = ptr(ParseColor(value))
	case "width":
		s.Width = optionalLength(value)
	case "height":
		s.Height = optionalLength(value)
	case "position":
		switch keyword {
		case "relative":
			s.Position = PositionRelative
		case "absolute":
			s.Position = PositionAbsolute
		default:
			s.Position = PositionStatic
		}
	case "top":
		s.Top = optionalLength(value)
	case "left":
		s.Left = optionalLength(value)
	}
}

// ParseLength parses a number with an optional px, pt, %, em or rem suffix.
// Every unit is taken as points.
func ParseLength(value string) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, unit := range []string{"px", "pt", "%", "rem", "em"} {
		if trimmed, ok := strings.CutSuffix(v, unit); ok {
			v = trimmed
			break
		}
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func optionalLength(value string) *float64 {
	if v, ok := ParseLength(value); ok {
		return &v
	}
	return nil
}

// parseSides reads 1, 2 or 4 lengths. Tokens that are not lengths are
// ignored; any other count yields zero sides.
func parseSides(value string) Sides {
	var vals []float64
	for _, tok := range strings.Fields(value) {
		if v, ok := ParseLength(tok); ok {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 1:
		return Uniform(vals[0])
	case 2:
		return Sides{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 4:
		return Sides{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
	return Sides{}
}
