// Package css parses the supported CSS subset and resolves the cascaded
// style of document nodes.
package css

// Display selects block or inline participation in layout.
type Display uint8

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayInlineBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInline:
		return "inline"
	case DisplayInlineBlock:
		return "inline-block"
	case DisplayNone:
		return "none"
	}
	return "unknown"
}

// IsInline reports whether d places boxes on the inline cursor.
func (d Display) IsInline() bool {
	return d == DisplayInline || d == DisplayInlineBlock
}

// Position is the CSS position scheme.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
)

func (p Position) String() string {
	switch p {
	case PositionStatic:
		return "static"
	case PositionRelative:
		return "relative"
	case PositionAbsolute:
		return "absolute"
	}
	return "unknown"
}

// Sides holds a four-sided length in points.
type Sides struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns Sides with all four values set to v.
func Uniform(v float64) Sides {
	return Sides{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (s Sides) Horizontal() float64 { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Sides) Vertical() float64 { return s.Top + s.Bottom }

// Color is an 8-bit RGB color with alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the default text color.
var Black = Color{A: 1}

// Translucent reports whether painting c needs an alpha graphics state.
func (c Color) Translucent() bool { return c.A < 1 }

// Style is the resolved presentation of one node. Pointer fields are unset
// when nil. Start from NewStyle, not the zero value.
type Style struct {
	Display     Display
	Margin      Sides
	Padding     Sides
	BorderWidth Sides
	FontSize    float64 // 0 means inherit
	Color       Color
	Background  *Color
	Width       *float64
	Height      *float64
	FontFamily  *string
	Position    Position
	Top         *float64
	Left        *float64
}

// NewStyle returns the default style: block, no box sides, opaque black.
func NewStyle() Style {
	return Style{Color: Black}
}

// Stylesheet maps selector keys to the style declared for them.
type Stylesheet map[string]Style

// Extend copies the rules of other into s, replacing existing selectors.
func (s Stylesheet) Extend(other Stylesheet) {
	for sel, st := range other {
		s[sel] = st
	}
}

func ptr[T any](v T) *T { return &v }
