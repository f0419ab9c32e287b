package css

// tagDefault is the built-in presentation of one tag. Only non-nil sides
// and a non-zero font size are applied; display is always applied.
type tagDefault struct {
	display  Display
	margin   *Sides
	padding  *Sides
	border   *Sides
	fontSize float64
}

var tagDefaults = buildTagDefaults()

func buildTagDefaults() map[string]tagDefault {
	m := make(map[string]tagDefault)
	set := func(d tagDefault, tags ...string) {
		for _, tag := range tags {
			m[tag] = d
		}
	}

	blockMargin := &Sides{Top: 10, Bottom: 10}
	set(tagDefault{display: DisplayBlock, margin: blockMargin},
		"p", "div", "section", "article", "aside", "main", "nav", "header", "footer",
		"address", "form", "iframe", "video", "audio", "canvas")

	set(tagDefault{display: DisplayBlock, margin: &Sides{Top: 20, Bottom: 10}, fontSize: 32}, "h1")
	set(tagDefault{display: DisplayBlock, margin: &Sides{Top: 18, Bottom: 10}, fontSize: 28}, "h2")
	set(tagDefault{display: DisplayBlock, fontSize: 24}, "h3")
	set(tagDefault{display: DisplayBlock, fontSize: 20}, "h4")
	set(tagDefault{display: DisplayBlock, fontSize: 18}, "h5")
	set(tagDefault{display: DisplayBlock, fontSize: 16}, "h6")

	set(tagDefault{display: DisplayBlock, margin: &Sides{Top: 10, Bottom: 10, Left: 20}}, "ul", "ol")
	set(tagDefault{display: DisplayBlock, margin: &Sides{Top: 4, Bottom: 4, Left: 10}}, "li")

	set(tagDefault{display: DisplayBlock, margin: &Sides{}}, "table")
	set(tagDefault{display: DisplayBlock},
		"caption", "colgroup", "col", "thead", "tbody", "tfoot", "tr")
	set(tagDefault{
		display: DisplayInlineBlock,
		padding: &Sides{Top: 4, Bottom: 4, Left: 6, Right: 6},
		border:  ptr(Uniform(1)),
	}, "td", "th")

	set(tagDefault{display: DisplayInlineBlock, margin: &Sides{Top: 4, Bottom: 4, Left: 2, Right: 2}},
		"input", "label", "textarea", "select", "option", "button")
	set(tagDefault{display: DisplayInlineBlock},
		"img", "span", "a", "strong", "em", "b", "i", "u", "small", "abbr", "code", "kbd",
		"mark", "s", "sub", "sup", "var", "time", "cite", "q")

	return m
}

// applyTagDefaults sets the built-in presentation of tag on s, if any.
func applyTagDefaults(tag string, s *Style) {
	d, ok := tagDefaults[tag]
	if !ok {
		return
	}
	s.Display = d.display
	if d.margin != nil {
		s.Margin = *d.margin
	}
	if d.padding != nil {
		s.Padding = *d.padding
	}
	if d.border != nil {
		s.BorderWidth = *d.border
	}
	if d.fontSize != 0 {
		s.FontSize = d.fontSize
	}
}
