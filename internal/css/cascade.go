package css

import (
	"strings"

	"github.com/alnah/go-html2pdf/internal/dom"
)

// Resolve computes the style of n. Later steps win:
//
//  1. built-in tag defaults
//  2. the rule for the tag name
//  3. the rule "parent > tag", when parent is an element
//  4. the rule ".C" for each class C, in attribute order
//  5. the rule "#I" for the id
//  6. the inline style attribute
//
// Finally, when parentStyle is given, an unset font size, default color or
// unset font family is inherited from it. Text and comment nodes only get
// the default style plus inheritance.
func Resolve(n *dom.Node, sheet Stylesheet, parent *dom.Node, parentStyle *Style) Style {
	style := NewStyle()

	if n.Type == dom.ElementNode {
		tag := n.Data
		applyTagDefaults(tag, &style)

		mergeRule := func(selector string) {
			if rule, ok := sheet[selector]; ok {
				Merge(&style, rule)
			}
		}

		mergeRule(tag)
		if parent != nil && parent.Type == dom.ElementNode {
			mergeRule(parent.Data + " > " + tag)
		}
		if class, ok := n.Attribute("class"); ok {
			for _, c := range strings.Fields(class) {
				mergeRule("." + c)
			}
		}
		if id, ok := n.Attribute("id"); ok && id != "" {
			mergeRule("#" + id)
		}
		if inline, ok := n.Attribute("style"); ok {
			ApplyDeclarations(inline, &style)
		}
	}

	if parentStyle != nil {
		Inherit(&style, *parentStyle)
	}
	return style
}

// Merge folds other into base. Display, box sides, position and offsets
// always overwrite. Font size overwrites when non-zero, color when not
// opaque black, and the optional fields when set.
func Merge(base *Style, other Style) {
	base.Display = other.Display
	base.Margin = other.Margin
	base.Padding = other.Padding
	base.BorderWidth = other.BorderWidth
	if other.FontSize != 0 {
		base.FontSize = other.FontSize
	}
	if other.Color != Black {
		base.Color = other.Color
	}
	if other.Background != nil {
		base.Background = other.Background
	}
	if other.Width != nil {
		base.Width = other.Width
	}
	if other.Height != nil {
		base.Height = other.Height
	}
	if other.FontFamily != nil {
		base.FontFamily = other.FontFamily
	}
	base.Position = other.Position
	base.Top = other.Top
	base.Left = other.Left
}

// Inherit copies font size, color and font family from parent where s
// leaves them at their defaults.
func Inherit(s *Style, parent Style) {
	if s.FontSize == 0 {
		s.FontSize = parent.FontSize
	}
	if s.Color == Black {
		s.Color = parent.Color
	}
	if s.FontFamily == nil {
		s.FontFamily = parent.FontFamily
	}
}
