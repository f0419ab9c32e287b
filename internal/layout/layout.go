package layout

import (
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pdf/internal/css"
	"github.com/alnah/go-html2pdf/internal/dom"
)

const (
	// pageInset is the distance from the page edge to the first child.
	pageInset = 10.0

	// defaultHeight is used when a box declares no height.
	defaultHeight = 20.0
)

// region is the area children of one parent are placed in.
type region struct {
	x, y, width float64
}

// Compute lays out root on a page of the given size. The returned box is
// the page itself, styled with the cascade of root; every rendered node
// becomes a descendant of it.
//
// Boxes are not measured, wrapped or clipped. Block boxes stack downwards,
// inline boxes advance a cursor to the right that the next block resets.
func Compute(root *dom.Node, pageWidth, pageHeight float64, sheet css.Stylesheet) *Box {
	rootStyle := css.Resolve(root, sheet, nil, nil)
	page := &Box{
		Width:   pageWidth,
		Height:  pageHeight,
		Style:   rootStyle,
		Content: Element("root"),
	}
	layoutChildren(page, root, rootStyle, sheet, region{
		x:     pageInset,
		y:     pageInset,
		width: pageWidth - 2*pageInset,
	})
	return page
}

func layoutChildren(parent *Box, node *dom.Node, parentStyle css.Style, sheet css.Stylesheet, r region) {
	y := r.y
	inline := 0.0

	for _, child := range node.Children {
		if skipped(child) {
			continue
		}
		style := css.Resolve(child, sheet, node, &parentStyle)
		if style.Display == css.DisplayNone {
			continue
		}

		b := newBox(child, style, r.width)
		if style.Display.IsInline() {
			b.X = r.x + inline + style.Margin.Left
			b.Y = y + style.Margin.Top
			inline += b.Width + style.Margin.Horizontal()
		} else {
			b.X = r.x + style.Margin.Left
			b.Y = y + style.Margin.Top
			y += b.Height + style.Margin.Vertical()
			inline = 0
		}

		if len(child.Children) > 0 {
			edge := css.Sides{
				Top:    style.Padding.Top + style.BorderWidth.Top,
				Right:  style.Padding.Right + style.BorderWidth.Right,
				Left:   style.Padding.Left + style.BorderWidth.Left,
				Bottom: style.Padding.Bottom + style.BorderWidth.Bottom,
			}
			layoutChildren(b, child, style, sheet, region{
				x:     b.X + edge.Left,
				y:     b.Y + edge.Top,
				width: b.Width - edge.Horizontal(),
			})
		}

		parent.Children = append(parent.Children, b)
	}
}

// skipped reports nodes that never produce a box whatever their style.
func skipped(n *dom.Node) bool {
	switch n.Type {
	case dom.CommentNode:
		return true
	case dom.ElementNode:
		return n.Is(atom.Style) || n.Is(atom.Link)
	}
	return false
}

func newBox(n *dom.Node, style css.Style, available float64) *Box {
	b := &Box{
		Width:  available - style.Margin.Horizontal(),
		Height: defaultHeight,
		Style:  style,
	}
	if style.Width != nil {
		b.Width = *style.Width
	}
	if style.Height != nil {
		b.Height = *style.Height
	}

	switch {
	case n.Type == dom.TextNode:
		b.Content = Text(n.Data)
	case n.Is(atom.Img):
		src, _ := n.Attribute("src")
		b.Content = Image(src)
	default:
		b.Content = Element(n.Data)
	}

	if n.Is(atom.A) {
		b.Link, _ = n.Attribute("href")
	}
	return b
}
