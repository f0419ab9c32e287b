// Package layout positions styled document nodes on a single page.
package layout

import "github.com/alnah/go-html2pdf/internal/css"

// ContentKind tells what a box paints.
type ContentKind uint8

const (
	ContentElement ContentKind = iota
	ContentText
	ContentImage
)

func (k ContentKind) String() string {
	switch k {
	case ContentElement:
		return "element"
	case ContentText:
		return "text"
	case ContentImage:
		return "image"
	}
	return "unknown"
}

// Content is the payload of a box: a tag name, a run of text, or an image
// source.
type Content struct {
	Kind  ContentKind
	Value string
}

// Element returns element content for tag.
func Element(tag string) Content { return Content{Kind: ContentElement, Value: tag} }

// Text returns text content.
func Text(s string) Content { return Content{Kind: ContentText, Value: s} }

// Image returns image content for src.
func Image(src string) Content { return Content{Kind: ContentImage, Value: src} }

// Box is a positioned rectangle in points, origin at the top-left corner of
// the page. Link is empty when the box is not a hyperlink.
type Box struct {
	X, Y          float64
	Width, Height float64
	Style         css.Style
	Link          string
	Content       Content
	Children      []*Box
}

// Walk visits b and its descendants depth-first in document order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}
