// Package dom holds the document tree produced by Parse.
//
// The tree is owned top-down: a node owns its children and keeps no parent
// pointer. Consumers that need the parent pass it along while walking.
package dom

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// NodeType distinguishes the three node variants.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	}
	return "unknown"
}

// Attribute is one name/value pair in source order.
type Attribute struct {
	Key, Val string
}

// Node is an element, text, or comment.
//
// For elements Data is the lower-cased tag name and DataAtom its atom (zero
// for unknown tags). For text and comments Data is the content; text content
// has entities decoded.
type Node struct {
	Type     NodeType
	DataAtom atom.Atom
	Data     string
	Attr     []Attribute
	Children []*Node
}

// NewElement returns an element node for tag.
func NewElement(tag string, attrs ...Attribute) *Node {
	tag = strings.ToLower(tag)
	return &Node{Type: ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag, Attr: attrs}
}

// NewText returns a text node.
func NewText(s string) *Node {
	return &Node{Type: TextNode, Data: s}
}

// NewComment returns a comment node.
func NewComment(s string) *Node {
	return &Node{Type: CommentNode, Data: s}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Attribute returns the value of the first attribute named name.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Is reports whether n is an element with the given atom.
func (n *Node) Is(a atom.Atom) bool {
	return n != nil && n.Type == ElementNode && n.DataAtom == a
}

// Text concatenates the content of all descendant text nodes in order.
func (n *Node) Text() string {
	if n.Type == TextNode {
		return n.Data
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the node just visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
