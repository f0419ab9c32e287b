package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html/atom"
)

func TestNode_Attribute(t *testing.T) {
	t.Parallel()

	n := NewElement("div", Attribute{"class", "a"}, Attribute{"id", "x"}, Attribute{"class", "b"})

	got, ok := n.Attribute("class")
	assert.True(t, ok)
	assert.Equal(t, "a", got, "first match wins")

	_, ok = n.Attribute("style")
	assert.False(t, ok)
}

func TestNode_Is(t *testing.T) {
	t.Parallel()

	assert.True(t, NewElement("IMG").Is(atom.Img))
	assert.False(t, NewElement("img").Is(atom.A))
	assert.False(t, NewText("img").Is(atom.Img))
	assert.False(t, (*Node)(nil).Is(atom.Img))
	assert.Zero(t, NewElement("my-widget").DataAtom)
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	root := Parse("<div>a<span>b<!-- c --></span>d</div>")
	assert.Equal(t, "abd", root.Text())
	assert.Equal(t, "raw", NewText("raw").Text())
}

func TestNode_Walk(t *testing.T) {
	t.Parallel()

	root := Parse("<div><p>x</p></div><ul><li>y</li></ul>")

	var visited []string
	root.Walk(func(n *Node) bool {
		if n.Type == ElementNode {
			visited = append(visited, n.Data)
		}
		return !n.Is(atom.Div)
	})

	assert.Equal(t, []string{"html", "div", "ul", "li"}, visited)
}

func TestNodeType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "element", ElementNode.String())
	assert.Equal(t, "text", TextNode.String())
	assert.Equal(t, "comment", CommentNode.String())
	assert.Equal(t, "unknown", NodeType(9).String())
}
