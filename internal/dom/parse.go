package dom

import (
	"strings"
	"unicode"

	"golang.org/x/net/html/atom"
)

// voidElements never take children, whatever the source syntax says.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// rawTextElements hold unparsed text up to their closing tag.
var rawTextElements = map[atom.Atom]bool{
	atom.Style:  true,
	atom.Script: true,
}

// IsVoid reports whether tag names a void element (case-insensitive).
func IsVoid(tag string) bool {
	return voidElements[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// Parse builds a tree from src. It never fails: the result is always an
// "html" element whose children are the top-level nodes of src.
//
// Closing tags pop one open element without checking the name, so excess
// closers may pop the root itself; content opened after that is dropped.
func Parse(src string) *Node {
	p := &parser{src: []rune(src)}
	root := NewElement("html")
	p.stack = []*Node{root}

	for !p.eof() {
		r := p.src[p.pos]
		if r == '<' && p.startsMarkup() {
			p.flushText()
			p.pos++
			p.markup()
			continue
		}
		p.text = append(p.text, r)
		p.pos++
	}
	p.flushText()

	return root
}

type parser struct {
	src   []rune
	pos   int
	stack []*Node
	text  []rune
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// peek returns the rune k positions ahead of the cursor.
func (p *parser) peek(k int) (rune, bool) {
	if i := p.pos + k; i < len(p.src) {
		return p.src[i], true
	}
	return 0, false
}

func (p *parser) hasPrefix(s string) bool {
	i := p.pos
	for _, r := range s {
		if i >= len(p.src) || p.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// startsMarkup reports whether the '<' at the cursor opens a tag, a closing
// tag, a comment or a declaration. Anything else is literal text.
func (p *parser) startsMarkup() bool {
	next, ok := p.peek(1)
	if !ok {
		return false
	}
	return next == '/' || next == '!' || next == '?' || unicode.IsLetter(next)
}

func (p *parser) current() *Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) attach(n *Node) {
	if parent := p.current(); parent != nil {
		parent.AppendChild(n)
	}
}

func (p *parser) flushText() {
	s := strings.TrimSpace(string(p.text))
	p.text = p.text[:0]
	if s == "" {
		return
	}
	if s = DecodeEntities(s); s != "" {
		p.attach(NewText(s))
	}
}

// markup dispatches on the runes following a consumed '<'.
func (p *parser) markup() {
	switch {
	case p.hasPrefix("!--"):
		p.pos += 3
		p.comment()
	case p.hasPrefix("/"):
		p.pos++
		p.skipPast('>')
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	case p.hasPrefix("!"), p.hasPrefix("?"):
		p.skipPast('>')
	default:
		p.openTag()
	}
}

// comment reads up to the first "-->". An unterminated comment runs to EOF.
func (p *parser) comment() {
	start := p.pos
	for !p.eof() {
		if p.hasPrefix("-->") {
			p.attach(NewComment(string(p.src[start:p.pos])))
			p.pos += 3
			return
		}
		p.pos++
	}
	p.attach(NewComment(string(p.src[start:])))
}

func (p *parser) skipPast(r rune) {
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		if c == r {
			return
		}
	}
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) readUntil(stop func(rune) bool) string {
	start := p.pos
	for !p.eof() && !stop(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) openTag() {
	name := p.readUntil(func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == '>'
	})
	n := NewElement(strings.TrimSpace(name))

	selfClosing := false
loop:
	for {
		p.skipSpace()
		r, ok := p.peek(0)
		if !ok {
			break
		}
		switch r {
		case '>':
			p.pos++
			break loop
		case '/':
			p.pos++
			if next, ok := p.peek(0); ok && next == '>' {
				p.pos++
				selfClosing = true
				break loop
			}
		default:
			n.Attr = append(n.Attr, p.attribute())
		}
	}

	p.attach(n)
	if selfClosing || voidElements[n.DataAtom] {
		return
	}
	p.stack = append(p.stack, n)

	if rawTextElements[n.DataAtom] {
		p.rawText(n)
	}
}

// attribute reads name[=value]. Values may be double-quoted, single-quoted
// or bare; a bare value ends at whitespace or '>'.
func (p *parser) attribute() Attribute {
	var name string
	if r, _ := p.peek(0); r != '=' {
		name = p.readUntil(func(r rune) bool {
			return r == '=' || r == '/' || r == '>' || unicode.IsSpace(r)
		})
	}
	p.skipSpace()

	var value string
	if r, ok := p.peek(0); ok && r == '=' {
		p.pos++
		p.skipSpace()
		if q, ok := p.peek(0); ok && (q == '"' || q == '\'') {
			p.pos++
			value = p.readUntil(func(r rune) bool { return r == q })
			if !p.eof() {
				p.pos++
			}
		} else {
			value = p.readUntil(func(r rune) bool { return r == '>' || unicode.IsSpace(r) })
		}
	}

	return Attribute{
		Key: strings.ToLower(strings.TrimSpace(name)),
		Val: strings.TrimSpace(value),
	}
}

// rawText attaches everything up to the element's closing tag as a single
// text child, without entity decoding. The closing tag itself is left for
// the main loop.
func (p *parser) rawText(n *Node) {
	closer := []rune("</" + n.Data)
	start := p.pos
	for !p.eof() && !p.hasFoldPrefix(closer) {
		p.pos++
	}
	if s := strings.TrimSpace(string(p.src[start:p.pos])); s != "" {
		n.AppendChild(NewText(s))
	}
}

func (p *parser) hasFoldPrefix(s []rune) bool {
	if p.pos+len(s) > len(p.src) {
		return false
	}
	for i, r := range s {
		if unicode.ToLower(p.src[p.pos+i]) != r {
			return false
		}
	}
	return true
}
