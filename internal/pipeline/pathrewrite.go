package pipeline

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pdf/internal/dom"
)

// RewriteRelativePaths makes relative image sources and stylesheet links in
// the parsed tree absolute against baseDir. It returns the number of
// attributes rewritten. If baseDir is empty, the tree is left unchanged.
//
// Rewrites:
//   - img[src]
//   - link[href] with rel="stylesheet"
//
// URLs, anchors and absolute paths are left alone. Hyperlinks (a[href])
// are not rewritten: they become PDF URI actions and keep their meaning.
func RewriteRelativePaths(root *dom.Node, baseDir string) (int, error) {
	if root == nil || baseDir == "" {
		return 0, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return 0, err
	}

	rewritten := 0
	root.Walk(func(n *dom.Node) bool {
		switch {
		case n.Is(atom.Img):
			if rewriteAttr(n, "src", absBaseDir) {
				rewritten++
			}
		case n.Is(atom.Link):
			if isStylesheetLink(n) && rewriteAttr(n, "href", absBaseDir) {
				rewritten++
			}
		}
		return true
	})
	return rewritten, nil
}

func isStylesheetLink(n *dom.Node) bool {
	rel, ok := n.Attribute("rel")
	if !ok {
		return false
	}
	for _, tok := range strings.Fields(rel) {
		if strings.EqualFold(tok, "stylesheet") {
			return true
		}
	}
	return false
}

// rewriteAttr rewrites the first attribute named attrName, the one readers
// of the tree see.
func rewriteAttr(n *dom.Node, attrName, baseDir string) bool {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if !isRelativePath(attr.Val) {
			return false
		}
		n.Attr[i].Val = filepath.Join(baseDir, filepath.FromSlash(attr.Val))
		return true
	}
	return false
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || filepath.IsAbs(path) {
		return false
	}
	lower := strings.ToLower(path)
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}
