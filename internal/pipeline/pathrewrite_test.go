package pipeline

import (
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pdf/internal/dom"
)

func testBaseDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

// firstAttr returns the named attribute of the first element with atom a.
func firstAttr(root *dom.Node, a atom.Atom, name string) string {
	var val string
	found := false
	root.Walk(func(n *dom.Node) bool {
		if found {
			return false
		}
		if n.Is(a) {
			val, _ = n.Attribute(name)
			found = true
			return false
		}
		return true
	})
	return val
}

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	baseDir := testBaseDir()
	logo := filepath.Join(baseDir, "images", "logo.png")

	tests := []struct {
		name  string
		html  string
		atom  atom.Atom
		attr  string
		want  string
		count int
	}{
		{"relative image with dot slash", `<img src="./images/logo.png">`, atom.Img, "src", logo, 1},
		{"relative image without dot slash", `<img src="images/logo.png">`, atom.Img, "src", logo, 1},
		{"parent directory is resolved", `<img src="../shared/x.png">`, atom.Img, "src", filepath.Join(filepath.Dir(baseDir), "shared", "x.png"), 1},
		{"absolute path unchanged", `<img src="/abs/logo.png">`, atom.Img, "src", "/abs/logo.png", 0},
		{"http URL unchanged", `<img src="https://example.com/logo.png">`, atom.Img, "src", "https://example.com/logo.png", 0},
		{"data URI unchanged", `<img src="data:image/png;base64,AAAA">`, atom.Img, "src", "data:image/png;base64,AAAA", 0},
		{"stylesheet link rewritten", `<link rel="stylesheet" href="css/site.css">`, atom.Link, "href", filepath.Join(baseDir, "css", "site.css"), 1},
		{"non-stylesheet link unchanged", `<link rel="icon" href="favicon.ico">`, atom.Link, "href", "favicon.ico", 0},
		{"hyperlink unchanged", `<a href="other.html">next</a>`, atom.A, "href", "other.html", 0},
		{"anchor unchanged", `<img src="#frag">`, atom.Img, "src", "#frag", 0},
		{"other attributes preserved", `<img src="./logo.png" alt="Logo" width="100">`, atom.Img, "alt", "Logo", 1},
		{"nested image", `<div><p><img src="a.png"></p></div>`, atom.Img, "src", filepath.Join(baseDir, "a.png"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := dom.Parse(tt.html)
			count, err := RewriteRelativePaths(root, baseDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if count != tt.count {
				t.Errorf("RewriteRelativePaths() count = %d, want %d", count, tt.count)
			}
			if got := firstAttr(root, tt.atom, tt.attr); got != tt.want {
				t.Errorf("%s[%s] = %q, want %q", tt.atom, tt.attr, got, tt.want)
			}
		})
	}
}

func TestRewriteRelativePaths_EmptyBaseDir(t *testing.T) {
	t.Parallel()

	root := dom.Parse(`<img src="./logo.png">`)
	count, err := RewriteRelativePaths(root, "")
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if count != 0 {
		t.Errorf("RewriteRelativePaths() count = %d, want 0", count)
	}
	if got := firstAttr(root, atom.Img, "src"); got != "./logo.png" {
		t.Errorf("img[src] = %q, want unchanged", got)
	}
}

func TestRewriteRelativePaths_NilRoot(t *testing.T) {
	t.Parallel()

	if count, err := RewriteRelativePaths(nil, testBaseDir()); err != nil || count != 0 {
		t.Errorf("RewriteRelativePaths(nil) = %d, %v; want 0, nil", count, err)
	}
}

func TestRewriteRelativePaths_KeepsTreeShape(t *testing.T) {
	t.Parallel()

	// Stray cells, excess closing tags and unknown entities keep the shape
	// Parse gave them.
	src := `<td>cell</td><span>x</span></div><p>A &foo; B</p><img src="i.png">`
	want := dom.Parse(src)
	got := dom.Parse(src)
	if _, err := RewriteRelativePaths(got, testBaseDir()); err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	if got.Text() != want.Text() {
		t.Errorf("Text() = %q, want %q", got.Text(), want.Text())
	}
	if countElements(got) != countElements(want) {
		t.Errorf("element count = %d, want %d", countElements(got), countElements(want))
	}
}

func countElements(root *dom.Node) int {
	n := 0
	root.Walk(func(c *dom.Node) bool {
		if c.Type == dom.ElementNode {
			n++
		}
		return true
	})
	return n
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"images/a.png", true},
		{"./a.png", true},
		{"../a.png", true},
		{"", false},
		{"#top", false},
		{"/abs/a.png", false},
		{"http://x/a.png", false},
		{"HTTPS://x/a.png", false},
		{"file:///a.png", false},
		{"data:image/png;base64,", false},
		{"mailto:a@b.c", false},
		{"//cdn/a.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
