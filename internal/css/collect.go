package css

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-html2pdf/internal/dom"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Collector gathers the stylesheets a document embeds or links.
type Collector struct {
	// BaseDir anchors relative link hrefs. Empty means the working directory.
	BaseDir string

	// ReadFile reads linked stylesheets. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	Logger *zap.Logger
}

// NewCollector returns a Collector reading from baseDir. A nil logger is
// replaced by a no-op logger.
func NewCollector(baseDir string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{BaseDir: baseDir, Logger: logger}
}

// CollectStylesheets gathers the stylesheets of root relative to the working
// directory.
func CollectStylesheets(root *dom.Node) Stylesheet {
	return NewCollector("", nil).Collect(root, nil)
}

// Collect walks root in document order and accumulates the rules of every
// <style> element and every <link rel="stylesheet" href=...>. Rules in base
// are applied first so document rules override them. Linked files that are
// remote or cannot be read are skipped.
func (c *Collector) Collect(root *dom.Node, base Stylesheet) Stylesheet {
	sheet := Stylesheet{}
	sheet.Extend(base)

	root.Walk(func(n *dom.Node) bool {
		switch {
		case n.Is(atom.Style):
			sheet.Extend(ParseStylesheet(n.Text()))
		case n.Is(atom.Link):
			if text, ok := c.linked(n); ok {
				sheet.Extend(ParseStylesheet(text))
			}
		}
		return true
	})

	c.logger().Debug("stylesheets collected", zap.Int("rules", len(sheet)))
	return sheet
}

func (c *Collector) linked(n *dom.Node) (string, bool) {
	rel, _ := n.Attribute("rel")
	if !hasToken(rel, "stylesheet") {
		return "", false
	}
	href, ok := n.Attribute("href")
	if !ok || href == "" {
		return "", false
	}
	if fileutil.IsURL(href) {
		c.logger().Debug("remote stylesheet skipped", zap.String("href", href))
		return "", false
	}

	read := c.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	path := fileutil.Resolve(c.BaseDir, href)
	data, err := read(path)
	if err != nil {
		c.logger().Debug("linked stylesheet skipped", zap.String("path", path), zap.Error(err))
		return "", false
	}
	return string(data), true
}

func (c *Collector) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
