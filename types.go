package html2pdf

import (
	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/pdf"
)

// Page dimensions in points (A4 portrait).
const (
	PageWidth  = pdf.PageWidth
	PageHeight = pdf.PageHeight
)

// Input contains conversion parameters. Exactly one of HTML and Markdown
// must be set.
type Input struct {
	HTML     string // HTML document or fragment
	Markdown string // Markdown converted to HTML first
	CSS      string // Extra CSS applied after the converter style (optional)
	BaseDir  string // Anchor for relative stylesheet and image paths (optional)
}

// Validate checks that exactly one content field is set.
func (i Input) Validate() error {
	switch {
	case i.HTML == "" && i.Markdown == "":
		return ErrEmptyInput
	case i.HTML != "" && i.Markdown != "":
		return ErrAmbiguousInput
	}
	return nil
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	PDF  []byte
	HTML []byte // the document with converter and user CSS injected, for debugging
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	styleInput    string // name, file path, or CSS text
	resolvedStyle string
	assetPath     string
	fontDir       string
}

// WithLogger sets the logger for skipped resources and pipeline events.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithStyle sets the base stylesheet: a built-in style name, a path to a
// CSS file (anything containing a path separator), or CSS text (anything
// containing "{"). Document rules override it.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/{name}.css files take
// precedence over the built-in styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithFontDir sets the directory searched for {family}.ttf and
// {family}.otf files. The default is "fonts".
func WithFontDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.fontDir = dir
	}
}
