package html2pdf

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/css"
	"github.com/alnah/go-html2pdf/internal/dom"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/fonts"
	"github.com/alnah/go-html2pdf/internal/imaging"
	"github.com/alnah/go-html2pdf/internal/layout"
	"github.com/alnah/go-html2pdf/internal/pdf"
	"github.com/alnah/go-html2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ fonts.Resolver         = (*fonts.DirResolver)(nil)
	_ imaging.Decoder        = (*imaging.FileDecoder)(nil)
)

// Converter orchestrates the HTML-to-PDF pipeline.
// Create with NewConverter and use Convert for each document. A Converter
// is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	logger        *zap.Logger
	assetLoader   assets.AssetLoader
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	fonts         fonts.Resolver
}

// Render converts an HTML document to PDF bytes with the standard fonts,
// no images, and stylesheets linked relative to the working directory.
// It never fails.
func Render(html string) []byte {
	root := dom.Parse(html)
	sheet := css.CollectStylesheets(root)
	return pdf.Write(layout.Compute(root, PageWidth, PageHeight, sheet))
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the asset path is invalid or the style cannot be
// loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger:        zap.NewNop(),
		assetLoader:   assets.NewEmbeddedLoader(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.fonts == nil {
		c.fonts = fonts.NewDirResolver(c.cfg.fontDir)
	}
	return c, nil
}

// Convert runs the full pipeline and returns the PDF and a standalone copy of
// the document with the converter style and input CSS injected. The context
// is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	htmlContent := input.HTML
	if input.Markdown != "" {
		htmlContent, err = c.htmlConverter.ToHTML(ctx, input.Markdown)
		if err != nil {
			return nil, fmt.Errorf("converting to HTML: %w", err)
		}
	}

	// Converter style first, user CSS last: both precede document rules.
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	// The tree is parsed from the document as given; the injected copy is
	// only the standalone HTML handed back to the caller.
	root := dom.Parse(htmlContent)
	standalone := c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rewritten, err := pipeline.RewriteRelativePaths(root, input.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPathRewrite, err)
	}
	if rewritten > 0 {
		c.logger.Debug("relative paths rewritten",
			zap.String("base_dir", input.BaseDir), zap.Int("count", rewritten))
	}

	sheet := css.NewCollector(input.BaseDir, c.logger).Collect(root, css.ParseStylesheet(cssContent))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	box := layout.Compute(root, PageWidth, PageHeight, sheet)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	writer := &pdf.Writer{
		Fonts:  c.fonts,
		Images: &imaging.FileDecoder{BaseDir: input.BaseDir},
		Logger: c.logger,
	}

	return &ConvertResult{
		PDF:  writer.Write(box),
		HTML: []byte(standalone),
	}, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter after options are applied and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// Style name -> use asset loader
	style, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = style
	return nil
}
