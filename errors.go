package html2pdf

import (
	"errors"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input has neither HTML nor Markdown content")
	ErrAmbiguousInput = errors.New("input has both HTML and Markdown content")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPathRewrite    = errors.New("failed to rewrite relative paths")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
