// Package fonts maps CSS font families to PDF fonts: the three built-in
// standard fonts, or TrueType/OpenType files found in a font directory.
package fonts

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"seehuhn.de/go/sfnt"
)

// Sentinel errors for font resolution.
var (
	ErrFontNotFound = errors.New("font not found")
	ErrFontParse    = errors.New("font parse failed")
)

// DefaultDir is where DirResolver looks when no directory is given.
const DefaultDir = "fonts"

// Font descriptor flags (PDF 32000-1, table 123).
const (
	FlagFixedPitch  = 1 << 0
	FlagSerif       = 1 << 1
	FlagScript      = 1 << 3
	FlagNonsymbolic = 1 << 5
	FlagItalic      = 1 << 6
)

// Standard base fonts that need no embedding.
const (
	Helvetica  = "Helvetica"
	TimesRoman = "Times-Roman"
	Courier    = "Courier"
)

var standardFamilies = map[string]string{
	"":                Helvetica,
	"Helvetica":       Helvetica,
	"Times":           TimesRoman,
	"Times-Roman":     TimesRoman,
	"Times New Roman": TimesRoman,
	"Courier":         Courier,
}

// Standard returns the built-in base font for family. Names match exactly;
// any other family, generic names included, goes to the font directory.
// The empty family is Helvetica.
func Standard(family string) (string, bool) {
	base, ok := standardFamilies[family]
	return base, ok
}

// Face holds the font descriptor metrics of a font file, in glyph space
// units (1000 per em).
type Face struct {
	Family         string
	PostScriptName string
	Path           string
	Flags          int
	BBox           [4]float64
	ItalicAngle    float64
	Ascent         float64
	Descent        float64
	CapHeight      float64
	StemV          float64
}

// Resolver finds the font for a CSS font family.
type Resolver interface {
	Resolve(family string) (*Face, error)
}

// DirResolver loads "<Dir>/<family>.ttf" or "<Dir>/<family>.otf".
// Results, including failures, are cached. It is safe for concurrent use.
type DirResolver struct {
	Dir string

	mu    sync.Mutex
	cache map[string]resolved
}

type resolved struct {
	face *Face
	err  error
}

var _ Resolver = (*DirResolver)(nil)

// NewDirResolver returns a resolver reading from dir, or DefaultDir when dir
// is empty.
func NewDirResolver(dir string) *DirResolver {
	if dir == "" {
		dir = DefaultDir
	}
	return &DirResolver{Dir: dir}
}

// Resolve returns the face for family.
func (r *DirResolver) Resolve(family string) (*Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.cache[family]; ok {
		return res.face, res.err
	}
	face, err := r.load(family)
	if r.cache == nil {
		r.cache = make(map[string]resolved)
	}
	r.cache[family] = resolved{face: face, err: err}
	return face, err
}

func (r *DirResolver) load(family string) (*Face, error) {
	name := strings.TrimSpace(family)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: invalid family %q", ErrFontNotFound, family)
	}

	dir := r.Dir
	if dir == "" {
		dir = DefaultDir
	}
	for _, ext := range []string{".ttf", ".otf"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		info, err := sfnt.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontParse, path, err)
		}
		return newFace(family, path, info), nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrFontNotFound, family, dir)
}

func newFace(family, path string, info *sfnt.Font) *Face {
	q := info.FontMatrix[3] * 1000
	if q == 0 && info.UnitsPerEm != 0 {
		q = 1000 / float64(info.UnitsPerEm)
	}

	flags := FlagNonsymbolic
	if info.IsFixedPitch() {
		flags |= FlagFixedPitch
	}
	if info.IsSerif {
		flags |= FlagSerif
	}
	if info.IsScript {
		flags |= FlagScript
	}
	if info.IsItalic {
		flags |= FlagItalic
	}

	stemV := 80.0
	if info.IsBold {
		stemV = 120
	}

	bbox := info.FontBBoxPDF()
	return &Face{
		Family:         family,
		PostScriptName: info.PostScriptName(),
		Path:           path,
		Flags:          flags,
		BBox: [4]float64{
			math.Round(bbox.LLx), math.Round(bbox.LLy),
			math.Round(bbox.URx), math.Round(bbox.URy),
		},
		ItalicAngle: info.ItalicAngle,
		Ascent:      math.Round(float64(info.Ascent) * q),
		Descent:     math.Round(float64(info.Descent) * q),
		CapHeight:   math.Round(float64(info.CapHeight) * q),
		StemV:       stemV,
	}
}
