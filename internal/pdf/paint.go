package pdf

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/fonts"
	"github.com/alnah/go-html2pdf/internal/imaging"
	"github.com/alnah/go-html2pdf/internal/layout"
)

// Resource names of the built-in fonts.
var standardResources = []struct {
	resource string
	baseFont string
}{
	{"F1", fonts.Helvetica},
	{"F2", fonts.TimesRoman},
	{"F3", fonts.Courier},
}

type link struct {
	x1, y1, x2, y2 float64
	url            string
}

type customFont struct {
	resource string
	face     *fonts.Face
}

type xobject struct {
	resource string
	img      *imaging.Image
}

// painter walks a box tree once, writing the content stream and collecting
// the resources the page needs, in first-use order.
type painter struct {
	w          *Writer
	log        *zap.Logger
	pageHeight float64

	stream strings.Builder
	alphas []float64
	links  []link

	fonts     []customFont
	fontByFam map[string]string

	images     []xobject
	imageByRef map[string]string
}

func newPainter(w *Writer, log *zap.Logger, pageHeight float64) *painter {
	return &painter{
		w:          w,
		log:        log,
		pageHeight: pageHeight,
		fontByFam:  make(map[string]string),
		imageByRef: make(map[string]string),
	}
}

func (p *painter) line(parts ...string) {
	p.stream.WriteString(strings.Join(parts, " "))
	p.stream.WriteByte('\n')
}

func (p *painter) paint(b *layout.Box) {
	rectY := p.pageHeight - b.Y - b.Height
	s := b.Style

	if bg := s.Background; bg != nil {
		if bg.Translucent() {
			p.line("q")
			p.line("/"+p.graphicsState(bg.A), "gs")
		}
		p.line(rgb(*bg), "rg")
		p.line(num(b.X), num(rectY), num(b.Width), num(b.Height), "re f")
		if bg.Translucent() {
			p.line("Q")
		}
	}

	if bw := s.BorderWidth.Top; bw > 0 {
		p.line("0 0 0 RG")
		p.line(num(bw), "w")
		p.line(num(b.X), num(rectY), num(b.Width), num(b.Height), "re S")
	}

	switch b.Content.Kind {
	case layout.ContentText:
		p.text(b)
	case layout.ContentImage:
		p.image(b, rectY)
	}

	if b.Link != "" {
		p.links = append(p.links, link{
			x1: b.X, y1: rectY,
			x2: b.X + b.Width, y2: rectY + b.Height,
			url: b.Link,
		})
	}

	for _, c := range b.Children {
		p.paint(c)
	}
}

func (p *painter) text(b *layout.Box) {
	if strings.TrimSpace(b.Content.Value) == "" {
		return
	}
	s := b.Style
	size := s.FontSize

	family := ""
	if s.FontFamily != nil {
		family = *s.FontFamily
	}
	font := p.font(family)

	if s.Color.Translucent() {
		p.line("q")
		p.line("/"+p.graphicsState(s.Color.A), "gs")
	}
	p.line("BT")
	p.line("/"+font, num(size), "Tf")
	p.line(num(b.X), num(p.pageHeight-b.Y-size), "Td")
	p.line(rgb(s.Color), "rg")
	p.line("("+literal(b.Content.Value)+")", "Tj")
	p.line("ET")
	if s.Color.Translucent() {
		p.line("Q")
	}
}

// font returns the resource name for family. Standard families map to
// F1-F3; others are resolved once and numbered from F4 on. A family that
// cannot be resolved renders with F1.
func (p *painter) font(family string) string {
	if base, ok := fonts.Standard(family); ok {
		for _, r := range standardResources {
			if r.baseFont == base {
				return r.resource
			}
		}
	}
	if res, ok := p.fontByFam[family]; ok {
		return res
	}

	res := standardResources[0].resource
	if p.w.Fonts == nil {
		p.log.Debug("no font resolver, using Helvetica", zap.String("family", family))
	} else if face, err := p.w.Fonts.Resolve(family); err != nil {
		p.log.Warn("font unavailable, using Helvetica", zap.String("family", family), zap.Error(err))
	} else {
		res = "F" + strconv.Itoa(len(standardResources)+len(p.fonts)+1)
		p.fonts = append(p.fonts, customFont{resource: res, face: face})
	}
	p.fontByFam[family] = res
	return res
}

func (p *painter) image(b *layout.Box, rectY float64) {
	ref := b.Content.Value
	res, seen := p.imageByRef[ref]
	if !seen {
		res = p.loadImage(ref)
		p.imageByRef[ref] = res
	}
	if res == "" {
		return
	}
	p.line("q")
	p.line(num(b.Width), "0 0", num(b.Height), num(b.X), num(rectY), "cm")
	p.line("/"+res, "Do")
	p.line("Q")
}

// loadImage decodes ref and registers it as an XObject. It returns the
// empty string when the image cannot be embedded.
func (p *painter) loadImage(ref string) string {
	if p.w.Images == nil {
		p.log.Debug("no image decoder, image skipped", zap.String("src", ref))
		return ""
	}
	img, err := p.w.Images.Decode(ref)
	if err != nil {
		p.log.Warn("image skipped", zap.String("src", ref), zap.Error(err))
		return ""
	}
	res := "Img" + strconv.Itoa(len(p.images)+1)
	p.images = append(p.images, xobject{resource: res, img: img})
	return res
}

// graphicsState returns the ExtGState name for alpha, registering it on
// first use. Alphas closer than the float64 epsilon share a state.
func (p *painter) graphicsState(alpha float64) string {
	const epsilon = 0x1p-52
	for i, a := range p.alphas {
		if math.Abs(a-alpha) < epsilon {
			return gsName(i)
		}
	}
	p.alphas = append(p.alphas, alpha)
	return gsName(len(p.alphas) - 1)
}

func gsName(i int) string { return "GS" + strconv.Itoa(i+1) }
