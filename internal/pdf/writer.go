// Package pdf serializes a laid-out box tree into a single-page PDF 1.5
// document.
//
// The document is written uncompressed in one pass: the box tree is painted
// into a content stream while resources are collected, then every object is
// emitted in a fixed order followed by the cross-reference table.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-html2pdf/internal/fonts"
	"github.com/alnah/go-html2pdf/internal/imaging"
	"github.com/alnah/go-html2pdf/internal/layout"
)

// A4 page size in points.
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

const header = "%PDF-1.5\n% zyHTMLtoPDF\n"

// Fixed object numbers.
const (
	catalogObj = 1
	pagesObj   = 2
	pageObj    = 3
	contentObj = 4
	firstFree  = 5
)

// Writer renders box trees. The zero value renders with the standard fonts
// only and skips images. A Writer holds no per-document state, so one value
// may serve concurrent Write calls when its collaborators are safe for
// concurrent use.
type Writer struct {
	// Fonts resolves families other than the standard ones. Nil renders
	// them with Helvetica.
	Fonts fonts.Resolver

	// Images decodes image sources. Nil skips images.
	Images imaging.Decoder

	// Logger receives skipped-resource warnings. Nil means no logging.
	Logger *zap.Logger
}

// Write renders root with a zero Writer.
func Write(root *layout.Box) []byte {
	var w Writer
	return w.Write(root)
}

// Write renders root, a page box as produced by layout.Compute, on an A4
// page. It never fails: resources that cannot be loaded are left out.
func (w *Writer) Write(root *layout.Box) []byte {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := newPainter(w, log, PageHeight)
	if root != nil {
		p.paint(root)
	}

	d := &document{p: p}
	d.extBase = firstFree
	d.annotBase = d.extBase + len(p.alphas)
	d.fontBase = d.annotBase + len(p.links)
	d.imageBase = d.fontBase + 2*len(p.fonts)
	out := d.emit()

	log.Debug("pdf written",
		zap.Int("bytes", len(out)),
		zap.Int("objects", len(d.offsets)),
		zap.Int("fonts", len(p.fonts)),
		zap.Int("images", len(p.images)),
		zap.Int("links", len(p.links)))
	return out
}

// document lays out the object table of one painted page.
type document struct {
	p   *painter
	buf bytes.Buffer

	// offsets[i] is the byte offset of object i+1.
	offsets []int

	extBase, annotBase, fontBase, imageBase int
}

func (d *document) emit() []byte {
	d.buf.WriteString(header)

	d.object(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj))
	d.object(fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", pageObj))
	d.object(d.page())

	content := d.p.stream.String()
	d.stream(fmt.Sprintf("<< /Length %d >>", len(content)), []byte(content))

	for _, a := range d.p.alphas {
		d.object(fmt.Sprintf("<< /Type /ExtGState /ca %s /CA %s >>", num(a), num(a)))
	}
	for _, l := range d.p.links {
		d.object(fmt.Sprintf(
			"<< /Type /Annot /Subtype /Link /Rect [%s %s %s %s] /Border [0 0 0] /A << /S /URI /URI (%s) >> >>",
			num(l.x1), num(l.y1), num(l.x2), num(l.y2), literal(l.url)))
	}
	for i, f := range d.p.fonts {
		d.fontObjects(f.face, d.fontBase+2*i+1)
	}
	for _, x := range d.p.images {
		d.stream(fmt.Sprintf(
			"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Length %d >>",
			x.img.Width, x.img.Height, len(x.img.RGB)), x.img.RGB)
	}

	d.trailer()
	return d.buf.Bytes()
}

func (d *document) page() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<< /Type /Page /Parent %d 0 R /Resources << /Font <<", pagesObj)
	for _, r := range standardResources {
		fmt.Fprintf(&b, " /%s << /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding >>", r.resource, r.baseFont)
	}
	for i, f := range d.p.fonts {
		fmt.Fprintf(&b, " /%s %d 0 R", f.resource, d.fontBase+2*i)
	}
	b.WriteString(" >>")

	if len(d.p.alphas) > 0 {
		b.WriteString(" /ExtGState <<")
		for i := range d.p.alphas {
			fmt.Fprintf(&b, " /%s %d 0 R", gsName(i), d.extBase+i)
		}
		b.WriteString(" >>")
	}
	if len(d.p.images) > 0 {
		b.WriteString(" /XObject <<")
		for i, x := range d.p.images {
			fmt.Fprintf(&b, " /%s %d 0 R", x.resource, d.imageBase+i)
		}
		b.WriteString(" >>")
	}

	fmt.Fprintf(&b, " >> /Contents %d 0 R /MediaBox [0 0 %s %s]", contentObj, num(PageWidth), num(PageHeight))
	if len(d.p.links) > 0 {
		b.WriteString(" /Annots [")
		for i := range d.p.links {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d 0 R", d.annotBase+i)
		}
		b.WriteString("]")
	}
	b.WriteString(" >>")
	return b.String()
}

// fontObjects writes the font dictionary and its descriptor, numbered
// descriptorObj.
func (d *document) fontObjects(f *fonts.Face, descriptorObj int) {
	base := pdfName(f.PostScriptName)
	if base == "" {
		base = pdfName(strings.ReplaceAll(f.Family, " ", ""))
	}
	d.object(fmt.Sprintf(
		"<< /Type /Font /Subtype /TrueType /BaseFont /%s /Encoding /WinAnsiEncoding /FontDescriptor %d 0 R >>",
		base, descriptorObj))
	d.object(fmt.Sprintf(
		"<< /Type /FontDescriptor /FontName /%s /Flags %d /FontBBox [%s %s %s %s] /ItalicAngle %s /Ascent %s /Descent %s /CapHeight %s /StemV %s >>",
		base, f.Flags,
		num(f.BBox[0]), num(f.BBox[1]), num(f.BBox[2]), num(f.BBox[3]),
		num(f.ItalicAngle), num(f.Ascent), num(f.Descent), num(f.CapHeight), num(f.StemV)))
}

// begin records the offset of the next object and writes its header.
func (d *document) begin() {
	d.offsets = append(d.offsets, d.buf.Len())
	d.buf.WriteString(strconv.Itoa(len(d.offsets)) + " 0 obj\n")
}

func (d *document) object(dict string) {
	d.begin()
	d.buf.WriteString(dict)
	d.buf.WriteString("\nendobj\n")
}

func (d *document) stream(dict string, data []byte) {
	d.begin()
	d.buf.WriteString(dict)
	d.buf.WriteString("\nstream\n")
	d.buf.Write(data)
	d.buf.WriteString("\nendstream\nendobj\n")
}

func (d *document) trailer() {
	start := d.buf.Len()
	size := len(d.offsets) + 1
	fmt.Fprintf(&d.buf, "xref\n0 %d\n", size)
	d.buf.WriteString("0000000000 65535 f \n")
	for _, off := range d.offsets {
		fmt.Fprintf(&d.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&d.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, catalogObj, start)
}
