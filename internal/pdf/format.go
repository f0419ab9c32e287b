package pdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-html2pdf/internal/css"
)

// num formats v rounded to four decimals without trailing zeros.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rgb formats the color components of c as three numbers in [0, 1].
func rgb(c css.Color) string {
	return num(float64(c.R)/255) + " " + num(float64(c.G)/255) + " " + num(float64(c.B)/255)
}

// literal encodes s as the body of a PDF literal string: NFC-normalized,
// Latin-1 with '?' for runes outside it, and with the delimiters escaped.
func literal(s string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			c = '?'
		}
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// pdfName encodes s as a PDF name without the leading slash. Bytes outside
// the regular printable range are written as #xx.
func pdfName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '!' || c > '~' || strings.IndexByte("#()<>[]{}/%", c) >= 0 {
			fmt.Fprintf(&b, "#%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
