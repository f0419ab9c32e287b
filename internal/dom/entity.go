package dom

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"euro":   "€",
	"mdash":  "—",
	"ndash":  "–",
	"hellip": "…",
	"eacute": "é",
}

// DecodeEntities replaces character references in s.
//
// Recognized: the names in namedEntities, &#N; and &#xN;. A reference with an
// unknown name or an invalid code point decodes to the empty string. An '&'
// with no ';' before the next whitespace, '&', '<' or the end of s is kept as
// is.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := referenceEnd(s, i+1)
		if end < 0 {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(resolveEntity(s[i+1 : end]))
		i = end + 1
	}
	return b.String()
}

// referenceEnd returns the index of the ';' closing a reference starting at
// from, or -1.
func referenceEnd(s string, from int) int {
	for j := from; j < len(s); j++ {
		switch s[j] {
		case ';':
			return j
		case '&', '<', ' ', '\t', '\n', '\r', '\f':
			return -1
		}
	}
	return -1
}

func resolveEntity(name string) string {
	if v, ok := namedEntities[name]; ok {
		return v
	}
	num, ok := strings.CutPrefix(name, "#")
	if !ok {
		return ""
	}

	base := 10
	if len(num) > 0 && (num[0] == 'x' || num[0] == 'X') {
		num, base = num[1:], 16
	}
	cp, err := strconv.ParseUint(num, base, 32)
	if err != nil {
		return ""
	}
	r := rune(cp)
	if !utf8.ValidRune(r) {
		return ""
	}
	return string(r)
}
