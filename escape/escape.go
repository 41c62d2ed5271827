// Package escape converts between literal Unicode text (or raw bytes) and
// the format's backslash-escape notation. Escaper and Unescaper instances
// memoize their work per code point or escape token; they are cheap to
// construct and are not safe for concurrent use, so concurrent callers
// should use one instance each.
package escape

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bespon/bespon-go/grammar"
)

// Quote selects the enclosing quote delimiter of an escaping context. The
// matching delimiter is the one character that would terminate the enclosing
// quote, so it is the one that gets escaped; the opposite quote character is
// left alone.
type Quote byte

const (
	SingleQuote Quote = '\''
	DoubleQuote Quote = '"'
)

// Config selects the escape notation produced by an Escaper. The zero value
// produces fixed-width \uHHHH and \UHHHHHHHH escapes for everything.
type Config struct {
	// OnlyASCII escapes every non-ASCII code point, not just the ones that
	// may never appear literally.
	OnlyASCII bool

	// BraceEscapes selects minimum-width \u{H..H} notation for the code
	// points that XEscapes does not cover.
	BraceEscapes bool

	// XEscapes selects \xHH notation for code points below 256.
	XEscapes bool
}

// Escaper replaces code points and bytes that cannot appear literally inside
// a quoted string with their escaped equivalents.
type Escaper struct {
	cfg   Config
	runes *memo[rune, string]
	bytes [256]string

	// compiled matchers indexed by quote delimiter and inline context
	uniRe  [2][2]*regexp.Regexp
	byteRe [2][2]*regexp.Regexp
}

// NewEscaper creates an Escaper for the given notation style. The rune cache
// is seeded with the short escapes, so control characters with a short form
// always use it instead of a numeric escape; the byte table is built eagerly
// for all 256 values.
func NewEscaper(g *grammar.Grammar, cfg Config) *Escaper {
	e := &Escaper{cfg: cfg}

	var escapeRune func(rune) string
	switch {
	case cfg.XEscapes && cfg.BraceEscapes:
		escapeRune = escapeXUBrace
	case cfg.XEscapes:
		escapeRune = escapeXUU
	case cfg.BraceEscapes:
		escapeRune = escapeUBrace
	default:
		escapeRune = escapeUU
	}
	e.runes = newMemo(func(r rune) (string, error) { return escapeRune(r), nil })
	for r, esc := range g.ShortEscapes {
		e.runes.put(r, esc)
	}

	for n := 0; n < 256; n++ {
		e.bytes[n] = fmt.Sprintf(`\x%02x`, n)
	}
	for r, esc := range g.ShortEscapes {
		e.bytes[r] = esc
	}

	notValid := g.RE["not_valid_unicode"]
	if cfg.OnlyASCII {
		notValid = g.RE["not_valid_ascii"]
	}
	delims := [2]string{g.RE["escaped_string_singlequote_delim"], g.RE["escaped_string_doublequote_delim"]}
	newlines := [2]string{"", g.RE["newline"] + "|"}
	for di, delim := range delims {
		for ni, nl := range newlines {
			head := g.RE["backslash"] + "|" + delim + "|" + nl
			e.uniRe[di][ni] = regexp.MustCompile(head + notValid)
			e.byteRe[di][ni] = regexp.MustCompile(head + g.RE["not_valid_ascii"])
		}
	}
	return e
}

// Unicode replaces every code point in s that is not permitted to appear
// literally with its escaped form: backslashes, the matching quote
// delimiter, invalid literal code points, and, when inline is true, literal
// newlines. Non-inline contexts keep literal newlines, since block strings
// rely on them for structure. When escapeAll is set every code point is
// escaped, which produces maximally portable output.
func (e *Escaper) Unicode(s string, delim Quote, escapeAll, inline bool) string {
	if escapeAll {
		var b strings.Builder
		for _, r := range s {
			v, _ := e.runes.get(r)
			b.WriteString(v)
		}
		return b.String()
	}
	re := e.uniRe[delimIndex(delim)][boolIndex(inline)]
	return re.ReplaceAllStringFunc(s, func(m string) string {
		r, _ := utf8.DecodeRuneInString(m)
		v, _ := e.runes.get(r)
		return v
	})
}

// Bytes is the byte-level equivalent of Unicode with Latin-1 semantics:
// every byte outside the valid literal set is replaced with \xHH.
func (e *Escaper) Bytes(b []byte, delim Quote, inline bool) []byte {
	re := e.byteRe[delimIndex(delim)][boolIndex(inline)]
	return re.ReplaceAllFunc(b, func(m []byte) []byte {
		// A match may span several bytes when high bytes happen to form a
		// valid UTF-8 sequence; each byte is escaped on its own.
		var out []byte
		for _, c := range m {
			out = append(out, e.bytes[c]...)
		}
		return out
	})
}

func delimIndex(q Quote) int {
	if q == DoubleQuote {
		return 1
	}
	return 0
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func escapeXUBrace(r rune) string {
	if r < 256 {
		return fmt.Sprintf(`\x%02x`, r)
	}
	return fmt.Sprintf(`\u{%x}`, r)
}

func escapeXUU(r rune) string {
	if r < 256 {
		return fmt.Sprintf(`\x%02x`, r)
	}
	if r < 65536 {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return fmt.Sprintf(`\U%08x`, r)
}

func escapeUBrace(r rune) string {
	return fmt.Sprintf(`\u{%x}`, r)
}

func escapeUU(r rune) string {
	if r < 65536 {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return fmt.Sprintf(`\U%08x`, r)
}

// CodePoint produces a human-readable escape of a single code point for
// diagnostic messages, independent of any Escaper configuration.
func CodePoint(r rune) string {
	if r <= 0xFFFF {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return fmt.Sprintf(`\U%08x`, r)
}
