// Package pattern provides Unicode character-class fragments in regexp source
// syntax. The fragments are grammar atoms: the grammar package embeds them
// verbatim into the regex-source table, and the escape package compiles them
// into its matchers.
//
// Granularity suffixes name a restriction of the set of code points treated
// as valid: "ASCII" restricts to 0x00-0x7F, "BelowU0590" to code points below
// U+0590 (a range that contains no right-to-left code points and whose only
// invalid literals are Cc controls), no suffix (or "LessFillers") covers all
// of 0x00-0x10FFFF. A NotValidLiteral* class therefore matches every code
// point outside its granularity as well: NotValidLiteralASCII matches all of
// U+0080-U+10FFFF in addition to the forbidden ASCII-range code points.
package pattern

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Identifier classes restricted to ASCII.
const (
	XIDStartASCII    = "[A-Za-z]"
	XIDContinueASCII = "[0-9A-Za-z_]"
)

// Valid ASCII-range literals are tab, newline, and printable ASCII.
// Valid literals below U+0590 additionally include U+00A0-U+058F (the only
// invalid literals in that range are the Cc controls).
const (
	NotValidLiteralASCII      = "[^\\t\\n\\x20-\\x7e]"
	NotValidLiteralBelowU0590 = "[^\\t\\n\\x20-\\x7e\\x{00a0}-\\x{058f}]"
)

// Classes computed at init from the Unicode character database:
var (
	// XIDStartLessFillers and XIDContinueLessFillers are the UAX #31
	// identifier classes over the full code point range, with the Hangul
	// filler code points removed.
	XIDStartLessFillers    string
	XIDContinueLessFillers string

	// XIDStartBelowU0590 and XIDContinueBelowU0590 are the same classes
	// clipped to code points below U+0590.
	XIDStartBelowU0590    string
	XIDContinueBelowU0590 string

	// NotValidLiteral matches the code points that may never appear
	// literally in a document: Cc controls other than tab and newline,
	// surrogates, noncharacters, and the line/paragraph separators
	// U+2028 and U+2029.
	NotValidLiteral string

	// BidiRAL matches right-to-left code points (bidi classes R and AL,
	// by the DerivedBidiClass default ranges).
	BidiRAL string

	// PrivateUse matches the Co private-use code points.
	PrivateUse string
)

// Hangul filler code points, excluded from identifiers because they render
// as blank space.
var fillers = map[rune]bool{
	0x115F: true, // HANGUL CHOSEONG FILLER
	0x1160: true, // HANGUL JUNGSEONG FILLER
	0x3164: true, // HANGUL FILLER
	0xFFA0: true, // HALFWIDTH HANGUL FILLER
}

// DerivedBidiClass R and AL default ranges plus RIGHT-TO-LEFT MARK.
var bidiRAL = rangetable.Merge(&unicode.RangeTable{
	R16: []unicode.Range16{
		{0x0590, 0x08FF, 1},
		{0x200F, 0x200F, 1},
		{0xFB1D, 0xFB4F, 1},
		{0xFB50, 0xFDFF, 1},
		{0xFE70, 0xFEFF, 1},
	},
	R32: []unicode.Range32{
		{0x10800, 0x10FFF, 1},
		{0x1E800, 0x1EFFF, 1},
	},
})

func init() {
	xidStart := identTable(unicode.L, unicode.Nl, unicode.Other_ID_Start)
	xidContinue := identTable(unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)

	XIDStartLessFillers = classString(xidStart)
	XIDContinueLessFillers = classString(xidContinue)
	XIDStartBelowU0590 = classString(clip(xidStart, 0x0590))
	XIDContinueBelowU0590 = classString(clip(xidContinue, 0x0590))

	NotValidLiteral = classString(notValidTable())
	BidiRAL = classString(bidiRAL)
	PrivateUse = classString(unicode.Co)
}

// identTable merges the given tables and filters them per UAX #31: code
// points with Pattern_Syntax or Pattern_White_Space are removed, as are the
// Hangul fillers.
func identTable(tabs ...*unicode.RangeTable) *unicode.RangeTable {
	return filter(rangetable.Merge(tabs...), func(r rune) bool {
		return !fillers[r] &&
			!unicode.Is(unicode.Pattern_Syntax, r) &&
			!unicode.Is(unicode.Pattern_White_Space, r)
	})
}

func notValidTable() *unicode.RangeTable {
	t := &unicode.RangeTable{
		R16: []unicode.Range16{
			{0x0000, 0x0008, 1}, // Cc less tab and newline
			{0x000B, 0x001F, 1},
			{0x007F, 0x009F, 1},
			{0x2028, 0x2029, 1}, // LINE SEPARATOR, PARAGRAPH SEPARATOR
			{0xD800, 0xDFFF, 1}, // surrogates
			{0xFDD0, 0xFDEF, 1}, // noncharacters
			{0xFFFE, 0xFFFF, 1},
		},
	}
	// Trailing noncharacters of the supplementary planes.
	for p := rune(0x10000); p <= unicode.MaxRune; p += 0x10000 {
		t.R32 = append(t.R32, unicode.Range32{Lo: uint32(p + 0xFFFE), Hi: uint32(p + 0xFFFF), Stride: 1})
	}
	return t
}

func filter(t *unicode.RangeTable, keep func(rune) bool) *unicode.RangeTable {
	var runes []rune
	rangetable.Visit(t, func(r rune) {
		if keep(r) {
			runes = append(runes, r)
		}
	})
	return rangetable.New(runes...)
}

func clip(t *unicode.RangeTable, limit rune) *unicode.RangeTable {
	return filter(t, func(r rune) bool { return r < limit })
}

// classString renders a range table as a regexp character class. All code
// points are emitted as \x{...} escapes, so no metacharacter quoting is
// needed.
func classString(t *unicode.RangeTable) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range t.R16 {
		writeRanges(&b, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		writeRanges(&b, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	b.WriteByte(']')
	return b.String()
}

func writeRanges(b *strings.Builder, lo, hi, stride rune) {
	if stride == 1 {
		if lo == hi {
			fmt.Fprintf(b, "\\x{%x}", lo)
		} else {
			fmt.Fprintf(b, "\\x{%x}-\\x{%x}", lo, hi)
		}
		return
	}
	for r := lo; r <= hi; r += stride {
		fmt.Fprintf(b, "\\x{%x}", r)
	}
}
