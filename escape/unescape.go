package escape

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	bespon "github.com/bespon/bespon-go"
	"github.com/bespon/bespon-go/grammar"
)

// ErrUnknownEscape is the error code carried by UnknownEscapeError.
const ErrUnknownEscape = bespon.EscapeErrors

// UnknownEscapeError is returned when a backslash sequence is syntactically
// escape-like but not a recognized escape. The caller is expected to wrap it
// with source position information.
type UnknownEscapeError struct {
	// Code contains ErrUnknownEscape.
	Code int

	// Token is the raw escape sequence as it appeared in the input.
	Token string

	// Display is a printable form of Token for use in messages: the token
	// verbatim when its offending character is printable, else a
	// \<U+XXXX> (or \<0xHH> for bytes) placeholder.
	Display string
}

func (e *UnknownEscapeError) Error() string {
	return fmt.Sprintf("unknown backslash escape %s", e.Display)
}

// Unescaper replaces backslash escapes in text or bytes with their literal
// equivalents. Like Escaper it memoizes decoded tokens and is not safe for
// concurrent use.
type Unescaper struct {
	tokens     *memo[string, string]
	byteTokens *memo[string, []byte]

	uniRe    *regexp.Regexp
	uniNLRe  *regexp.Regexp
	byteRe   *regexp.Regexp
	byteNLRe *regexp.Regexp
}

// NewUnescaper creates an Unescaper. The token cache is seeded with the
// short escapes; the byte-token cache additionally with all 256 \xHH forms.
func NewUnescaper(g *grammar.Grammar) *Unescaper {
	u := &Unescaper{
		tokens:     newMemo(decodeUnicodeToken),
		byteTokens: newMemo(decodeByteToken),
	}
	for esc, lit := range g.ShortUnescapes {
		u.tokens.put(esc, lit)
		u.byteTokens.put(esc, []byte(lit))
	}
	for n := 0; n < 256; n++ {
		u.byteTokens.put(fmt.Sprintf(`\x%02x`, n), []byte{byte(n)})
	}

	uniEsc := g.RE["unicode_escape"]
	byteEsc := g.RE["bytes_escape"]
	nl := g.RE["newline"]
	u.uniRe = regexp.MustCompile(uniEsc)
	u.uniNLRe = regexp.MustCompile(nl + "|" + uniEsc)
	u.byteRe = regexp.MustCompile(byteEsc)
	u.byteNLRe = regexp.MustCompile(nl + "|" + byteEsc)
	return u
}

// Unicode replaces every backslash escape in s with its decoded text.
// A non-empty newline replaces every literal newline character with the
// given sequence as well (source newline normalization). Fails on the first
// unrecognized escape; no partial result is returned.
func (u *Unescaper) Unicode(s string, newline string) (string, error) {
	re := u.uniRe
	override := ""
	if newline != "" && newline != "\n" {
		re = u.uniNLRe
		override = newline
	}
	var firstErr error
	out := re.ReplaceAllStringFunc(s, func(m string) string {
		if firstErr != nil {
			return m
		}
		if override != "" && m == "\n" {
			return override
		}
		v, e := u.tokens.get(m)
		if e != nil {
			firstErr = e
			return m
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Bytes is the byte-level equivalent of Unicode; the only numeric escape
// form is \xHH.
func (u *Unescaper) Bytes(b []byte, newline []byte) ([]byte, error) {
	re := u.byteRe
	var override []byte
	if len(newline) > 0 && !bytes.Equal(newline, []byte{'\n'}) {
		re = u.byteNLRe
		override = newline
	}
	var firstErr error
	out := re.ReplaceAllFunc(b, func(m []byte) []byte {
		if firstErr != nil {
			return m
		}
		if override != nil && len(m) == 1 && m[0] == '\n' {
			return override
		}
		v, e := u.byteTokens.get(string(m))
		if e != nil {
			firstErr = e
			return m
		}
		return v
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// decodeUnicodeToken decodes a single escape token. The scanner has already
// filtered the input into the recognized shapes plus "backslash and one
// character" and "lone backslash"; short escapes never reach this function,
// they are pre-seeded in the cache.
func decodeUnicodeToken(token string) (string, error) {
	if len(token) >= 2 {
		switch token[1] {
		case 'x':
			if len(token) == 4 {
				if r, ok := hexRune(token[2:]); ok {
					return string(r), nil
				}
			}
		case 'u':
			if len(token) == 6 && token[2] != '{' {
				if r, ok := hexRune(token[2:]); ok {
					return string(r), nil
				}
			}
			if len(token) >= 5 && token[2] == '{' && token[len(token)-1] == '}' {
				if r, ok := hexRune(token[3 : len(token)-1]); ok {
					return string(r), nil
				}
			}
		case 'U':
			if len(token) == 10 {
				if r, ok := hexRune(token[2:]); ok {
					return string(r), nil
				}
			}
		}
	}
	if strings.HasSuffix(token, "\n") {
		// line continuation: backslash, spaces or tabs, newline
		return "", nil
	}
	return "", unknownTextEscape(token)
}

func decodeByteToken(token string) ([]byte, error) {
	if len(token) == 4 && token[1] == 'x' {
		if n, e := strconv.ParseUint(token[2:], 16, 8); e == nil {
			return []byte{byte(n)}, nil
		}
	}
	if strings.HasSuffix(token, "\n") {
		return nil, nil
	}
	c := token[len(token)-1]
	display := token
	if c < 0x21 || c > 0x7e {
		display = fmt.Sprintf(`\<0x%02x>`, c)
	}
	return nil, &UnknownEscapeError{Code: ErrUnknownEscape, Token: token, Display: display}
}

// hexRune converts a hex digit run to a code point. Values beyond the code
// point range and surrogates, which Go strings cannot hold, are rejected.
func hexRune(digits string) (rune, bool) {
	n, e := strconv.ParseUint(digits, 16, 32)
	if e != nil || n > uint64(unicode.MaxRune) || (n >= 0xD800 && n <= 0xDFFF) {
		return 0, false
	}
	return rune(n), true
}

func unknownTextEscape(token string) *UnknownEscapeError {
	r, _ := utf8.DecodeLastRuneInString(token)
	display := token
	if r < 0x21 || r > 0x7e {
		display = fmt.Sprintf(`\<U+%04x>`, r)
	}
	return &UnknownEscapeError{Code: ErrUnknownEscape, Token: token, Display: display}
}
