package grammar

import (
	"regexp"
	"unicode/utf8"

	"github.com/bespon/bespon-go/pattern"
)

// MaxDelimLength is the maximum length of a quoted-string delimiter.
const MaxDelimLength = 90

// Grammar holds the assembled grammar tables. Build one with New during
// program initialization and pass it by reference to the tokenizer, encoder,
// and the escape package; all fields are read-only after construction and
// safe for unbounded concurrent reads.
type Grammar struct {
	// Lit maps atom names to literal Unicode text.
	Lit map[string]string

	// RE maps atom names to regexp source fragments.
	RE map[string]string

	// ShortEscapes maps a code point to its two-character backslash escape.
	ShortEscapes map[rune]string

	// ShortUnescapes is the exact inverse of ShortEscapes.
	ShortUnescapes map[string]string

	// LineTerminatorsASCII and LineTerminatorsUnicode list the recognized
	// line terminator sequences, "\r\n" first, then each single terminator.
	LineTerminatorsASCII   []string
	LineTerminatorsUnicode []string
}

// New assembles both grammar tables. The atom sequences are fixed, so a
// build failure is an authoring error and panics.
func New() *Grammar {
	lit := MustBuild(litAtoms())
	g := &Grammar{
		Lit:                    lit,
		RE:                     MustBuild(reAtoms(lit)),
		ShortUnescapes:         shortUnescapeTable(),
		LineTerminatorsASCII:   terminatorSeqs(lit["line_terminator_ascii"]),
		LineTerminatorsUnicode: terminatorSeqs(lit["line_terminator_unicode"]),
	}
	g.ShortEscapes = invertShort(g.ShortUnescapes)
	return g
}

// shortUnescapeTable maps the two-character backslash escapes to their
// literal meaning.
func shortUnescapeTable() map[string]string {
	return map[string]string{
		`\\`: "\\",
		`\'`: "'",
		`\"`: "\"",
		`\a`: "\a",
		`\b`: "\b",
		`\e`: "\x1b",
		`\f`: "\f",
		`\n`: "\n",
		`\r`: "\r",
		`\t`: "\t",
		`\v`: "\v",
	}
}

func invertShort(m map[string]string) map[rune]string {
	inv := make(map[rune]string, len(m))
	for esc, lit := range m {
		r, _ := utf8.DecodeRuneInString(lit)
		inv[r] = esc
	}
	return inv
}

func terminatorSeqs(terminators string) []string {
	seqs := []string{"\r\n"}
	for _, r := range terminators {
		seqs = append(seqs, string(r))
	}
	return seqs
}

func litAtoms() []Atom {
	atoms := []Atom{
		// Whitespace
		{"tab", "\t", false},
		{"space", "\x20", false},
		{"indent", "{tab}{space}", false},
		{"newline", "\n", false},
		{"line_terminator_ascii", "\n\v\f\r", false},
		{"line_terminator_unicode", "{line_terminator_ascii}\u0085\u2028\u2029", false},
		{"whitespace", "{indent}{newline}", false},
		// Code points with the White_Space property.
		{"unicode_whitespace", "\t\n\v\f\r \u0085\u00a0\u1680" +
			"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a" +
			"\u2028\u2029\u202f\u205f\u3000", false},
		// Other
		{"bom", "\ufeff", false},
	}
	return append(atoms, litSpecialAtoms()...)
}

// litSpecialAtoms lists the special code points of the format. Kept separate
// from the other literal atoms because the regex-source table derives
// meta-escaped pass-through entries from each of them.
// The inline dict delimiters are literal braces, so they are pass-through.
func litSpecialAtoms() []Atom {
	return []Atom{
		{"comment_delim", "#", false},
		{"assign_key_val", "=", false},
		{"open_noninline_list", "*", false},
		{"start_inline_dict", "{", true},
		{"end_inline_dict", "}", true},
		{"start_inline_list", "[", false},
		{"end_inline_list", "]", false},
		{"start_tag", "(", false},
		{"end_tag", ")", false},
		{"end_tag_suffix", ">", false},
		{"inline_element_separator", ",", false},
		{"block_prefix", "|", false},
		{"block_suffix", "/", false},
		{"escaped_string_singlequote_delim", "'", false},
		{"escaped_string_doublequote_delim", "\"", false},
		{"literal_string_delim", "`", false},
		{"path_separator", ".", false},
		{"alias_prefix", "$", false},
		{"home_alias", "~", false},
		{"self_alias", "_", false},
		// Combinations
		{"end_tag_with_suffix", "{end_tag}{end_tag_suffix}", false},
		// Tokens that may not follow a stored doc comment or tag: anything
		// that would close an object instead of opening one, or start a
		// second doc comment or tag.
		{"doc_comment_invalid_next_token", "{block_prefix}{comment_delim}{assign_key_val}{end_inline_dict}{end_inline_list}{end_tag}{inline_element_separator}", false},
		{"tag_invalid_next_token", "{comment_delim}{assign_key_val}{end_inline_dict}{end_inline_list}{end_tag}{inline_element_separator}", false},
		// Numbers
		{"number_or_number_unit_start", "0123456789+-", false},
	}
}

func reAtoms(lit map[string]string) []Atom {
	atoms := []Atom{{"backslash", `\\`, true}}

	// Unicode class fragments, already in matcher syntax.
	atoms = append(atoms,
		Atom{"xid_start_ascii", pattern.XIDStartASCII, true},
		Atom{"xid_start_below_u0590", pattern.XIDStartBelowU0590, true},
		Atom{"xid_start_less_fillers", pattern.XIDStartLessFillers, true},
		Atom{"xid_continue_ascii", pattern.XIDContinueASCII, true},
		Atom{"xid_continue_below_u0590", pattern.XIDContinueBelowU0590, true},
		Atom{"xid_continue_less_fillers", pattern.XIDContinueLessFillers, true},
		Atom{"not_valid_ascii", pattern.NotValidLiteralASCII, true},
		Atom{"not_valid_below_u0590", pattern.NotValidLiteralBelowU0590, true},
		Atom{"not_valid_unicode", pattern.NotValidLiteral, true},
		Atom{"bidi_rtl", pattern.BidiRAL, true},
		Atom{"private_use", pattern.PrivateUse, true},
	)

	// Whitespace matchers derived from the literal table.
	atoms = append(atoms,
		Atom{"space", regexp.QuoteMeta(lit["space"]), true},
		Atom{"indent", "[" + regexp.QuoteMeta(lit["indent"]) + "]", true},
		Atom{"newline", regexp.QuoteMeta(lit["newline"]), true},
		Atom{"whitespace", "[" + regexp.QuoteMeta(lit["whitespace"]) + "]", true},
	)

	// Special code points, meta-escaped.
	for _, a := range litSpecialAtoms() {
		atoms = append(atoms, Atom{a.Name, regexp.QuoteMeta(lit[a.Name]), true})
	}

	atoms = append(atoms, reTypeAtoms()...)
	return append(atoms, reEscapeAtoms()...)
}

func reTypeAtoms() []Atom {
	return []Atom{
		// None type
		{"none_type", `none`, false},
		{"none_type_invalid_word", `[nN][oO][nN][eE]`, false},

		// Boolean
		{"bool_true", `true`, false},
		{"bool_false", `false`, false},
		{"bool_invalid_word", `[tT][rR][uU][eE]|[fF][aA][lL][sS][eE]`, false},

		// Basic numeric elements
		{"sign", `[+-]`, false},
		{"opt_sign_indent", `(?:{sign}{indent}*)?`, false},
		{"zero", `0`, false},
		{"nonzero_dec_digit", `[1-9]`, false},
		{"dec_digit", `[0-9]`, false},
		{"dec_digits_underscores", `{dec_digit}+(?:_{dec_digit}+)*`, false},
		{"lower_hex_digit", `[0-9a-f]`, false},
		{"lower_hex_digits_underscores", `{lower_hex_digit}+(?:_{lower_hex_digit}+)*`, false},
		{"upper_hex_digit", `[0-9A-F]`, false},
		{"upper_hex_digits_underscores", `{upper_hex_digit}+(?:_{upper_hex_digit}+)*`, false},
		{"oct_digit", `[0-7]`, false},
		{"oct_digits_underscores", `{oct_digit}+(?:_{oct_digit}+)*`, false},
		{"bin_digit", `[01]`, false},
		{"bin_digits_underscores", `{bin_digit}+(?:_{bin_digit}+)*`, false},

		// Integers
		{"dec_integer", `{opt_sign_indent}(?:{zero}|{nonzero_dec_digit}{dec_digit}*(?:_{dec_digit}+)*)`, false},
		{"hex_integer", `{opt_sign_indent}0x_?(?:{lower_hex_digits_underscores}|{upper_hex_digits_underscores})`, false},
		{"oct_integer", `{opt_sign_indent}0o_?{oct_digits_underscores}`, false},
		{"bin_integer", `{opt_sign_indent}0b_?{bin_digits_underscores}`, false},
		{"integer", `{dec_integer}|{hex_integer}|{oct_integer}|{bin_integer}`, false},

		// Floats
		{"dec_exponent", `[eE]{sign}?{dec_digits_underscores}`, false},
		{"decimal_point", `\.`, false},
		{"dec_float", `{opt_sign_indent}(?:{zero}|{nonzero_dec_digit}{dec_digit}*(?:_{dec_digit}+)*)(?:{decimal_point}{dec_digits_underscores}(?:_?{dec_exponent})?|_?{dec_exponent})`, false},
		{"hex_exponent", `[pP]{sign}?{dec_digits_underscores}`, false},
		{"hex_float", `{opt_sign_indent}0x_?(?:{lower_hex_digits_underscores}(?:{decimal_point}{lower_hex_digits_underscores}(?:_?{hex_exponent})?|_?{hex_exponent})|{upper_hex_digits_underscores}(?:{decimal_point}{upper_hex_digits_underscores}(?:_?{hex_exponent})?|_?{hex_exponent}))`, false},
		{"infinity", `{opt_sign_indent}inf`, false},
		{"not_a_number", `{opt_sign_indent}nan`, false},
		{"float_invalid_word", `{opt_sign_indent}(?:[iI][nN][fF]|[nN][aA][nN])`, false},
		{"float", `{dec_float}|{hex_float}|{infinity}|{not_a_number}`, false},

		// Unquoted strings
		{"unquoted_start_ascii", `{xid_start_ascii}`, false},
		{"unquoted_start_below_u0590", `{xid_start_below_u0590}`, false},
		{"unquoted_start_unicode", `{xid_start_less_fillers}`, false},
		{"unquoted_continue_ascii", `{xid_continue_ascii}`, false},
		{"unquoted_continue_below_u0590", `{xid_continue_below_u0590}`, false},
		{"unquoted_continue_unicode", `{xid_continue_less_fillers}`, false},
		{"unquoted_key_ascii", `_*{unquoted_start_ascii}{unquoted_continue_ascii}*`, false},
		{"unquoted_key_below_u0590", `_*{unquoted_start_below_u0590}{unquoted_continue_below_u0590}*`, false},
		{"unquoted_key_unicode", `_*{unquoted_start_unicode}{unquoted_continue_unicode}*`, false},
		{"unquoted_string_ascii", `{unquoted_key_ascii}(?:{space}{unquoted_continue_ascii}+)+`, false},
		{"unquoted_string_below_u0590", `{unquoted_key_below_u0590}(?:{space}{unquoted_continue_below_u0590}+)+`, false},
		{"unquoted_string_unicode", `{unquoted_key_unicode}(?:{space}{unquoted_continue_unicode}+)+`, false},
		{"si_mu_prefix", `(?:µ|μ)`, false},
		{"unquoted_unit_ascii", `(?:[A-NP-WY-Za-km-wy-z][A-Za-z]+|[Xx][G-Zg-z][A-Za-z]*|[AC-DF-HJ-NP-WY-Zac-df-hj-km-np-rw-z]|%)`, false},
		{"unquoted_dec_number_unit_ascii", `(?:{dec_integer}|{dec_float}){unquoted_unit_ascii}`, false},
		{"unquoted_dec_number_unit_below_u0590", `(?:{dec_integer}|{dec_float}){si_mu_prefix}?{unquoted_unit_ascii}`, false},
		{"unquoted_dec_number_unit_unicode", `{unquoted_dec_number_unit_below_u0590}`, false},

		// Key path
		{"key_path_element_ascii", `(?:{unquoted_key_ascii}|{open_noninline_list})`, false},
		{"key_path_element_below_u0590", `(?:{unquoted_key_below_u0590}|{open_noninline_list})`, false},
		{"key_path_element_unicode", `(?:{unquoted_key_unicode}|{open_noninline_list})`, false},
		{"key_path_ascii", `{key_path_element_ascii}(?:{path_separator}{key_path_element_ascii})+`, false},
		{"key_path_below_u0590", `{key_path_element_below_u0590}(?:{path_separator}{key_path_element_below_u0590})+`, false},
		{"key_path_unicode", `{key_path_element_unicode}(?:{path_separator}{key_path_element_unicode})+`, false},

		// Alias path
		{"alias_path_ascii", `{alias_prefix}(?:{home_alias}|{self_alias}|{unquoted_key_ascii})(?:{path_separator}{unquoted_key_ascii})+`, false},
		{"alias_path_below_u0590", `{alias_prefix}(?:{home_alias}|{self_alias}|{unquoted_key_below_u0590})(?:{path_separator}{unquoted_key_below_u0590})+`, false},
		{"alias_path_unicode", `{alias_prefix}(?:{home_alias}|{self_alias}|{unquoted_key_unicode})(?:{path_separator}{unquoted_key_unicode})+`, false},

		// Binary types
		{"base16", `{lower_hex_digit}+|{upper_hex_digit}+`, false},
		{"base64", `[A-Za-z0-9+/=]+`, false},
	}
}

func reEscapeAtoms() []Atom {
	return []Atom{
		{"x_escape", `\\x(?:{lower_hex_digit}{{2}}|{upper_hex_digit}{{2}})`, false},
		{"u_escape", `\\u(?:{lower_hex_digit}{{4}}|{upper_hex_digit}{{4}})`, false},
		{"U_escape", `\\U(?:{lower_hex_digit}{{8}}|{upper_hex_digit}{{8}})`, false},
		{"ubrace_escape", `\\u\{{(?:{lower_hex_digit}{{1,6}}|{upper_hex_digit}{{1,6}})\}}`, false},
		// The trailing branches deliberately match any backslash sequence,
		// including a bare trailing backslash; unknown escapes are rejected
		// when the match is decoded, with a more useful error than a
		// non-match could give.
		{"bytes_escape", `{x_escape}|\\{indent}*{newline}|\\.|\\`, false},
		{"unicode_escape", `{x_escape}|{u_escape}|{U_escape}|{ubrace_escape}|\\{indent}*{newline}|\\.|\\`, false},
	}
}
