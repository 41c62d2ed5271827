// Package grammar assembles the grammar tables of the format: a literal-value
// table mapping atom names to literal Unicode text, and a regex-source table
// mapping atom names to regexp pattern fragments. Tables are built by a single
// forward pass over an ordered atom sequence, so atoms may only reference
// atoms defined before them; the sequences in this package respect that order
// by construction.
package grammar

import (
	"strings"

	bespon "github.com/bespon/bespon-go"
)

// Error codes used by grammar:
const (
	// ErrUnresolvedAtom indicates a placeholder referring to an atom that is
	// not resolved at that point of the sequence.
	ErrUnresolvedAtom = bespon.GrammarErrors + iota

	// ErrBadPlaceholder indicates an unterminated or empty placeholder.
	ErrBadPlaceholder

	// ErrDuplicateAtom indicates two atoms sharing one name.
	ErrDuplicateAtom
)

// Atom is a single named grammar-table entry. Templates reference previously
// resolved atoms as {name}; literal braces are written {{ and }}.
// Pass-through atoms are stored verbatim: their text is already in final form
// (regexp class fragments, meta-escaped punctuation, literal brace characters)
// and must not go through placeholder substitution.
type Atom struct {
	Name        string
	Template    string
	PassThrough bool
}

// Build resolves an ordered atom sequence into a table. Each atom is stored
// either verbatim (pass-through) or with every {name} placeholder replaced by
// the already-resolved value of that name. The result is treated as read-only
// configuration by all consumers.
func Build(atoms []Atom) (map[string]string, error) {
	table := make(map[string]string, len(atoms))
	for _, a := range atoms {
		if _, dup := table[a.Name]; dup {
			return nil, bespon.FormatError(ErrDuplicateAtom, "duplicate grammar atom %q", a.Name)
		}
		if a.PassThrough {
			table[a.Name] = a.Template
			continue
		}
		v, e := substitute(a.Template, table)
		if e != nil {
			return nil, bespon.FormatError(e.Code, "atom %q: %s", a.Name, e.Message)
		}
		table[a.Name] = v
	}
	return table, nil
}

// MustBuild is like Build but panics on error. It is used for the atom
// sequences defined in this package, where a failure is an authoring error.
func MustBuild(atoms []Atom) map[string]string {
	table, e := Build(atoms)
	if e != nil {
		panic("grammar: " + e.Error())
	}
	return table
}

func substitute(tpl string, table map[string]string) (string, *bespon.Error) {
	var b strings.Builder
	for i := 0; i < len(tpl); {
		switch tpl[i] {
		case '{':
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			j := strings.IndexByte(tpl[i+1:], '}')
			if j <= 0 {
				return "", bespon.FormatError(ErrBadPlaceholder, "unterminated or empty placeholder at offset %d", i)
			}
			name := tpl[i+1 : i+1+j]
			v, found := table[name]
			if !found {
				return "", bespon.FormatError(ErrUnresolvedAtom, "unresolved atom %q", name)
			}
			b.WriteString(v)
			i += j + 2
		case '}':
			if i+1 >= len(tpl) || tpl[i+1] != '}' {
				return "", bespon.FormatError(ErrBadPlaceholder, "single } at offset %d", i)
			}
			b.WriteByte('}')
			i += 2
		default:
			b.WriteByte(tpl[i])
			i++
		}
	}
	return b.String(), nil
}
