package grammar

import (
	"testing"

	bespon "github.com/bespon/bespon-go"
)

func TestBuildSubstitution(t *testing.T) {
	table, e := Build([]Atom{
		{"a", "x", false},
		{"b", "{a}y", false},
		{"c", "{b}{a}", false},
	})
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	if table["c"] != "xyx" {
		t.Fatalf("expecting %q, got %q", "xyx", table["c"])
	}
}

func TestBuildPassThrough(t *testing.T) {
	table, e := Build([]Atom{
		{"a", "x", false},
		{"p", "{a}", true},
	})
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	if table["p"] != "{a}" {
		t.Fatalf("expecting pass-through entry to stay verbatim, got %q", table["p"])
	}
}

func TestBuildBraceEscapes(t *testing.T) {
	table, e := Build([]Atom{
		{"a", "x", false},
		{"b", "{{{a}}}", false},
		{"c", "{a}{{2}}", false},
	})
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	if table["b"] != "{x}" {
		t.Fatalf("expecting %q, got %q", "{x}", table["b"])
	}
	if table["c"] != "x{2}" {
		t.Fatalf("expecting %q, got %q", "x{2}", table["c"])
	}
}

func TestBuildErrors(t *testing.T) {
	samples := []struct {
		atoms []Atom
		code  int
	}{
		{[]Atom{{"a", "{missing}", false}}, ErrUnresolvedAtom},
		// forward reference: atoms resolve against earlier entries only
		{[]Atom{{"a", "{b}", false}, {"b", "x", false}}, ErrUnresolvedAtom},
		{[]Atom{{"a", "{unclosed", false}}, ErrBadPlaceholder},
		{[]Atom{{"a", "{}", false}}, ErrBadPlaceholder},
		{[]Atom{{"a", "x}", false}}, ErrBadPlaceholder},
		{[]Atom{{"a", "x", false}, {"a", "y", false}}, ErrDuplicateAtom},
	}
	for i, s := range samples {
		table, e := Build(s.atoms)
		if e == nil {
			t.Errorf("sample %d: expecting an error, got table %v", i, table)
			continue
		}
		ee, f := e.(*bespon.Error)
		if !f || ee.Code != s.code {
			t.Errorf("sample %d: expecting error code %d, got %v", i, s.code, e)
		}
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expecting a panic")
		}
	}()
	MustBuild([]Atom{{"a", "{missing}", false}})
}
