package pattern

import (
	"regexp"
	"testing"
)

func allClasses() map[string]string {
	return map[string]string{
		"XIDStartASCII":             XIDStartASCII,
		"XIDStartBelowU0590":        XIDStartBelowU0590,
		"XIDStartLessFillers":       XIDStartLessFillers,
		"XIDContinueASCII":          XIDContinueASCII,
		"XIDContinueBelowU0590":     XIDContinueBelowU0590,
		"XIDContinueLessFillers":    XIDContinueLessFillers,
		"NotValidLiteralASCII":      NotValidLiteralASCII,
		"NotValidLiteralBelowU0590": NotValidLiteralBelowU0590,
		"NotValidLiteral":           NotValidLiteral,
		"BidiRAL":                   BidiRAL,
		"PrivateUse":                PrivateUse,
	}
}

func TestClassesCompile(t *testing.T) {
	for name, class := range allClasses() {
		if _, e := regexp.Compile(class); e != nil {
			t.Errorf("%s does not compile: %s", name, e)
		}
	}
}

func compileClass(t *testing.T, class string) *regexp.Regexp {
	t.Helper()
	re, e := regexp.Compile("^(?:" + class + ")$")
	if e != nil {
		t.Fatalf("class does not compile: %s", e)
	}
	return re
}

func TestXIDStart(t *testing.T) {
	samples := []struct {
		class  string
		sample string
		match  bool
	}{
		{XIDStartASCII, "A", true},
		{XIDStartASCII, "z", true},
		{XIDStartASCII, "7", false},
		{XIDStartASCII, "_", false},
		{XIDStartASCII, "é", false},
		{XIDStartBelowU0590, "é", true},
		{XIDStartBelowU0590, "а", true}, // CYRILLIC SMALL LETTER A
		{XIDStartBelowU0590, "ا", false}, // ARABIC LETTER ALEF, above the limit
		{XIDStartLessFillers, "ا", true},
		{XIDStartLessFillers, "ㅤ", false}, // HANGUL FILLER
		{XIDStartLessFillers, "A", true},
		{XIDStartLessFillers, " ", false},
	}
	for i, s := range samples {
		got := compileClass(t, s.class).MatchString(s.sample)
		if got != s.match {
			t.Errorf("sample %d: expecting match == %v for %q", i, s.match, s.sample)
		}
	}
}

func TestXIDContinue(t *testing.T) {
	samples := []struct {
		class  string
		sample string
		match  bool
	}{
		{XIDContinueASCII, "_", true},
		{XIDContinueASCII, "7", true},
		{XIDContinueASCII, "-", false},
		{XIDContinueBelowU0590, "́", true}, // COMBINING ACUTE ACCENT
		{XIDContinueLessFillers, "٠", true}, // ARABIC-INDIC DIGIT ZERO
		{XIDContinueLessFillers, "ﾠ", false}, // HALFWIDTH HANGUL FILLER
	}
	for i, s := range samples {
		got := compileClass(t, s.class).MatchString(s.sample)
		if got != s.match {
			t.Errorf("sample %d: expecting match == %v for %q", i, s.match, s.sample)
		}
	}
}

func TestNotValidLiteral(t *testing.T) {
	samples := []struct {
		sample                  string
		ascii, belowU0590, full bool
	}{
		{"\x00", true, true, true},
		{"\x1f", true, true, true},
		{"\x7f", true, true, true},
		{"\u0085", true, true, true}, // C1 control
		{"\t", false, false, false},
		{"\n", false, false, false},
		{"a", false, false, false},
		{"~", false, false, false},
		{"é", true, false, false},
		{"֑", true, true, false}, // valid literal, outside the narrow granularities
		{"\u2028", true, true, true},
		{"\ufdd0", true, true, true},
		{"\uffff", true, true, true},
		{"\U0010fffe", true, true, true},
		{"\U0001f600", true, true, false},
	}
	ascii := compileClass(t, NotValidLiteralASCII)
	below := compileClass(t, NotValidLiteralBelowU0590)
	full := compileClass(t, NotValidLiteral)
	for i, s := range samples {
		if got := ascii.MatchString(s.sample); got != s.ascii {
			t.Errorf("sample %d: ascii: expecting match == %v for %q", i, s.ascii, s.sample)
		}
		if got := below.MatchString(s.sample); got != s.belowU0590 {
			t.Errorf("sample %d: below u0590: expecting match == %v for %q", i, s.belowU0590, s.sample)
		}
		if got := full.MatchString(s.sample); got != s.full {
			t.Errorf("sample %d: full: expecting match == %v for %q", i, s.full, s.sample)
		}
	}
}

func TestBidiRAL(t *testing.T) {
	re := compileClass(t, BidiRAL)
	for _, sample := range []string{"א", "ا", "יִ", "\U00010800"} {
		if !re.MatchString(sample) {
			t.Errorf("expecting %q to match", sample)
		}
	}
	for _, sample := range []string{"a", "é", "а"} {
		if re.MatchString(sample) {
			t.Errorf("expecting %q not to match", sample)
		}
	}
}

func TestPrivateUse(t *testing.T) {
	re := compileClass(t, PrivateUse)
	for _, sample := range []string{"\ue000", "\uf8ff", "\U000f0000", "\U0010fffd"} {
		if !re.MatchString(sample) {
			t.Errorf("expecting %q to match", sample)
		}
	}
	if re.MatchString("a") {
		t.Error("expecting \"a\" not to match")
	}
}
