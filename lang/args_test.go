package lang

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseToken_BareName(t *testing.T) {
	name, argtext, hasArgs, err := parseToken("trim")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if name != "trim" || argtext != "" || hasArgs {
		t.Errorf("expected bare name, got %q %q %v", name, argtext, hasArgs)
	}
}

func TestParseToken_WithArgs(t *testing.T) {
	name, argtext, hasArgs, err := parseToken(`str_replace("a", "b", $)`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if name != "str_replace" || !hasArgs {
		t.Errorf("expected str_replace with args, got %q %v", name, hasArgs)
	}

	if argtext != `"a", "b", $` {
		t.Errorf("unexpected argtext %q", argtext)
	}
}

func TestParseToken_EmptyArgs(t *testing.T) {
	name, argtext, hasArgs, err := parseToken("f()")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if name != "f" || argtext != "" || !hasArgs {
		t.Errorf("expected empty args, got %q %q %v", name, argtext, hasArgs)
	}
}

func TestParseToken_ParenInsideQuotes(t *testing.T) {
	_, argtext, _, err := parseToken(`f("(paren)")`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if argtext != `"(paren)"` {
		t.Errorf("unexpected argtext %q", argtext)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	for _, tok := range []string{
		"",
		"f(",
		"f(a))",
		"f)x",
		"f(a) trailing",
		"two words",
	} {
		_, _, _, err := parseToken(tok)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestParseLiteral_Kinds(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`""`, ""},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.25", 3.25},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"$", placeholderMarker{}},
		{`"it\'s"`, "it\\'s"},
		{`'it\'s'`, "it's"},
		{`"tab\there"`, "tab\there"},
	}

	for _, c := range cases {
		got, err := parseLiteral(c.in)
		if err != nil {
			t.Errorf("literal %q: unexpected error %v", c.in, err)

			continue
		}

		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("literal %q: expected %#v, got %#v", c.in, c.want, got)
		}
	}
}

func TestParseLiteral_Malformed(t *testing.T) {
	for _, s := range []string{
		"",
		"bareword",
		`"unterminated`,
		"1 + 2",
		"x.y",
	} {
		if _, err := parseLiteral(s); !errors.Is(err, ErrArgumentParse) {
			t.Errorf("literal %q: expected ErrArgumentParse, got %v", s, err)
		}
	}
}

func TestParseArgs_List(t *testing.T) {
	got, err := parseArgs(`"a", 1, true, null, $`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := []any{"a", int64(1), true, nil, placeholderMarker{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestParseArgs_EmptyList(t *testing.T) {
	got, err := parseArgs("")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got != nil {
		t.Errorf("expected no arguments, got %#v", got)
	}
}

func TestParseArgs_MalformedMember(t *testing.T) {
	if _, err := parseArgs(`"a", nope`); !errors.Is(err, ErrArgumentParse) {
		t.Errorf("expected ErrArgumentParse, got %v", err)
	}
}
