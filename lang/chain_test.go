package lang

import (
	"reflect"
	"testing"
)

func TestSplitChain_Simple(t *testing.T) {
	got := splitChain("name.strtolower.ucfirst")

	want := []string{"name", "strtolower", "ucfirst"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_SingleToken(t *testing.T) {
	got := splitChain("name")

	want := []string{"name"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_DotInsideParens(t *testing.T) {
	got := splitChain(`v.substr(1.0, 2).trim`)

	want := []string{"v", "substr(1.0, 2)", "trim"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_DotInsideQuotes(t *testing.T) {
	got := splitChain(`v.str_replace(".", "-", $)`)

	want := []string{"v", `str_replace(".", "-", $)`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_EscapedQuoteInsideString(t *testing.T) {
	got := splitChain(`v.f("a\".b")`)

	want := []string{"v", `f("a\".b")`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_SingleQuotes(t *testing.T) {
	got := splitChain(`v.f('x.y')`)

	want := []string{"v", `f('x.y')`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_WhitespaceTrimmed(t *testing.T) {
	got := splitChain("  v  .  trim  ")

	want := []string{"v", "trim"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_TrailingDotProducesNoEmptyToken(t *testing.T) {
	got := splitChain("v.trim.")

	want := []string{"v", "trim"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_UnbalancedParenDegradesGracefully(t *testing.T) {
	// The dot after the unmatched paren is never a split point.
	got := splitChain("v.f(a.b")

	want := []string{"v", "f(a.b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_UnterminatedQuoteDegradesGracefully(t *testing.T) {
	got := splitChain(`v.f("a.b`)

	want := []string{"v", `f("a.b`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitChain_Empty(t *testing.T) {
	if got := splitChain(""); got != nil {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestSplitArgs_TopLevelCommas(t *testing.T) {
	got := splitArgs(`"a", 1, true`)

	want := []string{`"a"`, "1", "true"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitArgs_CommaInsideQuotes(t *testing.T) {
	got := splitArgs(`"a, b", "c"`)

	want := []string{`"a, b"`, `"c"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitArgs_Empty(t *testing.T) {
	if got := splitArgs("   "); got != nil {
		t.Errorf("expected no arguments, got %v", got)
	}
}
