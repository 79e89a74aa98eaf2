package lang

import (
	"testing"
	"unicode/utf8"
)

// FuzzRender tests the renderer with random inputs to find edge cases.
func FuzzRender(f *testing.F) {
	// Seed corpus with known interesting shapes
	f.Add("plain text")
	f.Add("{name}")
	f.Add("!{escaped}")
	f.Add("{user.strtoupper}")
	f.Add(`{@sprintf("%s", "x")}`)
	f.Add(`{v.str_replace("a", "b", $)}`)
	f.Add(`{@f("{@g("{x}")}")}`)
	f.Add("{unclosed")
	f.Add("}{")
	f.Add("{a.b.c.d.e}")
	f.Add(`{v.f("unterminated)}`)
	f.Add("{{{{}}}}")
	f.Add("{  .  .  }")

	e := New()
	vars := map[string]any{
		"name": "x",
		"user": "y",
		"v":    "z",
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Skip invalid UTF-8
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// The renderer should not panic on any input
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("render panicked on input %q: %v", input, r)
			}
		}()

		out, err := e.Render(input, vars)

		// Lenient mode never returns an error for malformed tags; only the
		// recursion bound can surface one.
		if err != nil && out != "" {
			t.Errorf("error with partial output on %q: %q", input, out)
		}
	})
}

// FuzzSplitChain verifies the splitter never panics and always returns
// trimmed tokens.
func FuzzSplitChain(f *testing.F) {
	f.Add("a.b.c")
	f.Add(`f("x.y").g`)
	f.Add("((((")
	f.Add(`"`)
	f.Add("...")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		for i, tok := range splitChain(input) {
			if tok != "" && (tok[0] == ' ' || tok[len(tok)-1] == ' ') {
				t.Errorf("token %d not trimmed: %q", i, tok)
			}
		}
	})
}
