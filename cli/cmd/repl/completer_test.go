package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"empty", "", 0, "", 0, 0},
		{"whole word", "name", 4, "name", 0, 4},
		{"mid word", "name", 2, "name", 0, 4},
		{"after dot", "name.str", 8, "str", 5, 8},
		{"on dot", "name.", 5, "", 5, 5},
		{"inside tag", "{name.trim}", 7, "trim", 6, 10},
		{"after marker", "{@concat", 8, "concat", 2, 8},
		{"cursor past end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestInPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		start int
		want  bool
	}{
		{"name.str", 5, true},
		{"{@con", 2, true},
		{"name", 0, false},
		{"a b", 2, false},
	}

	for _, tt := range tests {
		if got := inPipeline(tt.input, tt.start); got != tt.want {
			t.Errorf("inPipeline(%q, %d) = %v, want %v",
				tt.input, tt.start, got, tt.want)
		}
	}
}

func TestComputeMatchesPipeline(t *testing.T) {
	t.Parallel()

	m := testModel(t, map[string]any{"greeting": "hi"})
	m.input.SetValue("{greeting.strto")
	m.input.SetCursor(len("{greeting.strto"))

	matches, _, start, end := m.computeMatches()

	if start != len("{greeting.") || end != len("{greeting.strto") {
		t.Fatalf("word bounds = (%d, %d)", start, end)
	}

	var found bool

	for _, match := range matches {
		if match.Str == "strtoupper" {
			found = true
		}

		if match.Str == "greeting" {
			t.Errorf("variable offered as pipeline completion")
		}
	}

	if !found {
		t.Errorf("strtoupper not offered for %q", m.input.Value())
	}
}

func TestComputeMatchesTopLevelIncludesVars(t *testing.T) {
	t.Parallel()

	m := testModel(t, map[string]any{"greeting": "hi"})
	m.input.SetValue("{greet")
	m.input.SetCursor(len("{greet"))

	matches, _, _, _ := m.computeMatches()

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Str
	}

	if !slices.Contains(names, "greeting") {
		t.Errorf("variable greeting not offered, got %v", names)
	}
}

func TestComputeMatchesCtrlMode(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.mode = modeCtrl
	m.input.SetValue("he")
	m.input.SetCursor(2)

	matches, _, _, _ := m.computeMatches()

	if len(matches) == 0 || matches[0].Str != "help" {
		t.Errorf("control completion for \"he\" = %v, want help first", matches)
	}
}

func TestRenderCandidateBarTruncates(t *testing.T) {
	t.Parallel()

	matches := fuzzyMatchesFor("alpha", "beta", "gamma", "delta", "epsilon")

	bar := renderCandidateBar(matches, 0, false, 10)
	if plain := stripANSI(bar); len([]rune(plain)) > 10 {
		t.Errorf("bar width = %d, want <= 10 (%q)", len([]rune(plain)), plain)
	}
}
