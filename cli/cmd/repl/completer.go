package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tagex/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "vars", "set", "funcs", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace and the punctuation of the tag grammar:
// braces, parentheses, the pipeline dot, argument commas, quotes, and the
// direct-call marker.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'{', '}', '(', ')',
		',', '@', '!', '$',
		'\'', '"', '=':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a space, between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inPipeline reports whether the word starting at wordStart continues a
// pipeline: it directly follows a member-access dot or a direct-call marker,
// so only function names are valid there.
func inPipeline(input string, wordStart int) bool {
	if wordStart == 0 {
		return false
	}

	r, _ := utf8.DecodeLastRuneInString(input[:wordStart])

	return r == '.' || r == '@'
}

// candidates returns the completion candidates for the current input
// position. Control mode completes command names. In render mode, a word
// continuing a pipeline completes function names only; elsewhere both
// variable and function names are offered.
func (m model) candidatesAt(input string, wordStart int) []string {
	if m.mode == modeCtrl {
		return ctrlCommands
	}

	names := slices.Concat(m.engine.FunctionNames(), lang.HostFunctionNames())

	if !inPipeline(input, wordStart) {
		for name := range m.vars {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list, and
// the word boundaries. When the current word is empty at the top level, it
// returns nil matches. When the word is empty inside a pipeline, all function
// names are offered.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	start, end int,
) {
	input := m.input.Value()
	word, start, end := wordBounds(input, m.input.Position())

	candidates = m.candidatesAt(input, start)

	if word == "" {
		if m.mode != modeCtrl && !inPipeline(input, start) {
			return nil, candidates, start, end
		}

		// Empty word in a pipeline (or control mode): offer everything.
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, start, end
	}

	return fuzzy.Find(word, candidates), candidates, start, end
}

// renderCandidateBar renders the completion candidates on a single line,
// highlighting the selected candidate when tab-cycling is active. The bar is
// truncated to the given width.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	tabActive bool,
	width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if tabActive && i == selected {
			b.WriteString(selectedStyle.Render(match.Str))
		} else {
			b.WriteString(suggestionStyle.Render(match.Str))
		}
	}

	bar := b.String()
	if width > 1 && lipgloss.Width(bar) > width {
		bar = truncateANSI(bar, width-1) + hintStyle.Render("…")
	}

	return bar
}

// truncateANSI truncates a styled string to the given display width without
// splitting escape sequences.
func truncateANSI(s string, width int) string {
	var (
		b       strings.Builder
		visible int
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)

			if r == 'm' {
				escaped = false
			}

		case r == '\x1b':
			escaped = true

			b.WriteRune(r)

		default:
			if visible >= width {
				continue
			}

			b.WriteRune(r)

			visible++
		}
	}

	return b.String()
}
