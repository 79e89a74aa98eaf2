package repl

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tagex/lang"
	"github.com/ardnew/tagex/log"
)

func testModel(t *testing.T, vars map[string]any) model {
	t.Helper()

	if vars == nil {
		vars = make(map[string]any)
	}

	return newModel(
		context.Background(),
		lang.New(),
		vars,
		NewHistory(""),
		log.Logger{},
	)
}

func fuzzyMatchesFor(names ...string) fuzzy.Matches {
	matches := make(fuzzy.Matches, len(names))
	for i, name := range names {
		matches[i] = fuzzy.Match{Str: name, Index: i}
	}

	return matches
}

func stripANSI(s string) string {
	var (
		b       strings.Builder
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			if r == 'm' {
				escaped = false
			}

		case r == '\x1b':
			escaped = true

		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func TestRunNilEngine(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), nil, nil, t.TempDir(), log.Logger{})
	if err != ErrNoEngine {
		t.Errorf("Run(nil engine) = %v, want %v", err, ErrNoEngine)
	}
}

func TestCycleReplacesWord(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.input.SetValue("{name.strt")
	m.input.SetCursor(len("{name.strt"))

	next := m.cycle(1)
	if !next.tabActive {
		t.Fatal("cycle did not activate tab-cycling")
	}

	value := next.input.Value()
	if !strings.HasPrefix(value, "{name.strto") {
		t.Errorf("cycle produced %q, want a strto* completion", value)
	}
}

func TestSubmitRendersLine(t *testing.T) {
	t.Parallel()

	m := testModel(t, map[string]any{"name": "hadi"})
	m.input.SetValue("Hello {name.strtoupper}!")
	m.input.SetCursor(len(m.input.Value()))

	next, cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	if got := next.(model).input.Value(); got != "" {
		t.Errorf("input after submit = %q, want empty", got)
	}
}

func TestRunCommandSetAndVars(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.mode = modeCtrl

	next, _ := m.runCommand("set name hadi")
	if got := next.vars["name"]; got != "hadi" {
		t.Errorf("vars[name] = %v, want hadi", got)
	}
}

func TestRunCommandQuit(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.mode = modeCtrl

	next, _ := m.runCommand("quit")
	if !next.quitting {
		t.Error("quit command did not set quitting")
	}
}

func TestRunCommandUnknown(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.mode = modeCtrl

	next, cmd := m.runCommand("frobnicate")
	if cmd == nil {
		t.Error("unknown command returned no output")
	}

	if next.quitting {
		t.Error("unknown command set quitting")
	}
}

func TestToggleModePreservesInput(t *testing.T) {
	t.Parallel()

	m := testModel(t, nil)
	m.input.SetValue("partial {tag")
	m.input.SetCursor(5)

	ctrl := m.toggleMode()
	if ctrl.mode != modeCtrl {
		t.Fatalf("mode = %v, want modeCtrl", ctrl.mode)
	}

	if got := ctrl.input.Value(); got != "" {
		t.Errorf("control input = %q, want empty", got)
	}

	back := ctrl.toggleMode()
	if got := back.input.Value(); got != "partial {tag" {
		t.Errorf("restored input = %q, want %q", got, "partial {tag")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []struct {
		line string
		mode inputMode
	}{
		{"Hello {name}!", modeEval},
		{"set name hadi", modeCtrl},
		{"{name.strtoupper}", modeEval},
	} {
		if _, err := h.WriteWithMode(entry.line, entry.mode); err != nil {
			t.Fatalf("WriteWithMode(%q) error = %v", entry.line, err)
		}
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", loaded.Len())
	}

	evals := loaded.Lines(modeEval)
	if len(evals) != 2 || evals[0] != "Hello {name}!" {
		t.Errorf("Lines(modeEval) = %v", evals)
	}

	ctrls := loaded.Lines(modeCtrl)
	if len(ctrls) != 1 || ctrls[0] != "set name hadi" {
		t.Errorf("Lines(modeCtrl) = %v", ctrls)
	}
}

func TestHistoryDeduplicates(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	lines := []string{"{a}", "{b}", "{a}"}
	for _, line := range lines {
		if _, err := h.WriteWithMode(line, modeEval); err != nil {
			t.Fatalf("WriteWithMode(%q) error = %v", line, err)
		}
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	// The repeated entry moves to the end.
	last, err := h.Entry(h.Len() - 1)
	if err != nil {
		t.Fatalf("Entry() error = %v", err)
	}

	if last.Line != "{a}" {
		t.Errorf("last entry = %q, want {a}", last.Line)
	}
}

func TestHistoryEntryOutOfBounds(t *testing.T) {
	t.Parallel()

	h := NewHistory("")

	if _, err := h.Entry(0); err != ErrOutOfBounds {
		t.Errorf("Entry(0) error = %v, want %v", err, ErrOutOfBounds)
	}
}
