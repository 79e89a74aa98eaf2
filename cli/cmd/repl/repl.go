// Package repl implements the interactive render session for tagex. Lines
// typed in render mode are treated as template text and rendered
// immediately; pressing Esc toggles a control mode for session commands.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tagex/lang"
	"github.com/ardnew/tagex/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"

	defaultWidth = 80
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this cruft
  vars     List session variables
  set      Set a session variable: set name value
  funcs    List resolvable function names
  clear    Clear screen
  quit     Exit session

Usage:
  Type template text to render it (tags use {variable.function} syntax)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between render and command modes
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the input echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and
// input styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the session.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	engine       *lang.Engine
	vars         map[string]any
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session on the given engine. Session variables
// are seeded from vars, and history is persisted under cacheDir.
func Run(
	ctx context.Context,
	engine *lang.Engine,
	vars map[string]any,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if engine == nil {
		return ErrNoEngine
	}

	if vars == nil {
		vars = make(map[string]any)
	}

	logger.DebugContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("var_count", len(vars)),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.DebugContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, engine, vars, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	engine *lang.Engine,
	vars map[string]any,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		engine:     engine,
		vars:       vars,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		// Show history position indicator.
		hint := fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		var hint string
		if m.mode == modeEval {
			hint = "Type template text or press Esc for commands"
		} else {
			hint = "Type: help, vars, set, funcs, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(
			renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width),
		)
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.reset("")

		return m, nil

	case tea.KeyEsc:
		return m.toggleMode(), nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(-1), nil

	case tea.KeyDown:
		return m.recall(1), nil
	}

	m.tabActive = false

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = 0

	return m, cmd
}

// toggleMode switches between render and control modes, preserving the input
// line of each.
func (m model) toggleMode() model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
		m.mode = modeCtrl
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
		m.mode = modeEval
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	}

	m.tabActive = false
	m.matches = nil
	m.historyIdx = m.history.Len()

	return m
}

// reset clears the input line and completion state.
func (m *model) reset(text string) {
	m.input.SetValue(text)
	m.input.SetCursor(len(text))
	m.tabActive = false
	m.matches = nil
	m.suggIdx = 0
	m.historyIdx = m.history.Len()
}

// cycle advances the candidate selection by delta and writes the selected
// candidate into the current word.
func (m model) cycle(delta int) model {
	if !m.tabActive {
		m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()
		if len(m.matches) == 0 {
			return m
		}

		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
	} else {
		m.suggIdx = (m.suggIdx + delta + len(m.matches)) % len(m.matches)
	}

	candidate := m.matches[m.suggIdx].Str
	text := m.preTabText[:m.wordStart] + candidate + m.preTabText[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(candidate))

	return m
}

// recall navigates session history for the current mode.
func (m model) recall(delta int) model {
	lines := m.history.Lines(m.mode)
	if len(lines) == 0 {
		return m
	}

	// historyIdx indexes into the mode-filtered lines, with len(lines)
	// meaning "live input".
	if m.historyIdx > len(lines) {
		m.historyIdx = len(lines)
	}

	idx := m.historyIdx + delta
	if idx < 0 || idx > len(lines) {
		return m
	}

	m.historyIdx = idx

	if idx == len(lines) {
		m.reset("")
	} else {
		text := lines[idx]
		m.input.SetValue(text)
		m.input.SetCursor(len(text))
		m.tabActive = false
		m.matches = nil
	}

	return m
}

// submit processes the current input line according to the active mode.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	_, _ = m.history.WriteWithMode(line, m.mode)

	if m.mode == modeCtrl {
		next, cmd := m.runCommand(line)
		next.reset("")

		return next, cmd
	}

	echo := formatCommand(line)

	rendered, err := m.engine.Render(line, m.vars)

	m.reset("")

	if err != nil {
		return m, tea.Println(echo + "\n" + errorStyle.Render(err.Error()))
	}

	return m, tea.Println(echo + "\n" + resultStyle.Render(rendered))
}

// runCommand executes a control-mode command.
func (m model) runCommand(line string) (model, tea.Cmd) {
	echo := formatCtrlCommand(line)

	name, rest, _ := strings.Cut(line, " ")

	switch name {
	case "help":
		return m, tea.Println(echo + "\n" + hintStyle.Render(helpMessage()))

	case "vars":
		if len(m.vars) == 0 {
			return m, tea.Println(echo + "\n" + hintStyle.Render("(none)"))
		}

		var b strings.Builder

		for _, name := range slices.Sorted(maps.Keys(m.vars)) {
			fmt.Fprintf(&b, "%s = %v\n", name, m.vars[name])
		}

		return m, tea.Println(echo + "\n" + resultStyle.Render(
			strings.TrimRight(b.String(), "\n"),
		))

	case "set":
		name, value, ok := strings.Cut(strings.TrimSpace(rest), " ")
		if !ok || name == "" {
			return m, tea.Println(echo + "\n" + errorStyle.Render(
				"usage: set name value",
			))
		}

		m.vars[name] = strings.TrimSpace(value)

		return m, tea.Println(echo + "\n" + resultStyle.Render(
			name+" = "+m.vars[name].(string),
		))

	case "funcs":
		names := slices.Concat(
			m.engine.FunctionNames(), lang.HostFunctionNames(),
		)
		slices.Sort(names)

		return m, tea.Println(echo + "\n" + resultStyle.Render(
			strings.Join(slices.Compact(names), "  "),
		))

	case "clear":
		return m, tea.ClearScreen

	case "quit":
		m.quitting = true

		return m, tea.Quit
	}

	return m, tea.Println(echo + "\n" + errorStyle.Render(
		"unknown command: "+name,
	))
}
