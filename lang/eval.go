package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// evalChain drives one tag's pipeline: resolve the head, then fold the
// remaining tokens left to right, threading the running value through each
// invocation.
func (e *Engine) evalChain(
	tokens []string,
	vars map[string]any,
	st *renderState,
) (any, error) {
	if len(tokens) == 0 {
		return nil, ErrInvalidToken.With(slog.String("token", ""))
	}

	running, err := e.evalHead(tokens[0], vars, st)
	if err != nil {
		return nil, err
	}

	for _, tok := range tokens[1:] {
		running, err = e.evalCall(tok, running, true, vars, st)
		if err != nil {
			return nil, err
		}
	}

	return running, nil
}

// evalHead resolves a chain's first token: a direct @call, or a variable
// looked up in vars. An absent variable yields the empty string in lenient
// mode and an undefined-variable failure in strict mode.
func (e *Engine) evalHead(
	head string,
	vars map[string]any,
	st *renderState,
) (any, error) {
	if rest, ok := strings.CutPrefix(head, "@"); ok {
		// The only call with no piped predecessor: the function receives
		// exactly its own literal arguments.
		return e.evalCall(rest, nil, false, vars, st)
	}

	if err := validateName(head); err != nil {
		return nil, err
	}

	value, ok := vars[head]
	if !ok {
		if st.opts.strict {
			return nil, ErrUndefinedVariable.
				With(slog.String("variable", head))
		}

		return "", nil
	}

	return value, nil
}

// evalCall parses one call token, resolves its function, assembles the final
// argument list, and invokes it. When piped is true, the running value
// replaces the first $ placeholder among the parsed arguments, or is
// prepended as argument zero when no placeholder is present.
func (e *Engine) evalCall(
	tok string,
	running any,
	piped bool,
	vars map[string]any,
	st *renderState,
) (any, error) {
	name, argtext, hasArgs, err := parseToken(tok)
	if err != nil {
		return nil, err
	}

	fn, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	st.opts.logger.Debug(
		"resolved function",
		slog.String("name", name),
		slog.String("tier", fn.tier),
	)

	var args []any

	if hasArgs {
		// Nested tags in the argument text are resolved innermost-first by
		// re-entering the renderer before literal parsing.
		st.depth++
		resolved, rerr := e.render(argtext, vars, st)
		st.depth--

		if rerr != nil {
			return nil, rerr
		}

		args, err = parseArgs(resolved)
		if err != nil {
			return nil, err
		}
	}

	if piped {
		args = spliceRunning(args, running)
	}

	// Only the first placeholder receives the piped value; any remaining $
	// (and every $ in a direct call) degrades to its literal spelling.
	for i, arg := range args {
		if _, ok := arg.(placeholderMarker); ok {
			args[i] = "$"
		}
	}

	return invoke(fn, name, args)
}

// spliceRunning places the running value into the argument list: the first
// $ placeholder is replaced in place; with no placeholder present, the
// running value becomes argument zero.
func spliceRunning(args []any, running any) []any {
	for i, arg := range args {
		if _, ok := arg.(placeholderMarker); ok {
			args[i] = running

			return args
		}
	}

	return append([]any{running}, args...)
}

// stringify renders a final pipeline value as output text: nil becomes the
// empty string, booleans and numbers use their canonical textual forms.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
