package lang

import (
	"log/slog"
)

// Engine owns the function table and class registry consulted during
// rendering. Construct with [New]; the zero value is not usable.
//
// The tables are mutated only by [Engine.RegisterFunction] and
// [Engine.RegisterClass]. Render calls never write to them, so an engine may
// serve concurrent renders as long as the caller does not register
// concurrently (no internal locking is performed).
type Engine struct {
	funcs   map[string]any
	host    map[string]any
	classes []any
	opts    options
}

// New creates an Engine with the built-in predicates exists and ok seeded
// into its function table and an engine-scoped copy of the host function
// table.
func New(opts ...Option) *Engine {
	e := &Engine{
		funcs: map[string]any{
			"exists": builtinExists,
			"ok":     builtinOK,
		},
		host: hostTable(),
		opts: defaultOptions(),
	}

	for _, opt := range opts {
		opt(&e.opts)
	}

	return e
}

// RegisterFunction adds a callback resolvable by name from tag pipelines.
// A later registration overwrites an earlier one of the same name,
// including the seeded built-ins.
func (e *Engine) RegisterFunction(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	e.funcs[name] = fn
}

// FunctionNames returns the sorted names resolvable through the custom tier
// of this engine, including the seeded built-ins.
func (e *Engine) FunctionNames() []string {
	return sortedKeys(e.funcs)
}

// RegisterClass appends a value whose exported methods become resolvable by
// exact name from tag pipelines. Registration order defines resolution
// priority: the first registered value exposing a matching method wins.
// Duplicate registrations are kept as-is. A nil value is ignored.
func (e *Engine) RegisterClass(v any) {
	if v == nil {
		return
	}

	e.classes = append(e.classes, v)
}

// Render scans text for {...} tags, evaluates each against vars and the
// engine's tables, and returns the substituted result.
//
// In lenient mode (the default), a tag that fails to evaluate for any reason
// renders as the empty string. With [WithStrict], the first failure aborts
// the render and is returned; no partial output is produced. Per-call
// options override the engine's defaults for this call only.
func (e *Engine) Render(
	text string,
	vars map[string]any,
	opts ...Option,
) (string, error) {
	// Copy e.opts locally so concurrent renders with differing per-call
	// options never observe each other.
	local := e.opts
	for _, opt := range opts {
		opt(&local)
	}

	st := &renderState{opts: local}

	out, err := e.render(text, vars, st)
	if err != nil {
		local.logger.Debug(
			"render failed",
			slog.Any("error", err),
		)

		return "", err
	}

	return out, nil
}

// renderState threads per-call configuration and the recursion counter
// through nested render passes.
type renderState struct {
	opts  options
	depth int
}
