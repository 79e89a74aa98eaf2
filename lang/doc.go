// Package lang implements a micro-language for pipeline tags embedded in
// plain text. A tag is a brace-delimited span whose contents name a variable
// (or a direct function call) followed by a dot-chained pipeline of function
// invocations. Rendering scans the input for tags, evaluates each pipeline
// against caller-supplied variables and the engine's function tables, and
// substitutes the result back into the output.
//
// # Grammar
//
// Informal EBNF:
//
//	span    → "!"? "{" inner "}"
//	inner   → chain
//	chain   → token ("." token)*        ; split only at paren/quote depth 0
//	token   → "@"? name ("(" argtext ")")?
//	argtext → comma-separated literal or nested-tag list
//	literal → quoted-string | number | boolean | null | "$"
//
// A span prefixed with "!" is escaped: it renders to the literal braced text
// and is never evaluated. Nested tags inside an argument string are resolved
// innermost-first before the argument list is parsed.
//
// # Example
//
//	e := lang.New()
//	out, _ := e.Render("Hello {name.strtoupper}!", map[string]any{
//		"name": "alice",
//	})
//	// out: "Hello ALICE!"
//
// # Pipelines
//
// Each chain token after the head names a function. The running value is
// passed as the first argument unless the argument list contains the bare
// placeholder marker $, in which case the running value replaces the first
// occurrence of $ instead:
//
//	{text.str_replace("foo", "bar", $)}
//
// A head token prefixed with @ is a direct call with no piped predecessor:
//
//	{@sprintf("%s/%s", "a", "b")}
//
// # Resolution
//
// Function names resolve through three tiers, first match wins:
//
//  1. Functions registered with [Engine.RegisterFunction], including the
//     seeded built-ins exists and ok.
//  2. Exported methods of values registered with [Engine.RegisterClass],
//     searched in registration order.
//  3. The host function table of common string and numeric helpers.
//
// Name matching is exact; there is no case folding.
//
// # Safety
//
// Argument text is parsed as literal values only (strings, numbers,
// booleans, null, and the $ marker). No expression syntax of any kind is
// evaluated. Nested-tag recursion is bounded by [DefaultMaxRenderDepth],
// adjustable with [WithMaxDepth].
//
// # Concurrency
//
// Rendering never mutates engine state, so concurrent [Engine.Render] calls
// are safe provided the registered functions are themselves safe and the
// caller does not register concurrently. Registration is not internally
// locked; callers needing concurrent registration must serialize it.
package lang
