package lang

import (
	"log/slog"
	"strings"
)

// render is the tag scanner and substitution driver. It walks text left to
// right, resolving each {...} span and emitting escaped !{...} spans as
// literal braced text. It is re-entered for nested tags inside argument
// strings, guarded by the recursion counter in st.
func (e *Engine) render(
	text string,
	vars map[string]any,
	st *renderState,
) (string, error) {
	if st.depth > st.opts.maxDepth {
		return "", ErrMaxDepthExceeded.
			With(slog.Int("max_depth", st.opts.maxDepth))
	}

	var out strings.Builder

	pos := 0
	for pos < len(text) {
		open := strings.IndexByte(text[pos:], '{')
		if open < 0 {
			break
		}

		open += pos

		end := matchBrace(text, open)
		if end < 0 {
			// No closing brace. The remainder is literal text.
			break
		}

		escaped := open > pos && text[open-1] == '!'

		// Literal text preceding the span, minus the escape marker.
		lit := open
		if escaped {
			lit--
		}

		out.WriteString(text[pos:lit])

		inner := text[open+1 : end]

		if escaped {
			// Emit the braced text unresolved, no recursion into it.
			out.WriteByte('{')
			out.WriteString(inner)
			out.WriteByte('}')
		} else {
			result, err := e.renderTag(strings.TrimSpace(inner), vars, st)
			if err != nil {
				if st.opts.strict {
					return "", err
				}

				// Lenient: the failing tag resolves to empty string.
				st.opts.logger.Debug(
					"tag resolution failed",
					slog.String("tag", inner),
					slog.Any("error", err),
				)
			} else {
				out.WriteString(result)
			}
		}

		pos = end + 1
	}

	out.WriteString(text[pos:])

	return out.String(), nil
}

// renderTag evaluates one tag's inner text to its substituted string form.
func (e *Engine) renderTag(
	inner string,
	vars map[string]any,
	st *renderState,
) (string, error) {
	tokens := splitChain(inner)

	value, err := e.evalChain(tokens, vars, st)
	if err != nil {
		return "", err
	}

	return stringify(value), nil
}

// matchBrace returns the index of the brace closing the span opened at
// text[open], or -1 when the span never closes. Braces nest: an inner {...}
// belonging to a nested tag does not terminate the outer span.
func matchBrace(text string, open int) int {
	depth := 0

	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
