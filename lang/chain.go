package lang

import "strings"

// splitChain splits a tag's inner text into root-level dot-separated tokens.
// A dot is a split point only at parenthesis depth zero and outside quoted
// strings, so dots inside function arguments never break the chain. Each
// token is trimmed of surrounding whitespace; an empty trailing buffer
// produces no trailing token.
//
// Unbalanced parentheses or quotes are not detected: the scan simply never
// returns to its base state, so the remainder of the text joins the current
// token. The resulting token then fails shape validation downstream.
func splitChain(inner string) []string {
	var (
		tokens []string
		buf    strings.Builder
		quote  byte // active quote character, 0 when outside quotes
		parens int
	)

	for i := 0; i < len(inner); i++ {
		c := inner[i]

		// A character is escaped when immediately preceded by a backslash.
		escaped := i > 0 && inner[i-1] == '\\'

		switch {
		case quote != 0:
			if c == quote && !escaped {
				quote = 0
			}

		case c == '"' || c == '\'':
			if !escaped {
				quote = c
			}

		case c == '(':
			parens++

		case c == ')':
			parens--

		case c == '.' && parens == 0:
			tokens = append(tokens, strings.TrimSpace(buf.String()))
			buf.Reset()

			continue
		}

		buf.WriteByte(c)
	}

	if buf.Len() > 0 {
		tokens = append(tokens, strings.TrimSpace(buf.String()))
	}

	return tokens
}

// splitArgs splits a raw argument-list string on top-level commas using the
// same parenthesis and quote tracking as splitChain. The returned slices are
// trimmed. An empty or all-whitespace input yields no arguments.
func splitArgs(argtext string) []string {
	if strings.TrimSpace(argtext) == "" {
		return nil
	}

	var (
		args   []string
		buf    strings.Builder
		quote  byte
		parens int
	)

	for i := 0; i < len(argtext); i++ {
		c := argtext[i]

		escaped := i > 0 && argtext[i-1] == '\\'

		switch {
		case quote != 0:
			if c == quote && !escaped {
				quote = 0
			}

		case c == '"' || c == '\'':
			if !escaped {
				quote = c
			}

		case c == '(':
			parens++

		case c == ')':
			parens--

		case c == ',' && parens == 0:
			args = append(args, strings.TrimSpace(buf.String()))
			buf.Reset()

			continue
		}

		buf.WriteByte(c)
	}

	args = append(args, strings.TrimSpace(buf.String()))

	return args
}
