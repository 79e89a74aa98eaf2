package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// placeholderMarker is the parsed form of the bare $ argument. It marks the
// position where the piped value is substituted during evaluation.
type placeholderMarker struct{}

// parseToken decomposes one chain token into its function name and optional
// raw argument-list text. The token must match the shape name or name(args),
// with the closing parenthesis ending the token.
func parseToken(tok string) (name, argtext string, hasArgs bool, err error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 {
		if err := validateName(tok); err != nil {
			return "", "", false, err
		}

		return tok, "", false, nil
	}

	name = strings.TrimSpace(tok[:open])
	if err := validateName(name); err != nil {
		return "", "", false, err
	}

	end := matchParen(tok, open)
	if end < 0 || strings.TrimSpace(tok[end+1:]) != "" {
		return "", "", false, ErrInvalidToken.
			With(slog.String("token", tok))
	}

	return name, tok[open+1 : end], true, nil
}

// validateName rejects empty names and names containing characters that can
// only arise from a malformed token (quotes, parentheses, whitespace).
func validateName(name string) error {
	if name == "" {
		return ErrInvalidToken.With(slog.String("token", name))
	}

	if strings.ContainsAny(name, "()'\"{} \t\n,") {
		return ErrInvalidToken.With(slog.String("token", name))
	}

	return nil
}

// matchParen returns the index of the parenthesis closing the list opened at
// tok[open], tracking nesting and quoted strings, or -1 when unmatched.
func matchParen(tok string, open int) int {
	var quote byte

	depth := 0

	for i := open; i < len(tok); i++ {
		c := tok[i]

		escaped := i > 0 && tok[i-1] == '\\'

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
			depth++

		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// parseArgs parses a raw argument-list string (already nested-resolved by
// the renderer) into its ordered literal values. Only literals are accepted:
// quoted strings, numbers, booleans, null, and the placeholder marker $.
// Arbitrary expression syntax is rejected rather than evaluated.
func parseArgs(argtext string) ([]any, error) {
	raw := splitArgs(argtext)
	if len(raw) == 0 {
		return nil, nil
	}

	args := make([]any, len(raw))

	for i, s := range raw {
		val, err := parseLiteral(s)
		if err != nil {
			return nil, err
		}

		args[i] = val
	}

	return args, nil
}

// parseLiteral parses one argument literal.
func parseLiteral(s string) (any, error) {
	switch s {
	case "$":
		return placeholderMarker{}, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	case "":
		return nil, ErrArgumentParse.With(slog.String("literal", s))
	}

	if first := s[0]; first == '"' || first == '\'' {
		if len(s) < 2 || s[len(s)-1] != first {
			return nil, ErrArgumentParse.With(slog.String("literal", s))
		}

		return unquote(s[1:len(s)-1], first), nil
	}

	// Try int before float so whole numbers keep integer identity.
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	return nil, ErrArgumentParse.With(slog.String("literal", s))
}

// unquote resolves backslash escapes inside a quoted argument. The quote
// character itself and the backslash are always unescaped; the conventional
// control escapes are translated; any other escaped character is preserved
// with its backslash.
func unquote(s string, quote byte) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var out strings.Builder

	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		if c != '\\' || i+1 >= len(s) {
			out.WriteByte(c)

			continue
		}

		next := s[i+1]

		switch next {
		case quote, '\\':
			out.WriteByte(next)
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		default:
			out.WriteByte(c)
			out.WriteByte(next)
		}

		i++
	}

	return out.String()
}
