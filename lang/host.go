package lang

// This file defines the host function table: the third resolver tier of
// common string and numeric helpers available to every pipeline. The table
// is lazily initialized once per process and cloned per engine, so custom
// registrations never leak between instances.

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	hostTableOnce sync.Once
	hostTableMap  map[string]any
)

// hostTable returns a clone of the lazily-initialized, process-scoped host
// function table. The returned map can be safely mutated by the caller
// without affecting the shared cache.
func hostTable() map[string]any {
	hostTableOnce.Do(func() {
		hostTableMap = map[string]any{
			// Case conversion.
			"strtoupper": strings.ToUpper,
			"strtolower": strings.ToLower,
			"ucfirst":    ucfirst,
			"lcfirst":    lcfirst,

			// Whitespace and length.
			"trim":   strings.TrimSpace,
			"ltrim":  ltrim,
			"rtrim":  rtrim,
			"strlen": strlen,

			// Search and transform.
			"str_replace": strReplace,
			"str_repeat":  strings.Repeat,
			"strrev":      strrev,
			"substr":      substr,
			"nl2br":       nl2br,

			// Composition.
			"sprintf": fmt.Sprintf,
			"concat":  concat,
			"default": defaultValue,

			// Numeric.
			"abs":   math.Abs,
			"round": round,
		}
	})

	return maps.Clone(hostTableMap)
}

// HostFunctionNames returns the sorted names resolvable through the host
// tier of a fresh engine. This is useful for completion and introspection.
func HostFunctionNames() []string {
	return sortedKeys(hostTable())
}

// builtinExists is the seeded exists predicate: "0" for null or the empty
// string, "1" otherwise.
func builtinExists(v any) string {
	if v == nil || v == "" {
		return "0"
	}

	return "1"
}

// builtinOK is the seeded ok predicate: "1" for a truthy value, else "0".
func builtinOK(v any) string {
	if truthy(v) {
		return "1"
	}

	return "0"
}

// truthy reports whether a value is considered true by the predicate
// built-ins: nil, false, zero numbers, the empty string, and "0" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case float32:
		return t != 0
	default:
		return true
	}
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

func lcfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

func ltrim(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func rtrim(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

func strlen(s string) int {
	return utf8.RuneCountInString(s)
}

func strReplace(search, replace, subject string) string {
	return strings.ReplaceAll(subject, search, replace)
}

func strrev(s string) string {
	runes := []rune(s)

	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// substr returns the substring starting at the rune offset start. A negative
// start counts back from the end. The optional length bounds the result;
// omitted or oversized lengths extend to the end of the string.
func substr(s string, start int, length ...int) string {
	runes := []rune(s)

	if start < 0 {
		start = max(len(runes)+start, 0)
	}

	if start >= len(runes) {
		return ""
	}

	end := len(runes)
	if len(length) > 0 && length[0] >= 0 {
		end = min(start+length[0], len(runes))
	}

	return string(runes[start:end])
}

func nl2br(s string) string {
	return strings.ReplaceAll(s, "\n", "<br />\n")
}

func concat(parts ...any) string {
	var out strings.Builder

	for _, p := range parts {
		out.WriteString(stringify(p))
	}

	return out.String()
}

// defaultValue substitutes a fallback when the piped value is null or the
// empty string.
func defaultValue(v, fallback any) any {
	if v == nil || v == "" {
		return fallback
	}

	return v
}

func round(f float64) float64 {
	return math.Round(f)
}
