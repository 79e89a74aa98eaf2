package repl

import "errors"

// Sentinel errors.
var (
	ErrNoEngine    = errors.New("no rendering engine")
	ErrOutOfBounds = errors.New("index out of range")
)
