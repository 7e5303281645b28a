package parser

import (
	"errors"
	"strconv"
)

// ErrSyntax wraps any malformed input the scanner rejects: an unexpected
// character, an invalid namespace or source type keyword, an unterminated
// block.
var ErrSyntax = errors.New("parser: syntax error")

// ErrImport wraps a failure to read an @import target.
var ErrImport = errors.New("parser: import failed")

// Position names where in a file a syntax error occurred.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
