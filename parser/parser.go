// Package parser turns acamark source text into an ast.Document.
//
// Parsing is total over block and inline syntax: every recognizer has a
// fallback (unclosed fences and math consume to end of input, unmatched
// inline markers degrade to literal text), so the only fatal parse errors
// come from malformed front matter.
package parser

import (
	"fmt"

	"github.com/acamark/acamark/ast"
)

// SyntaxError reports a fatal problem in the source, with a position.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}

// Parse compiles source text into a document tree. filename is for error
// reporting only.
func Parse(filename string, src []byte) (*ast.Document, error) {
	meta, body, err := parseFrontMatter(filename, string(src))
	if err != nil {
		return nil, err
	}
	return &ast.Document{
		Metadata: meta,
		Blocks:   ParseBlocks(body),
	}, nil
}
