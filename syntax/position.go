package syntax

import "fmt"

// Position locates a token's first byte in its source file: a byte index
// plus the 1-based line/column the lexer computed for it (spec §3, "Token
// (input)"). Unlike the teacher's numbered Span (built for incremental
// editing, typst-syntax/src/span.rs), nothing in this parser's contract
// needs stable cross-edit identity, so a plain byte/line/column triple
// replaces it.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position the way diagnostics format source locations
// (spec §6, "fileName(line:column)").
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}
