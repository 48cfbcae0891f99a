package syntax

// idTok builds an identifier token carrying the given text, the shape every
// hand-built token-slice test below needs for names, type names, and
// labels.
func idTok(name string) Token { return Token{Kind: Ident, Text: name} }

// litTok builds a literal token of the given kind carrying its lexeme.
func litTok(k Kind, text string) Token { return Token{Kind: k, Text: text} }

// builtinTok builds a KwBuiltinType token carrying its spelling, since the
// lexer tags every builtin value type with one kind and keeps the spelling
// in Text (kind.go).
func builtinTok(name string) Token { return Token{Kind: KwBuiltinType, Text: name} }

// newTestParser wires up a Parser the way newParser does for ParseModule,
// but without going through the lexer: every test in this file hand-builds
// its token slice the way cursor_test.go does.
func newTestParser(toks []Token) (*Parser, *Diagnostics) {
	toks = append(toks, Token{Kind: TEOF})
	d := NewDiagnostics("t.d", nil)
	p := newParser(toks, "t.d", NewArena(), d, DefaultOptions())
	return p, d
}
