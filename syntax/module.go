package syntax

// This file implements C10, top-level module composition (spec §4.10):
// optional script line, optional deprecated-module header, optional module
// declaration, then a loop over top-level declarations until the stream is
// exhausted.

// ParseModule is the package's entry point (spec §6 "Entry point"):
// `parseModule(tokens, fileName, arena?, onMessage?, errorOut?, warningOut?)`.
// tokens is the immutable token vector produced by an external lexer; arena
// and opts may be nil/zero to take the documented defaults (ordinary heap
// allocation, minimized function bodies, the 500-error speculative cap).
func ParseModule(tokens []Token, fileName string, arena *Arena, onMessage func(Message), opts Options) (*Module, *Diagnostics) {
	diags := NewDiagnostics(fileName, onMessage)
	if arena == nil {
		arena = NewArena()
	}
	p := newParser(tokens, fileName, arena, diags, opts)
	return p.parseModuleEntry(), diags
}

// parseModuleEntry implements C10's composition: script line, deprecated-
// module header, module declaration, then top-level declarations until EOF.
// A declaration that fails to parse is skipped and parsing resumes at the
// next top-level token (spec §7, "Top-level parseModule" recovery point),
// so a file with errors still yields a partial, well-formed Module.
func (p *Parser) parseModuleEntry() *Module {
	pos := p.pos()
	mod := &Module{base: mk(p.arena, NModule, pos)}

	if p.at(ScriptLine) {
		tok := p.advance()
		mod.ScriptLine = &tok
	}

	mod.ModuleDecl = p.parseModuleDeclaration()

	for !p.atEnd() {
		startIdx := p.cur.idx
		d := p.parseDeclaration()
		if d != nil {
			mod.Declarations = append(mod.Declarations, d)
		}
		// A declaration that consumed nothing (e.g. an immediate parse
		// failure on a token no production recognizes) would otherwise
		// spin forever; force progress past the offending token.
		if p.cur.idx == startIdx && !p.atEnd() {
			p.advance()
		}
		if p.diags.ErrorCount() > 0 && p.diags.OverSuppressedCap() {
			break
		}
	}

	return mod
}

// parseModuleDeclaration handles the optional `deprecated(msg) module a.b.c;`
// header. The deprecated-prefix form is detected by bookmarking
// `deprecated ( ... ) module` per spec §4.10, since a bare `deprecated`
// attribute prefix on some other declaration also starts with that keyword.
func (p *Parser) parseModuleDeclaration() *ModuleDeclaration {
	pos := p.pos()
	deprecated := false
	var msg Expr

	if p.at(KwDeprecated) {
		b := p.setBookmark()
		p.advance()
		ok := p.eatIf(LParen)
		var m Expr
		if ok && !p.at(RParen) {
			m = p.parseAssignExpr()
		}
		ok = ok && p.eatIf(RParen)
		if ok && p.at(KwModule) {
			p.abandonBookmark(b)
			deprecated = true
			msg = m
		} else {
			p.goToBookmark(b)
		}
	}

	if !p.at(KwModule) {
		if !deprecated {
			return nil
		}
		// `deprecated(...)` matched but no `module` followed after all
		// (bookmark logic above only commits when it does); unreachable
		// in practice, kept defensive since the check above already
		// requires p.at(KwModule) before committing.
		return nil
	}

	p.advance() // module
	chain := &Chain{base: mk(p.arena, NChain, p.pos())}
	chain.Parts = append(chain.Parts, p.parseIdentName())
	for p.eatIf(Dot) {
		chain.Parts = append(chain.Parts, p.parseIdentName())
	}
	p.expect(Semicolon)
	return &ModuleDeclaration{
		base:           mk(p.arena, NModuleDeclaration, pos),
		Deprecated:     deprecated,
		DeprecationMsg: msg,
		ModuleName:     chain,
	}
}
