package syntax

// This file implements C4, the classifier predicates: bounded-lookahead
// grammar oracles that answer questions no single token can answer on its
// own. Every predicate here must not observably mutate the cursor — each
// either inspects peek() without consuming, or wraps a speculative attempt
// in setBookmark/goToBookmark.

// isStorageClass reports whether the current token is a storage-class
// attribute — the subset of isAttribute restricted to storage classes
// (spec §4.4).
func (p *Parser) isStorageClass() bool {
	switch p.currentKind() {
	case KwStatic, KwExtern, KwAbstract, KwFinal, KwOverride,
		KwGShared, KwLazy, KwRef, KwAuto, KwPure, KwNothrow:
		return p.isAttribute()
	case KwShared, KwConst, KwImmutable, KwInout, KwScope:
		return p.isAttribute()
	}
	return false
}

// isAttribute reports whether the current token begins an attribute:
// storage class, protection, linkage, `@x`/`@x(...)`, pragma, or
// deprecated (spec §4.4).
//
// Ambiguities resolved here:
//   - `shared`, `const`, `immutable`, `inout`, `scope` are attributes only
//     when NOT immediately followed by `(` — that shape is instead a type
//     constructor (`shared(int)`), parsed by C8.
//   - `pragma` is an attribute only when its parenthesized form is not
//     followed by `;` — that shape is a pragma declaration, parsed by C7.
//   - `static` is not an attribute when followed by `assert`, `this`,
//     `if`, `~`, `foreach` or `foreach_reverse` (those start a
//     static-assert, constructor/eponymous conditional, static-if,
//     destructor or static-foreach form instead).
//   - `shared static this`/`shared static ~` is likewise not an attribute
//     prefix; it is the introducer of a shared static ctor/dtor (C7).
func (p *Parser) isAttribute() bool {
	switch p.currentKind() {
	case KwShared:
		if p.peekIs(LParen) {
			return false
		}
		if p.peekIs(KwStatic) && (p.peek(2).Kind == KwThis || p.peek(2).Kind == Tilde) {
			return false
		}
		return true
	case KwConst, KwImmutable, KwInout, KwScope:
		return !p.peekIs(LParen)
	case KwStatic:
		if p.peekIsOneOf(KwAssert, KwThis, KwIf, Tilde, KwForeach, KwForeachReverse) {
			return false
		}
		return true
	case KwExtern, KwAbstract, KwFinal, KwOverride, KwGShared,
		KwLazy, KwRef, KwAuto, KwPure, KwNothrow,
		KwPrivate, KwProtected, KwPublic, KwExport, KwPackage,
		KwDeprecated:
		return true
	case At:
		return true
	case KwPragma:
		return p.isPragmaAttribute()
	}
	return false
}

// isPragmaAttribute decides whether `pragma(...)` at the current position
// is an attribute prefix (not followed by `;`) or a pragma declaration
// statement (followed by `;`).
func (p *Parser) isPragmaAttribute() bool {
	if !p.peekIs(LParen) {
		return false
	}
	b := p.setBookmark()
	p.advance() // pragma
	matched := p.skipParens()
	isDeclForm := matched && p.at(Semicolon)
	p.goToBookmark(b)
	return matched && !isDeclForm
}

// isCastQualifier reports whether the current position begins one of the
// storage-class-qualifier sequences admitted inside `cast(...)` — e.g.
// `cast(const)`, `cast(shared const)`, `cast(immutable)`, `cast(inout)` —
// as opposed to a full type (spec §4.4).
func (p *Parser) isCastQualifier() bool {
	switch p.currentKind() {
	case KwConst, KwImmutable, KwInout, KwShared:
		b := p.setBookmark()
		defer p.goToBookmark(b)
		for p.atOneOf(KwConst, KwImmutable, KwInout, KwShared) {
			p.advance()
		}
		return p.at(RParen)
	}
	return false
}

// isAssociativeArrayLiteral decides whether a `[` at the current position
// opens an associative-array literal (`[k: v, ...]`) rather than a plain
// array literal, by speculatively parsing one expression after `[` and
// checking whether it is followed by `:`. Memoized by the `[` token's
// stream index, per spec §4.4, since the same position may be probed from
// more than one caller (array-literal vs. index-expression disambiguation).
func (p *Parser) isAssociativeArrayLiteral() bool {
	key := p.cur.idx
	if v, ok := p.assocArrayMemo[key]; ok {
		return v
	}
	if p.assocArrayMemo == nil {
		p.assocArrayMemo = make(map[int]bool)
	}
	b := p.setBookmark()
	p.advance() // '['
	result := false
	if !p.at(RBracket) {
		if p.parseAssignExpr() != nil {
			result = p.at(Colon)
		}
	}
	p.goToBookmark(b)
	p.assocArrayMemo[key] = result
	return result
}

// isDeclaration is the pivotal oracle of §4.4: does the token stream at the
// current position start a declaration rather than a statement? It first
// consults a whitelist/blacklist of unambiguous starters, then falls back
// to a full speculative parseDeclaration for everything else.
func (p *Parser) isDeclaration() bool {
	if p.atSet(declStartSet) {
		return true
	}
	if p.atSet(stmtOnlyStartSet) {
		return false
	}
	if p.atSet(builtinTypeSet) {
		// A builtin type not followed by `.`/`(` (member access or a
		// constructor-call-shaped expression) starts a declaration.
		if p.peekIsOneOf(Dot, LParen) {
			return false
		}
		return true
	}
	if p.speculationExhausted() {
		return false
	}
	b := p.setBookmark()
	ok := p.parseDeclaration() != nil
	p.goToBookmark(b)
	return ok
}

// isType reports whether the current position speculatively parses as a
// type followed by `,`, `)`, or `=` — the shape of a type template
// parameter (as opposed to a value template parameter's leading
// type-then-identifier), and equally the shape of a type argument in an
// `is`/`__traits` argument list (spec §4.4).
func (p *Parser) isType() bool {
	return p.isTypeFollowedBy(Comma, RParen, Assign)
}

// isTypeFollowedBy generalizes isType to an arbitrary follow set, needed
// wherever a type can be disambiguated from an expression but the
// terminator isn't one of isType's template-parameter-list follow tokens —
// e.g. the associative-array-key-vs-sized-array disambiguation inside a
// type suffix's `[ ]`, whose terminator is `]` (spec §4.8).
func (p *Parser) isTypeFollowedBy(follow ...Kind) bool {
	if p.speculationExhausted() {
		return false
	}
	b := p.setBookmark()
	defer p.goToBookmark(b)
	if p.parseType() == nil {
		return false
	}
	return p.atOneOf(follow...)
}
