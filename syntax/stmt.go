package syntax

// This file implements C6, the statement grammar of spec §4.6. Parsing a
// statement list always begins by asking isDeclaration (C4) whether the
// next token starts a declaration instead; if so the statement becomes a
// DeclStmt wrapping whatever C7 produces.

type BlockStmt struct {
	stmtBase
	Statements []Stmt
}

type ExprStmt struct {
	stmtBase
	Expr Expr
}

type DeclStmt struct {
	stmtBase
	Decl Decl
}

type IfStmt struct {
	stmtBase
	// CondIdent/CondType are set for the `if (auto x = expr)` and
	// `if (Type x = expr)` condition-declaration forms; otherwise only
	// Cond is set.
	CondIdent *IdentExpr
	CondType  TypeNode
	Cond      Expr
	Then      Stmt
	Else      Stmt
}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	stmtBase
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	stmtBase
	Init      Stmt
	Cond      Expr
	Post      Expr
	Body      Stmt
}

// ForeachRangeVar is one `(ref)? (Type)? ident` loop variable, possibly
// without an explicit type (inferred) (spec §4.6 foreach).
type ForeachRangeVar struct {
	base
	IsRef bool
	Type  TypeNode
	Name  *IdentExpr
}

// ForeachStmt covers both `foreach`/`foreach_reverse` range form
// (`foreach (v; low .. high)`) and list form (`foreach (v; aggregate)`);
// IsRange distinguishes them and RangeHigh is only set when IsRange.
type ForeachStmt struct {
	stmtBase
	Reverse    bool
	Vars       []*ForeachRangeVar
	Aggregate  Expr
	IsRange    bool
	RangeHigh  Expr
	Body       Stmt
}

type SwitchStmt struct {
	stmtBase
	Final bool
	Cond  Expr
	Body  Stmt
}

// CaseStmt covers both a single-value `case expr:` and a range form
// `case low: .. case high:` (spec §4.6), distinguished by RangeHigh.
type CaseStmt struct {
	stmtBase
	Values     []Expr
	RangeHigh  Expr
	Statements []Stmt
}

type DefaultStmt struct {
	stmtBase
	Statements []Stmt
}

type BreakStmt struct {
	stmtBase
	Label string
}

type ContinueStmt struct {
	stmtBase
	Label string
}

type ReturnStmt struct {
	stmtBase
	Value Expr
}

type GotoStmt struct {
	stmtBase
	Label     string
	IsCase    bool
	CaseValue Expr
	IsDefault bool
}

type WithStmt struct {
	stmtBase
	Expr Expr
	Body Stmt
}

type SynchronizedStmt struct {
	stmtBase
	Guard Expr
	Body  Stmt
}

type CatchClause struct {
	base
	Type *IdentType
	Name *IdentExpr
	Body *BlockStmt
}

type FinallyClause struct {
	base
	Body *BlockStmt
}

type TryStmt struct {
	stmtBase
	Body    *BlockStmt
	Catches []*CatchClause
	Finally *FinallyClause
}

type ThrowStmt struct {
	stmtBase
	Value Expr
}

// ScopeGuardStmt is `scope(exit|success|failure) Statement`.
type ScopeGuardStmt struct {
	stmtBase
	Which string
	Body  Stmt
}

// StaticIfStmt, VersionStmt, DebugStmt are the statement-level conditional-
// compilation forms (spec §4.7); the declaration-level forms live in C7.
type StaticIfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

type VersionStmt struct {
	stmtBase
	Ident string
	Then  Stmt
	Else  Stmt
}

type DebugStmt struct {
	stmtBase
	Ident string
	Then  Stmt
	Else  Stmt
}

type StaticAssertStmt struct {
	stmtBase
	Cond Expr
	Msg  Expr
}

type StaticForeachStmt struct {
	stmtBase
	Inner *ForeachStmt
}

type LabeledStmt struct {
	stmtBase
	Label string
	Inner Stmt
}

// parseStatement dispatches on the current token, matching spec §4.6's
// production list.
func (p *Parser) parseStatement() Stmt {
	if !p.enterDepth() {
		return nil
	}
	defer p.exitDepth()

	switch p.currentKind() {
	case LBrace:
		return p.parseBlockStmt()
	case Semicolon:
		p.advance()
		return Allocate(p.arena, ExprStmt{stmtBase: stmtBase{mk(p.arena, NExprStmt, p.pos())}})
	case KwIf:
		return p.parseIfStmt()
	case KwWhile:
		return p.parseWhileStmt()
	case KwDo:
		return p.parseDoWhileStmt()
	case KwFor:
		return p.parseForStmt()
	case KwForeach, KwForeachReverse:
		return p.parseForeachStmt()
	case KwSwitch, KwFinalSwitch:
		return p.parseSwitchStmt()
	case KwCase:
		return p.parseCaseStmt()
	case KwDefault:
		return p.parseDefaultStmt()
	case KwBreak:
		return p.parseBreakStmt()
	case KwContinue:
		return p.parseContinueStmt()
	case KwReturn:
		return p.parseReturnStmt()
	case KwGoto:
		return p.parseGotoStmt()
	case KwWith:
		return p.parseWithStmt()
	case KwSynchronized:
		return p.parseSynchronizedStmt()
	case KwTry:
		return p.parseTryStmt()
	case KwThrow:
		return p.parseThrowStmt()
	case KwAsm:
		return p.parseAsmStmt()
	case KwScope:
		if p.peekIs(LParen) {
			return p.parseScopeGuardStmt()
		}
	case KwStatic:
		if p.peekIs(KwIf) {
			return p.parseStaticIfStmt()
		}
		if p.peekIs(KwAssert) {
			return p.parseStaticAssertStmt()
		}
		if p.peekIs(KwForeach) || p.peekIs(KwForeachReverse) {
			return p.parseStaticForeachStmt()
		}
	case KwVersion:
		if p.peekIs(LParen) {
			return p.parseVersionStmt()
		}
	case KwDebug:
		if p.peekIs(LParen) || p.peekIs(Semicolon) {
			return p.parseDebugStmt()
		}
	}

	if p.at(Ident) && p.peekIs(Colon) {
		pos := p.pos()
		label := p.advance().Text
		p.advance() // ':'
		var inner Stmt
		if !p.atOneOf(RBrace, Semicolon) {
			inner = p.parseStatement()
		}
		return Allocate(p.arena, LabeledStmt{stmtBase: stmtBase{mk(p.arena, NLabeledStmt, pos)}, Label: label, Inner: inner})
	}

	if p.isDeclaration() {
		pos := p.pos()
		decl := p.parseDeclaration()
		return Allocate(p.arena, DeclStmt{stmtBase: stmtBase{mk(p.arena, NDeclStmt, pos)}, Decl: decl})
	}

	pos := p.pos()
	e := p.parseExpression()
	p.expect(Semicolon)
	return Allocate(p.arena, ExprStmt{stmtBase: stmtBase{mk(p.arena, NExprStmt, pos)}, Expr: e})
}

func (p *Parser) parseBlockStmt() *BlockStmt {
	pos := p.pos()
	if _, ok := p.expect(LBrace); !ok {
		return nil
	}
	var stmts []Stmt
	for !p.at(RBrace) && !p.atEnd() {
		s := p.parseStatement()
		if s == nil {
			break
		}
		stmts = append(stmts, s)
	}
	p.expect(RBrace)
	return Allocate(p.arena, BlockStmt{stmtBase: stmtBase{mk(p.arena, NBlockStmt, pos)}, Statements: stmts})
}

// parseFunctionBody implements the function-body grammar of spec §4.7,
// including the MinimizeFunctionBodies policy: the caller always gets a
// non-nil *BlockStmt when a body was present, but its Statements slice is
// nil when minimization is enabled, since only HadBody matters downstream.
func (p *Parser) parseFunctionBody() (*BlockStmt, bool) {
	if p.eatIf(Semicolon) {
		return nil, false
	}
	if p.at(Arrow) {
		pos := p.pos()
		p.advance()
		e := p.parseAssignExpr()
		p.expect(Semicolon)
		return Allocate(p.arena, BlockStmt{stmtBase: stmtBase{mk(p.arena, NBlockStmt, pos)}, Statements: []Stmt{
			Allocate(p.arena, ExprStmt{stmtBase: stmtBase{mk(p.arena, NExprStmt, pos)}, Expr: e}),
		}}), true
	}
	if p.atOneOf(In, KwOut, KwBody, KwDo) {
		return p.parseContractBody()
	}
	if !p.at(LBrace) {
		p.errorf("expected function body, found %s", p.currentKind().Name())
		return nil, false
	}
	body := p.parseBlockStmt()
	if p.opts.MinimizeFunctionBodies {
		return Allocate(p.arena, BlockStmt{stmtBase: body.stmtBase}), true
	}
	return body, true
}

// parseContractBody parses the `in { ... } out(result) { ... } body|do
// { ... }` contract-function form (spec §4.7).
func (p *Parser) parseContractBody() (*BlockStmt, bool) {
	for p.atOneOf(In, KwOut) {
		p.advance()
		if p.at(LParen) {
			p.skipParens()
		}
		p.parseBlockStmt()
	}
	p.eatIf(KwBody)
	p.eatIf(KwDo)
	if !p.at(LBrace) {
		p.errorf("expected contract function body")
		return nil, false
	}
	body := p.parseBlockStmt()
	if p.opts.MinimizeFunctionBodies {
		return Allocate(p.arena, BlockStmt{stmtBase: body.stmtBase}), true
	}
	return body, true
}

func (p *Parser) parseIfStmt() Stmt {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	var condIdent *IdentExpr
	var condType TypeNode
	if p.at(KwAuto) && p.peekIs(Ident) {
		p.advance()
		condIdent = p.parseIdentName()
		p.expect(Assign)
	} else if p.isTypeFollowedBy(Ident) {
		condType = p.parseType()
		condIdent = p.parseIdentName()
		p.expect(Assign)
	}
	cond := p.parseExpression()
	p.expect(RParen)
	then := p.parseStatement()
	var els Stmt
	if p.eatIf(KwElse) {
		els = p.parseStatement()
	}
	return Allocate(p.arena, IfStmt{stmtBase: stmtBase{mk(p.arena, NIfStmt, pos)}, CondIdent: condIdent, CondType: condType, Cond: cond, Then: then, Else: els})
}

func (p *Parser) parseWhileStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(LParen)
	cond := p.parseExpression()
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, WhileStmt{stmtBase: stmtBase{mk(p.arena, NWhileStmt, pos)}, Cond: cond, Body: body})
}

func (p *Parser) parseDoWhileStmt() Stmt {
	pos := p.pos()
	p.advance()
	body := p.parseStatement()
	p.expect(KwWhile)
	p.expect(LParen)
	cond := p.parseExpression()
	p.expect(RParen)
	p.expect(Semicolon)
	return Allocate(p.arena, DoWhileStmt{stmtBase: stmtBase{mk(p.arena, NDoWhileStmt, pos)}, Body: body, Cond: cond})
}

func (p *Parser) parseForStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(LParen)
	var init Stmt
	if !p.at(Semicolon) {
		init = p.parseStatement()
	} else {
		p.advance()
	}
	var cond Expr
	if !p.at(Semicolon) {
		cond = p.parseExpression()
	}
	p.expect(Semicolon)
	var post Expr
	if !p.at(RParen) {
		post = p.parseExpression()
	}
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, ForStmt{stmtBase: stmtBase{mk(p.arena, NForStmt, pos)}, Init: init, Cond: cond, Post: post, Body: body})
}

func (p *Parser) parseForeachStmt() Stmt {
	pos := p.pos()
	reverse := p.current().Kind == KwForeachReverse
	p.advance()
	p.expect(LParen)
	var vars []*ForeachRangeVar
	for {
		vpos := p.pos()
		isRef := p.eatIf(KwRef)
		var ty TypeNode
		if !p.at(Ident) || !(p.peekIsOneOf(Semicolon, Comma)) {
			ty = p.parseType()
		}
		name := p.parseIdentName()
		vars = append(vars, Allocate(p.arena, ForeachRangeVar{base: mk(p.arena, NForeachRangeVar, vpos), IsRef: isRef, Type: ty, Name: name}))
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(Semicolon)
	agg := p.parseExpression()
	isRange := p.eatIf(DotDot)
	var high Expr
	if isRange {
		high = p.parseExpression()
		if len(vars) != 1 {
			p.errorf("foreach range requires exactly one loop variable, found %d", len(vars))
		}
	}
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, ForeachStmt{stmtBase: stmtBase{mk(p.arena, NForeachStmt, pos)}, Reverse: reverse, Vars: vars, Aggregate: agg, IsRange: isRange, RangeHigh: high, Body: body})
}

func (p *Parser) parseSwitchStmt() Stmt {
	pos := p.pos()
	final := p.current().Kind == KwFinalSwitch
	p.advance()
	p.expect(LParen)
	cond := p.parseExpression()
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, SwitchStmt{stmtBase: stmtBase{mk(p.arena, NSwitchStmt, pos)}, Final: final, Cond: cond, Body: body})
}

// parseCaseStmt implements both `case expr:` and the case-range extension
// `case low: .. case high:` (spec §4.6).
func (p *Parser) parseCaseStmt() Stmt {
	pos := p.pos()
	p.advance()
	var values []Expr
	values = append(values, p.parseAssignExpr())
	for p.eatIf(Comma) {
		if p.at(Colon) {
			break
		}
		values = append(values, p.parseAssignExpr())
	}
	p.expect(Colon)
	var high Expr
	if p.eatIf(DotDot) {
		p.expect(KwCase)
		high = p.parseAssignExpr()
		p.expect(Colon)
	}
	var stmts []Stmt
	for !p.atOneOf(KwCase, KwDefault, RBrace) && !p.atEnd() {
		s := p.parseStatement()
		if s == nil {
			break
		}
		stmts = append(stmts, s)
	}
	return Allocate(p.arena, CaseStmt{stmtBase: stmtBase{mk(p.arena, NCaseStmt, pos)}, Values: values, RangeHigh: high, Statements: stmts})
}

func (p *Parser) parseDefaultStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(Colon)
	var stmts []Stmt
	for !p.atOneOf(KwCase, KwDefault, RBrace) && !p.atEnd() {
		s := p.parseStatement()
		if s == nil {
			break
		}
		stmts = append(stmts, s)
	}
	return Allocate(p.arena, DefaultStmt{stmtBase: stmtBase{mk(p.arena, NDefaultStmt, pos)}, Statements: stmts})
}

func (p *Parser) parseBreakStmt() Stmt {
	pos := p.pos()
	p.advance()
	label := ""
	if p.at(Ident) {
		label = p.advance().Text
	}
	p.expect(Semicolon)
	return Allocate(p.arena, BreakStmt{stmtBase: stmtBase{mk(p.arena, NBreakStmt, pos)}, Label: label})
}

func (p *Parser) parseContinueStmt() Stmt {
	pos := p.pos()
	p.advance()
	label := ""
	if p.at(Ident) {
		label = p.advance().Text
	}
	p.expect(Semicolon)
	return Allocate(p.arena, ContinueStmt{stmtBase: stmtBase{mk(p.arena, NContinueStmt, pos)}, Label: label})
}

func (p *Parser) parseReturnStmt() Stmt {
	pos := p.pos()
	p.advance()
	var val Expr
	if !p.at(Semicolon) {
		val = p.parseExpression()
	}
	p.expect(Semicolon)
	return Allocate(p.arena, ReturnStmt{stmtBase: stmtBase{mk(p.arena, NReturnStmt, pos)}, Value: val})
}

func (p *Parser) parseGotoStmt() Stmt {
	pos := p.pos()
	p.advance()
	g := GotoStmt{stmtBase: stmtBase{mk(p.arena, NGotoStmt, pos)}}
	switch {
	case p.eatIf(KwCase):
		g.IsCase = true
		if !p.at(Semicolon) {
			g.CaseValue = p.parseExpression()
		}
	case p.eatIf(KwDefault):
		g.IsDefault = true
	case p.at(Ident):
		g.Label = p.advance().Text
	}
	p.expect(Semicolon)
	return Allocate(p.arena, g)
}

func (p *Parser) parseWithStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(LParen)
	e := p.parseExpression()
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, WithStmt{stmtBase: stmtBase{mk(p.arena, NWithStmt, pos)}, Expr: e, Body: body})
}

func (p *Parser) parseSynchronizedStmt() Stmt {
	pos := p.pos()
	p.advance()
	var guard Expr
	if p.eatIf(LParen) {
		guard = p.parseExpression()
		p.expect(RParen)
	}
	body := p.parseStatement()
	return Allocate(p.arena, SynchronizedStmt{stmtBase: stmtBase{mk(p.arena, NSynchronizedStmt, pos)}, Guard: guard, Body: body})
}

func (p *Parser) parseTryStmt() Stmt {
	pos := p.pos()
	p.advance()
	body := p.parseBlockStmt()
	var catches []*CatchClause
	for p.at(KwCatch) {
		cpos := p.pos()
		p.advance()
		var ty *IdentType
		var name *IdentExpr
		if p.eatIf(LParen) {
			if t, ok := p.parseIdentType().(*IdentType); ok {
				ty = t
			}
			if p.at(Ident) {
				name = p.parseIdentName()
			}
			p.expect(RParen)
		}
		cbody := p.parseBlockStmt()
		catches = append(catches, Allocate(p.arena, CatchClause{base: mk(p.arena, NCatchClause, cpos), Type: ty, Name: name, Body: cbody}))
	}
	var fin *FinallyClause
	if p.at(KwFinally) {
		fpos := p.pos()
		p.advance()
		fbody := p.parseBlockStmt()
		fin = Allocate(p.arena, FinallyClause{base: mk(p.arena, NFinallyClause, fpos), Body: fbody})
	}
	if len(catches) == 0 && fin == nil {
		p.errorf("try statement requires at least one catch or a finally clause")
	}
	return Allocate(p.arena, TryStmt{stmtBase: stmtBase{mk(p.arena, NTryStmt, pos)}, Body: body, Catches: catches, Finally: fin})
}

func (p *Parser) parseThrowStmt() Stmt {
	pos := p.pos()
	p.advance()
	val := p.parseExpression()
	p.expect(Semicolon)
	return Allocate(p.arena, ThrowStmt{stmtBase: stmtBase{mk(p.arena, NThrowStmt, pos)}, Value: val})
}

// parseScopeGuardStmt handles `scope(exit|success|failure) Statement`; the
// classifier routes here only when `scope` is immediately followed by `(`
// and one of those three identifiers (otherwise `scope` is a storage-class
// attribute, per isAttribute).
func (p *Parser) parseScopeGuardStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(LParen)
	which := ""
	if p.at(Ident) {
		which = p.advance().Text
	}
	p.expect(RParen)
	body := p.parseStatement()
	return Allocate(p.arena, ScopeGuardStmt{stmtBase: stmtBase{mk(p.arena, NScopeGuardStmt, pos)}, Which: which, Body: body})
}

func (p *Parser) parseStaticIfStmt() Stmt {
	pos := p.pos()
	p.advance() // static
	p.advance() // if
	p.expect(LParen)
	cond := p.parseExpression()
	p.expect(RParen)
	then := p.parseStatement()
	var els Stmt
	if p.eatIf(KwElse) {
		els = p.parseStatement()
	}
	return Allocate(p.arena, StaticIfStmt{stmtBase: stmtBase{mk(p.arena, NStaticIfStmt, pos)}, Cond: cond, Then: then, Else: els})
}

func (p *Parser) parseStaticAssertStmt() Stmt {
	pos := p.pos()
	p.advance() // static
	p.advance() // assert
	p.expect(LParen)
	cond := p.parseAssignExpr()
	var msg Expr
	if p.eatIf(Comma) && !p.at(RParen) {
		msg = p.parseAssignExpr()
	}
	p.expect(RParen)
	p.expect(Semicolon)
	return Allocate(p.arena, StaticAssertStmt{stmtBase: stmtBase{mk(p.arena, NStaticAssertStmt, pos)}, Cond: cond, Msg: msg})
}

func (p *Parser) parseStaticForeachStmt() Stmt {
	pos := p.pos()
	p.advance() // static
	inner := p.parseForeachStmt()
	fe, _ := inner.(*ForeachStmt)
	return Allocate(p.arena, StaticForeachStmt{stmtBase: stmtBase{mk(p.arena, NStaticForeachStmt, pos)}, Inner: fe})
}

func (p *Parser) parseVersionStmt() Stmt {
	pos := p.pos()
	p.advance()
	p.expect(LParen)
	ident := ""
	if p.at(Ident) || p.current().Kind == KwAssert {
		ident = p.advance().Text
	}
	p.expect(RParen)
	then := p.parseStatement()
	var els Stmt
	if p.eatIf(KwElse) {
		els = p.parseStatement()
	}
	return Allocate(p.arena, VersionStmt{stmtBase: stmtBase{mk(p.arena, NVersionStmt, pos)}, Ident: ident, Then: then, Else: els})
}

func (p *Parser) parseDebugStmt() Stmt {
	pos := p.pos()
	p.advance()
	ident := ""
	if p.eatIf(LParen) {
		if p.at(Ident) {
			ident = p.advance().Text
		}
		p.expect(RParen)
	}
	then := p.parseStatement()
	var els Stmt
	if p.eatIf(KwElse) {
		els = p.parseStatement()
	}
	return Allocate(p.arena, DebugStmt{stmtBase: stmtBase{mk(p.arena, NDebugStmt, pos)}, Ident: ident, Then: then, Else: els})
}
