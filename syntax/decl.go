package syntax

import "slices"

// This file implements C7, the declaration grammar of spec §4.7 — the
// largest production family: attribute-prefix collection, then dispatch
// across alias, aggregate, enum, import, mixin, pragma, ctor/dtor,
// conditional compilation, static assert, static foreach, template, union,
// invariant, unittest, and the generic function-vs-variable form.

type AttributeDecl struct {
	declBase
	Attrs []Kind
	// At/Pragma carry the spelling for `@identifier`/`@identifier(args)`
	// and `pragma(name, args)` attributes, which aren't plain keywords.
	AtName     string
	AtArgs     []Expr
	PragmaName string
	PragmaArgs []Expr
	Deprecated bool
	DeprecationMsg Expr
	Protection Kind
	// Members is non-nil for the colon-terminated form
	// (`attr: decl; decl;`) and the braced form (`attr { decl decl }`);
	// nil for a single-declaration prefix.
	Members []Decl
}

type AliasDecl struct {
	declBase
	// New-style: `alias Name = Type;`. Legacy: `alias Type Name;`.
	Legacy bool
	Names  []*IdentExpr
	Types  []TypeNode
}

type AliasThisDecl struct {
	declBase
	Name *IdentExpr
}

// BaseClause is one `: Base1, Base2` list on a class/interface.
type BaseClause struct {
	base
	Bases []*IdentType
}

type AggregateDecl struct {
	declBase
	AggKind    Kind // KwClass, KwStruct, KwUnion, KwInterface
	Name       *IdentExpr
	Params     []*TemplateParameter
	Bases      *BaseClause
	Body       []Decl
	IsOpaque   bool // `struct Foo;` with no body
}

type ConstructorDecl struct {
	declBase
	Params         []*Parameter
	TemplateParams []*TemplateParameter
	IsShared       bool
	Body           *BlockStmt
	HadBody        bool
}

type DestructorDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type PostblitDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type EnumMember struct {
	declBase
	Name  *IdentExpr
	Type  TypeNode
	Value Expr
}

type EnumDecl struct {
	declBase
	Name    *IdentExpr
	BaseType TypeNode
	Members []*EnumMember
}

// AnonymousEnumDecl is `enum { a, b, c }` or `enum : Type { ... }` with no
// name, disambiguated from a named/eponymous enum in parseEnumDecl.
type AnonymousEnumDecl struct {
	declBase
	BaseType TypeNode
	Members  []*EnumMember
}

// EponymousTemplateDecl is `enum name(Params) = expr;` (a manifest constant
// that is itself a template), disambiguated per spec §4.7.
type EponymousTemplateDecl struct {
	declBase
	Name   *IdentExpr
	Params []*TemplateParameter
	Type   TypeNode
	Value  Expr
}

type Declarator struct {
	base
	Name  *IdentExpr
	Extra TypeNode // additional suffix type constructors attached directly to the name
	Value Expr
}

type VariableDecl struct {
	declBase
	Attrs       []Kind
	Type        TypeNode
	Declarators []*Declarator
}

type ImportSelector struct {
	base
	Name  *IdentExpr
	Alias *IdentExpr
}

type ImportDecl struct {
	declBase
	Static     bool
	Modules    []*Chain
	Alias      *IdentExpr
	Selectors  []*ImportSelector
}

type MixinDecl struct {
	declBase
	Args []Expr
}

type MixinTemplateDecl struct {
	declBase
	Name   *IdentExpr
	Params []*TemplateParameter
	Body   []Decl
}

type TemplateMixinDecl struct {
	declBase
	Chain *Chain
	Args  []Node
	Name  *IdentExpr
}

type PragmaDecl struct {
	declBase
	Name    string
	Args    []Expr
	Body    []Decl
}

type StaticCtorDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type StaticDtorDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type SharedStaticCtorDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type SharedStaticDtorDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

// ConditionalDecl covers `static if`/`version`/`debug` at declaration scope
// (spec §4.7); the true branch's children receive SupplementalComment.
type ConditionalDecl struct {
	declBase
	Form  Kind // KwStatic (if), KwVersion, or KwDebug
	Ident string
	Cond  Expr
	Then  []Decl
	Else  []Decl
}

type StaticAssertDecl struct {
	declBase
	Cond Expr
	Msg  Expr
}

type StaticForeachDecl struct {
	declBase
	Vars      []*ForeachRangeVar
	Aggregate Expr
	IsRange   bool
	RangeHigh Expr
	Body      []Decl
}

type TemplateParameter struct {
	base
	Name         *IdentExpr
	IsType       bool
	Constraint   TypeNode
	Default      Node
	IsAlias      bool
	IsVariadic   bool
}

type TemplateDecl struct {
	declBase
	Name   *IdentExpr
	Params []*TemplateParameter
	Body   []Decl
}

type InvariantDecl struct {
	declBase
	Body    *BlockStmt
	HadBody bool
}

type UnittestDecl struct {
	declBase
	Body *BlockStmt
}

type Parameter struct {
	base
	Attrs    []Kind
	Type     TypeNode
	Name     *IdentExpr
	Default  Expr
	Variadic bool
}

type FunctionDecl struct {
	declBase
	Attrs      []Kind
	ReturnType TypeNode
	Name       *IdentExpr
	Params     []*Parameter
	TemplateParams []*TemplateParameter
	Body       *BlockStmt
	HadBody    bool
}

// parseDeclaration is C7's entry point: collect attribute prefixes, then
// dispatch to the form the remaining tokens name.
func (p *Parser) parseDeclaration() Decl {
	if !p.enterDepth() {
		return nil
	}
	defer p.exitDepth()

	comment := p.takeComment()
	supplemental := p.pendingSupplemental

	ad, done := p.collectAttributePrefix()
	if done {
		ad.Comment = comment
		ad.SupplementalComment = supplemental
		return ad
	}
	hasAttrs := len(ad.Attrs) > 0 || ad.AtName != "" || ad.PragmaName != "" || ad.Deprecated || ad.Protection != Invalid
	onlyStorage := len(ad.Attrs) > 0 && ad.AtName == "" && ad.PragmaName == "" && !ad.Deprecated && ad.Protection == Invalid
	if onlyStorage && p.at(Ident) && p.peekIs(Assign) && slices.Contains(ad.Attrs, KwAuto) {
		return p.parseAutoDeclaration(ad.Pos(), ad.Attrs, comment, supplemental)
	}
	if hasAttrs {
		inner := p.parseDeclarationBody(comment, supplemental)
		if inner == nil {
			return ad
		}
		// Storage classes alone go on the variable or function they precede.
		if onlyStorage {
			switch x := inner.(type) {
			case *VariableDecl:
				x.Attrs = append(append([]Kind{}, ad.Attrs...), x.Attrs...)
				return x
			case *FunctionDecl:
				x.Attrs = append(append([]Kind{}, ad.Attrs...), x.Attrs...)
				return x
			}
		}
		ad.Comment = comment
		ad.SupplementalComment = supplemental
		ad.Members = []Decl{inner}
		return ad
	}
	return p.parseDeclarationBody(comment, supplemental)
}

// parseDeclarationBody dispatches on the token(s) remaining after any
// attribute prefix has already been collected by parseDeclaration.
func (p *Parser) parseDeclarationBody(comment, supplemental string) Decl {
	switch p.currentKind() {
	case KwAlias:
		return p.parseAliasDecl(comment, supplemental)
	case KwClass, KwStruct, KwUnion, KwInterface:
		return p.parseAggregateDecl(comment, supplemental)
	case KwThis:
		if p.startsWith(KwThis, LParen, KwThis, RParen) {
			return p.parsePostblitDecl(comment, supplemental)
		}
		return p.parseConstructorDecl(comment, supplemental)
	case Tilde:
		return p.parseDestructorDecl(comment, supplemental)
	case KwEnum:
		return p.parseEnumDecl(comment, supplemental)
	case KwImport:
		return p.parseImportDecl(comment, supplemental)
	case KwMixin:
		return p.parseMixinDeclOrTemplate(comment, supplemental)
	case KwPragma:
		return p.parsePragmaDecl(comment, supplemental)
	case KwStatic:
		return p.parseStaticPrefixedDecl(comment, supplemental)
	case KwVersion:
		return p.parseConditionalDecl(KwVersion, comment, supplemental)
	case KwDebug:
		return p.parseConditionalDecl(KwDebug, comment, supplemental)
	case KwTemplate:
		return p.parseTemplateDecl(comment, supplemental)
	case KwInvariant:
		return p.parseInvariantDecl(comment, supplemental)
	case KwUnittest:
		return p.parseUnittestDecl(comment, supplemental)
	}
	return p.parseFunctionOrVariableDecl(comment, supplemental)
}

// collectAttributePrefix consumes a run of attribute tokens (spec §4.4
// isAttribute). If the run is terminated by `:` it returns a complete
// AttributeDecl covering every remaining declaration in the enclosing body
// (done=true); if terminated by `{ ... }` it returns a complete
// AttributeDecl wrapping that block (done=true); otherwise it returns the
// collected attrs for the caller to staple onto the next single
// declaration (done=false, and the caller re-dispatches on the remaining
// tokens, which are left unconsumed beyond the attribute run itself).
func (p *Parser) collectAttributePrefix() (*AttributeDecl, bool) {
	pos := p.pos()
	ad := &AttributeDecl{declBase: declBase{base: mk(p.arena, NAttributeDecl, pos)}, Protection: Invalid}
	any := false
	for p.isAttribute() {
		any = true
		switch p.currentKind() {
		case At:
			p.advance()
			ad.AtName = p.advance().Text
			if p.at(LParen) {
				ad.AtArgs = p.parseParenArgs()
			}
		case KwPragma:
			p.advance()
			p.expect(LParen)
			if p.at(Ident) {
				ad.PragmaName = p.advance().Text
			}
			for p.eatIf(Comma) {
				ad.PragmaArgs = append(ad.PragmaArgs, p.parseAssignExpr())
			}
			p.expect(RParen)
		case KwDeprecated:
			p.advance()
			ad.Deprecated = true
			if p.eatIf(LParen) {
				ad.DeprecationMsg = p.parseAssignExpr()
				p.expect(RParen)
			}
		case KwPrivate, KwProtected, KwPublic, KwExport, KwPackage:
			ad.Protection = p.advance().Kind
		case KwExtern:
			p.advance()
			ad.Attrs = append(ad.Attrs, KwExtern)
			if p.eatIf(LParen) {
				p.skipParens()
			}
		default:
			ad.Attrs = append(ad.Attrs, p.advance().Kind)
		}
	}
	if !any {
		return ad, false
	}
	if p.eatIf(Colon) {
		for !p.atOneOf(RBrace) && !p.atEnd() {
			d := p.parseDeclaration()
			if d == nil {
				break
			}
			ad.Members = append(ad.Members, d)
		}
		return ad, true
	}
	if p.at(LBrace) {
		p.advance()
		for !p.at(RBrace) && !p.atEnd() {
			d := p.parseDeclaration()
			if d == nil {
				break
			}
			ad.Members = append(ad.Members, d)
		}
		p.expect(RBrace)
		return ad, true
	}
	return ad, false
}

func (p *Parser) parseAliasDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // alias
	if p.at(KwThis) {
		return p.parseAliasThisDecl(pos, comment, supplemental)
	}
	ad := &AliasDecl{declBase: declBase{base: mk(p.arena, NAliasDecl, pos), Comment: comment, SupplementalComment: supplemental}}

	b := p.setBookmark()
	if name := p.parseIdentName(); name != nil && p.at(Assign) {
		p.abandonBookmark(b)
		ad.Names = append(ad.Names, name)
		p.advance()
		ad.Types = append(ad.Types, p.parseType())
		for p.eatIf(Comma) {
			n := p.parseIdentName()
			p.expect(Assign)
			t := p.parseType()
			ad.Names = append(ad.Names, n)
			ad.Types = append(ad.Types, t)
		}
		p.expect(Semicolon)
		return ad
	}
	p.goToBookmark(b)

	// Legacy form: `alias Type Name, Name2;`. Per the Open Questions
	// resolution in SPEC_FULL.md, this stays a recoverable warning, not a
	// hard parse error.
	ad.Legacy = true
	p.warnf("legacy alias declaration syntax; prefer 'alias Name = Type;'")
	ty := p.parseType()
	name := p.parseIdentName()
	ad.Types = append(ad.Types, ty)
	ad.Names = append(ad.Names, name)
	for p.eatIf(Comma) {
		ad.Types = append(ad.Types, ty)
		ad.Names = append(ad.Names, p.parseIdentName())
	}
	p.expect(Semicolon)
	return ad
}

func (p *Parser) parseAliasThisDecl(pos Position, comment, supplemental string) Decl {
	p.advance() // this
	name := p.parseIdentName()
	p.expect(Semicolon)
	return &AliasThisDecl{declBase: declBase{base: mk(p.arena, NAliasThisDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name}
}

func (p *Parser) parseAggregateDecl(comment, supplemental string) Decl {
	pos := p.pos()
	kind := p.advance().Kind
	var name *IdentExpr
	if p.at(Ident) {
		name = p.parseIdentName()
	}
	var params []*TemplateParameter
	if p.at(LParen) {
		params = p.parseTemplateParamList()
	}
	var bases *BaseClause
	if p.eatIf(Colon) {
		bpos := p.pos()
		var list []*IdentType
		for {
			if t, ok := p.parseIdentType().(*IdentType); ok {
				list = append(list, t)
			}
			if !p.eatIf(Comma) {
				break
			}
		}
		bases = Allocate(p.arena, BaseClause{base: mk(p.arena, NBaseClause, bpos), Bases: list})
	}
	agg := &AggregateDecl{declBase: declBase{base: mk(p.arena, NAggregateDecl, pos), Comment: comment, SupplementalComment: supplemental}, AggKind: kind, Name: name, Params: params, Bases: bases}
	if p.eatIf(Semicolon) {
		agg.IsOpaque = true
		return agg
	}
	if _, ok := p.expect(LBrace); !ok {
		return agg
	}
	for !p.at(RBrace) && !p.atEnd() {
		d := p.parseDeclaration()
		if d == nil {
			break
		}
		agg.Body = append(agg.Body, d)
	}
	p.expect(RBrace)
	return agg
}

// parsePostblitDecl parses `this(this) { ... }` (spec §4.7), the copy
// constructor called after a struct value is duplicated by copy.
func (p *Parser) parsePostblitDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // this
	p.advance() // (
	p.advance() // this
	p.expect(RParen)
	for p.atSet(storageClassSet) {
		p.advance()
	}
	body, had := p.parseFunctionBody()
	return &PostblitDecl{declBase: declBase{base: mk(p.arena, NPostblitDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body, HadBody: had}
}

// parseConstructorDecl parses `this(Params) { ... }`, which may itself be
// templated (`this(T)(Params) { ... }`) — detected the same way
// parseFunctionOrVariableDecl detects a templated function: a second `(`
// immediately after the first parenthesized group closes.
func (p *Parser) parseConstructorDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // this
	var tmplParams []*TemplateParameter
	if p.peekPastParens() == LParen {
		tmplParams = p.parseTemplateParamList()
	}
	params := p.parseParameterList()
	for p.atSet(storageClassSet) {
		p.advance()
	}
	body, had := p.parseFunctionBody()
	return &ConstructorDecl{declBase: declBase{base: mk(p.arena, NConstructorDecl, pos), Comment: comment, SupplementalComment: supplemental}, Params: params, TemplateParams: tmplParams, Body: body, HadBody: had}
}

func (p *Parser) parseDestructorDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // ~
	p.expect(KwThis)
	p.expect(LParen)
	p.expect(RParen)
	for p.atSet(storageClassSet) {
		p.advance()
	}
	body, had := p.parseFunctionBody()
	return &DestructorDecl{declBase: declBase{base: mk(p.arena, NDestructorDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body, HadBody: had}
}

func (p *Parser) parseEnumDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // enum

	if !p.at(Ident) {
		return p.parseAnonymousEnumBody(pos, nil, comment, supplemental)
	}

	b := p.setBookmark()
	name := p.parseIdentName()
	if p.at(LParen) {
		params := p.parseTemplateParamList()
		if p.at(Assign) {
			p.abandonBookmark(b)
			p.advance()
			ty := TypeNode(nil)
			val := p.parseAssignExpr()
			p.expect(Semicolon)
			return &EponymousTemplateDecl{declBase: declBase{base: mk(p.arena, NEponymousTemplateDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, Params: params, Type: ty, Value: val}
		}
	}
	p.goToBookmark(b)
	name = p.parseIdentName()

	var baseType TypeNode
	if p.eatIf(Colon) {
		baseType = p.parseType()
	}
	if p.eatIf(Assign) {
		val := p.parseAssignExpr()
		p.expect(Semicolon)
		return &EponymousTemplateDecl{declBase: declBase{base: mk(p.arena, NEponymousTemplateDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, Type: baseType, Value: val}
	}
	if p.eatIf(Semicolon) {
		return &EnumDecl{declBase: declBase{base: mk(p.arena, NEnumDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, BaseType: baseType}
	}
	members := p.parseEnumMembers()
	return &EnumDecl{declBase: declBase{base: mk(p.arena, NEnumDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, BaseType: baseType, Members: members}
}

func (p *Parser) parseAnonymousEnumBody(pos Position, baseType TypeNode, comment, supplemental string) Decl {
	if baseType == nil && p.eatIf(Colon) {
		baseType = p.parseType()
	}
	members := p.parseEnumMembers()
	return &AnonymousEnumDecl{declBase: declBase{base: mk(p.arena, NAnonymousEnumDecl, pos), Comment: comment, SupplementalComment: supplemental}, BaseType: baseType, Members: members}
}

func (p *Parser) parseEnumMembers() []*EnumMember {
	if _, ok := p.expect(LBrace); !ok {
		return nil
	}
	var members []*EnumMember
	for !p.at(RBrace) && !p.atEnd() {
		mpos := p.pos()
		mcomment := p.takeComment()
		var ty TypeNode
		if p.isTypeFollowedBy(Ident) {
			ty = p.parseType()
		}
		name := p.parseIdentName()
		var val Expr
		if p.eatIf(Assign) {
			val = p.parseAssignExpr()
		}
		members = append(members, &EnumMember{declBase: declBase{base: mk(p.arena, NEnumMember, mpos), Comment: mcomment}, Name: name, Type: ty, Value: val})
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(RBrace)
	return members
}

func (p *Parser) parseImportDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // import
	id := &ImportDecl{declBase: declBase{base: mk(p.arena, NImportDecl, pos), Comment: comment, SupplementalComment: supplemental}}
	for {
		b := p.setBookmark()
		var alias *IdentExpr
		if p.at(Ident) && p.peekIs(Assign) {
			alias = p.parseIdentName()
			p.advance()
		} else {
			p.goToBookmark(b)
		}
		if p.at(Ident) && p.peekIs(Assign) {
			p.abandonBookmark(b)
		}
		cpos := p.pos()
		chain := &Chain{base: mk(p.arena, NChain, cpos)}
		chain.Parts = append(chain.Parts, p.parseIdentName())
		for p.at(Dot) && p.peekIs(Ident) {
			p.advance()
			chain.Parts = append(chain.Parts, p.parseIdentName())
		}
		id.Modules = append(id.Modules, chain)
		if alias != nil {
			id.Alias = alias
		}
		if p.eatIf(Colon) {
			for {
				spos := p.pos()
				n := p.parseIdentName()
				var sel *IdentExpr
				if p.eatIf(Assign) {
					sel = n
					n = p.parseIdentName()
				}
				id.Selectors = append(id.Selectors, &ImportSelector{base: mk(p.arena, NImportSelector, spos), Name: n, Alias: sel})
				if !p.eatIf(Comma) {
					break
				}
			}
			break
		}
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(Semicolon)
	return id
}

func (p *Parser) parseMixinDeclOrTemplate(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // mixin
	if p.at(KwTemplate) {
		p.advance()
		name := p.parseIdentName()
		params := p.parseTemplateParamList()
		p.expect(LBrace)
		var body []Decl
		for !p.at(RBrace) && !p.atEnd() {
			d := p.parseDeclaration()
			if d == nil {
				break
			}
			body = append(body, d)
		}
		p.expect(RBrace)
		return &MixinTemplateDecl{declBase: declBase{base: mk(p.arena, NMixinTemplateDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, Params: params, Body: body}
	}
	if p.at(LParen) {
		args := p.parseParenArgs()
		p.expect(Semicolon)
		return &MixinDecl{declBase: declBase{base: mk(p.arena, NMixinDecl, pos), Comment: comment, SupplementalComment: supplemental}, Args: args}
	}
	cpos := p.pos()
	chain := &Chain{base: mk(p.arena, NChain, cpos)}
	chain.Parts = append(chain.Parts, p.parseIdentName())
	var tmplArgs []Node
	if p.at(Bang) {
		p.advance()
		tmplArgs = p.parseTemplateArgs()
	}
	for p.at(Dot) {
		p.advance()
		chain.Parts = append(chain.Parts, p.parseIdentName())
	}
	var name *IdentExpr
	if p.at(Ident) {
		name = p.parseIdentName()
	}
	p.expect(Semicolon)
	return &TemplateMixinDecl{declBase: declBase{base: mk(p.arena, NTemplateMixinDecl, pos), Comment: comment, SupplementalComment: supplemental}, Chain: chain, Args: tmplArgs, Name: name}
}

func (p *Parser) parsePragmaDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // pragma
	p.expect(LParen)
	name := ""
	if p.at(Ident) {
		name = p.advance().Text
	}
	var args []Expr
	for p.eatIf(Comma) {
		args = append(args, p.parseAssignExpr())
	}
	p.expect(RParen)
	pd := &PragmaDecl{declBase: declBase{base: mk(p.arena, NPragmaDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, Args: args}
	if p.eatIf(Semicolon) {
		return pd
	}
	if _, ok := p.expect(LBrace); ok {
		for !p.at(RBrace) && !p.atEnd() {
			d := p.parseDeclaration()
			if d == nil {
				break
			}
			pd.Body = append(pd.Body, d)
		}
		p.expect(RBrace)
	}
	return pd
}

// parseStaticPrefixedDecl handles every declaration-form that starts with
// `static`: static if/assert/foreach, static/shared-static ctor/dtor, and
// `static` as a plain storage-class attribute prefix.
func (p *Parser) parseStaticPrefixedDecl(comment, supplemental string) Decl {
	pos := p.pos()
	if p.peekIs(KwIf) {
		return p.parseConditionalDecl(KwStatic, comment, supplemental)
	}
	if p.peekIs(KwAssert) {
		p.advance()
		p.advance()
		p.expect(LParen)
		cond := p.parseAssignExpr()
		var msg Expr
		if p.eatIf(Comma) && !p.at(RParen) {
			msg = p.parseAssignExpr()
		}
		p.expect(RParen)
		p.expect(Semicolon)
		return &StaticAssertDecl{declBase: declBase{base: mk(p.arena, NStaticAssertDecl, pos), Comment: comment, SupplementalComment: supplemental}, Cond: cond, Msg: msg}
	}
	if p.peekIs(KwForeach) || p.peekIs(KwForeachReverse) {
		p.advance()
		return p.parseStaticForeachDecl(pos, comment, supplemental)
	}
	if p.peekIs(KwThis) {
		p.advance()
		p.advance()
		p.expect(LParen)
		p.expect(RParen)
		body, had := p.parseFunctionBody()
		return &StaticCtorDecl{declBase: declBase{base: mk(p.arena, NStaticCtorDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body, HadBody: had}
	}
	if p.peekIs(Tilde) {
		p.advance()
		p.advance()
		p.expect(KwThis)
		p.expect(LParen)
		p.expect(RParen)
		body, had := p.parseFunctionBody()
		return &StaticDtorDecl{declBase: declBase{base: mk(p.arena, NStaticDtorDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body, HadBody: had}
	}
	// `shared static this`/`shared static ~this` is reached via KwShared in
	// isAttribute's exclusion; parseFunctionOrVariableDecl's attribute scan
	// does not apply here since dispatch already matched KwStatic. Treat
	// plain `static` as an attribute prefix otherwise.
	return p.parseFunctionOrVariableDecl(comment, supplemental)
}

func (p *Parser) parseStaticForeachDecl(pos Position, comment, supplemental string) Decl {
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
	}
	p.expect(RParen)
	p.expect(LBrace)
	var body []Decl
	for !p.at(RBrace) && !p.atEnd() {
		d := p.parseDeclaration()
		if d == nil {
			break
		}
		body = append(body, d)
	}
	p.expect(RBrace)
	return &StaticForeachDecl{declBase: declBase{base: mk(p.arena, NStaticForeachDecl, pos), Comment: comment, SupplementalComment: supplemental}, Vars: vars, Aggregate: agg, IsRange: isRange, RangeHigh: high, Body: body}
}

// parseConditionalDecl implements static if/version/debug at declaration
// scope. Per spec §4.7, every declaration parsed inside the true branch
// receives SupplementalComment copied from this conditional's own leading
// comment, via p.pendingSupplemental.
func (p *Parser) parseConditionalDecl(form Kind, comment, supplemental string) Decl {
	pos := p.pos()
	ident := ""
	var cond Expr
	switch form {
	case KwStatic:
		p.advance() // static
		p.advance() // if
		p.expect(LParen)
		cond = p.parseExpression()
		p.expect(RParen)
	case KwVersion:
		p.advance()
		p.expect(LParen)
		if p.at(Ident) || p.at(KwAssert) {
			ident = p.advance().Text
		}
		p.expect(RParen)
	case KwDebug:
		p.advance()
		if p.eatIf(LParen) {
			if p.at(Ident) {
				ident = p.advance().Text
			}
			p.expect(RParen)
		}
	}

	saved := p.pendingSupplemental
	p.pendingSupplemental = comment
	var then []Decl
	if p.eatIf(LBrace) {
		for !p.at(RBrace) && !p.atEnd() {
			d := p.parseDeclaration()
			if d == nil {
				break
			}
			then = append(then, d)
		}
		p.expect(RBrace)
	} else {
		if d := p.parseDeclaration(); d != nil {
			then = append(then, d)
		}
	}
	p.pendingSupplemental = saved

	var els []Decl
	if p.eatIf(KwElse) {
		if p.eatIf(LBrace) {
			for !p.at(RBrace) && !p.atEnd() {
				d := p.parseDeclaration()
				if d == nil {
					break
				}
				els = append(els, d)
			}
			p.expect(RBrace)
		} else if d := p.parseDeclaration(); d != nil {
			els = append(els, d)
		}
	}
	return &ConditionalDecl{declBase: declBase{base: mk(p.arena, NConditionalDecl, pos), Comment: comment, SupplementalComment: supplemental}, Form: form, Ident: ident, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseTemplateDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance() // template
	name := p.parseIdentName()
	params := p.parseTemplateParamList()
	p.expect(LBrace)
	var body []Decl
	for !p.at(RBrace) && !p.atEnd() {
		d := p.parseDeclaration()
		if d == nil {
			break
		}
		body = append(body, d)
	}
	p.expect(RBrace)
	return &TemplateDecl{declBase: declBase{base: mk(p.arena, NTemplateDecl, pos), Comment: comment, SupplementalComment: supplemental}, Name: name, Params: params, Body: body}
}

func (p *Parser) parseInvariantDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance()
	if p.eatIf(LParen) {
		p.expect(RParen)
	}
	body, had := p.parseFunctionBody()
	return &InvariantDecl{declBase: declBase{base: mk(p.arena, NInvariantDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body, HadBody: had}
}

func (p *Parser) parseUnittestDecl(comment, supplemental string) Decl {
	pos := p.pos()
	p.advance()
	body, _ := p.parseFunctionBody()
	return &UnittestDecl{declBase: declBase{base: mk(p.arena, NUnittestDecl, pos), Comment: comment, SupplementalComment: supplemental}, Body: body}
}

// parseTemplateParamList parses a `(Param, Param, ...)` template-parameter
// list; each parameter is either a type parameter (`T`, `T : Constraint`,
// `T = Default`), a value parameter (`Type ident`), or an alias/variadic
// parameter (spec §4.7).
func (p *Parser) parseTemplateParamList() []*TemplateParameter {
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	var params []*TemplateParameter
	for !p.at(RParen) && !p.atEnd() {
		tp := p.parseTemplateParameter()
		if tp == nil {
			break
		}
		params = append(params, tp)
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(RParen)
	return params
}

func (p *Parser) parseTemplateParameter() *TemplateParameter {
	pos := p.pos()
	isAlias := p.eatIf(KwAlias)
	if p.at(Ident) && (p.peekIsOneOf(Comma, RParen, Colon, Assign) || p.peekIs(DotDotDot)) {
		name := p.parseIdentName()
		tp := &TemplateParameter{base: mk(p.arena, NTemplateParameter, pos), Name: name, IsType: true, IsAlias: isAlias}
		if p.eatIf(DotDotDot) {
			tp.IsVariadic = true
			return tp
		}
		if p.eatIf(Colon) {
			tp.Constraint = p.parseType()
		}
		if p.eatIf(Assign) {
			if p.isType() {
				tp.Default = p.parseType()
			} else {
				tp.Default = p.parseAssignExpr()
			}
		}
		return tp
	}
	ty := p.parseType()
	name := p.parseIdentName()
	tp := &TemplateParameter{base: mk(p.arena, NTemplateParameter, pos), Name: name, Constraint: ty, IsAlias: isAlias}
	if p.eatIf(Assign) {
		tp.Default = p.parseAssignExpr()
	}
	return tp
}

func (p *Parser) parseParameterList() []*Parameter {
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	var params []*Parameter
	for !p.at(RParen) && !p.atEnd() {
		param := p.parseParameter()
		if param == nil {
			break
		}
		params = append(params, param)
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(RParen)
	return params
}

// parseParameter parses one function/lambda parameter: attribute prefix,
// type, optional name, optional default, or a trailing `...` variadic
// marker.
func (p *Parser) parseParameter() *Parameter {
	pos := p.pos()
	if p.eatIf(DotDotDot) {
		return &Parameter{base: mk(p.arena, NParameter, pos), Variadic: true}
	}
	var attrs []Kind
	for p.isStorageClass() {
		attrs = append(attrs, p.advance().Kind)
	}
	if p.eatIf(DotDotDot) {
		return &Parameter{base: mk(p.arena, NParameter, pos), Attrs: attrs, Variadic: true}
	}
	ty := p.parseType()
	var name *IdentExpr
	if p.at(Ident) {
		name = p.parseIdentName()
	}
	param := &Parameter{base: mk(p.arena, NParameter, pos), Attrs: attrs, Type: ty, Name: name}
	if p.eatIf(DotDotDot) {
		param.Variadic = true
		return param
	}
	if p.eatIf(Assign) {
		param.Default = p.parseAssignExpr()
	}
	return param
}

// parseFunctionOrVariableDecl is the generic `attrs* type declarator(s)`
// form of spec §4.7: after the type, `ident (` means a function, anything
// else (including a bare `ident` or `ident =`) means a variable
// declaration, possibly with multiple comma-separated declarators.
func (p *Parser) parseFunctionOrVariableDecl(comment, supplemental string) Decl {
	pos := p.pos()
	var attrs []Kind
	sawAuto := false
	for p.isStorageClass() {
		k := p.advance().Kind
		attrs = append(attrs, k)
		if k == KwAuto {
			sawAuto = true
		}
	}
	// alias this reached via a bare `this` after attributes (e.g. `public alias this`)
	// is routed through parseAliasDecl before reaching here in the common
	// case; this path only needs to cover the plain declarator grammar.

	// `auto x = expr;` is an AutoDeclaration: the storage class replaces the
	// type entirely rather than preceding one, unlike every other storage
	// class (spec §4.7, auto-inferred variable form).
	if sawAuto && p.at(Ident) && p.peekIs(Assign) {
		return p.parseAutoDeclaration(pos, attrs, comment, supplemental)
	}

	ty := p.parseType()
	name := p.parseIdentName()
	if ty == nil || name == nil {
		return nil
	}

	if p.at(LParen) {
		var tmplParams []*TemplateParameter
		if p.peekPastParens() == LParen {
			tmplParams = p.parseTemplateParamList()
		}
		params := p.parseParameterList()
		for p.atSet(storageClassSet) {
			attrs = append(attrs, p.advance().Kind)
		}
		body, had := p.parseFunctionBody()
		return &FunctionDecl{
			declBase:       declBase{base: mk(p.arena, NFunctionDecl, pos), Comment: comment, SupplementalComment: supplemental},
			Attrs:          attrs,
			ReturnType:     ty,
			Name:           name,
			Params:         params,
			TemplateParams: tmplParams,
			Body:           body,
			HadBody:        had,
		}
	}

	vd := &VariableDecl{declBase: declBase{base: mk(p.arena, NVariableDecl, pos), Comment: comment, SupplementalComment: supplemental}, Attrs: attrs, Type: ty}
	for {
		dpos := p.pos()
		var val Expr
		if p.eatIf(Assign) {
			val = p.parseAssignExpr()
		}
		vd.Declarators = append(vd.Declarators, &Declarator{base: mk(p.arena, NDeclarator, dpos), Name: name, Value: val})
		if !p.eatIf(Comma) {
			break
		}
		name = p.parseIdentName()
	}
	p.expect(Semicolon)
	return vd
}

// parseAutoDeclaration parses the comma-separated `Ident = Initializer`
// list of an AutoDeclaration, where attrs (which includes KwAuto) stands in
// for an explicit type.
func (p *Parser) parseAutoDeclaration(pos Position, attrs []Kind, comment, supplemental string) Decl {
	vd := &VariableDecl{declBase: declBase{base: mk(p.arena, NVariableDecl, pos), Comment: comment, SupplementalComment: supplemental}, Attrs: attrs}
	for {
		dpos := p.pos()
		name := p.parseIdentName()
		p.expect(Assign)
		val := p.parseAssignExpr()
		vd.Declarators = append(vd.Declarators, &Declarator{base: mk(p.arena, NDeclarator, dpos), Name: name, Value: val})
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(Semicolon)
	return vd
}
