package syntax

// This file implements C5, the expression parser: the ~20-level
// operator-precedence cascade of spec §4.5. Each level is its own
// function that chains to the next; binary levels share leftAssocBinary so
// every one of them produces the same structural left-associative shape
// spec §3 requires ("the left child may be a same-kind node; the right
// child is always the next-higher-precedence node").

// Node types for the expression family.

// Literal is a scalar literal (int/long/float/.../char), Kind() tagging
// which category it is; Text preserves the original lexeme.
type Literal struct {
	exprBase
	Text string
}

// StringLit is one or more adjacent string-literal tokens concatenated
// into a single primary (spec §4.5); Concatenated records whether more
// than one token contributed, which gates the one-shot implicit-
// concatenation warning (spec §8 "Warning idempotence").
type StringLit struct {
	exprBase
	Parts        []string
	Concatenated bool
}

// BoolLit is `true`/`false`.
type BoolLit struct {
	exprBase
	Value bool
}

// NullLit, ThisExpr, SuperExpr, DollarExpr are the bare special-token
// primaries of spec §4.5.
type NullLit struct{ exprBase }
type ThisExpr struct{ exprBase }
type SuperExpr struct{ exprBase }
type DollarExpr struct{ exprBase }

// IntrinsicExpr covers the `__FILE__`/`__LINE__`/... family; Which holds
// the specific keyword kind.
type IntrinsicExpr struct {
	exprBase
	Which Kind
}

// ArrayLit is `[ e1, e2, ... ]`.
type ArrayLit struct {
	exprBase
	Elements []Expr
}

// KeyValuePair is one `key: value` entry of an associative-array literal.
type KeyValuePair struct {
	base
	Key, Value Expr
}

// AssocArrayLit is `[ k1: v1, k2: v2, ... ]`.
type AssocArrayLit struct {
	exprBase
	Entries []*KeyValuePair
}

// FuncLiteral is a `function`/`delegate` literal or a bare `{ ... }`
// literal taken as an implicit delegate.
type FuncLiteral struct {
	exprBase
	IsDelegate bool
	Params     []*Parameter
	ReturnType TypeNode
	Body       *BlockStmt
	HadBody    bool
}

// LambdaExpr is the `(params) => expr` / `ident => expr` short-lambda form.
type LambdaExpr struct {
	exprBase
	Params []*Parameter
	Body   Expr
}

// TypeofExpr is `typeof(expr)` or `typeof(return)`.
type TypeofExpr struct {
	exprBase
	Arg      Expr
	IsReturn bool
}

// TypeidExpr is `typeid(Type)` or `typeid(expr)`.
type TypeidExpr struct {
	exprBase
	TypeArg TypeNode
	ExprArg Expr
}

// TraitsExpr is `__traits(identifier, args...)`.
type TraitsExpr struct {
	exprBase
	Name string
	Args []Node
}

// MixinExpr is `mixin(expr)`.
type MixinExpr struct {
	exprBase
	Arg Expr
}

// ImportExpr is `import(expr)` (the expression-level file import, distinct
// from the declaration-level `import` statement of C7).
type ImportExpr struct {
	exprBase
	Arg Expr
}

// IsExpr is `is(Type)`, `is(Type : Specialization)`, or
// `is(Type Ident == Specialization)`.
type IsExpr struct {
	exprBase
	Type           TypeNode
	Ident          *IdentExpr
	Specialization TypeNode
	EqualityForm   bool // true for `==`, false for `:`
}

// VectorExpr is `__vector(ElemType[N])`-shaped; simplified to the element
// type plus literal elements when given as `__vector([...])`.
type VectorExpr struct {
	exprBase
	ElemType TypeNode
	Elements []Expr
}

// ParenExpr is a parenthesized sub-expression.
type ParenExpr struct {
	exprBase
	Inner Expr
}

// DotTypeIdentExpr is the `(Type).identifier` primary form (spec §4.5,
// disambiguated from a parenthesized expression by a bookmarked type
// parse).
type DotTypeIdentExpr struct {
	exprBase
	Type   TypeNode
	Member *IdentExpr
}

// AssignExpr is any of the assignment-operator forms (spec §4.5 level 2).
type AssignExpr struct {
	exprBase
	Op          Kind
	Left, Right Expr
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	exprBase
	Cond, Then, Else Expr
}

// BinaryExpr is the shared shape for every pure left-associative binary
// level (||, &&, |, ^, &, <<, >>, >>>, +, -, ~, *, /, %, ^^, and the
// top-level comma sequencing).
type BinaryExpr struct {
	exprBase
	Op          Kind
	Left, Right Expr
}

// CmpExpr is the result of CmpExpression (spec §4.5 level 9): one of
// EqualExpression, IdentityExpression, InExpression, or RelExpression,
// distinguished by Kind(). Negated records the `!=`/`!is`/`!in` spelling.
type CmpExpr struct {
	exprBase
	Op          Kind
	Negated     bool
	Left, Right Expr
}

// UnaryExpr is a prefix operator applied to its operand.
type UnaryExpr struct {
	exprBase
	Op      Kind
	Operand Expr
}

// TemplateInstanceExpr is `ident!arg` or `ident!(args...)`, produced by the
// postfix `!` tie-break of spec §4.5.
type TemplateInstanceExpr struct {
	exprBase
	Callee Expr
	Args   []Node
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// IndexExpr is `target[i]` or, when Slice is true, `target[low .. high]`.
type IndexExpr struct {
	exprBase
	Target        Expr
	Indices       []Expr
	Slice         bool
	Low, High     Expr
}

// PostfixIncDec is `operand++`/`operand--`.
type PostfixIncDec struct {
	exprBase
	Op      Kind
	Operand Expr
}

// MemberExpr is `target.member`.
type MemberExpr struct {
	exprBase
	Target Expr
	Member *IdentExpr
}

// NewExpr is `new Type(args...)` or `new Type[size]`.
type NewExpr struct {
	exprBase
	Type      TypeNode
	Args      []Expr
	ArraySize Expr
}

// DeleteExpr is `delete expr`.
type DeleteExpr struct {
	exprBase
	Operand Expr
}

// CastExpr is `cast(Qualifiers|Type) expr`.
type CastExpr struct {
	exprBase
	Qualifiers []Kind
	Type       TypeNode
	Operand    Expr
}

// QualifiedCallExpr is the type-qualified function-call-looking unary form
// `const|immutable|inout|shared|scope|pure|nothrow Type(args)` (spec §4.5
// level 14).
type QualifiedCallExpr struct {
	exprBase
	Qualifiers []Kind
	Type       TypeNode
	Args       []Expr
}

// AssertExpr is `assert(cond)` or `assert(cond, msg)`.
type AssertExpr struct {
	exprBase
	Cond Expr
	Msg  Expr
}

func mk(a *Arena, kind Kind, pos Position) base { return base{kind: kind, pos: pos} }

// parseExpression parses the comma-separated top level (spec §4.5 level 1).
func (p *Parser) parseExpression() Expr {
	left := p.parseAssignExpr()
	if left == nil {
		return nil
	}
	for p.at(Comma) {
		if p.peekIsOneOf(RParen, RBracket, RBrace, Semicolon) {
			// Trailing comma (spec §9 Q2): every comma-separated
			// production here accepts one before its close.
			break
		}
		opTok := p.advance()
		right := p.parseAssignExpr()
		if right == nil {
			return left
		}
		left = Allocate(p.arena, BinaryExpr{exprBase: exprBase{mk(p.arena, NBinaryExpr, opTok.Pos)}, Op: Comma, Left: left, Right: right})
	}
	return left
}

// parseAssignExpr implements level 2.
func (p *Parser) parseAssignExpr() Expr {
	left := p.parseTernaryExpr()
	if left == nil {
		return nil
	}
	if p.atSet(assignOpSet) {
		opTok := p.advance()
		right := p.parseExpression()
		if right == nil {
			p.errorf("expected expression after %s", opTok.Kind.Name())
			return left
		}
		return Allocate(p.arena, AssignExpr{exprBase: exprBase{mk(p.arena, NAssignExpr, opTok.Pos)}, Op: opTok.Kind, Left: left, Right: right})
	}
	return left
}

// parseTernaryExpr implements level 3.
func (p *Parser) parseTernaryExpr() Expr {
	cond := p.parseOrOrExpr()
	if cond == nil {
		return nil
	}
	if p.at(Question) {
		qPos := p.pos()
		p.advance()
		then := p.parseExpression()
		if _, ok := p.expect(Colon); !ok {
			return cond
		}
		els := p.parseTernaryExpr()
		return Allocate(p.arena, TernaryExpr{exprBase: exprBase{mk(p.arena, NTernaryExpr, qPos)}, Cond: cond, Then: then, Else: els})
	}
	return cond
}

// leftAssocBinary implements the shared shape of levels 4–8 and 10–13.
func (p *Parser) leftAssocBinary(kind Kind, next func() Expr, ops ...Kind) Expr {
	left := next()
	if left == nil {
		return nil
	}
	for p.atOneOf(ops...) {
		opTok := p.advance()
		right := next()
		if right == nil {
			p.errorf("expected expression after %s", opTok.Kind.Name())
			return left
		}
		left = Allocate(p.arena, BinaryExpr{exprBase: exprBase{mk(p.arena, kind, opTok.Pos)}, Op: opTok.Kind, Left: left, Right: right})
	}
	return left
}

func (p *Parser) parseOrOrExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseAndAndExpr, OrOr)
}
func (p *Parser) parseAndAndExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseOrExpr, AndAnd)
}
func (p *Parser) parseOrExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseXorExpr, Pipe)
}
func (p *Parser) parseXorExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseAndExpr, Caret)
}
func (p *Parser) parseAndExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseCmpExpr, Amp)
}

// parseCmpExpr implements level 9: shift, then at most one of
// Equal/Identity/In/Rel.
func (p *Parser) parseCmpExpr() Expr {
	left := p.parseShiftExpr()
	if left == nil {
		return nil
	}
	switch {
	case p.atOneOf(EqEq, NotEq):
		op := p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NEqualExpr, op.Pos)}, Op: EqEq, Negated: op.Kind == NotEq, Left: left, Right: right})
	case p.at(Bang) && p.peekIs(Is):
		pos := p.pos()
		p.advance()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NIdentityExpr, pos)}, Op: Is, Negated: true, Left: left, Right: right})
	case p.at(NotIs):
		pos := p.pos()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NIdentityExpr, pos)}, Op: Is, Negated: true, Left: left, Right: right})
	case p.at(Is):
		pos := p.pos()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NIdentityExpr, pos)}, Op: Is, Negated: false, Left: left, Right: right})
	case p.at(Bang) && p.peekIs(In):
		pos := p.pos()
		p.advance()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NInExpr, pos)}, Op: In, Negated: true, Left: left, Right: right})
	case p.at(NotIn):
		pos := p.pos()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NInExpr, pos)}, Op: In, Negated: true, Left: left, Right: right})
	case p.at(In):
		pos := p.pos()
		p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NInExpr, pos)}, Op: In, Negated: false, Left: left, Right: right})
	case p.atSet(relOpSet):
		op := p.advance()
		right := p.parseShiftExpr()
		return Allocate(p.arena, CmpExpr{exprBase: exprBase{mk(p.arena, NRelExpr, op.Pos)}, Op: op.Kind, Left: left, Right: right})
	}
	return left
}

func (p *Parser) parseShiftExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseAddExpr, Shl, Shr, UShr)
}
func (p *Parser) parseAddExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseMulExpr, Plus, Minus, Tilde)
}
func (p *Parser) parseMulExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parsePowExpr, Star, Slash, Percent)
}

// parsePowExpr implements level 13. Spec §4.5 notes `^^` is "right-to-left
// conceptually but produced via the same left-assoc template" — so, per
// spec, it is built with the same structural shape as every other binary
// level rather than a distinct right-recursive rule.
func (p *Parser) parsePowExpr() Expr {
	return p.leftAssocBinary(NBinaryExpr, p.parseUnaryExpr, PowPow)
}

// parseUnaryExpr implements level 14 plus the postfix loop.
func (p *Parser) parseUnaryExpr() Expr {
	if !p.enterDepth() {
		return nil
	}
	defer p.exitDepth()

	if p.atSet(unaryPrefixSet) {
		opTok := p.advance()
		operand := p.parseUnaryExpr()
		if operand == nil {
			p.errorf("expected expression after %s", opTok.Kind.Name())
			return nil
		}
		return Allocate(p.arena, UnaryExpr{exprBase: exprBase{mk(p.arena, NUnaryExpr, opTok.Pos)}, Op: opTok.Kind, Operand: operand})
	}
	if p.at(KwNew) {
		return p.parseNewExpr()
	}
	if p.at(KwDelete) {
		pos := p.pos()
		p.advance()
		operand := p.parseUnaryExpr()
		return Allocate(p.arena, DeleteExpr{exprBase: exprBase{mk(p.arena, NDeleteExpr, pos)}, Operand: operand})
	}
	if p.at(KwCast) {
		return p.parseCastExpr()
	}
	if p.at(KwAssert) {
		return p.parseAssertExpr()
	}
	if p.atSet(storageClassSet) && p.looksLikeQualifiedCall() {
		return p.parseQualifiedCallExpr()
	}
	if dte := p.tryParseDotTypeIdent(); dte != nil {
		return p.parsePostfix(dte)
	}
	prim := p.parsePrimaryExpr()
	if prim == nil {
		return nil
	}
	return p.parsePostfix(prim)
}

// looksLikeQualifiedCall bookmarks an attempt to parse
// `qualifier+ Type ( args )`, the type-qualified call form of spec §4.5.
func (p *Parser) looksLikeQualifiedCall() bool {
	b := p.setBookmark()
	defer p.goToBookmark(b)
	for p.atSet(storageClassSet) {
		p.advance()
	}
	if p.parseType() == nil {
		return false
	}
	return p.at(LParen)
}

func (p *Parser) parseQualifiedCallExpr() Expr {
	pos := p.pos()
	var quals []Kind
	for p.atSet(storageClassSet) {
		quals = append(quals, p.advance().Kind)
	}
	ty := p.parseType()
	args := p.parseParenArgs()
	return Allocate(p.arena, QualifiedCallExpr{exprBase: exprBase{mk(p.arena, NQualifiedCallExpr, pos)}, Qualifiers: quals, Type: ty, Args: args})
}

// tryParseDotTypeIdent bookmarks the `(Type).identifier` primary (spec
// §4.5 level 14) since `(expr)` also starts with `(`.
func (p *Parser) tryParseDotTypeIdent() Expr {
	if !p.at(LParen) {
		return nil
	}
	b := p.setBookmark()
	pos := p.pos()
	p.advance()
	ty := p.parseType()
	if ty == nil || !p.at(RParen) {
		p.goToBookmark(b)
		return nil
	}
	p.advance()
	if !p.at(Dot) {
		p.goToBookmark(b)
		return nil
	}
	p.advance()
	name := p.parseIdentName()
	if name == nil {
		p.goToBookmark(b)
		return nil
	}
	p.abandonBookmark(b)
	return Allocate(p.arena, DotTypeIdentExpr{exprBase: exprBase{mk(p.arena, NDotTypeIdentExpr, pos)}, Type: ty, Member: name})
}

func (p *Parser) parseNewExpr() Expr {
	pos := p.pos()
	p.advance() // new
	ty := p.parseType()
	if p.at(LBracket) {
		p.advance()
		size := p.parseAssignExpr()
		p.expect(RBracket)
		return Allocate(p.arena, NewExpr{exprBase: exprBase{mk(p.arena, NNewExpr, pos)}, Type: ty, ArraySize: size})
	}
	var args []Expr
	if p.at(LParen) {
		args = p.parseParenArgs()
	}
	return Allocate(p.arena, NewExpr{exprBase: exprBase{mk(p.arena, NNewExpr, pos)}, Type: ty, Args: args})
}

func (p *Parser) parseCastExpr() Expr {
	pos := p.pos()
	p.advance() // cast
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	var quals []Kind
	var ty TypeNode
	if p.isCastQualifier() {
		for p.atOneOf(KwConst, KwImmutable, KwInout, KwShared) {
			quals = append(quals, p.advance().Kind)
		}
	} else if !p.at(RParen) {
		ty = p.parseType()
	}
	p.expect(RParen)
	operand := p.parseUnaryExpr()
	return Allocate(p.arena, CastExpr{exprBase: exprBase{mk(p.arena, NCastExpr, pos)}, Qualifiers: quals, Type: ty, Operand: operand})
}

func (p *Parser) parseAssertExpr() Expr {
	pos := p.pos()
	p.advance() // assert
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	cond := p.parseAssignExpr()
	var msg Expr
	if p.eatIf(Comma) && !p.at(RParen) {
		msg = p.parseAssignExpr()
	}
	p.expect(RParen)
	return Allocate(p.arena, AssertExpr{exprBase: exprBase{mk(p.arena, NAssertExpr, pos)}, Cond: cond, Msg: msg})
}

// parsePostfix implements the postfix loop shared by level 14: templated
// call, call, index/slice, postfix inc/dec, member access.
func (p *Parser) parsePostfix(left Expr) Expr {
	for {
		switch {
		case p.at(Bang) && !(p.peekIsOneOf(Is, In)):
			pos := p.pos()
			p.advance()
			args := p.parseTemplateArgs()
			left = Allocate(p.arena, TemplateInstanceExpr{exprBase: exprBase{mk(p.arena, NTemplateInstance, pos)}, Callee: left, Args: args})
			if p.at(LParen) {
				args := p.parseParenArgs()
				left = Allocate(p.arena, CallExpr{exprBase: exprBase{mk(p.arena, NCallExpr, pos)}, Callee: left, Args: args})
			}
		case p.at(LParen):
			pos := p.pos()
			args := p.parseParenArgs()
			left = Allocate(p.arena, CallExpr{exprBase: exprBase{mk(p.arena, NCallExpr, pos)}, Callee: left, Args: args})
		case p.at(LBracket):
			left = p.parseIndexOrSlice(left)
		case p.atOneOf(PlusPlus, MinusMinus):
			opTok := p.advance()
			left = Allocate(p.arena, PostfixIncDec{exprBase: exprBase{mk(p.arena, NPostfixIncDec, opTok.Pos)}, Op: opTok.Kind, Operand: left})
		case p.at(Dot):
			p.advance()
			name := p.parseIdentName()
			if name == nil {
				return left
			}
			left = Allocate(p.arena, MemberExpr{exprBase: exprBase{mk(p.arena, NMemberExpr, name.Pos())}, Target: left, Member: name})
		default:
			return left
		}
	}
}

func (p *Parser) parseIndexOrSlice(target Expr) Expr {
	pos := p.pos()
	p.advance() // '['
	if p.at(RBracket) {
		p.advance()
		return Allocate(p.arena, IndexExpr{exprBase: exprBase{mk(p.arena, NIndexExpr, pos)}, Target: target})
	}
	first := p.parseAssignExpr()
	if p.eatIf(DotDot) {
		high := p.parseAssignExpr()
		p.expect(RBracket)
		return Allocate(p.arena, IndexExpr{exprBase: exprBase{mk(p.arena, NIndexExpr, pos)}, Target: target, Slice: true, Low: first, High: high})
	}
	indices := []Expr{first}
	for p.eatIf(Comma) {
		if p.at(RBracket) {
			break
		}
		indices = append(indices, p.parseAssignExpr())
	}
	p.expect(RBracket)
	return Allocate(p.arena, IndexExpr{exprBase: exprBase{mk(p.arena, NIndexExpr, pos)}, Target: target, Indices: indices})
}

func (p *Parser) parseParenArgs() []Expr {
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	var args []Expr
	for !p.at(RParen) && !p.atEnd() {
		e := p.parseAssignExpr()
		if e == nil {
			break
		}
		args = append(args, e)
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(RParen)
	return args
}

// parseTemplateArgs parses the argument(s) of a postfix `!` clause: either
// a single argument, or a parenthesized comma list. Each argument may be a
// type or an expression (spec §4.5's postfix loop); isType decides which.
func (p *Parser) parseTemplateArgs() []Node {
	if p.at(LParen) {
		p.advance()
		var args []Node
		for !p.at(RParen) && !p.atEnd() {
			args = append(args, p.parseTemplateArg())
			if !p.eatIf(Comma) {
				break
			}
		}
		p.expect(RParen)
		return args
	}
	return []Node{p.parseTemplateArg()}
}

func (p *Parser) parseTemplateArg() Node {
	if p.isType() {
		return p.parseType()
	}
	return p.parseAssignExpr()
}

// parsePrimaryExpr implements PrimaryExpression (spec §4.5).
func (p *Parser) parsePrimaryExpr() Expr {
	tok := p.current()
	switch tok.Kind {
	case Dot:
		p.advance()
		name := p.parseIdentName()
		if name == nil {
			return nil
		}
		return Allocate(p.arena, MemberExpr{exprBase: exprBase{mk(p.arena, NMemberExpr, tok.Pos)}, Target: nil, Member: name})
	case Ident:
		return p.parseIdentOrTemplateInstance()
	case KwFunction, KwDelegate:
		return p.parseFuncOrLambda()
	case LBrace:
		return p.parseBraceLiteralOrDelegate()
	case KwTypeof:
		return p.parseTypeofExpr()
	case KwTypeid:
		return p.parseTypeidExpr()
	case KwVector:
		return p.parseVectorExpr()
	case LBracket:
		return p.parseArrayOrAssocLit()
	case LParen:
		return p.parseParenExprOrLambda()
	case Is:
		return p.parseIsExpr()
	case KwTraits:
		return p.parseTraitsExpr()
	case KwMixin:
		return p.parseMixinExpr()
	case KwImport:
		return p.parseImportExpr()
	case Dollar:
		p.advance()
		return Allocate(p.arena, DollarExpr{exprBase: exprBase{mk(p.arena, NDollarExpr, tok.Pos)}})
	case KwThis:
		p.advance()
		return Allocate(p.arena, ThisExpr{exprBase: exprBase{mk(p.arena, NThisExpr, tok.Pos)}})
	case KwSuper:
		p.advance()
		return Allocate(p.arena, SuperExpr{exprBase: exprBase{mk(p.arena, NSuperExpr, tok.Pos)}})
	case KwNull:
		p.advance()
		return Allocate(p.arena, NullLit{exprBase: exprBase{mk(p.arena, NNullLit, tok.Pos)}})
	case KwTrue, KwFalse:
		p.advance()
		return Allocate(p.arena, BoolLit{exprBase: exprBase{mk(p.arena, NBoolLit, tok.Pos)}, Value: tok.Kind == KwTrue})
	case KwFile, KwLine, KwModuleIntr, KwFunctionIntr, KwPrettyFunc,
		KwDate, KwTime, KwTimestamp, KwVendor, KwVersionIntr, KwEOFIntrinsic:
		p.advance()
		return Allocate(p.arena, IntrinsicExpr{exprBase: exprBase{mk(p.arena, NIntrinsicExpr, tok.Pos)}, Which: tok.Kind})
	case KwBuiltinType:
		return p.parseBuiltinPrimary()
	case StringLiteral, WStringLiteral, DStringLiteral:
		return p.parseStringLit()
	case IntLiteral, LongLiteral, UIntLiteral, ULongLiteral,
		FloatLiteral, DoubleLiteral, RealLiteral,
		IFloatLiteral, IDoubleLiteral, IRealLiteral, CharacterLiteral:
		p.advance()
		return Allocate(p.arena, Literal{exprBase: exprBase{mk(p.arena, literalNodeKind(tok.Kind), tok.Pos)}, Text: tok.Text})
	}
	if tok.Kind == Invalid {
		p.errorf("%s", DescribeInvalidToken(tok.Text))
	} else {
		p.errorf("expected expression, found %s", tok.Kind.Name())
	}
	if !tok.Kind.IsGrouping() && !tok.Kind.IsRecoveryAnchor() {
		p.advance()
	}
	return nil
}

func literalNodeKind(k Kind) Kind {
	switch k {
	case IntLiteral:
		return NIntLit
	case LongLiteral:
		return NLongLit
	case UIntLiteral:
		return NUIntLit
	case ULongLiteral:
		return NULongLit
	case FloatLiteral:
		return NFloatLit
	case DoubleLiteral:
		return NDoubleLit
	case RealLiteral:
		return NRealLit
	case IFloatLiteral, IDoubleLiteral, IRealLiteral:
		return NImaginaryLit
	case CharacterLiteral:
		return NCharLit
	}
	return NIntLit
}

// parseStringLit concatenates adjacent string-literal tokens into one
// primary, matching spec §4.5's "Adjacent string-literal tokens ...
// concatenate into one primary, emitting a one-shot implicit-concatenation
// warning."
func (p *Parser) parseStringLit() Expr {
	pos := p.pos()
	var parts []string
	first := p.advance()
	parts = append(parts, first.Text)
	for p.atSet(TokenSetOf(StringLiteral, WStringLiteral, DStringLiteral)) {
		parts = append(parts, p.advance().Text)
	}
	if len(parts) > 1 {
		p.warnf("implicit string concatenation")
	}
	return Allocate(p.arena, StringLit{exprBase: exprBase{mk(p.arena, NStringLit, pos)}, Parts: parts, Concatenated: len(parts) > 1})
}

func (p *Parser) parseIdentName() *IdentExpr {
	if !p.at(Ident) {
		p.errorf("expected identifier, found %s", p.currentKind().Name())
		return nil
	}
	tok := p.advance()
	return newIdent(p.arena, tok.Pos, tok.Text)
}

// parseIdentOrTemplateInstance handles a bare identifier primary; the
// postfix loop (not here) decides whether a following `!` opens a template
// instance.
func (p *Parser) parseIdentOrTemplateInstance() Expr {
	return p.parseIdentName()
}

func (p *Parser) parseBuiltinPrimary() Expr {
	tok := p.advance()
	ty := Allocate(p.arena, BuiltinType{typeBase: typeBase{mk(p.arena, NBuiltinType, tok.Pos)}, Name: tok.Text})
	if p.at(Dot) {
		p.advance()
		name := p.parseIdentName()
		return Allocate(p.arena, MemberExpr{exprBase: exprBase{mk(p.arena, NMemberExpr, tok.Pos)}, Target: &builtinTypeExprWrapper{ty}, Member: name})
	}
	if p.at(LParen) {
		args := p.parseParenArgs()
		return Allocate(p.arena, CallExpr{exprBase: exprBase{mk(p.arena, NCallExpr, tok.Pos)}, Callee: &builtinTypeExprWrapper{ty}, Args: args})
	}
	return &builtinTypeExprWrapper{ty}
}

// builtinTypeExprWrapper lets a builtin type (`int.max`, `float(0)`) stand
// in expression position without giving BuiltinType itself two identities;
// it simply forwards Kind/Pos to the wrapped type node.
type builtinTypeExprWrapper struct {
	Type *BuiltinType
}

func (w *builtinTypeExprWrapper) Kind() Kind      { return w.Type.Kind() }
func (w *builtinTypeExprWrapper) Pos() Position   { return w.Type.Pos() }
func (*builtinTypeExprWrapper) exprNode()         {}

func (p *Parser) parseTypeofExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	if p.at(KwReturn) {
		p.advance()
		p.expect(RParen)
		return Allocate(p.arena, TypeofExpr{exprBase: exprBase{mk(p.arena, NTypeofExpr, pos)}, IsReturn: true})
	}
	arg := p.parseExpression()
	p.expect(RParen)
	return Allocate(p.arena, TypeofExpr{exprBase: exprBase{mk(p.arena, NTypeofExpr, pos)}, Arg: arg})
}

func (p *Parser) parseTypeidExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	b := p.setBookmark()
	if ty := p.parseType(); ty != nil && p.at(RParen) {
		p.abandonBookmark(b)
		p.advance()
		return Allocate(p.arena, TypeidExpr{exprBase: exprBase{mk(p.arena, NTypeidExpr, pos)}, TypeArg: ty})
	}
	p.goToBookmark(b)
	arg := p.parseExpression()
	p.expect(RParen)
	return Allocate(p.arena, TypeidExpr{exprBase: exprBase{mk(p.arena, NTypeidExpr, pos)}, ExprArg: arg})
}

func (p *Parser) parseVectorExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	elemType := p.parseType()
	var elems []Expr
	if p.at(LBracket) {
		p.advance()
		for !p.at(RBracket) && !p.atEnd() {
			elems = append(elems, p.parseAssignExpr())
			if !p.eatIf(Comma) {
				break
			}
		}
		p.expect(RBracket)
	}
	p.expect(RParen)
	return Allocate(p.arena, VectorExpr{exprBase: exprBase{mk(p.arena, NVectorExpr, pos)}, ElemType: elemType, Elements: elems})
}

// parseArrayOrAssocLit disambiguates `[a, b]` from `[k: v]` using the
// memoized isAssociativeArrayLiteral classifier (spec §4.4).
func (p *Parser) parseArrayOrAssocLit() Expr {
	pos := p.pos()
	if p.isAssociativeArrayLiteral() {
		p.advance()
		var entries []*KeyValuePair
		for !p.at(RBracket) && !p.atEnd() {
			k := p.parseAssignExpr()
			p.expect(Colon)
			v := p.parseAssignExpr()
			entries = append(entries, Allocate(p.arena, KeyValuePair{base: mk(p.arena, NKeyValuePair, pos), Key: k, Value: v}))
			if !p.eatIf(Comma) {
				break
			}
		}
		p.expect(RBracket)
		return Allocate(p.arena, AssocArrayLit{exprBase: exprBase{mk(p.arena, NAssocArrayLit, pos)}, Entries: entries})
	}
	p.advance()
	var elems []Expr
	for !p.at(RBracket) && !p.atEnd() {
		elems = append(elems, p.parseAssignExpr())
		if !p.eatIf(Comma) {
			break
		}
	}
	p.expect(RBracket)
	return Allocate(p.arena, ArrayLit{exprBase: exprBase{mk(p.arena, NArrayLit, pos)}, Elements: elems})
}

// parseParenExprOrLambda disambiguates `(expr)` from `(params) => expr`.
func (p *Parser) parseParenExprOrLambda() Expr {
	pos := p.pos()
	b := p.setBookmark()
	if params, ok := p.tryParseParamList(); ok && p.at(Arrow) {
		p.abandonBookmark(b)
		p.advance()
		body := p.parseAssignExpr()
		return Allocate(p.arena, LambdaExpr{exprBase: exprBase{mk(p.arena, NLambdaExpr, pos)}, Params: params, Body: body})
	}
	p.goToBookmark(b)
	p.advance() // '('
	inner := p.parseExpression()
	p.expect(RParen)
	return Allocate(p.arena, ParenExpr{exprBase: exprBase{mk(p.arena, NParenExpr, pos)}, Inner: inner})
}

func (p *Parser) parseIsExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	ty := p.parseType()
	var ident *IdentExpr
	var spec TypeNode
	eqForm := false
	if p.atOneOf(Colon, EqEq) {
		eqForm = p.at(EqEq)
		p.advance()
		spec = p.parseType()
	} else if p.at(Ident) && p.peekIsOneOf(Colon, EqEq) {
		ident = p.parseIdentName()
		eqForm = p.at(EqEq)
		p.advance()
		spec = p.parseType()
	}
	p.expect(RParen)
	return Allocate(p.arena, IsExpr{exprBase: exprBase{mk(p.arena, NIsExpr, pos)}, Type: ty, Ident: ident, Specialization: spec, EqualityForm: eqForm})
}

func (p *Parser) parseTraitsExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	name := ""
	if p.at(Ident) {
		name = p.advance().Text
	}
	var args []Node
	for p.eatIf(Comma) {
		if p.isType() {
			args = append(args, p.parseType())
		} else {
			args = append(args, p.parseAssignExpr())
		}
	}
	p.expect(RParen)
	return Allocate(p.arena, TraitsExpr{exprBase: exprBase{mk(p.arena, NTraitsExpr, pos)}, Name: name, Args: args})
}

func (p *Parser) parseMixinExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	arg := p.parseAssignExpr()
	p.expect(RParen)
	return Allocate(p.arena, MixinExpr{exprBase: exprBase{mk(p.arena, NMixinExpr, pos)}, Arg: arg})
}

func (p *Parser) parseImportExpr() Expr {
	pos := p.pos()
	p.advance()
	if _, ok := p.expect(LParen); !ok {
		return nil
	}
	arg := p.parseAssignExpr()
	p.expect(RParen)
	return Allocate(p.arena, ImportExpr{exprBase: exprBase{mk(p.arena, NImportExpr, pos)}, Arg: arg})
}

// parseBraceLiteralOrDelegate treats a bare `{ ... }` primary as an
// implicit delegate literal.
func (p *Parser) parseBraceLiteralOrDelegate() Expr {
	pos := p.pos()
	body, had := p.parseFunctionBody()
	return Allocate(p.arena, FuncLiteral{exprBase: exprBase{mk(p.arena, NFuncLiteral, pos)}, IsDelegate: true, Body: body, HadBody: had})
}

// parseFuncOrLambda disambiguates a `function`/`delegate` literal from the
// typed-lambda form `function Type (params) => expr` (spec §4.5).
func (p *Parser) parseFuncOrLambda() Expr {
	pos := p.pos()
	isDelegate := p.current().Kind == KwDelegate
	p.advance()

	b := p.setBookmark()
	var retType TypeNode
	if !p.at(LParen) {
		retType = p.parseType()
	}
	params, ok := p.tryParseParamList()
	if ok && p.at(Arrow) {
		p.abandonBookmark(b)
		p.advance()
		body := p.parseAssignExpr()
		return Allocate(p.arena, LambdaExpr{exprBase: exprBase{mk(p.arena, NLambdaExpr, pos)}, Params: params, Body: body})
	}
	p.goToBookmark(b)

	if !p.at(LParen) {
		p.parseType() // consume an optional return type we won't keep structured
	}
	params, _ = p.tryParseParamList()
	for p.atSet(storageClassSet) {
		p.advance()
	}
	body, had := p.parseFunctionBody()
	return Allocate(p.arena, FuncLiteral{exprBase: exprBase{mk(p.arena, NFuncLiteral, pos)}, IsDelegate: isDelegate, Params: params, ReturnType: retType, Body: body, HadBody: had})
}

// tryParseParamList attempts to parse a `(Type ident, ...)` parameter list;
// used both for literal/lambda params and, bookmarked, to disambiguate
// lambdas from parenthesized expressions.
func (p *Parser) tryParseParamList() ([]*Parameter, bool) {
	if !p.at(LParen) {
		return nil, false
	}
	p.advance()
	var params []*Parameter
	for !p.at(RParen) && !p.atEnd() {
		param := p.parseParameter()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		if !p.eatIf(Comma) {
			break
		}
	}
	if !p.eatIf(RParen) {
		return nil, false
	}
	return params, true
}
