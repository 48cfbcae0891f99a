package syntax

// This file implements C8, the type grammar: an optional run of type
// constructors, a base type, and a suffix loop (pointer, array/slice/
// associative-array, function/delegate), per spec §4.8.

// BuiltinType is one of the builtin value types (`int`, `float`, `void`,
// ...); Name carries the spelling since the lexer tags them all with the
// single KwBuiltinType kind.
type BuiltinType struct {
	typeBase
	Name string
}

// IdentType is a (possibly dotted, possibly template-instantiated)
// identifier used in type position.
type IdentType struct {
	typeBase
	Chain *Chain
	// TemplateArgs is non-nil when the final component carried a `!args`
	// template-instantiation clause.
	TemplateArgs []Node
}

// TypeofType is `typeof(expr)`/`typeof(return)` used in type position.
type TypeofType struct {
	typeBase
	Arg      Expr
	IsReturn bool
}

// QualifiedType is `const(Type)`/`immutable(Type)`/`inout(Type)`/
// `shared(Type)`, the type-constructor form distinguished in C4 from the
// same keywords used as attributes.
type QualifiedType struct {
	typeBase
	Qualifier Kind
	Inner     TypeNode
}

// VectorType is `__vector(Type)`.
type VectorType struct {
	typeBase
	Inner TypeNode
}

// TraitsType is `__traits(...)` used in type position (e.g.
// `__traits(ReturnType, fn)`).
type TraitsType struct {
	typeBase
	Name string
	Args []Node
}

// PointerSuffix, ArraySuffix, SliceSuffix, AssocArraySuffix, and
// FunctionSuffix are the postfix type constructors of spec §4.8's suffix
// loop, each wrapping the type it modifies.
type PointerSuffix struct {
	typeBase
	Inner TypeNode
}

type ArraySuffix struct {
	typeBase
	Inner TypeNode
	Size  Expr // nil for an unsized `[]`-free array suffix (not used standalone)
}

// SliceSuffix is `Type[Low .. High]`, a static-array slicing type suffix.
type SliceSuffix struct {
	typeBase
	Inner     TypeNode
	Low, High Expr
}

type AssocArraySuffix struct {
	typeBase
	Inner   TypeNode
	KeyType TypeNode
}

type FunctionSuffix struct {
	typeBase
	Inner      TypeNode
	IsDelegate bool
	Params     []*Parameter
	Attributes []Kind
}

// parseType parses a full type: an optional run of type constructors
// (spec §4.8's "type constructor run"), a base type, then the suffix loop.
func (p *Parser) parseType() TypeNode {
	if !p.enterDepth() {
		return nil
	}
	defer p.exitDepth()

	base := p.parseType2()
	if base == nil {
		return nil
	}
	return p.parseTypeSuffixes(base)
}

// parseType2 parses the base type, before any suffix loop: builtin,
// identifier chain, typeof, qualified-constructor, __vector, __traits.
func (p *Parser) parseType2() TypeNode {
	tok := p.current()
	switch tok.Kind {
	case KwBuiltinType:
		p.advance()
		return Allocate(p.arena, BuiltinType{typeBase: typeBase{mk(p.arena, NBuiltinType, tok.Pos)}, Name: tok.Text})
	case KwConst, KwImmutable, KwInout, KwShared:
		if p.peekIs(LParen) {
			p.advance()
			p.advance()
			inner := p.parseType()
			p.expect(RParen)
			return Allocate(p.arena, QualifiedType{typeBase: typeBase{mk(p.arena, NQualifiedType, tok.Pos)}, Qualifier: tok.Kind, Inner: inner})
		}
		// Bare qualifier with no parenthesized inner type: treat the
		// qualifier itself as modifying whatever base type follows.
		p.advance()
		inner := p.parseType2()
		return Allocate(p.arena, QualifiedType{typeBase: typeBase{mk(p.arena, NQualifiedType, tok.Pos)}, Qualifier: tok.Kind, Inner: inner})
	case KwTypeof:
		p.advance()
		if _, ok := p.expect(LParen); !ok {
			return nil
		}
		if p.at(KwReturn) {
			p.advance()
			p.expect(RParen)
			return Allocate(p.arena, TypeofType{typeBase: typeBase{mk(p.arena, NTypeofType, tok.Pos)}, IsReturn: true})
		}
		arg := p.parseExpression()
		p.expect(RParen)
		return Allocate(p.arena, TypeofType{typeBase: typeBase{mk(p.arena, NTypeofType, tok.Pos)}, Arg: arg})
	case KwVector:
		p.advance()
		if _, ok := p.expect(LParen); !ok {
			return nil
		}
		inner := p.parseType()
		p.expect(RParen)
		return Allocate(p.arena, VectorType{typeBase: typeBase{mk(p.arena, NVectorType, tok.Pos)}, Inner: inner})
	case KwTraits:
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
		return Allocate(p.arena, TraitsType{typeBase: typeBase{mk(p.arena, NTraitsType, tok.Pos)}, Name: name, Args: args})
	case Ident, Dot:
		return p.parseIdentType()
	}
	p.errorf("expected type, found %s", tok.Kind.Name())
	return nil
}

// parseIdentType parses a (possibly dotted, possibly template-
// instantiated) identifier chain used as a type.
func (p *Parser) parseIdentType() TypeNode {
	pos := p.pos()
	leadingDot := p.eatIf(Dot)
	var parts []*IdentExpr
	var templateArgs []Node
	for {
		name := p.parseIdentName()
		if name == nil {
			break
		}
		parts = append(parts, name)
		if p.at(Bang) && !p.peekIsOneOf(Is, In) {
			p.advance()
			templateArgs = p.parseTemplateArgs()
		}
		if !p.at(Dot) {
			break
		}
		// Only keep consuming `.` while it chains further identifiers; a
		// trailing `.` before a non-identifier belongs to the caller
		// (e.g. a member-access postfix on a (Type).ident expression).
		if !p.peekIs(Ident) {
			break
		}
		p.advance()
	}
	chain := Allocate(p.arena, Chain{base: mk(p.arena, NChain, pos), LeadingDot: leadingDot, Parts: parts})
	return Allocate(p.arena, IdentType{typeBase: typeBase{mk(p.arena, NIdentType, pos)}, Chain: chain, TemplateArgs: templateArgs})
}

// parseTypeSuffixes implements the suffix loop of spec §4.8: pointer,
// array/slice/associative-array (bookmarked type-vs-expression
// disambiguation inside `[ ]`), and delegate/function suffixes.
func (p *Parser) parseTypeSuffixes(t TypeNode) TypeNode {
	for {
		switch {
		case p.at(Star):
			pos := p.pos()
			p.advance()
			t = Allocate(p.arena, PointerSuffix{typeBase: typeBase{mk(p.arena, NPointerSuffix, pos)}, Inner: t})
		case p.at(LBracket):
			pos := p.pos()
			p.advance()
			if p.at(RBracket) {
				p.advance()
				t = Allocate(p.arena, ArraySuffix{typeBase: typeBase{mk(p.arena, NArraySuffix, pos)}, Inner: t})
				continue
			}
			if p.isTypeFollowedBy(RBracket) {
				idxType := p.parseType()
				p.expect(RBracket)
				t = Allocate(p.arena, AssocArraySuffix{typeBase: typeBase{mk(p.arena, NAssocArraySuffix, pos)}, Inner: t, KeyType: idxType})
				continue
			}
			size := p.parseAssignExpr()
			if p.eatIf(DotDot) {
				high := p.parseAssignExpr()
				p.expect(RBracket)
				t = Allocate(p.arena, SliceSuffix{typeBase: typeBase{mk(p.arena, NSliceSuffix, pos)}, Inner: t, Low: size, High: high})
				continue
			}
			p.expect(RBracket)
			t = Allocate(p.arena, ArraySuffix{typeBase: typeBase{mk(p.arena, NArraySuffix, pos)}, Inner: t, Size: size})
		case p.atOneOf(KwFunction, KwDelegate):
			pos := p.pos()
			isDelegate := p.advance().Kind == KwDelegate
			params, _ := p.tryParseParamList()
			var attrs []Kind
			for p.atSet(storageClassSet) {
				attrs = append(attrs, p.advance().Kind)
			}
			t = Allocate(p.arena, FunctionSuffix{typeBase: typeBase{mk(p.arena, NFunctionSuffix, pos)}, Inner: t, IsDelegate: isDelegate, Params: params, Attributes: attrs})
		default:
			return t
		}
	}
}
