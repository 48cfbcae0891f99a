package syntax

// Node is implemented by every AST node kind (spec §3). Every node records
// the source location of its first significant token; Kind reports which of
// the closed taxonomy's ~150 kinds the node is tagged with, the same
// Kind type the token stream uses (see kind.go's IsNodeKind).
type Node interface {
	Kind() Kind
	Pos() Position
}

// base is embedded by every concrete node and supplies the Kind/Pos
// accessors. It is never used bare.
type base struct {
	kind Kind
	pos  Position
}

func (b *base) Kind() Kind     { return b.kind }
func (b *base) Pos() Position  { return b.pos }

// Expr, Stmt, Decl, and TypeNode are marker interfaces over Node, mirroring
// go/ast's Expr/Stmt/Decl split: grouping by grammar family lets parser
// functions return a narrow interface while consumers still type-switch
// freely over the closed node set.
type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Decl interface {
	Node
	declNode()
}

type TypeNode interface {
	Node
	typeNode()
}

type exprBase struct{ base }

func (*exprBase) exprNode() {}

type stmtBase struct{ base }

func (*stmtBase) stmtNode() {}

// declBase additionally carries the doc-comment slots spec §3 attaches to
// declaration-level nodes: the comment consumed from the preceding token's
// pending doc-comment, and the supplemental comment copied down from an
// enclosing conditional-compilation branch (spec §4.7).
type declBase struct {
	base
	Comment             string
	SupplementalComment string
}

func (*declBase) declNode() {}

type typeBase struct{ base }

func (*typeBase) typeNode() {}

// IdentExpr is a bare name: used both as a primary expression (spec §4.5
// PrimaryExpression) and, reused across every other family, as the
// position-bearing name of a declarator, parameter, label, or aggregate.
type IdentExpr struct {
	exprBase
	Name string
}

// Chain is a dotted identifier sequence (`a.b.c`), used for module names,
// base-class names, and the identifier-chain form of a type (spec §4.8).
type Chain struct {
	base
	LeadingDot bool
	Parts      []*IdentExpr
}

func (c *Chain) String() string {
	s := ""
	if c.LeadingDot {
		s = "."
	}
	for i, p := range c.Parts {
		if i > 0 {
			s += "."
		}
		s += p.Name
	}
	return s
}

// Module is the parse tree's root (spec §6 "AST contract").
type Module struct {
	base
	ScriptLine   *Token
	ModuleDecl   *ModuleDeclaration
	Declarations []Decl
}

// ModuleDeclaration is the optional `module a.b.c;` header, possibly
// preceded by a `deprecated(msg)` attribute (spec §4.10).
type ModuleDeclaration struct {
	base
	Deprecated     bool
	DeprecationMsg Expr
	ModuleName     *Chain
}

// newModule, newIdent, etc. are thin arena-allocating constructors used
// throughout the parser; they keep each parse function's "allocate, fill,
// return" shape uniform (spec §4.2 allocate<T>).

func newIdent(a *Arena, pos Position, name string) *IdentExpr {
	return Allocate(a, IdentExpr{exprBase: exprBase{base{kind: NIdent, pos: pos}}, Name: name})
}
