// Package syntax implements a recoverable recursive-descent parser for a
// C-family systems language with modules, compile-time metaprogramming,
// templates, inline assembly, and contract programming.
//
// This file defines Kind, the discriminated tag carried by every token in
// the pre-lexed input stream and reused (where it overlaps) as the node-kind
// discriminator of the produced AST. Kind is deliberately a flat, closed
// enumeration: the parser never invents new kinds at runtime, only new tree
// shapes built out of existing ones.
package syntax

// Kind is the discriminated tag of a lexer token.
type Kind uint16

// All token kinds recognized by the parser. The grouping mirrors the
// grammar families described in the specification: control punctuation,
// assignment/relational/arithmetic operators, keywords, literal categories,
// and the handful of magic intrinsics.
const (
	// Invalid/end markers.
	Invalid Kind = iota
	TEOF         // sentinel: end of token stream
	ScriptLine   // shebang-style first line ("#!/usr/bin/env rdmd")

	// Identifiers and generic text.
	Ident

	// Literal categories (spec §6).
	IntLiteral
	LongLiteral
	UIntLiteral
	ULongLiteral
	FloatLiteral
	DoubleLiteral
	RealLiteral
	IFloatLiteral
	IDoubleLiteral
	IRealLiteral
	CharacterLiteral
	StringLiteral
	WStringLiteral
	DStringLiteral

	// Punctuation: grouping.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	// Punctuation: separators.
	Semicolon
	Comma
	Dot
	DotDot
	DotDotDot
	Colon
	ColonColon
	At
	Dollar
	Arrow // => (lambda body)
	Question

	// Assignment operators.
	Assign
	PlusAssign
	MinusAssign
	MulAssign
	DivAssign
	ModAssign
	AndAssign
	OrAssign
	XorAssign
	CatAssign // ~=
	ShlAssign
	ShrAssign
	UShrAssign
	PowAssign // ^^=

	// Logical / bitwise operators.
	OrOr
	AndAnd
	Pipe
	Caret
	Amp

	// Equality / identity / membership / relational.
	EqEq
	NotEq
	Is
	NotIs
	In
	NotIn
	Lt
	Le
	Gt
	Ge
	// Deprecated floating-point relational operators, retained for the
	// classifier and expression parser the way the language still lexes
	// them even though they see almost no use in modern source.
	Unordered      // !<>=
	UnorderedEq    // !<>
	LtGt           // <>
	LtGtEq         // <>=
	NotGt          // !>
	NotGtEq        // !>=
	NotLt          // !<
	NotLtEq        // !<=

	// Shift.
	Shl
	Shr
	UShr

	// Additive / multiplicative / power.
	Plus
	Minus
	Tilde // also used as concatenation operator and unary pointer-less op
	Star
	Slash
	Percent
	PowPow // ^^

	// Unary / postfix.
	Bang // !, also opens template argument lists
	Amp2 // & (address-of) reuses Amp
	PlusPlus
	MinusMinus

	// Keywords: declarations and aggregates.
	KwModule
	KwImport
	KwAlias
	KwClass
	KwStruct
	KwUnion
	KwEnum
	KwInterface
	KwTemplate
	KwMixin
	KwThis
	KwSuper
	KwPragma
	KwInvariant
	KwUnittest
	KwPackage
	KwExport

	// Keywords: storage classes / attributes / type constructors.
	KwStatic
	KwShared
	KwConst
	KwImmutable
	KwInout
	KwScope
	KwExtern
	KwFinal
	KwAbstract
	KwOverride
	KwPrivate
	KwProtected
	KwPublic
	KwDeprecated
	KwLazy
	KwRef
	KwAuto
	KwPure
	KwNothrow
	KwGShared
	KwParameters // __parameters

	// Keywords: statements.
	KwIf
	KwElse
	KwWhile
	KwDo
	KwFor
	KwForeach
	KwForeachReverse
	KwSwitch
	KwFinalSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwReturn
	KwGoto
	KwWith
	KwSynchronized
	KwTry
	KwCatch
	KwFinally
	KwThrow
	KwAsm
	KwVersion
	KwDebug
	KwAssert
	KwOut  // contract out-clause introducer (`in`, the other half, reuses the In operator token)
	KwBody // legacy contract-body introducer (superseded by `do`, which reuses KwDo)

	// Keywords: expressions.
	KwFunction
	KwDelegate
	KwNew
	KwDelete
	KwCast
	KwTypeof
	KwTypeid
	KwTraits // __traits
	KwVector // __vector
	KwNull
	KwTrue
	KwFalse

	// Magic intrinsics (spec §4.5, primary expressions).
	KwFile         // __FILE__
	KwLine         // __LINE__
	KwModuleIntr   // __MODULE__
	KwFunctionIntr // __FUNCTION__
	KwPrettyFunc   // __PRETTY_FUNCTION__
	KwDate         // __DATE__
	KwTime         // __TIME__
	KwTimestamp    // __TIMESTAMP__
	KwVendor       // __VENDOR__
	KwVersionIntr  // __VERSION__
	KwEOFIntrinsic // __EOF__

	// Builtin value/property types usable as type constructors or primaries.
	KwBuiltinType // covers int, uint, long, ulong, short, ushort, byte, ubyte,
	// bool, char, wchar, dchar, float, double, real, ifloat, idouble,
	// ireal, cfloat, cdouble, creal, void — the lexer tags all of these
	// with one kind and carries the spelling in Token.Text.

	kindSentinel
)

// Node kinds. A single Kind enumeration tags both lexer tokens (above) and
// the AST nodes the parser builds out of them, the way the teacher's own
// SyntaxKind does double duty for Typst's concrete syntax tree. Grouped by
// the families of spec §3: expressions, statements, declarations, types,
// template/asm machinery, and the root Module.
const (
	NModule Kind = kindSentinel + 1 + iota
	NModuleDeclaration
	NChain

	// Expressions.
	NIdent
	NTemplateInstance
	NIntLit
	NLongLit
	NUIntLit
	NULongLit
	NFloatLit
	NDoubleLit
	NRealLit
	NImaginaryLit
	NCharLit
	NStringLit
	NBoolLit
	NNullLit
	NThisExpr
	NSuperExpr
	NDollarExpr
	NIntrinsicExpr
	NArrayLit
	NAssocArrayLit
	NFuncLiteral
	NLambdaExpr
	NTypeofExpr
	NTypeidExpr
	NTraitsExpr
	NMixinExpr
	NImportExpr
	NIsExpr
	NVectorExpr
	NParenExpr
	NDotTypeIdentExpr
	NAssignExpr
	NTernaryExpr
	NBinaryExpr
	NEqualExpr
	NIdentityExpr
	NInExpr
	NRelExpr
	NUnaryExpr
	NCallExpr
	NIndexExpr
	NPostfixIncDec
	NMemberExpr
	NNewExpr
	NDeleteExpr
	NCastExpr
	NQualifiedCallExpr
	NAssertExpr
	NArgumentList
	NKeyValuePair

	// Statements.
	NBlockStmt
	NExprStmt
	NDeclStmt
	NIfStmt
	NWhileStmt
	NDoWhileStmt
	NForStmt
	NForeachStmt
	NForeachRangeVar
	NSwitchStmt
	NCaseStmt
	NDefaultStmt
	NBreakStmt
	NContinueStmt
	NReturnStmt
	NGotoStmt
	NWithStmt
	NSynchronizedStmt
	NTryStmt
	NCatchClause
	NFinallyClause
	NThrowStmt
	NScopeGuardStmt
	NAsmStmt
	NStaticIfStmt
	NStaticAssertStmt
	NStaticForeachStmt
	NVersionStmt
	NDebugStmt
	NLabeledStmt

	// Declarations.
	NAttributeDecl
	NAliasDecl
	NAliasThisDecl
	NAggregateDecl
	NBaseClause
	NConstructorDecl
	NDestructorDecl
	NPostblitDecl
	NEnumDecl
	NEnumMember
	NAnonymousEnumDecl
	NEponymousTemplateDecl
	NVariableDecl
	NDeclarator
	NImportDecl
	NImportSelector
	NMixinDecl
	NMixinTemplateDecl
	NTemplateMixinDecl
	NPragmaDecl
	NStaticCtorDecl
	NStaticDtorDecl
	NSharedStaticCtorDecl
	NSharedStaticDtorDecl
	NConditionalDecl
	NStaticAssertDecl
	NStaticForeachDecl
	NTemplateDecl
	NInvariantDecl
	NUnittestDecl
	NFunctionDecl
	NParameter
	NTemplateParameter
	NContractIn
	NContractOut
	NContractBody

	// Types.
	NBuiltinType
	NIdentType
	NTypeofType
	NQualifiedType
	NVectorType
	NTraitsType
	NPointerSuffix
	NArraySuffix
	NSliceSuffix
	NAssocArraySuffix
	NFunctionSuffix

	// Asm sub-grammar.
	NAsmInstr
	NAsmBinaryExpr
	NAsmUnaryExpr
	NAsmBracketExpr
	NAsmRegister
	NAsmTypePrefix
	NAsmPrimary

	nodeKindSentinel
)

var nodeKindNames = map[Kind]string{
	NModule:            "Module",
	NModuleDeclaration:  "ModuleDeclaration",
	NChain:              "Chain",

	NIdent:             "Ident",
	NTemplateInstance:  "TemplateInstance",
	NIntLit:            "IntLit",
	NLongLit:           "LongLit",
	NUIntLit:           "UIntLit",
	NULongLit:          "ULongLit",
	NFloatLit:          "FloatLit",
	NDoubleLit:         "DoubleLit",
	NRealLit:           "RealLit",
	NImaginaryLit:      "ImaginaryLit",
	NCharLit:           "CharLit",
	NStringLit:         "StringLit",
	NBoolLit:           "BoolLit",
	NNullLit:           "NullLit",
	NThisExpr:          "ThisExpr",
	NSuperExpr:         "SuperExpr",
	NDollarExpr:        "DollarExpr",
	NIntrinsicExpr:     "IntrinsicExpr",
	NArrayLit:          "ArrayLit",
	NAssocArrayLit:     "AssocArrayLit",
	NFuncLiteral:       "FuncLiteral",
	NLambdaExpr:        "LambdaExpr",
	NTypeofExpr:        "TypeofExpr",
	NTypeidExpr:        "TypeidExpr",
	NTraitsExpr:        "TraitsExpr",
	NMixinExpr:         "MixinExpr",
	NImportExpr:        "ImportExpr",
	NIsExpr:            "IsExpr",
	NVectorExpr:        "VectorExpr",
	NParenExpr:         "ParenExpr",
	NDotTypeIdentExpr:  "DotTypeIdentExpr",
	NAssignExpr:        "AssignExpr",
	NTernaryExpr:       "TernaryExpr",
	NBinaryExpr:        "BinaryExpr",
	NEqualExpr:         "EqualExpr",
	NIdentityExpr:      "IdentityExpr",
	NInExpr:            "InExpr",
	NRelExpr:           "RelExpr",
	NUnaryExpr:         "UnaryExpr",
	NCallExpr:          "CallExpr",
	NIndexExpr:         "IndexExpr",
	NPostfixIncDec:     "PostfixIncDec",
	NMemberExpr:        "MemberExpr",
	NNewExpr:           "NewExpr",
	NDeleteExpr:        "DeleteExpr",
	NCastExpr:          "CastExpr",
	NQualifiedCallExpr: "QualifiedCallExpr",
	NAssertExpr:        "AssertExpr",
	NArgumentList:      "ArgumentList",
	NKeyValuePair:       "KeyValuePair",

	NBlockStmt:        "BlockStmt",
	NExprStmt:         "ExprStmt",
	NDeclStmt:         "DeclStmt",
	NIfStmt:           "IfStmt",
	NWhileStmt:        "WhileStmt",
	NDoWhileStmt:      "DoWhileStmt",
	NForStmt:          "ForStmt",
	NForeachStmt:      "ForeachStmt",
	NForeachRangeVar:  "ForeachRangeVar",
	NSwitchStmt:       "SwitchStmt",
	NCaseStmt:         "CaseStmt",
	NDefaultStmt:      "DefaultStmt",
	NBreakStmt:        "BreakStmt",
	NContinueStmt:     "ContinueStmt",
	NReturnStmt:       "ReturnStmt",
	NGotoStmt:         "GotoStmt",
	NWithStmt:         "WithStmt",
	NSynchronizedStmt: "SynchronizedStmt",
	NTryStmt:          "TryStmt",
	NCatchClause:      "CatchClause",
	NFinallyClause:    "FinallyClause",
	NThrowStmt:        "ThrowStmt",
	NScopeGuardStmt:   "ScopeGuardStmt",
	NAsmStmt:          "AsmStmt",
	NStaticIfStmt:     "StaticIfStmt",
	NStaticAssertStmt: "StaticAssertStmt",
	NStaticForeachStmt: "StaticForeachStmt",
	NVersionStmt:      "VersionStmt",
	NDebugStmt:        "DebugStmt",
	NLabeledStmt:      "LabeledStmt",

	NAttributeDecl:         "AttributeDecl",
	NAliasDecl:             "AliasDecl",
	NAliasThisDecl:         "AliasThisDecl",
	NAggregateDecl:         "AggregateDecl",
	NBaseClause:            "BaseClause",
	NConstructorDecl:       "ConstructorDecl",
	NDestructorDecl:        "DestructorDecl",
	NPostblitDecl:          "PostblitDecl",
	NEnumDecl:              "EnumDecl",
	NEnumMember:            "EnumMember",
	NAnonymousEnumDecl:     "AnonymousEnumDecl",
	NEponymousTemplateDecl: "EponymousTemplateDecl",
	NVariableDecl:          "VariableDecl",
	NDeclarator:            "Declarator",
	NImportDecl:            "ImportDecl",
	NImportSelector:        "ImportSelector",
	NMixinDecl:             "MixinDecl",
	NMixinTemplateDecl:     "MixinTemplateDecl",
	NTemplateMixinDecl:     "TemplateMixinDecl",
	NPragmaDecl:            "PragmaDecl",
	NStaticCtorDecl:        "StaticCtorDecl",
	NStaticDtorDecl:        "StaticDtorDecl",
	NSharedStaticCtorDecl:  "SharedStaticCtorDecl",
	NSharedStaticDtorDecl:  "SharedStaticDtorDecl",
	NConditionalDecl:       "ConditionalDecl",
	NStaticAssertDecl:      "StaticAssertDecl",
	NStaticForeachDecl:     "StaticForeachDecl",
	NTemplateDecl:          "TemplateDecl",
	NInvariantDecl:         "InvariantDecl",
	NUnittestDecl:          "UnittestDecl",
	NFunctionDecl:          "FunctionDecl",
	NParameter:             "Parameter",
	NTemplateParameter:     "TemplateParameter",
	NContractIn:            "ContractIn",
	NContractOut:           "ContractOut",
	NContractBody:          "ContractBody",

	NBuiltinType:      "BuiltinType",
	NIdentType:        "IdentType",
	NTypeofType:       "TypeofType",
	NQualifiedType:    "QualifiedType",
	NVectorType:       "VectorType",
	NTraitsType:       "TraitsType",
	NPointerSuffix:    "PointerSuffix",
	NArraySuffix:      "ArraySuffix",
	NSliceSuffix:      "SliceSuffix",
	NAssocArraySuffix: "AssocArraySuffix",
	NFunctionSuffix:   "FunctionSuffix",

	NAsmInstr:       "AsmInstr",
	NAsmBinaryExpr:  "AsmBinaryExpr",
	NAsmUnaryExpr:   "AsmUnaryExpr",
	NAsmBracketExpr: "AsmBracketExpr",
	NAsmRegister:    "AsmRegister",
	NAsmTypePrefix:  "AsmTypePrefix",
	NAsmPrimary:     "AsmPrimary",
}

// IsNodeKind reports whether k tags an AST node rather than a token.
func (k Kind) IsNodeKind() bool { return k > kindSentinel }

var kindNames = map[Kind]string{
	Invalid:          "invalid",
	TEOF:             "end of file",
	ScriptLine:       "script line",
	Ident:            "identifier",
	IntLiteral:       "int literal",
	LongLiteral:      "long literal",
	UIntLiteral:      "uint literal",
	ULongLiteral:     "ulong literal",
	FloatLiteral:     "float literal",
	DoubleLiteral:    "double literal",
	RealLiteral:      "real literal",
	IFloatLiteral:    "ifloat literal",
	IDoubleLiteral:   "idouble literal",
	IRealLiteral:     "ireal literal",
	CharacterLiteral: "character literal",
	StringLiteral:    "string literal",
	WStringLiteral:   "wstring literal",
	DStringLiteral:   "dstring literal",
	LParen:           "'('",
	RParen:           "')'",
	LBracket:         "'['",
	RBracket:         "']'",
	LBrace:           "'{'",
	RBrace:           "'}'",
	Semicolon:        "';'",
	Comma:            "','",
	Dot:              "'.'",
	DotDot:           "'..'",
	DotDotDot:        "'...'",
	Colon:            "':'",
	ColonColon:       "'::'",
	At:               "'@'",
	Dollar:           "'$'",
	Arrow:            "'=>'",
	Question:         "'?'",
	Assign:           "'='",
	Bang:             "'!'",
	KwBuiltinType:    "builtin type",
}

// Name returns a human-readable description of the kind, suitable for use in
// diagnostic messages ("expected 'identifier'").
func (k Kind) Name() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	if n, ok := nodeKindNames[k]; ok {
		return n
	}
	return "token"
}

// IsKeyword reports whether k lexes from a reserved word rather than
// punctuation or a literal.
func (k Kind) IsKeyword() bool {
	return k >= KwModule && k < kindSentinel
}

// IsGrouping reports whether k is one of the six bracket kinds. Used by the
// expression and asm primary parsers to leave a bracket unconsumed when no
// primary can start at it.
func (k Kind) IsGrouping() bool {
	switch k {
	case LParen, RParen, LBracket, RBracket, LBrace, RBrace:
		return true
	}
	return false
}

// IsRecoveryAnchor reports whether k is one of the anchor kinds `; ) ] }`
// that `expect` must not skip past on failure.
func (k Kind) IsRecoveryAnchor() bool {
	switch k {
	case Semicolon, RParen, RBracket, RBrace:
		return true
	}
	return false
}

// IsLiteral reports whether k tags one of the literal categories of §6.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLiteral, LongLiteral, UIntLiteral, ULongLiteral,
		FloatLiteral, DoubleLiteral, RealLiteral,
		IFloatLiteral, IDoubleLiteral, IRealLiteral,
		CharacterLiteral, StringLiteral, WStringLiteral, DStringLiteral:
		return true
	}
	return false
}

// IsStringLiteral reports whether k is one of the three string-literal
// categories eligible for implicit adjacent-literal concatenation (§4.5).
func (k Kind) IsStringLiteral() bool {
	switch k {
	case StringLiteral, WStringLiteral, DStringLiteral:
		return true
	}
	return false
}
