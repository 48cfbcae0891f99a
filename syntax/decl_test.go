package syntax

import "testing"

func TestParseSimpleVariableDecl(t *testing.T) {
	// int x;
	p, d := newTestParser([]Token{
		builtinTok("int"), idTok("x"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	vd, ok := decl.(*VariableDecl)
	if !ok || len(vd.Declarators) != 1 || vd.Declarators[0].Name.Name != "x" {
		t.Fatalf("got %#v, want VariableDecl(x)", decl)
	}
}

func TestParseVariableDeclWithStorageClassAttrs(t *testing.T) {
	// static const int x;
	p, d := newTestParser([]Token{
		{Kind: KwStatic}, {Kind: KwConst}, builtinTok("int"), idTok("x"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	vd, ok := decl.(*VariableDecl)
	if !ok {
		t.Fatalf("got %#v, want *VariableDecl", decl)
	}
	if len(vd.Attrs) != 2 || vd.Attrs[0] != KwStatic || vd.Attrs[1] != KwConst {
		t.Fatalf("attrs = %v, want [KwStatic KwConst]", vd.Attrs)
	}
}

func TestParseAutoDeclaration(t *testing.T) {
	// auto x = 1, y = 2;
	p, d := newTestParser([]Token{
		{Kind: KwAuto}, idTok("x"), {Kind: Assign}, litTok(IntLiteral, "1"), {Kind: Comma},
		idTok("y"), {Kind: Assign}, litTok(IntLiteral, "2"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	vd, ok := decl.(*VariableDecl)
	if !ok {
		t.Fatalf("got %#v, want *VariableDecl", decl)
	}
	if vd.Type != nil {
		t.Fatalf("auto declaration must not carry an explicit type, got %#v", vd.Type)
	}
	if len(vd.Attrs) != 1 || vd.Attrs[0] != KwAuto {
		t.Fatalf("attrs = %v, want [KwAuto]", vd.Attrs)
	}
	if len(vd.Declarators) != 2 || vd.Declarators[0].Name.Name != "x" || vd.Declarators[1].Name.Name != "y" {
		t.Fatalf("declarators = %+v", vd.Declarators)
	}
}

func TestParseAutoDeclarationWithTemplateInstanceInitializer(t *testing.T) {
	// auto x = a!b;
	p, d := newTestParser([]Token{
		{Kind: KwAuto}, idTok("x"), {Kind: Assign},
		idTok("a"), {Kind: Bang}, idTok("b"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d (auto x = a!b should not misparse x as a type name)", d.ErrorCount())
	}
	vd, ok := decl.(*VariableDecl)
	if !ok || len(vd.Declarators) != 1 {
		t.Fatalf("got %#v, want a single-declarator VariableDecl", decl)
	}
	if _, ok := vd.Declarators[0].Value.(*TemplateInstanceExpr); !ok {
		t.Fatalf("initializer = %#v, want *TemplateInstanceExpr", vd.Declarators[0].Value)
	}
}

func TestParseFunctionDeclWithParamsAndBody(t *testing.T) {
	// int add(int a, int b) { return a; }
	p, d := newTestParser([]Token{
		builtinTok("int"), idTok("add"), {Kind: LParen},
		builtinTok("int"), idTok("a"), {Kind: Comma}, builtinTok("int"), idTok("b"),
		{Kind: RParen}, {Kind: LBrace},
		{Kind: KwReturn}, idTok("a"), {Kind: Semicolon},
		{Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	fd, ok := decl.(*FunctionDecl)
	if !ok {
		t.Fatalf("got %#v, want *FunctionDecl", decl)
	}
	if fd.Name.Name != "add" || len(fd.Params) != 2 || !fd.HadBody {
		t.Fatalf("fd = %+v", fd)
	}
}

func TestParseFunctionDeclMinimizesBodyByDefault(t *testing.T) {
	p, d := newTestParser([]Token{
		builtinTok("void"), idTok("f"), {Kind: LParen}, {Kind: RParen},
		{Kind: LBrace}, idTok("sideEffect"), {Kind: LParen}, {Kind: RParen}, {Kind: Semicolon}, {Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	fd, ok := decl.(*FunctionDecl)
	if !ok || !fd.HadBody {
		t.Fatalf("got %#v, want a FunctionDecl with HadBody=true", decl)
	}
	if fd.Body == nil || fd.Body.Statements != nil {
		t.Fatalf("Body = %#v, want a BlockStmt with nil Statements under the default MinimizeFunctionBodies option", fd.Body)
	}
}

func TestParseEnumDeclWithMembers(t *testing.T) {
	// enum Color { Red, Green, Blue }
	p, d := newTestParser([]Token{
		{Kind: KwEnum}, idTok("Color"), {Kind: LBrace},
		idTok("Red"), {Kind: Comma}, idTok("Green"), {Kind: Comma}, idTok("Blue"),
		{Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ed, ok := decl.(*EnumDecl)
	if !ok || ed.Name.Name != "Color" || len(ed.Members) != 3 {
		t.Fatalf("got %#v, want EnumDecl(Color) with 3 members", decl)
	}
}

func TestParseEponymousTemplateEnum(t *testing.T) {
	// enum isFoo(T) = true;
	p, d := newTestParser([]Token{
		{Kind: KwEnum}, idTok("isFoo"), {Kind: LParen}, idTok("T"), {Kind: RParen},
		{Kind: Assign}, {Kind: KwTrue}, {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ep, ok := decl.(*EponymousTemplateDecl)
	if !ok || ep.Name.Name != "isFoo" || len(ep.Params) != 1 {
		t.Fatalf("got %#v, want EponymousTemplateDecl(isFoo)", decl)
	}
}

func TestParseAggregateDeclWithBaseClause(t *testing.T) {
	// class Derived : Base { int x; }
	p, d := newTestParser([]Token{
		{Kind: KwClass}, idTok("Derived"), {Kind: Colon}, idTok("Base"), {Kind: LBrace},
		builtinTok("int"), idTok("x"), {Kind: Semicolon},
		{Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ag, ok := decl.(*AggregateDecl)
	if !ok || ag.AggKind != KwClass || ag.Name.Name != "Derived" {
		t.Fatalf("got %#v, want AggregateDecl(Derived)", decl)
	}
	if ag.Bases == nil || len(ag.Bases.Bases) != 1 || ag.Bases.Bases[0].Chain.String() != "Base" {
		t.Fatalf("bases = %+v", ag.Bases)
	}
	if len(ag.Body) != 1 {
		t.Fatalf("body = %+v", ag.Body)
	}
}

func TestParseOpaqueStructDecl(t *testing.T) {
	// struct Opaque;
	p, d := newTestParser([]Token{
		{Kind: KwStruct}, idTok("Opaque"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ag, ok := decl.(*AggregateDecl)
	if !ok || !ag.IsOpaque {
		t.Fatalf("got %#v, want an opaque AggregateDecl", decl)
	}
}

func TestParseLegacyAliasDeclWarns(t *testing.T) {
	// alias int MyInt;  (legacy form; accepted with a warning, not an error)
	p, d := newTestParser([]Token{
		{Kind: KwAlias}, builtinTok("int"), idTok("MyInt"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	ad, ok := decl.(*AliasDecl)
	if !ok || !ad.Legacy {
		t.Fatalf("got %#v, want a Legacy AliasDecl", decl)
	}
	if d.ErrorCount() != 0 {
		t.Fatalf("legacy alias should warn, not error; ErrorCount = %d", d.ErrorCount())
	}
}

func TestParseAttributePrefixColonForm(t *testing.T) {
	// private: int a; int b;
	p, d := newTestParser([]Token{
		{Kind: KwPrivate}, {Kind: Colon},
		builtinTok("int"), idTok("a"), {Kind: Semicolon},
		builtinTok("int"), idTok("b"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ad, ok := decl.(*AttributeDecl)
	if !ok || ad.Protection != KwPrivate || len(ad.Members) != 2 {
		t.Fatalf("got %#v, want AttributeDecl(private) with 2 members", decl)
	}
}

func TestParseDeprecatedAttributeWithMessage(t *testing.T) {
	// deprecated("use g instead") void f();
	p, d := newTestParser([]Token{
		{Kind: KwDeprecated}, {Kind: LParen}, litTok(StringLiteral, "use g instead"), {Kind: RParen},
		builtinTok("void"), idTok("f"), {Kind: LParen}, {Kind: RParen}, {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ad, ok := decl.(*AttributeDecl)
	if !ok || !ad.Deprecated || ad.DeprecationMsg == nil || len(ad.Members) != 1 {
		t.Fatalf("got %#v, want a Deprecated AttributeDecl with a message and 1 member", decl)
	}
}

func TestParseImportDeclWithSelectors(t *testing.T) {
	// import std.stdio : writeln, writefln;
	p, d := newTestParser([]Token{
		{Kind: KwImport}, idTok("std"), {Kind: Dot}, idTok("stdio"), {Kind: Colon},
		idTok("writeln"), {Kind: Comma}, idTok("writefln"), {Kind: Semicolon},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	if _, ok := decl.(*ImportDecl); !ok {
		t.Fatalf("got %#v, want *ImportDecl", decl)
	}
}

func TestParsePostblitDecl(t *testing.T) {
	// this(this) { x = 1; }
	p, d := newTestParser([]Token{
		{Kind: KwThis}, {Kind: LParen}, {Kind: KwThis}, {Kind: RParen}, {Kind: LBrace},
		idTok("x"), {Kind: Assign}, litTok(IntLiteral, "1"), {Kind: Semicolon},
		{Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	pb, ok := decl.(*PostblitDecl)
	if !ok || !pb.HadBody {
		t.Fatalf("got %#v, want a PostblitDecl with HadBody=true", decl)
	}
}

func TestParseConstructorDecl(t *testing.T) {
	// this(int x) { }
	p, d := newTestParser([]Token{
		{Kind: KwThis}, {Kind: LParen}, builtinTok("int"), idTok("x"), {Kind: RParen},
		{Kind: LBrace}, {Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ctor, ok := decl.(*ConstructorDecl)
	if !ok || len(ctor.Params) != 1 || ctor.TemplateParams != nil {
		t.Fatalf("got %#v, want a plain ConstructorDecl with 1 param", decl)
	}
}

func TestParseTemplatedConstructorDecl(t *testing.T) {
	// this(T)(T x) { }
	p, d := newTestParser([]Token{
		{Kind: KwThis}, {Kind: LParen}, idTok("T"), {Kind: RParen},
		{Kind: LParen}, idTok("T"), idTok("x"), {Kind: RParen},
		{Kind: LBrace}, {Kind: RBrace},
	})
	decl := p.parseDeclaration()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ctor, ok := decl.(*ConstructorDecl)
	if !ok || len(ctor.TemplateParams) != 1 || ctor.TemplateParams[0].Name.Name != "T" || len(ctor.Params) != 1 {
		t.Fatalf("got %#v, want a templated ConstructorDecl(T)(T x)", decl)
	}
}
