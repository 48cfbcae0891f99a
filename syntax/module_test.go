package syntax_test

import (
	"testing"

	"github.com/dlang-tools/dparse/lexer"
	"github.com/dlang-tools/dparse/syntax"
)

// parseSrc is the shared harness for the end-to-end scenarios below: lex
// with the harness lexer, parse with the package's public entry point, and
// hand back both the module and every diagnostic raised.
func parseSrc(t *testing.T, src string) (*syntax.Module, []syntax.Message) {
	t.Helper()
	toks := lexer.Tokenize(src)
	var msgs []syntax.Message
	mod, _ := syntax.ParseModule(toks, "t.d", nil, func(m syntax.Message) { msgs = append(msgs, m) }, syntax.DefaultOptions())
	return mod, msgs
}

func TestModuleDeclaration(t *testing.T) {
	mod, msgs := parseSrc(t, "module a.b.c;")
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if mod.ModuleDecl == nil {
		t.Fatal("expected a module declaration")
	}
	if got, want := mod.ModuleDecl.ModuleName.String(), "a.b.c"; got != want {
		t.Fatalf("module name = %q, want %q", got, want)
	}
	if len(mod.Declarations) != 0 {
		t.Fatalf("expected no top-level declarations, got %d", len(mod.Declarations))
	}
}

func TestDeprecatedModuleDeclaration(t *testing.T) {
	mod, msgs := parseSrc(t, `deprecated("use b instead") module a;`)
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if mod.ModuleDecl == nil || !mod.ModuleDecl.Deprecated {
		t.Fatal("expected a deprecated module declaration")
	}
	if mod.ModuleDecl.DeprecationMsg == nil {
		t.Fatal("expected a deprecation message expression")
	}
}

func TestVariableDeclWithArithmeticPrecedence(t *testing.T) {
	mod, msgs := parseSrc(t, "int x = 1 + 2 * 3;")
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("expected 1 top-level declaration, got %d", len(mod.Declarations))
	}
	vd, ok := mod.Declarations[0].(*syntax.VariableDecl)
	if !ok {
		t.Fatalf("expected *VariableDecl, got %T", mod.Declarations[0])
	}
	if len(vd.Declarators) != 1 || vd.Declarators[0].Value == nil {
		t.Fatal("expected one declarator with an initializer")
	}
	bin, ok := vd.Declarators[0].Value.(*syntax.BinaryExpr)
	if !ok {
		t.Fatalf("expected the initializer to parse as a binary expr (+ at the root), got %T", vd.Declarators[0].Value)
	}
	if bin.Op != syntax.Plus {
		t.Fatalf("root operator = %s, want '+' (multiplication must bind tighter)", bin.Op.Name())
	}
	if _, ok := bin.Right.(*syntax.BinaryExpr); !ok {
		t.Fatalf("right operand of '+' should be the '*' subexpression, got %T", bin.Right)
	}
}

func TestAliasFunctionPointerType(t *testing.T) {
	mod, msgs := parseSrc(t, "alias F = int function(int);")
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(mod.Declarations))
	}
	if _, ok := mod.Declarations[0].(*syntax.AliasDecl); !ok {
		t.Fatalf("expected *AliasDecl, got %T", mod.Declarations[0])
	}
}

func TestStaticIfElse(t *testing.T) {
	mod, msgs := parseSrc(t, "static if (X) { int a; } else { int b; }")
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(mod.Declarations))
	}
	sf, ok := mod.Declarations[0].(*syntax.ConditionalDecl)
	if !ok {
		t.Fatalf("expected *ConditionalDecl for a static if at module scope, got %T", mod.Declarations[0])
	}
	if len(sf.Then) == 0 || len(sf.Else) == 0 {
		t.Fatal("expected both branches to have been parsed")
	}
}

func TestForeachRangeStatement(t *testing.T) {
	src := "void f() { foreach (int i; 0 .. 10) {} }"
	mod, msgs := parseSrc(t, src)
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	if len(mod.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(mod.Declarations))
	}
	fn, ok := mod.Declarations[0].(*syntax.FunctionDecl)
	if !ok {
		t.Fatalf("expected *FunctionDecl, got %T", mod.Declarations[0])
	}
	if !fn.HadBody {
		t.Fatal("expected the function to have had a body")
	}
}

func TestTemplateInstanceVsIsExprVsParenDisambiguation(t *testing.T) {
	// `a!b` must parse as a template instantiation, not `a`, `!`, `b`.
	mod, msgs := parseSrc(t, "auto x = a!b;")
	for _, m := range msgs {
		t.Errorf("unexpected diagnostic: %s", m)
	}
	vd := mod.Declarations[0].(*syntax.VariableDecl)
	if _, ok := vd.Declarators[0].Value.(*syntax.TemplateInstanceExpr); !ok {
		t.Fatalf("expected a!b to parse as *TemplateInstanceExpr, got %T", vd.Declarators[0].Value)
	}
}

func TestRecoversAfterMalformedTopLevelDeclaration(t *testing.T) {
	mod, msgs := parseSrc(t, "int x = ;\nint y = 1;")
	if len(msgs) == 0 {
		t.Fatal("expected at least one diagnostic for the malformed declaration")
	}
	var names []string
	for _, d := range mod.Declarations {
		names = append(names, d.Kind().Name())
	}
	found := false
	for _, d := range mod.Declarations {
		if vd, ok := d.(*syntax.VariableDecl); ok && len(vd.Declarators) > 0 && vd.Declarators[0].Name.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parsing to recover and still pick up `int y = 1;`, declarations: %v", names)
	}
}
