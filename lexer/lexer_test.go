package lexer

import (
	"testing"

	"github.com/dlang-tools/dparse/syntax"
)

func kinds(toks []syntax.Token) []syntax.Kind {
	ks := make([]syntax.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func wantKinds(t *testing.T, src string, want ...syntax.Kind) {
	t.Helper()
	want = append(want, syntax.TEOF)
	got := kinds(Tokenize(src))
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestTokenizeModuleDecl(t *testing.T) {
	wantKinds(t, "module a.b;",
		syntax.KwModule, syntax.Ident, syntax.Dot, syntax.Ident, syntax.Semicolon)
}

func TestTokenizeFinalSwitchCombines(t *testing.T) {
	wantKinds(t, "final switch (x) {}",
		syntax.KwFinalSwitch, syntax.LParen, syntax.Ident, syntax.RParen, syntax.LBrace, syntax.RBrace)
}

func TestTokenizeFinalAloneStaysFinal(t *testing.T) {
	wantKinds(t, "final void f() {}",
		syntax.KwFinal, syntax.KwBuiltinType, syntax.Ident, syntax.LParen, syntax.RParen, syntax.LBrace, syntax.RBrace)
}

func TestTokenizeOperatorsLongestMatchFirst(t *testing.T) {
	wantKinds(t, ">>>= >>= >> >= > ^^= ^^ ^ !<>= !<> !> !< !",
		syntax.UShrAssign, syntax.ShrAssign, syntax.Shr, syntax.Ge, syntax.Gt,
		syntax.PowAssign, syntax.PowPow, syntax.Caret,
		syntax.Unordered, syntax.UnorderedEq, syntax.NotGt, syntax.NotLt, syntax.Bang)
}

func TestTokenizeNumberSuffixes(t *testing.T) {
	wantKinds(t, "1 1L 1u 1uL 1.0 1.0f 1.0i",
		syntax.IntLiteral, syntax.LongLiteral, syntax.UIntLiteral, syntax.UIntLiteral,
		syntax.DoubleLiteral, syntax.FloatLiteral, syntax.IDoubleLiteral)
}

func TestTokenizeDocCommentAttachesToNextToken(t *testing.T) {
	toks := Tokenize("/// does a thing\nvoid f();")
	if toks[0].Kind != syntax.KwBuiltinType {
		t.Fatalf("expected first token to be the builtin type, got %v", toks[0].Kind)
	}
	if toks[0].DocComment == "" {
		t.Fatal("expected the doc comment to attach to the token following it")
	}
}

func TestTokenizeNestedBlockComment(t *testing.T) {
	wantKinds(t, "int /+ outer /+ inner +/ still outer +/ x;",
		syntax.KwBuiltinType, syntax.Ident, syntax.Semicolon)
}

func TestTokenizeStringLiteralSuffixes(t *testing.T) {
	wantKinds(t, `"a"w "b"d "c"c`,
		syntax.WStringLiteral, syntax.DStringLiteral, syntax.StringLiteral)
}

func TestTokenizeScriptLineOnlyAtStart(t *testing.T) {
	toks := Tokenize("#!/usr/bin/env rdmd\nmodule a;")
	if toks[0].Kind != syntax.ScriptLine {
		t.Fatalf("expected the first token to be a script line, got %v", toks[0].Kind)
	}
	if toks[1].Kind != syntax.KwModule {
		t.Fatalf("expected KwModule to follow the script line, got %v", toks[1].Kind)
	}
}
