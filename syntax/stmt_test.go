package syntax

import "testing"

func TestParseIfElseStmt(t *testing.T) {
	// if (a) b; else c;
	p, d := newTestParser([]Token{
		{Kind: KwIf}, {Kind: LParen}, idTok("a"), {Kind: RParen},
		idTok("b"), {Kind: Semicolon},
		{Kind: KwElse},
		idTok("c"), {Kind: Semicolon},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ifs, ok := s.(*IfStmt)
	if !ok {
		t.Fatalf("got %#v, want *IfStmt", s)
	}
	if ifs.Cond.(*IdentExpr).Name != "a" {
		t.Fatalf("cond = %#v", ifs.Cond)
	}
	if ifs.Then == nil || ifs.Else == nil {
		t.Fatalf("then/else = %+v/%+v", ifs.Then, ifs.Else)
	}
}

func TestParseIfWithTypedConditionDeclaration(t *testing.T) {
	// if (Foo f = getFoo()) { }
	p, d := newTestParser([]Token{
		{Kind: KwIf}, {Kind: LParen}, idTok("Foo"), idTok("f"), {Kind: Assign},
		idTok("getFoo"), {Kind: LParen}, {Kind: RParen}, {Kind: RParen},
		{Kind: LBrace}, {Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ifs, ok := s.(*IfStmt)
	if !ok {
		t.Fatalf("got %#v, want *IfStmt", s)
	}
	if ifs.CondIdent == nil || ifs.CondIdent.Name != "f" || ifs.CondType == nil {
		t.Fatalf("got CondIdent=%+v CondType=%+v, want a typed condition declaration", ifs.CondIdent, ifs.CondType)
	}
	if _, ok := ifs.CondType.(*IdentType); !ok {
		t.Fatalf("CondType = %#v, want *IdentType", ifs.CondType)
	}
}

func TestParseWhileStmt(t *testing.T) {
	p, d := newTestParser([]Token{
		{Kind: KwWhile}, {Kind: LParen}, idTok("cond"), {Kind: RParen}, {Kind: LBrace}, {Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	if _, ok := s.(*WhileStmt); !ok {
		t.Fatalf("got %#v, want *WhileStmt", s)
	}
}

func TestParseForeachRangeStmt(t *testing.T) {
	// foreach (i; 0 .. 10) {}
	p, d := newTestParser([]Token{
		{Kind: KwForeach}, {Kind: LParen},
		idTok("i"), {Kind: Semicolon},
		litTok(IntLiteral, "0"), {Kind: DotDot}, litTok(IntLiteral, "10"),
		{Kind: RParen}, {Kind: LBrace}, {Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	fe, ok := s.(*ForeachStmt)
	if !ok || !fe.IsRange || fe.RangeHigh == nil {
		t.Fatalf("got %#v, want a range ForeachStmt", s)
	}
	if len(fe.Vars) != 1 || fe.Vars[0].Name.Name != "i" {
		t.Fatalf("vars = %+v", fe.Vars)
	}
}

func TestParseForeachRangeStmtWithTwoVarsErrors(t *testing.T) {
	// foreach (i, j; 0 .. 10) {} — a range foreach allows only one variable.
	p, d := newTestParser([]Token{
		{Kind: KwForeach}, {Kind: LParen},
		idTok("i"), {Kind: Comma}, idTok("j"), {Kind: Semicolon},
		litTok(IntLiteral, "0"), {Kind: DotDot}, litTok(IntLiteral, "10"),
		{Kind: RParen}, {Kind: LBrace}, {Kind: RBrace},
	})
	p.parseStatement()
	if d.ErrorCount() == 0 {
		t.Fatalf("want an error for a range foreach with two loop variables")
	}
}

func TestParseForeachListStmt(t *testing.T) {
	// foreach (v; items) {}
	p, d := newTestParser([]Token{
		{Kind: KwForeach}, {Kind: LParen},
		idTok("v"), {Kind: Semicolon}, idTok("items"),
		{Kind: RParen}, {Kind: LBrace}, {Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	fe, ok := s.(*ForeachStmt)
	if !ok || fe.IsRange {
		t.Fatalf("got %#v, want a list ForeachStmt", s)
	}
	if fe.Aggregate.(*IdentExpr).Name != "items" {
		t.Fatalf("aggregate = %#v", fe.Aggregate)
	}
}

func TestParseSwitchCaseDefault(t *testing.T) {
	// switch (x) { case 1: break; default: break; }
	p, d := newTestParser([]Token{
		{Kind: KwSwitch}, {Kind: LParen}, idTok("x"), {Kind: RParen}, {Kind: LBrace},
		{Kind: KwCase}, litTok(IntLiteral, "1"), {Kind: Colon}, {Kind: KwBreak}, {Kind: Semicolon},
		{Kind: KwDefault}, {Kind: Colon}, {Kind: KwBreak}, {Kind: Semicolon},
		{Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	sw, ok := s.(*SwitchStmt)
	if !ok || sw.Final {
		t.Fatalf("got %#v, want a non-final SwitchStmt", s)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	// try {} catch (Exception e) {} finally {}
	p, d := newTestParser([]Token{
		{Kind: KwTry}, {Kind: LBrace}, {Kind: RBrace},
		{Kind: KwCatch}, {Kind: LParen}, idTok("Exception"), idTok("e"), {Kind: RParen}, {Kind: LBrace}, {Kind: RBrace},
		{Kind: KwFinally}, {Kind: LBrace}, {Kind: RBrace},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	try, ok := s.(*TryStmt)
	if !ok || len(try.Catches) != 1 || try.Finally == nil {
		t.Fatalf("got %#v, want a TryStmt with 1 catch and a finally", s)
	}
}

func TestParseTryWithNeitherCatchNorFinallyErrors(t *testing.T) {
	// try {} — neither a catch nor a finally clause, which isn't valid.
	p, d := newTestParser([]Token{
		{Kind: KwTry}, {Kind: LBrace}, {Kind: RBrace},
	})
	p.parseStatement()
	if d.ErrorCount() == 0 {
		t.Fatalf("want an error for a try statement with no catch or finally")
	}
}

func TestParseScopeGuardStmt(t *testing.T) {
	// scope(exit) cleanup();
	p, d := newTestParser([]Token{
		{Kind: KwScope}, {Kind: LParen}, idTok("exit"), {Kind: RParen},
		idTok("cleanup"), {Kind: LParen}, {Kind: RParen}, {Kind: Semicolon},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	if _, ok := s.(*ScopeGuardStmt); !ok {
		t.Fatalf("got %#v, want *ScopeGuardStmt", s)
	}
}

func TestParseLabeledStmt(t *testing.T) {
	// outer: break;
	p, d := newTestParser([]Token{
		idTok("outer"), {Kind: Colon}, {Kind: KwBreak}, {Kind: Semicolon},
	})
	s := p.parseStatement()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	lbl, ok := s.(*LabeledStmt)
	if !ok || lbl.Label != "outer" {
		t.Fatalf("got %#v, want LabeledStmt(outer)", s)
	}
	if _, ok := lbl.Inner.(*BreakStmt); !ok {
		t.Fatalf("inner = %#v, want *BreakStmt", lbl.Inner)
	}
}

func TestParseDeclStmtInsideBlock(t *testing.T) {
	// { int x; }
	p, d := newTestParser([]Token{
		{Kind: LBrace}, builtinTok("int"), idTok("x"), {Kind: Semicolon}, {Kind: RBrace},
	})
	block := p.parseBlockStmt()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	if len(block.Statements) != 1 {
		t.Fatalf("statements = %+v", block.Statements)
	}
	if _, ok := block.Statements[0].(*DeclStmt); !ok {
		t.Fatalf("got %#v, want *DeclStmt", block.Statements[0])
	}
}
