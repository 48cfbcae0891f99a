package syntax

import "testing"

func TestParseBuiltinType(t *testing.T) {
	p, d := newTestParser([]Token{builtinTok("int")})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	bt, ok := ty.(*BuiltinType)
	if !ok || bt.Name != "int" {
		t.Fatalf("got %#v, want BuiltinType(int)", ty)
	}
}

func TestParseDottedIdentType(t *testing.T) {
	// std.stdio.File
	p, d := newTestParser([]Token{
		idTok("std"), {Kind: Dot}, idTok("stdio"), {Kind: Dot}, idTok("File"),
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	it, ok := ty.(*IdentType)
	if !ok || it.Chain.String() != "std.stdio.File" {
		t.Fatalf("got %#v, want IdentType(std.stdio.File)", ty)
	}
}

func TestParseTemplateInstantiatedType(t *testing.T) {
	// List!int
	p, d := newTestParser([]Token{
		idTok("List"), {Kind: Bang}, builtinTok("int"),
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	it, ok := ty.(*IdentType)
	if !ok || len(it.TemplateArgs) != 1 {
		t.Fatalf("got %#v, want IdentType with 1 template arg", ty)
	}
}

func TestParsePointerSuffix(t *testing.T) {
	// int*
	p, d := newTestParser([]Token{builtinTok("int"), {Kind: Star}})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ps, ok := ty.(*PointerSuffix)
	if !ok {
		t.Fatalf("got %#v, want *PointerSuffix", ty)
	}
	if _, ok := ps.Inner.(*BuiltinType); !ok {
		t.Fatalf("inner = %#v, want *BuiltinType", ps.Inner)
	}
}

func TestParseUnsizedArraySuffix(t *testing.T) {
	// int[]
	p, d := newTestParser([]Token{builtinTok("int"), {Kind: LBracket}, {Kind: RBracket}})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	as, ok := ty.(*ArraySuffix)
	if !ok || as.Size != nil {
		t.Fatalf("got %#v, want an unsized ArraySuffix", ty)
	}
}

func TestParseSizedArraySuffix(t *testing.T) {
	// int[5]
	p, d := newTestParser([]Token{builtinTok("int"), {Kind: LBracket}, litTok(IntLiteral, "5"), {Kind: RBracket}})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	as, ok := ty.(*ArraySuffix)
	if !ok || as.Size == nil {
		t.Fatalf("got %#v, want a sized ArraySuffix", ty)
	}
}

func TestParseAssociativeArraySuffix(t *testing.T) {
	// int[string]
	p, d := newTestParser([]Token{builtinTok("int"), {Kind: LBracket}, builtinTok("string"), {Kind: RBracket}})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	aa, ok := ty.(*AssocArraySuffix)
	if !ok || aa.KeyType == nil {
		t.Fatalf("got %#v, want an AssocArraySuffix with a key type", ty)
	}
}

func TestParseSliceTypeSuffix(t *testing.T) {
	// int[0 .. 5]
	p, d := newTestParser([]Token{
		builtinTok("int"), {Kind: LBracket}, litTok(IntLiteral, "0"), {Kind: DotDot}, litTok(IntLiteral, "5"), {Kind: RBracket},
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	ss, ok := ty.(*SliceSuffix)
	if !ok || ss.Low == nil || ss.High == nil {
		t.Fatalf("got %#v, want a SliceSuffix with Low and High", ty)
	}
}

func TestParseQualifiedTypeWithParens(t *testing.T) {
	// const(int)
	p, d := newTestParser([]Token{
		{Kind: KwConst}, {Kind: LParen}, builtinTok("int"), {Kind: RParen},
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	qt, ok := ty.(*QualifiedType)
	if !ok || qt.Qualifier != KwConst {
		t.Fatalf("got %#v, want QualifiedType(const)", ty)
	}
}

func TestParseTypeofReturn(t *testing.T) {
	// typeof(return)
	p, d := newTestParser([]Token{
		{Kind: KwTypeof}, {Kind: LParen}, {Kind: KwReturn}, {Kind: RParen},
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	tt, ok := ty.(*TypeofType)
	if !ok || !tt.IsReturn {
		t.Fatalf("got %#v, want TypeofType{IsReturn: true}", ty)
	}
}

func TestParseFunctionPointerType(t *testing.T) {
	// int function(int)
	p, d := newTestParser([]Token{
		builtinTok("int"), {Kind: KwFunction}, {Kind: LParen}, builtinTok("int"), {Kind: RParen},
	})
	ty := p.parseType()
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
	fs, ok := ty.(*FunctionSuffix)
	if !ok || fs.IsDelegate {
		t.Fatalf("got %#v, want a non-delegate FunctionSuffix", ty)
	}
	if _, ok := fs.Inner.(*BuiltinType); !ok {
		t.Fatalf("inner = %#v, want *BuiltinType", fs.Inner)
	}
}
