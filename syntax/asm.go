package syntax

import "sort"

// This file implements C9, inline assembly: its own operator-precedence
// cascade (distinct from C5's, since asm expressions have their own,
// smaller grammar), type-prefix keyword recognition, and register-name
// recognition via a sorted table.

// AsmStmt is an `asm { instr; instr; ... }` block.
type AsmStmt struct {
	stmtBase
	Instructions []*AsmInstr
}

// AsmInstr is one `[label:] mnemonic operand, operand, ...;` line, or a
// bare label/empty instruction.
type AsmInstr struct {
	base
	Label    string
	Mnemonic string
	Operands []Expr
}

type AsmBinaryExpr struct {
	base
	Op          Kind
	Left, Right Expr
}

type AsmUnaryExpr struct {
	base
	Op      Kind
	Operand Expr
}

// AsmBracketExpr is `target[index]`, used for memory operands.
type AsmBracketExpr struct {
	base
	Target Expr
	Index  Expr
}

// AsmRegister is a recognized CPU register name.
type AsmRegister struct {
	base
	Name string
}

// AsmTypePrefix is `near|far|word|dword|qword|byte|short|int|float|
// double|real ptr expr` (spec §4.9).
type AsmTypePrefix struct {
	base
	Which    string
	PtrForm  bool
	Operand  Expr
}

// AsmPrimary wraps a literal, identifier, `$`, or `.` local-label
// reference used as an asm operand primary.
type AsmPrimary struct {
	base
	Token Token
}

func (*AsmBinaryExpr) exprNode()   {}
func (*AsmUnaryExpr) exprNode()    {}
func (*AsmBracketExpr) exprNode()  {}
func (*AsmRegister) exprNode()     {}
func (*AsmTypePrefix) exprNode()   {}
func (*AsmPrimary) exprNode()      {}

// asmRegisterNames is sorted for binary-search lookup by isAsmRegister.
var asmRegisterNames = func() []string {
	names := []string{
		"AL", "AH", "AX", "EAX", "RAX",
		"BL", "BH", "BX", "EBX", "RBX",
		"CL", "CH", "CX", "ECX", "RCX",
		"DL", "DH", "DX", "EDX", "RDX",
		"BP", "EBP", "RBP",
		"SP", "ESP", "RSP",
		"SI", "ESI", "RSI",
		"DI", "EDI", "RDI",
		"CS", "DS", "ES", "FS", "GS", "SS",
		"ST", "ST0", "ST1", "ST2", "ST3", "ST4", "ST5", "ST6", "ST7",
		"MM0", "MM1", "MM2", "MM3", "MM4", "MM5", "MM6", "MM7",
		"XMM0", "XMM1", "XMM2", "XMM3", "XMM4", "XMM5", "XMM6", "XMM7",
		"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
	}
	sort.Strings(names)
	return names
}()

func isAsmRegisterName(s string) bool {
	i := sort.SearchStrings(asmRegisterNames, s)
	return i < len(asmRegisterNames) && asmRegisterNames[i] == s
}

var asmTypePrefixNames = map[string]bool{
	"near": true, "far": true, "word": true, "dword": true, "qword": true,
	"byte": true, "short": true, "int": true, "float": true, "double": true,
	"real": true,
}

// parseAsmStmt parses `asm { instr; ... }`.
func (p *Parser) parseAsmStmt() Stmt {
	pos := p.pos()
	p.advance() // asm
	for p.atSet(storageClassSet) {
		p.advance() // e.g. `asm pure nothrow { ... }` attribute prefix
	}
	if _, ok := p.expect(LBrace); !ok {
		return nil
	}
	var instrs []*AsmInstr
	for !p.at(RBrace) && !p.atEnd() {
		instr := p.parseAsmInstr()
		if instr == nil {
			break
		}
		instrs = append(instrs, instr)
	}
	p.expect(RBrace)
	return Allocate(p.arena, AsmStmt{stmtBase: stmtBase{mk(p.arena, NAsmStmt, pos)}, Instructions: instrs})
}

func (p *Parser) parseAsmInstr() *AsmInstr {
	pos := p.pos()
	label := ""
	if p.at(Ident) && p.peekIs(Colon) {
		label = p.advance().Text
		p.advance()
	}
	if p.at(Semicolon) {
		p.advance()
		return Allocate(p.arena, AsmInstr{base: mk(p.arena, NAsmInstr, pos), Label: label})
	}
	mnemonic := ""
	if p.at(Ident) {
		mnemonic = p.advance().Text
	}
	var operands []Expr
	if !p.at(Semicolon) {
		operands = append(operands, p.parseAsmExpr())
		for p.eatIf(Comma) {
			operands = append(operands, p.parseAsmExpr())
		}
	}
	p.expect(Semicolon)
	return Allocate(p.arena, AsmInstr{base: mk(p.arena, NAsmInstr, pos), Label: label, Mnemonic: mnemonic, Operands: operands})
}

// parseAsmExpr is the top of asm's own precedence cascade: log-or, log-and,
// or, xor, and, eq, rel, shift, add, mul, then the unary/bracket/primary
// levels (spec §4.9).
func (p *Parser) parseAsmExpr() Expr {
	return p.asmLevel(p.asmLogAnd, OrOr)
}

func (p *Parser) asmLevel(next func() Expr, ops ...Kind) Expr {
	left := next()
	if left == nil {
		return nil
	}
	for p.atOneOf(ops...) {
		opTok := p.advance()
		right := next()
		left = Allocate(p.arena, AsmBinaryExpr{base: mk(p.arena, NAsmBinaryExpr, opTok.Pos), Op: opTok.Kind, Left: left, Right: right})
	}
	return left
}

func (p *Parser) asmLogAnd() Expr { return p.asmLevel(p.asmOr, AndAnd) }
func (p *Parser) asmOr() Expr     { return p.asmLevel(p.asmXor, Pipe) }
func (p *Parser) asmXor() Expr    { return p.asmLevel(p.asmAnd, Caret) }
func (p *Parser) asmAnd() Expr    { return p.asmLevel(p.asmEq, Amp) }
func (p *Parser) asmEq() Expr     { return p.asmLevel(p.asmRel, EqEq, NotEq) }
func (p *Parser) asmRel() Expr    { return p.asmLevel(p.asmShift, Lt, Le, Gt, Ge) }
func (p *Parser) asmShift() Expr  { return p.asmLevel(p.asmAdd, Shl, Shr, UShr) }
func (p *Parser) asmAdd() Expr    { return p.asmLevel(p.asmMul, Plus, Minus) }
func (p *Parser) asmMul() Expr    { return p.asmLevel(p.asmUnary, Star, Slash, Percent) }

func (p *Parser) asmUnary() Expr {
	if p.atOneOf(Plus, Minus, Bang, Tilde) {
		opTok := p.advance()
		operand := p.asmUnary()
		return Allocate(p.arena, AsmUnaryExpr{base: mk(p.arena, NAsmUnaryExpr, opTok.Pos), Op: opTok.Kind, Operand: operand})
	}
	if (p.at(Ident) || p.at(KwBuiltinType)) && asmTypePrefixNames[p.current().Text] {
		pos := p.pos()
		which := p.advance().Text
		ptrForm := false
		if p.at(Ident) && p.current().Text == "ptr" {
			p.advance()
			ptrForm = true
		}
		operand := p.asmUnary()
		return Allocate(p.arena, AsmTypePrefix{base: mk(p.arena, NAsmTypePrefix, pos), Which: which, PtrForm: ptrForm, Operand: operand})
	}
	return p.asmBracket()
}

// asmBracket handles both a based memory operand (`target[index]`) and a
// bare bracket operand with no preceding primary (`[index]`, e.g.
// `dword ptr [EAX]`'s inner expression) — the target is nil in the latter
// case (spec §4.9).
func (p *Parser) asmBracket() Expr {
	var target Expr
	if p.at(LBracket) {
		target = p.asmBracketSuffix(nil)
	} else {
		target = p.asmPrimary()
	}
	for p.at(LBracket) {
		target = p.asmBracketSuffix(target)
	}
	return target
}

func (p *Parser) asmBracketSuffix(target Expr) Expr {
	pos := p.pos()
	p.advance()
	idx := p.parseAsmExpr()
	p.expect(RBracket)
	return Allocate(p.arena, AsmBracketExpr{base: mk(p.arena, NAsmBracketExpr, pos), Target: target, Index: idx})
}

func (p *Parser) asmPrimary() Expr {
	tok := p.current()
	switch {
	case tok.Kind == Ident && isAsmRegisterName(tok.Text):
		p.advance()
		return Allocate(p.arena, AsmRegister{base: mk(p.arena, NAsmRegister, tok.Pos), Name: tok.Text})
	case tok.Kind == Ident, tok.Kind == Dollar, tok.Kind == Dot,
		tok.Kind.IsLiteral():
		p.advance()
		return Allocate(p.arena, AsmPrimary{base: mk(p.arena, NAsmPrimary, tok.Pos), Token: tok})
	case tok.Kind == LParen:
		p.advance()
		e := p.parseAsmExpr()
		p.expect(RParen)
		return e
	}
	p.errorf("expected asm operand, found %s", tok.Kind.Name())
	if !tok.Kind.IsGrouping() {
		p.advance()
	}
	return nil
}
