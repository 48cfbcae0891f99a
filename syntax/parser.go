package syntax

// Options configures the handful of behaviors spec §4.7/§4.3/§9 call out as
// implementation choices rather than fixed grammar: whether a parsed
// function body's internal nodes are retained or dropped, and the
// suppressed-error cap speculative parsing enforces.
type Options struct {
	// MinimizeFunctionBodies, when true (the default — spec §4.7's
	// "default mode"), discards a successfully brace-matched function
	// body's internal statement tree and keeps only the HadBody flag.
	MinimizeFunctionBodies bool
	// MaxSuppressedErrors overrides the §4.3 catastrophic-overflow bound
	// (500) if non-zero.
	MaxSuppressedErrors int
}

// DefaultOptions returns the spec's default behavior: minimized function
// bodies, the standard 500-error speculative cap.
func DefaultOptions() Options {
	return Options{MinimizeFunctionBodies: true}
}

// Parser threads the token cursor (C1), node arena (C2), and diagnostic
// sink (C3) through every grammar-level parse function (C4–C10). It is not
// safe for concurrent use by multiple goroutines during a single parse
// (spec §5).
type Parser struct {
	cur      *Cursor
	arena    *Arena
	diags    *Diagnostics
	fileName string
	opts     Options

	// depth guards against unbounded recursion on deeply nested
	// expressions/types, the same role MaxDepth plays in the teacher.
	depth int

	// assocArrayMemo memoizes isAssociativeArrayLiteral by token index
	// (spec §4.4).
	assocArrayMemo map[int]bool

	// pendingSupplemental holds the last doc-comment copied down into a
	// conditional-compilation branch's children (spec §4.7 supplemental
	// comment), set by parseConditionalDecl and consumed by every
	// declaration parsed inside the true branch.
	pendingSupplemental string
}

// maxParseDepth bounds expression/type/statement recursion. Unlike the
// speculative-error cap (which bounds backtracking cost), this bounds plain
// recursive descent on pathologically nested input.
const maxParseDepth = 500

func newParser(tokens []Token, fileName string, arena *Arena, diags *Diagnostics, opts Options) *Parser {
	diags.SetCap(opts.MaxSuppressedErrors)
	return &Parser{
		cur:      NewCursor(tokens, diags),
		arena:    arena,
		diags:    diags,
		fileName: fileName,
		opts:     opts,
	}
}

// Cursor passthroughs used pervasively by every component.

func (p *Parser) current() Token                    { return p.cur.current() }
func (p *Parser) currentKind() Kind                  { return p.cur.current().Kind }
func (p *Parser) pos() Position                      { return p.cur.current().Pos }
func (p *Parser) peek(n int) Token                   { return p.cur.peek(n) }
func (p *Parser) advance() Token                     { return p.cur.advance() }
func (p *Parser) atEnd() bool                        { return p.cur.atEnd() }
func (p *Parser) at(k Kind) bool                     { return p.cur.currentIs(k) }
func (p *Parser) atOneOf(ks ...Kind) bool            { return p.cur.currentIsOneOf(ks...) }
func (p *Parser) atSet(s TokenSet) bool              { return p.cur.currentInSet(s) }
func (p *Parser) peekIs(k Kind) bool                 { return p.cur.peekIs(k) }
func (p *Parser) peekIsOneOf(ks ...Kind) bool        { return p.cur.peekIsOneOf(ks...) }
func (p *Parser) startsWith(ks ...Kind) bool         { return p.cur.startsWith(ks...) }
func (p *Parser) expect(k Kind) (Token, bool)        { return p.cur.expect(k) }
func (p *Parser) skipParens() bool                   { return p.cur.skipParens() }
func (p *Parser) skipBraces() bool                   { return p.cur.skipBraces() }
func (p *Parser) skipBrackets() bool                 { return p.cur.skipBrackets() }
func (p *Parser) peekPastParens() Kind               { return p.cur.peekPastParens() }
func (p *Parser) peekPastBraces() Kind               { return p.cur.peekPastBraces() }
func (p *Parser) peekPastBrackets() Kind             { return p.cur.peekPastBrackets() }
func (p *Parser) setBookmark() Bookmark              { return p.cur.setBookmark() }
func (p *Parser) goToBookmark(b Bookmark)            { p.cur.goToBookmark(b) }
func (p *Parser) abandonBookmark(b Bookmark)         { p.cur.abandonBookmark(b) }
func (p *Parser) speculationExhausted() bool         { return p.cur.speculationExhausted() }

// eatIf advances and returns true if the current token has kind k.
func (p *Parser) eatIf(k Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// takeComment reads the doc-comment pending on the current (not yet
// consumed) token. Every declaration-parsing entry point calls this exactly
// once, at the point it commits to being a declaration, which is what
// guarantees the "no comment claimed twice" invariant of spec §3: the
// comment lives on one specific token, read by the one production that
// consumes that token first.
func (p *Parser) takeComment() string {
	return p.current().DocComment
}

// errorf reports a parse-time error at the current token's position.
func (p *Parser) errorf(format string, args ...any) {
	p.diags.Error(p.pos(), format, args...)
}

// warnf reports a parse-time warning at the current token's position.
func (p *Parser) warnf(format string, args ...any) {
	p.diags.Warning(p.pos(), format, args...)
}

// enterDepth increases the recursion guard, returning false (and reporting
// an error) if the bound was already reached.
func (p *Parser) enterDepth() bool {
	if p.depth >= maxParseDepth {
		p.errorf("maximum parsing depth exceeded")
		return false
	}
	p.depth++
	return true
}

func (p *Parser) exitDepth() { p.depth-- }
