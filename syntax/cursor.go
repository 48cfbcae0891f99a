package syntax

// Bookmark is an opaque cursor checkpoint returned by setBookmark. Exactly
// one of goToBookmark or abandonBookmark must follow, in LIFO order with any
// nested bookmarks (spec §5).
type Bookmark int

// Cursor is the token stream navigator of C1: an immutable token vector plus
// a current index and the diagnostic-suppression depth that bookmarking
// toggles.
type Cursor struct {
	tokens []Token
	idx    int
	diags  *Diagnostics
}

// NewCursor wraps tokens for navigation, reporting through diags.
func NewCursor(tokens []Token, diags *Diagnostics) *Cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TEOF {
		tokens = append(append([]Token{}, tokens...), Token{Kind: TEOF})
	}
	return &Cursor{tokens: tokens, diags: diags}
}

// current returns the token under the cursor.
func (c *Cursor) current() Token { return c.tokens[c.idx] }

// peek returns the token n positions ahead (peek(1) is the next token after
// current). Past the end of the stream it keeps returning the TEOF token.
func (c *Cursor) peek(n int) Token {
	i := c.idx + n
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1
	}
	if i < 0 {
		i = 0
	}
	return c.tokens[i]
}

// advance consumes the current token and returns it.
func (c *Cursor) advance() Token {
	t := c.current()
	if c.idx < len(c.tokens)-1 {
		c.idx++
	}
	return t
}

// atEnd reports whether the cursor sits on the end-of-stream sentinel.
func (c *Cursor) atEnd() bool { return c.current().Kind == TEOF }

// currentIs reports whether the current token has the given kind.
func (c *Cursor) currentIs(k Kind) bool { return c.current().Kind == k }

// currentIsOneOf reports whether the current token's kind is any of ks.
func (c *Cursor) currentIsOneOf(ks ...Kind) bool {
	cur := c.current().Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

// currentInSet reports whether the current token's kind is in set.
func (c *Cursor) currentInSet(set TokenSet) bool { return set.Contains(c.current().Kind) }

// peekIs reports whether the next token (peek(1)) has the given kind.
func (c *Cursor) peekIs(k Kind) bool { return c.peek(1).Kind == k }

// peekIsOneOf reports whether peek(1)'s kind is any of ks.
func (c *Cursor) peekIsOneOf(ks ...Kind) bool {
	cur := c.peek(1).Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

// startsWith reports whether the token stream from the current position
// matches kinds exactly, in order.
func (c *Cursor) startsWith(kinds ...Kind) bool {
	for i, k := range kinds {
		if c.peek(i).Kind != k {
			return false
		}
	}
	return true
}

// expect consumes the current token if it has kind k; otherwise it reports
// a diagnostic and, unless the current token sits on a recovery anchor
// (spec §4.1: `; ) ] }`), advances one token anyway so the parser cannot
// spin in place. Returns the consumed/observed token and whether it matched.
func (c *Cursor) expect(k Kind) (Token, bool) {
	if c.currentIs(k) {
		return c.advance(), true
	}
	c.diags.Error(c.current().Pos, "expected %s, found %s", k.Name(), c.current().Kind.Name())
	if !c.current().Kind.IsRecoveryAnchor() {
		c.advance()
	}
	return Token{}, false
}

// skipBalanced advances past a balanced region opened by open and closed by
// close, assuming the cursor currently sits on open. Nested occurrences of
// open/close are counted. Returns false (and stops at the current token)
// if the stream ends before the region closes.
func (c *Cursor) skipBalanced(open, close Kind) bool {
	if !c.currentIs(open) {
		return false
	}
	depth := 0
	for {
		switch c.current().Kind {
		case open:
			depth++
		case close:
			depth--
		case TEOF:
			return false
		}
		c.advance()
		if depth == 0 {
			return true
		}
	}
}

func (c *Cursor) skipBraces() bool   { return c.skipBalanced(LBrace, RBrace) }
func (c *Cursor) skipParens() bool   { return c.skipBalanced(LParen, RParen) }
func (c *Cursor) skipBrackets() bool { return c.skipBalanced(LBracket, RBracket) }

// peekPastBalanced returns the kind of the token immediately following a
// balanced open/close region starting at the current token, without moving
// the cursor. If the current token is not open, it returns the current
// token's kind unchanged (there is nothing to skip past).
func (c *Cursor) peekPastBalanced(open, close Kind) Kind {
	if !c.currentIs(open) {
		return c.current().Kind
	}
	depth := 0
	for i := 0; ; i++ {
		k := c.peek(i).Kind
		switch k {
		case open:
			depth++
		case close:
			depth--
		case TEOF:
			return TEOF
		}
		if depth == 0 {
			return c.peek(i + 1).Kind
		}
	}
}

func (c *Cursor) peekPastParens() Kind   { return c.peekPastBalanced(LParen, RParen) }
func (c *Cursor) peekPastBraces() Kind   { return c.peekPastBalanced(LBrace, RBrace) }
func (c *Cursor) peekPastBrackets() Kind { return c.peekPastBalanced(LBracket, RBracket) }

// setBookmark captures the current position and enters a suppressed
// diagnostic scope (spec §4.1, §5).
func (c *Cursor) setBookmark() Bookmark {
	c.diags.EnterSuppression()
	return Bookmark(c.idx)
}

// goToBookmark restores the cursor to b and exits the suppressed scope,
// discarding anything the speculative branch consumed.
func (c *Cursor) goToBookmark(b Bookmark) {
	c.idx = int(b)
	c.diags.ExitSuppression()
}

// abandonBookmark keeps the cursor wherever it advanced to and exits the
// suppressed scope, committing the speculative branch.
func (c *Cursor) abandonBookmark(Bookmark) {
	c.diags.ExitSuppression()
}

// speculationExhausted reports whether the catastrophic-overflow bound has
// been crossed, so a nested speculative parse should give up immediately
// rather than attempt more lookahead (spec §4.3, §7).
func (c *Cursor) speculationExhausted() bool { return c.diags.OverSuppressedCap() }
