package syntax

import "testing"

func tok(k Kind) Token { return Token{Kind: k} }

func TestCursorAdvanceAndCurrent(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(KwModule), tok(Ident), tok(Semicolon)}, d)

	if !c.currentIs(KwModule) {
		t.Fatal("expected KwModule at start")
	}
	c.advance()
	if !c.currentIs(Ident) {
		t.Fatal("expected Ident after advance")
	}
	if !c.peekIs(Semicolon) {
		t.Fatal("expected Semicolon at peek(1)")
	}
}

func TestCursorExpectAdvancesOnMismatchExceptAnchors(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(Ident), tok(Semicolon)}, d)

	// Expecting Colon while at Ident: mismatch, not an anchor, should advance.
	if _, ok := c.expect(Colon); ok {
		t.Fatal("expected mismatch")
	}
	if !c.currentIs(Semicolon) {
		t.Fatal("cursor should have advanced past the mismatched token")
	}
	if d.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", d.ErrorCount())
	}

	// Now at Semicolon (a recovery anchor): expecting RParen must not advance.
	if _, ok := c.expect(RParen); ok {
		t.Fatal("expected mismatch")
	}
	if !c.currentIs(Semicolon) {
		t.Fatal("cursor must stay on a recovery anchor after a failed expect")
	}
}

func TestCursorBookmarkRestoresPositionAndSuppresses(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(Ident), tok(Semicolon), tok(KwModule)}, d)

	b := c.setBookmark()
	c.advance()
	c.advance()
	if !c.currentIs(KwModule) {
		t.Fatal("expected to have advanced to KwModule")
	}
	// Errors during speculation are suppressed, not published.
	c.expect(RParen)
	if d.ErrorCount() != 0 {
		t.Fatalf("ErrorCount = %d, want 0 while suppressed", d.ErrorCount())
	}
	if d.SuppressedErrorCount() != 1 {
		t.Fatalf("SuppressedErrorCount = %d, want 1", d.SuppressedErrorCount())
	}

	c.goToBookmark(b)
	if !c.currentIs(Ident) {
		t.Fatal("goToBookmark should restore the original position")
	}
	if d.Suppressing() {
		t.Fatal("suppression should be lifted after goToBookmark")
	}
}

func TestCursorAbandonBookmarkKeepsAdvancedPosition(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(Ident), tok(Semicolon)}, d)

	b := c.setBookmark()
	c.advance()
	c.abandonBookmark(b)

	if !c.currentIs(Semicolon) {
		t.Fatal("abandonBookmark should keep the advanced position")
	}
	if d.Suppressing() {
		t.Fatal("suppression should be lifted after abandonBookmark")
	}
}

func TestCursorNestedBookmarksLIFO(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(Ident), tok(Semicolon), tok(KwModule)}, d)

	outer := c.setBookmark()
	c.advance()
	inner := c.setBookmark()
	c.advance()
	if !d.Suppressing() {
		t.Fatal("should still be suppressing inside nested bookmark")
	}
	c.goToBookmark(inner)
	if !d.Suppressing() {
		t.Fatal("outer bookmark should keep suppression active")
	}
	c.goToBookmark(outer)
	if d.Suppressing() {
		t.Fatal("suppression should be fully lifted once all bookmarks resolve")
	}
	if !c.currentIs(Ident) {
		t.Fatal("expected to be back at the very first token")
	}
}

func TestCursorSkipBalancedParens(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	// ( ( ) ) ;
	c := NewCursor([]Token{tok(LParen), tok(LParen), tok(RParen), tok(RParen), tok(Semicolon)}, d)
	if !c.skipParens() {
		t.Fatal("expected skipParens to succeed")
	}
	if !c.currentIs(Semicolon) {
		t.Fatal("cursor should land just past the matched closing paren")
	}
}

func TestCursorPeekPastParens(t *testing.T) {
	d := NewDiagnostics("t.d", nil)
	c := NewCursor([]Token{tok(LParen), tok(Ident), tok(RParen), tok(Dot)}, d)
	if k := c.peekPastParens(); k != Dot {
		t.Fatalf("peekPastParens = %v, want Dot", k)
	}
	if !c.currentIs(LParen) {
		t.Fatal("peekPastParens must not move the cursor")
	}
}
