package syntax

import "fmt"

// suppressedErrorCap is the bound from spec §4.3: once speculative parsing
// has suppressed more than this many diagnostics, it gives up eagerly so a
// pathological input cannot make lookahead blow up.
const suppressedErrorCap = 500

// Message is one diagnostic event, passed verbatim to the caller's
// onMessage callback (spec §6, "Diagnostic format").
type Message struct {
	FileName string
	Pos      Position
	Text     string
	IsError  bool
}

// String renders the message in the one-line format specified in §6:
// `fileName(line:column)[error|warn]: message`.
func (m Message) String() string {
	kind := "warn"
	if m.IsError {
		kind = "error"
	}
	return fmt.Sprintf("%s(%s)[%s]: %s", m.FileName, m.Pos, kind, m.Text)
}

// Diagnostics is the structured warning/error sink of C3: two visible
// counters plus a separate count of diagnostics produced while speculative
// parsing had them suppressed (spec §4.3).
type Diagnostics struct {
	fileName string
	onMessage func(Message)

	errorCount           int
	warningCount         int
	suppressedErrorCount int

	// suppressDepth is incremented by setBookmark and decremented by
	// goToBookmark/abandonBookmark (spec §4.1); while > 0 every report
	// routes to suppressedErrorCount instead of the callback.
	suppressDepth int

	cap int
}

// NewDiagnostics creates a sink reporting through onMessage, which may be
// nil to discard messages while still tallying the counters.
func NewDiagnostics(fileName string, onMessage func(Message)) *Diagnostics {
	return &Diagnostics{fileName: fileName, onMessage: onMessage, cap: suppressedErrorCap}
}

// SetCap overrides the suppressed-error cap (spec §4.3's bound of 500). A
// non-positive n restores the default.
func (d *Diagnostics) SetCap(n int) {
	if n > 0 {
		d.cap = n
	} else {
		d.cap = suppressedErrorCap
	}
}

// Error records an error-severity diagnostic at pos.
func (d *Diagnostics) Error(pos Position, format string, args ...any) {
	d.report(pos, fmt.Sprintf(format, args...), true)
}

// Warning records a warning-severity diagnostic at pos.
func (d *Diagnostics) Warning(pos Position, format string, args ...any) {
	d.report(pos, fmt.Sprintf(format, args...), false)
}

func (d *Diagnostics) report(pos Position, text string, isError bool) {
	if d.suppressDepth > 0 {
		d.suppressedErrorCount++
		return
	}
	if isError {
		d.errorCount++
	} else {
		d.warningCount++
	}
	if d.onMessage != nil {
		d.onMessage(Message{FileName: d.fileName, Pos: pos, Text: text, IsError: isError})
	}
}

// EnterSuppression increments the suppression depth (spec §4.1 setBookmark).
func (d *Diagnostics) EnterSuppression() { d.suppressDepth++ }

// ExitSuppression decrements the suppression depth (spec §4.1
// goToBookmark/abandonBookmark). Panics on unbalanced use, which would
// indicate a bookmark leak in the parser itself rather than malformed input.
func (d *Diagnostics) ExitSuppression() {
	if d.suppressDepth == 0 {
		panic("syntax: ExitSuppression called without a matching EnterSuppression")
	}
	d.suppressDepth--
}

// Suppressing reports whether diagnostics are currently being suppressed.
func (d *Diagnostics) Suppressing() bool { return d.suppressDepth > 0 }

// OverSuppressedCap reports whether the catastrophic-overflow bound of §4.3
// (500 suppressed diagnostics) has been exceeded. Speculative parse loops
// consult this to bail out eagerly instead of continuing to retry.
func (d *Diagnostics) OverSuppressedCap() bool {
	return d.suppressedErrorCount > d.cap
}

// ErrorCount returns the number of non-suppressed errors reported so far.
func (d *Diagnostics) ErrorCount() int { return d.errorCount }

// WarningCount returns the number of non-suppressed warnings reported so far.
func (d *Diagnostics) WarningCount() int { return d.warningCount }

// SuppressedErrorCount returns the number of diagnostics that were reported
// while suppression was active.
func (d *Diagnostics) SuppressedErrorCount() int { return d.suppressedErrorCount }
