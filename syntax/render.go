package syntax

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/runenames"
)

// RenderCaret formats a one-line "source line, caret pointing at the
// diagnostic's column" pair the way a terminal-facing error reporter does,
// generalized from the teacher's grapheme-counting string primitives
// (library/foundations/str.go's uniseg.NewGraphemes usage) to advancing a
// caret by grapheme cluster rather than by byte or rune, so combining marks
// and multi-rune emoji in source text don't throw the caret off.
func RenderCaret(line string, m Message) string {
	col := m.Pos.Column
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteByte('\n')

	gr := uniseg.NewGraphemes(line)
	count := 0
	for count < col-1 && gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		count++
	}
	b.WriteByte('^')
	return b.String()
}

// DescribeInvalidToken names an unrecognized byte/rune for a diagnostic
// message, the way the teacher's GetScript leans on runenames.Name to
// describe a character instead of printing its raw codepoint. Used by the
// parser when it reports an Invalid token it cannot otherwise classify.
func DescribeInvalidToken(text string) string {
	if text == "" {
		return "empty token"
	}
	r := []rune(text)[0]
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("unrecognized character U+%04X", r)
	}
	return fmt.Sprintf("unrecognized character %s (U+%04X)", name, r)
}
