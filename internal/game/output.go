package game

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"
)

// maxLineWidth keeps verdict lines readable on an 80 column terminal.
const maxLineWidth = 79

var (
	styleTitle   = color.Style{color.FgMagenta, color.OpBold}
	styleRoom    = color.Style{color.FgCyan, color.OpBold}
	styleClue    = color.Style{color.FgYellow}
	styleNotice  = color.Style{color.FgGray}
	styleWarning = color.Style{color.FgRed}
	styleSuccess = color.Style{color.FgGreen, color.OpBold}
)

// writer is where narration goes. A session without Out stays silent.
func (s *Session) writer() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s *Session) say(a ...any) {
	_, _ = fmt.Fprintln(s.writer(), a...)
}

func (s *Session) sayf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.writer(), format, a...)
}

// paint colors text only when the session is attached to a terminal.
func (s *Session) paint(style color.Style, text string) string {
	if !s.Styled {
		return text
	}
	return style.Sprint(text)
}

// sayWrapped word-wraps text at maxLineWidth runes and paints every line with style. A word longer than a line
// gets a line of its own.
func (s *Session) sayWrapped(style color.Style, text string) {
	var line strings.Builder
	width := 0
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if width > 0 && width+1+n > maxLineWidth {
			s.say(s.paint(style, line.String()))
			line.Reset()
			width = 0
		}
		if width > 0 {
			line.WriteByte(' ')
			width++
		}
		line.WriteString(word)
		width += n
	}
	s.say(s.paint(style, line.String()))
}
