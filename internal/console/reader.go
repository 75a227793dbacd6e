// Package console reads the player's keys and lines, either from a raw terminal or from a plain stream.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	keyCtrlC     = '\x03'
	keyCtrlD     = '\x04'
	keyBackspace = '\x08'
	keyEscape    = '\x1b'
	keyDelete    = '\x7f'
)

// Reader prompts on out and reads from in. On a terminal it switches to raw mode so that a single key press is
// enough to choose a path; otherwise (headless) it reads whitespace separated keys and whole lines.
type Reader struct {
	in       io.Reader
	out      io.Writer
	buffered *bufio.Reader
	fd       int
	raw      bool
}

// NewReader creates a Reader. Raw mode is used only when headless is false and in is a terminal.
func NewReader(in io.Reader, out io.Writer, headless bool) *Reader {
	r := &Reader{in: in, out: out}
	if f, ok := in.(*os.File); ok && !headless && term.IsTerminal(int(f.Fd())) {
		r.fd = int(f.Fd())
		r.raw = true
		return r
	}
	r.buffered = bufio.NewReader(in)
	return r
}

// IsTerminal reports whether the reader talks to an interactive terminal.
func (r *Reader) IsTerminal() bool {
	return r.raw
}

// ReadKey shows prompt and returns the next non-blank character. It returns io.EOF when input ends or the player
// presses Ctrl-C or Ctrl-D.
func (r *Reader) ReadKey(prompt string) (rune, error) {
	_, _ = fmt.Fprint(r.out, prompt)
	if !r.raw {
		return r.readBufferedKey()
	}
	return r.readRawKey()
}

// ReadLine shows prompt and returns the next non-blank line without leading blanks and the line terminator.
func (r *Reader) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(r.out, prompt)
	if !r.raw {
		return r.readBufferedLine()
	}
	return r.readRawLine(prompt)
}

func (r *Reader) readBufferedKey() (rune, error) {
	for {
		ch, _, err := r.buffered.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(ch) {
			return ch, nil
		}
	}
}

func (r *Reader) readBufferedLine() (string, error) {
	for {
		line, err := r.buffered.ReadString('\n')
		line = strings.TrimLeftFunc(strings.TrimRight(line, "\r\n"), unicode.IsSpace)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (r *Reader) readRawKey() (rune, error) {
	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		// Fall back to buffered reads for the rest of the session.
		r.raw = false
		r.buffered = bufio.NewReader(r.in)
		return r.readBufferedKey()
	}
	defer func() { _ = term.Restore(r.fd, oldState) }()

	for {
		buf := make([]byte, 4)
		n, err := r.in.Read(buf)
		if err != nil || n == 0 {
			_, _ = fmt.Fprint(r.out, "\r\n")
			return 0, io.EOF
		}
		switch buf[0] {
		case keyCtrlC, keyCtrlD:
			_, _ = fmt.Fprint(r.out, "\r\n")
			return 0, io.EOF
		case keyEscape:
			// Arrow keys and friends arrive as escape sequences; ignore them.
			continue
		}
		ch, _ := utf8.DecodeRune(buf[:n])
		if ch == utf8.RuneError || unicode.IsSpace(ch) || unicode.IsControl(ch) {
			continue
		}
		_, _ = fmt.Fprintf(r.out, "%c\r\n", ch)
		return ch, nil
	}
}

func (r *Reader) readRawLine(prompt string) (string, error) {
	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		r.raw = false
		r.buffered = bufio.NewReader(r.in)
		return r.readBufferedLine()
	}
	defer func() { _ = term.Restore(r.fd, oldState) }()

	var lineRunes []rune
	for {
		buf := make([]byte, 4)
		n, err := r.in.Read(buf)
		if err != nil || n == 0 {
			_, _ = fmt.Fprint(r.out, "\r\n")
			return finishLine(lineRunes)
		}
		b := buf[0]

		switch {
		case b == '\r' || b == '\n':
			_, _ = fmt.Fprint(r.out, "\r\n")
			line, err := finishLine(lineRunes)
			if err == nil {
				return line, nil
			}
			lineRunes = nil
			_, _ = fmt.Fprint(r.out, prompt)

		case b == keyCtrlC:
			_, _ = fmt.Fprint(r.out, "\r\n")
			return "", io.EOF

		case b == keyCtrlD:
			_, _ = fmt.Fprint(r.out, "\r\n")
			return finishLine(lineRunes)

		case b == keyDelete || b == keyBackspace:
			if len(lineRunes) > 0 {
				lineRunes = lineRunes[:len(lineRunes)-1]
				_, _ = fmt.Fprint(r.out, "\b \b")
			}

		case b == keyEscape:
			continue

		default:
			if b >= ' ' {
				ch, _ := utf8.DecodeRune(buf[:n])
				if ch != utf8.RuneError {
					lineRunes = append(lineRunes, ch)
					_, _ = fmt.Fprint(r.out, string(ch))
				}
			}
		}
	}
}

// finishLine trims what was typed and reports io.EOF when nothing is left.
func finishLine(lineRunes []rune) (string, error) {
	line := strings.TrimSpace(string(lineRunes))
	if line == "" {
		return "", io.EOF
	}
	return line, nil
}
