package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// tokenizer is a forward only reader of keywords, names, counts and filenames.
// Every method skips leading white space, newlines included, unless stated otherwise.
type tokenizer struct {
	reader *bufio.Reader
	line   int
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{reader: bufio.NewReader(r), line: 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (tk *tokenizer) peek() (c byte, ok bool) {
	b, err := tk.reader.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (tk *tokenizer) next() (c byte, ok bool) {
	var err error
	if c, err = tk.reader.ReadByte(); err != nil {
		return 0, false
	}
	if c == '\n' {
		tk.line++
	}
	return c, true
}

func (tk *tokenizer) skipSpace() {
	for {
		c, ok := tk.peek()
		if !ok || !isSpace(c) {
			return
		}
		tk.next()
	}
}

// AtEOF is true when nothing but white space is left
func (tk *tokenizer) AtEOF() bool {
	tk.skipSpace()
	_, ok := tk.peek()
	return !ok
}

// SkipComments skips white space and every line starting with a comment marker
func (tk *tokenizer) SkipComments(marker byte) {
	for {
		tk.skipSpace()
		if c, ok := tk.peek(); !ok || c != marker {
			return
		}
		tk.RestOfLine()
	}
}

// MatchOptional consumes lit when it comes next, leaving the input untouched otherwise
func (tk *tokenizer) MatchOptional(lit string) bool {
	tk.skipSpace()
	b, err := tk.reader.Peek(len(lit))
	if err != nil || string(b) != lit {
		return false
	}
	for range lit {
		tk.next()
	}
	return true
}

// Match consumes lit, which must come next
func (tk *tokenizer) Match(lit string) error {
	if !tk.MatchOptional(lit) {
		return fmt.Errorf("expected %q, found %q", lit, tk.lookahead())
	}
	return nil
}

// MatchAlternative consumes the first of the alternatives that comes next and returns
// its index, -1 when none does
func (tk *tokenizer) MatchAlternative(alternatives []string) int {
	for i, lit := range alternatives {
		if tk.MatchOptional(lit) {
			return i
		}
	}
	return -1
}

// Word returns the next white space delimited token
func (tk *tokenizer) Word() (word string, err error) {
	var sb strings.Builder
	tk.skipSpace()
	for {
		c, ok := tk.peek()
		if !ok || isSpace(c) {
			break
		}
		tk.next()
		sb.WriteByte(c)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected end of file")
	}
	return sb.String(), nil
}

// Int returns the next token as a non negative integer
func (tk *tokenizer) Int() (n int, err error) {
	var word string
	if word, err = tk.Word(); err != nil {
		return
	}
	if n, err = strconv.Atoi(word); err != nil || n < 0 {
		return 0, fmt.Errorf("expected a count, found %q", word)
	}
	return
}

// Token returns the trimmed text up to delim, delim is consumed. The token may not span lines.
func (tk *tokenizer) Token(delim byte) (token string, err error) {
	var sb strings.Builder
	tk.skipSpace()
	for {
		c, ok := tk.next()
		if !ok || c == '\n' {
			return "", fmt.Errorf("missing %q after %q", delim, sb.String())
		}
		if c == delim {
			break
		}
		sb.WriteByte(c)
	}
	if token = strings.TrimSpace(sb.String()); token == "" {
		err = fmt.Errorf("empty name before %q", delim)
	}
	return
}

// Filename returns a filename enclosed in quote characters, or the next word when it is not quoted
func (tk *tokenizer) Filename(quote byte) (name string, err error) {
	tk.skipSpace()
	if c, ok := tk.peek(); !ok || c != quote {
		return tk.Word()
	}
	tk.next()
	var sb strings.Builder
	for {
		c, ok := tk.next()
		if !ok || c == '\n' {
			return "", fmt.Errorf("unterminated filename %q", sb.String())
		}
		if c == quote {
			break
		}
		sb.WriteByte(c)
	}
	if sb.Len() == 0 {
		err = fmt.Errorf("empty filename")
	}
	return sb.String(), err
}

// RestOfLine returns what is left of the current line without skipping anything and
// moves to the start of the next line
func (tk *tokenizer) RestOfLine() string {
	var sb strings.Builder
	for {
		c, ok := tk.next()
		if !ok || c == '\n' {
			break
		}
		sb.WriteByte(c)
	}
	return strings.TrimRight(sb.String(), "\r")
}

// lookahead shows the upcoming text for error messages without consuming it
func (tk *tokenizer) lookahead() string {
	b, _ := tk.reader.Peek(16)
	if ind := strings.IndexByte(string(b), '\n'); ind >= 0 {
		b = b[:ind]
	}
	if len(b) == 0 {
		return "end of file"
	}
	return string(b)
}
