package token

import (
	"strings"
	"unicode/utf8"
)

// Scanner is a cursor over an immutable source text.  The cursor is a byte
// offset paired with the rune found at that offset.  Invalid utf-8 bytes are
// scanned one at a time as utf8.RuneError.
type Scanner struct {
	file    string
	text    string
	pos     int // byte offset of c
	c       Rune
	line    int // line number at pos
	col     int // rune column at pos
}

// NewScanner initializes and returns a new Scanner positioned at the start of
// text.
func NewScanner(file string, text string) *Scanner {
	s := &Scanner{
		file: file,
		text: text,
		line: 1,
		col:  1,
	}
	s.decode()
	return s
}

// File returns the name of the scanned source.
func (s *Scanner) File() string {
	return s.file
}

// Len returns the length of the source text in bytes.
func (s *Scanner) Len() int {
	return len(s.text)
}

// Pos returns the byte offset of the cursor.
func (s *Scanner) Pos() int {
	return s.pos
}

// Slice returns the source text between byte offsets start and end.
func (s *Scanner) Slice(start, end int) string {
	return s.text[start:end]
}

// Peek returns the rune at the cursor without consuming it.  Peek returns a
// false second value at the end of the text.
func (s *Scanner) Peek() (rune, bool) {
	if s.c.N == 0 {
		return 0, false
	}
	return s.c.C, true
}

// Peek2 returns the rune following the one at the cursor.  Peek2 returns a
// false second value if the cursor is on the last rune of the text.
func (s *Scanner) Peek2() (rune, bool) {
	if s.c.N == 0 || s.pos+s.c.N >= len(s.text) {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(s.text[s.pos+s.c.N:])
	return c, true
}

// ScanRune consumes the rune at the cursor.  ScanRune returns false if the
// cursor is already at the end of the text.
func (s *Scanner) ScanRune() bool {
	if s.c.N == 0 {
		return false
	}
	if s.c.C == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos += s.c.N
	s.decode()
	return true
}

// ScanWhile consumes the maximal run of runes satisfying fn and returns the
// byte offset of the cursor afterwards.
func (s *Scanner) ScanWhile(fn func(rune) bool) int {
	for s.c.N > 0 && fn(s.c.C) {
		s.ScanRune()
	}
	return s.pos
}

// LocStart returns a Location for the cursor position.  The returned
// Location has a zero width until the caller sets End.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		End:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// LocAt returns a Location spanning the byte offsets start and end.  Unlike
// LocStart, LocAt has to count lines from the beginning of the text.
func (s *Scanner) LocAt(start, end int) *Location {
	head := s.text[:start]
	linePos := strings.LastIndexByte(head, '\n') + 1
	return &Location{
		File: s.file,
		Pos:  start,
		End:  end,
		Line: strings.Count(head, "\n") + 1,
		Col:  utf8.RuneCountInString(head[linePos:]) + 1,
	}
}

func (s *Scanner) decode() {
	if s.pos >= len(s.text) {
		s.c = Rune{}
		return
	}
	c, n := utf8.DecodeRuneInString(s.text[s.pos:])
	s.c = Rune{c, n}
}

// Rune is a decoded rune and its width in bytes.  A zero N marks the end of
// the text.
type Rune struct {
	C rune
	N int
}

