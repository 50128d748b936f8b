package parser

import (
	"fmt"
	"strings"
	"unicode"
)

const eof rune = -1

type scanner struct {
	src   []rune
	lines []string
	off   int
	line  int
	col   int
}

type mark struct{ off, line, col int }

func newScanner(src string) *scanner {
	return &scanner{
		src:   []rune(src),
		lines: strings.Split(src, "\n"),
		line:  1,
		col:   1,
	}
}

func (s *scanner) save() mark     { return mark{s.off, s.line, s.col} }
func (s *scanner) restore(m mark) { s.off, s.line, s.col = m.off, m.line, m.col }
func (s *scanner) pos() Pos       { return Pos{Line: s.line, Column: s.col} }

func (s *scanner) peek() rune {
	if s.off >= len(s.src) {
		return eof
	}
	return s.src[s.off]
}

func (s *scanner) next() rune {
	r := s.peek()
	if r == eof {
		return eof
	}
	s.off++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) skipComment() {
	for r := s.peek(); r != '\n' && r != eof; r = s.peek() {
		s.next()
	}
}

// skipSpace skips whitespace, newlines and comments.
func (s *scanner) skipSpace() {
	for {
		switch r := s.peek(); {
		case r == '#':
			s.skipComment()
		case r != eof && unicode.IsSpace(r):
			s.next()
		default:
			return
		}
	}
}

// skipInlineSpace skips blanks and comments but stops at a newline.
func (s *scanner) skipInlineSpace() {
	for {
		switch r := s.peek(); {
		case r == '#':
			s.skipComment()
		case r == ' ' || r == '\t' || r == '\r':
			s.next()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ident reads an identifier; it returns "" without consuming input when none starts here.
func (s *scanner) ident() string {
	if !isIdentStart(s.peek()) {
		return ""
	}
	start := s.off
	for isIdentPart(s.peek()) {
		s.next()
	}
	return string(s.src[start:s.off])
}

// peekIdent returns the identifier at the cursor without consuming it.
func (s *scanner) peekIdent() string {
	m := s.save()
	id := s.ident()
	s.restore(m)
	return id
}

// word reads a run of non-space runes.
func (s *scanner) word() string {
	start := s.off
	for r := s.peek(); r != eof && !unicode.IsSpace(r); r = s.peek() {
		s.next()
	}
	return string(s.src[start:s.off])
}

// keys reads a key path: non-space runes up to ':'.
func (s *scanner) keys() string {
	start := s.off
	for r := s.peek(); r != eof && r != ':' && !unicode.IsSpace(r); r = s.peek() {
		s.next()
	}
	return string(s.src[start:s.off])
}

func isStringStart(r rune) bool { return r == '"' || r == '!' }

// str reads either "raw" or the delimited form !tag"raw"tag! whose content may
// contain double quotes. No escape sequences are interpreted.
func (s *scanner) str() (string, error) {
	start := s.pos()
	tag := ""
	if s.peek() == '!' {
		s.next()
		b := s.off
		for isIdentPart(s.peek()) {
			s.next()
		}
		tag = string(s.src[b:s.off])
		if s.peek() != '"' {
			return "", s.errorAt(start, "expected '\"' after '!%s'", tag)
		}
		s.next()
		closer := []rune(`"` + tag + "!")
		b = s.off
		for {
			if s.peek() == eof {
				return "", s.errorAt(start, "unterminated string, expected closing %q", string(closer))
			}
			if s.hasPrefix(closer) {
				text := string(s.src[b:s.off])
				for range closer {
					s.next()
				}
				return text, nil
			}
			s.next()
		}
	}
	if s.peek() != '"' {
		return "", s.errorf("expected string")
	}
	s.next()
	b := s.off
	for {
		switch s.peek() {
		case eof:
			return "", s.errorAt(start, "unterminated string")
		case '"':
			text := string(s.src[b:s.off])
			s.next()
			return text, nil
		}
		s.next()
	}
}

func (s *scanner) hasPrefix(p []rune) bool {
	if s.off+len(p) > len(s.src) {
		return false
	}
	for i, r := range p {
		if s.src[s.off+i] != r {
			return false
		}
	}
	return true
}

func (s *scanner) expect(r rune, context string) error {
	if s.peek() != r {
		return s.errorf("expected '%c' %s, found %s", r, context, describe(s.peek()))
	}
	s.next()
	return nil
}

func describe(r rune) string {
	switch {
	case r == eof:
		return "end of file"
	case r == '\n':
		return "end of line"
	}
	return fmt.Sprintf("%q", r)
}

func (s *scanner) errorf(format string, args ...any) *SyntaxError {
	return s.errorAt(s.pos(), format, args...)
}

func (s *scanner) errorAt(p Pos, format string, args ...any) *SyntaxError {
	ctx := ""
	if p.Line-1 < len(s.lines) {
		ctx = strings.TrimRight(s.lines[p.Line-1], "\r")
	}
	return &SyntaxError{
		Line:    p.Line,
		Column:  p.Column,
		Message: fmt.Sprintf(format, args...),
		Context: ctx,
	}
}
