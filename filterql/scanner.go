package filterql

import (
	"fmt"
	"strings"

	"github.com/UnboundID/scim/spec"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokWord   // an operator keyword, an attribute path or a bare literal
	tokString // a single- or double-quoted string literal
)

type token struct {
	kind tokenKind
	text string // for tokString, the already-unescaped literal value
	pos  int
}

// scanner tokenizes a SCIM filter string (§4.E). It knows nothing about
// grammar — it only knows how to split parens, quoted strings and
// whitespace-delimited words, leaving keyword/path disambiguation to the
// parser, the same separation of concerns as
// pkg/v2/crud/expr's op-code scanner feeding a compiler loop.
type scanner struct {
	data []byte
	off  int
}

func newScanner(filter string) *scanner {
	return &scanner{data: []byte(filter)}
}

func (s *scanner) skipSpace() {
	for s.off < len(s.data) && isSpace(s.data[s.off]) {
		s.off++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isWordByte(b byte) bool {
	return b != '(' && b != ')' && !isSpace(b) && b != '\'' && b != '"' && b != 0
}

// next returns the next token, or an InvalidFilter error annotated with
// its byte position (§4.E "Parsing fails with InvalidFilter{position,
// message} on malformed input").
func (s *scanner) next() (token, error) {
	s.skipSpace()

	if s.off >= len(s.data) {
		return token{kind: tokEOF, pos: s.off}, nil
	}

	start := s.off
	switch s.data[s.off] {
	case '(':
		s.off++
		return token{kind: tokLParen, pos: start}, nil
	case ')':
		s.off++
		return token{kind: tokRParen, pos: start}, nil
	case '\'', '"':
		return s.scanQuoted(s.data[s.off])
	default:
		for s.off < len(s.data) && isWordByte(s.data[s.off]) {
			s.off++
		}
		if s.off == start {
			return token{}, invalidFilterf(start, "unexpected character %q", s.data[start])
		}
		return token{kind: tokWord, text: string(s.data[start:s.off]), pos: start}, nil
	}
}

// scanQuoted scans a quoted string literal delimited by quote (either "'"
// or '"'; §4.E defines the single-quoted form, the double-quoted form is
// accepted too since spec.md's own illustrative filters in §8 use it —
// see DESIGN.md Open Question notes).
func (s *scanner) scanQuoted(quote byte) (token, error) {
	start := s.off
	s.off++ // consume opening quote
	var sb strings.Builder
	for {
		if s.off >= len(s.data) {
			return token{}, invalidFilterf(start, "unterminated quoted string")
		}
		c := s.data[s.off]
		if c == quote {
			s.off++
			return token{kind: tokString, text: sb.String(), pos: start}, nil
		}
		if c == '\\' {
			if s.off+1 >= len(s.data) {
				return token{}, invalidFilterf(start, "unterminated escape sequence")
			}
			switch s.data[s.off+1] {
			case quote:
				sb.WriteByte(quote)
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, invalidFilterf(s.off, "unsupported escape sequence '\\%c'", s.data[s.off+1])
			}
			s.off += 2
			continue
		}
		sb.WriteByte(c)
		s.off++
	}
}

func invalidFilterf(pos int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: position %d: %s", spec.ErrInvalidFilter, pos, fmt.Sprintf(format, args...))
}
