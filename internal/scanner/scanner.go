// Package scanner implements Berg's lowest pipeline stage: a stateful
// cursor over the source buffer that classifies bytes without looking
// backward (spec.md §4.1). It has no notion of tokens, terms or operators —
// that is the sequencer's job, built on top of this package.
package scanner

import "unicode/utf8"

// Class is the character class of the byte (or UTF-8 rune) currently under
// the cursor.
type Class int

const (
	Eof Class = iota
	Digit
	Identifier
	Operator
	OpenParen
	CloseParen
	OpenCurly
	CloseCurly
	Separator // ';' or ','
	Colon
	Hash
	Newline       // '\n'
	LineEnding    // '\r' or '\r\n'
	Space         // ' '
	HorizontalWhitespace // '\t'
	Unsupported   // valid UTF-8 with no assigned meaning
	InvalidUtf8
)

func (c Class) String() string {
	switch c {
	case Eof:
		return "Eof"
	case Digit:
		return "Digit"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case OpenCurly:
		return "OpenCurly"
	case CloseCurly:
		return "CloseCurly"
	case Separator:
		return "Separator"
	case Colon:
		return "Colon"
	case Hash:
		return "Hash"
	case Newline:
		return "Newline"
	case LineEnding:
		return "LineEnding"
	case Space:
		return "Space"
	case HorizontalWhitespace:
		return "HorizontalWhitespace"
	case Unsupported:
		return "Unsupported"
	case InvalidUtf8:
		return "InvalidUtf8"
	default:
		return "Unknown"
	}
}

// classOfASCII classifies every ASCII byte up front, the same array-lookup
// trick as the teacher's isDigit/isIdentPart/isWhitespace tables.
var classOfASCII [128]Class

func init() {
	for b := 0; b < 128; b++ {
		classOfASCII[b] = classifyASCII(byte(b))
	}
}

func classifyASCII(b byte) Class {
	switch {
	case b >= '0' && b <= '9':
		return Digit
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return Identifier
	case b == '+', b == '-', b == '*', b == '/', b == '=', b == '<', b == '>', b == '&', b == '|', b == '!', b == '.':
		return Operator
	case b == '(':
		return OpenParen
	case b == ')':
		return CloseParen
	case b == '{':
		return OpenCurly
	case b == '}':
		return CloseCurly
	case b == ';', b == ',':
		return Separator
	case b == ':':
		return Colon
	case b == '#':
		return Hash
	case b == '\n':
		return Newline
	case b == '\r':
		return LineEnding
	case b == ' ':
		return Space
	case b == '\t':
		return HorizontalWhitespace
	default:
		return Unsupported
	}
}

// Scanner is a stateful cursor over a source buffer. It never looks
// backward: every operation either inspects the byte(s) at the current
// position or advances past them.
type Scanner struct {
	src []byte
	pos uint32
}

// New returns a scanner positioned at the start of src.
func New(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() uint32 {
	return s.pos
}

// AtEOF reports whether the cursor has reached the end of the buffer.
func (s *Scanner) AtEOF() bool {
	return int(s.pos) >= len(s.src)
}

// width returns the byte width of the character class at the current
// position and its class, without advancing. For ASCII bytes this is
// always 1. For non-ASCII, a well-formed UTF-8 sequence is classified
// Unsupported (Berg assigns no meaning to non-ASCII source outside
// comments) and spans its full encoded width; a malformed sequence is
// InvalidUtf8 and spans exactly one byte, so a decoder can resynchronize
// byte by byte.
func (s *Scanner) width() (Class, int) {
	if s.AtEOF() {
		return Eof, 0
	}
	b := s.src[s.pos]
	if b < 128 {
		return classOfASCII[b], 1
	}
	r, size := utf8.DecodeRune(s.src[s.pos:])
	if r == utf8.RuneError && size <= 1 {
		return InvalidUtf8, 1
	}
	return Unsupported, size
}

// Peek returns the character class at the current position without
// consuming it.
func (s *Scanner) Peek() Class {
	c, _ := s.width()
	return c
}

// PeekByte returns the raw byte at the current position, or 0 at EOF.
// Only meaningful for ASCII classes; callers must not use it to inspect
// multi-byte runs.
func (s *Scanner) PeekByte() byte {
	if s.AtEOF() {
		return 0
	}
	return s.src[s.pos]
}

// PeekAt returns the character class n bytes ahead of the current
// position, without consuming anything. Used by the sequencer to
// disambiguate compound operators and CRLF.
func (s *Scanner) PeekAt(n int) Class {
	save := s.pos
	defer func() { s.pos = save }()
	for i := 0; i < n; i++ {
		if s.AtEOF() {
			return Eof
		}
		_, width := s.width()
		s.pos += uint32(width)
	}
	return s.Peek()
}

// Advance consumes the character at the current position (one byte for
// ASCII and invalid UTF-8, the full encoded width for a valid multi-byte
// rune) and returns the class it belonged to.
func (s *Scanner) Advance() Class {
	class, width := s.width()
	if width == 0 {
		return class
	}
	s.pos += uint32(width)
	return class
}

// AdvanceIfClass consumes the current character and returns true if its
// class equals c; otherwise the cursor is left unchanged.
func (s *Scanner) AdvanceIfClass(c Class) bool {
	if s.Peek() != c {
		return false
	}
	s.Advance()
	return true
}

// AdvanceWhileClass consumes characters while their class equals c and
// returns the number of characters (not bytes) consumed.
func (s *Scanner) AdvanceWhileClass(c Class) int {
	n := 0
	for s.Peek() == c {
		s.Advance()
		n++
	}
	return n
}

// RunWhileIdentifier consumes a maximal run of Identifier/Digit characters
// (an identifier continuation may contain digits after its first
// character; the sequencer is responsible for validating the first
// character separately) and returns the consumed byte range.
func (s *Scanner) RunWhileIdentifier() (start, end uint32) {
	start = s.pos
	for {
		class := s.Peek()
		if class != Identifier && class != Digit {
			break
		}
		s.Advance()
	}
	return start, s.pos
}

// RunWhileDigit consumes a maximal run of Digit characters and returns the
// consumed byte range.
func (s *Scanner) RunWhileDigit() (start, end uint32) {
	start = s.pos
	s.AdvanceWhileClass(Digit)
	return start, s.pos
}

// RunWhileHorizontalWhitespace consumes a maximal run of Space and
// HorizontalWhitespace characters and returns the consumed byte range.
func (s *Scanner) RunWhileHorizontalWhitespace() (start, end uint32) {
	start = s.pos
	for {
		class := s.Peek()
		if class != Space && class != HorizontalWhitespace {
			break
		}
		s.Advance()
	}
	return start, s.pos
}

// RunUntilEndOfLine consumes characters up to (but not including) the next
// Newline/LineEnding character or EOF, and returns the consumed byte
// range. Used by comment handling: `#` runs to end of line.
func (s *Scanner) RunUntilEndOfLine() (start, end uint32) {
	start = s.pos
	for {
		class := s.Peek()
		if class == Newline || class == LineEnding || class == Eof {
			break
		}
		s.Advance()
	}
	return start, s.pos
}

// AdvanceLineEnding consumes one line ending: a bare '\n', a bare '\r', or
// a '\r' immediately followed by '\n' (consumed as a single logical
// newline). Returns the consumed byte range.
func (s *Scanner) AdvanceLineEnding() (start, end uint32) {
	start = s.pos
	class := s.Advance()
	if class == LineEnding && s.Peek() == Newline {
		s.Advance()
	}
	return start, s.pos
}
