package scanner_test

import (
	"testing"

	"github.com/berg-lang/berg/internal/scanner"
)

func TestClassifyBasics(t *testing.T) {
	s := scanner.New([]byte("a1 +("))
	cases := []scanner.Class{
		scanner.Identifier, // a
		scanner.Digit,      // 1
		scanner.Space,      // ' '
		scanner.Operator,   // +
		scanner.OpenParen,  // (
	}
	for i, want := range cases {
		got := s.Peek()
		if got != want {
			t.Fatalf("char %d: Peek() = %v, want %v", i, got, want)
		}
		s.Advance()
	}
	if !s.AtEOF() {
		t.Error("expected EOF after consuming all characters")
	}
	if got := s.Peek(); got != scanner.Eof {
		t.Errorf("Peek() at EOF = %v, want Eof", got)
	}
}

func TestRunWhileIdentifier(t *testing.T) {
	s := scanner.New([]byte("foo123 bar"))
	start, end := s.RunWhileIdentifier()
	if start != 0 || end != 6 {
		t.Errorf("RunWhileIdentifier() = (%d, %d), want (0, 6)", start, end)
	}
	if s.Peek() != scanner.Space {
		t.Errorf("expected cursor to stop at the space, got %v", s.Peek())
	}
}

func TestRunWhileDigit(t *testing.T) {
	s := scanner.New([]byte("42abc"))
	start, end := s.RunWhileDigit()
	if start != 0 || end != 2 {
		t.Errorf("RunWhileDigit() = (%d, %d), want (0, 2)", start, end)
	}
}

func TestRunUntilEndOfLine(t *testing.T) {
	s := scanner.New([]byte("comment text\nnext line"))
	start, end := s.RunUntilEndOfLine()
	if start != 0 || end != 12 {
		t.Errorf("RunUntilEndOfLine() = (%d, %d), want (0, 12)", start, end)
	}
	if s.Peek() != scanner.Newline {
		t.Errorf("expected cursor to stop at the newline, got %v", s.Peek())
	}
}

func TestAdvanceLineEndingCRLF(t *testing.T) {
	s := scanner.New([]byte("\r\nrest"))
	start, end := s.AdvanceLineEnding()
	if start != 0 || end != 2 {
		t.Errorf("AdvanceLineEnding() = (%d, %d), want (0, 2) for CRLF", start, end)
	}
}

func TestAdvanceLineEndingBareCR(t *testing.T) {
	s := scanner.New([]byte("\rx"))
	start, end := s.AdvanceLineEnding()
	if start != 0 || end != 1 {
		t.Errorf("AdvanceLineEnding() = (%d, %d), want (0, 1) for bare CR", start, end)
	}
}

func TestInvalidUtf8AdvancesOneByte(t *testing.T) {
	s := scanner.New([]byte{0xff, 'a'})
	if got := s.Peek(); got != scanner.InvalidUtf8 {
		t.Fatalf("Peek() = %v, want InvalidUtf8", got)
	}
	s.Advance()
	if s.Pos() != 1 {
		t.Errorf("Pos() after invalid byte = %d, want 1", s.Pos())
	}
	if got := s.Peek(); got != scanner.Identifier {
		t.Errorf("Peek() after resync = %v, want Identifier", got)
	}
}

func TestValidMultiByteUtf8IsUnsupported(t *testing.T) {
	s := scanner.New([]byte("é"))
	if got := s.Peek(); got != scanner.Unsupported {
		t.Fatalf("Peek() = %v, want Unsupported", got)
	}
	s.Advance()
	if !s.AtEOF() {
		t.Errorf("expected the full 2-byte rune to be consumed, pos = %d", s.Pos())
	}
}

func TestAdvanceIfClass(t *testing.T) {
	s := scanner.New([]byte(":x"))
	if !s.AdvanceIfClass(scanner.Colon) {
		t.Fatal("AdvanceIfClass(Colon) = false, want true")
	}
	if s.AdvanceIfClass(scanner.Colon) {
		t.Fatal("AdvanceIfClass(Colon) should fail on 'x'")
	}
	if got := s.Peek(); got != scanner.Identifier {
		t.Errorf("cursor should not have advanced past 'x', got %v", got)
	}
}

func TestSeparatorClass(t *testing.T) {
	s := scanner.New([]byte(";,"))
	if got := s.Advance(); got != scanner.Separator {
		t.Errorf("';' classified as %v, want Separator", got)
	}
	if got := s.Advance(); got != scanner.Separator {
		t.Errorf("',' classified as %v, want Separator", got)
	}
}
