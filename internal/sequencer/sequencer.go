// Package sequencer consumes scanner.Class output into the logical events
// the tokenizer expects: terms (with their raw content), operators (already
// resolved to an interned identifier), space, comments, newlines, open/
// close brackets, separators and eof (spec.md §4.2). It is the
// responsibility the teacher's single lexToken state machine bundled
// together, cut into its own stage here so each concern — byte
// classification, term/operator grouping, synthetic-token insertion — has
// one package.
package sequencer

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/core/invariant"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/scanner"
)

// Kind identifies the shape of a sequencer Event.
type Kind int

const (
	KindIntegerLiteral Kind = iota
	KindRawIdentifier
	KindOperator
	KindOpenParen
	KindCloseParen
	KindOpenCurly
	KindCloseCurly
	KindSeparator
	KindColon
	KindComment
	KindNewline
	KindSpace
	KindUnsupported
	KindInvalidUtf8
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindIntegerLiteral:
		return "IntegerLiteral"
	case KindRawIdentifier:
		return "RawIdentifier"
	case KindOperator:
		return "Operator"
	case KindOpenParen:
		return "OpenParen"
	case KindCloseParen:
		return "CloseParen"
	case KindOpenCurly:
		return "OpenCurly"
	case KindCloseCurly:
		return "CloseCurly"
	case KindSeparator:
		return "Separator"
	case KindColon:
		return "Colon"
	case KindComment:
		return "Comment"
	case KindNewline:
		return "Newline"
	case KindSpace:
		return "Space"
	case KindUnsupported:
		return "Unsupported"
	case KindInvalidUtf8:
		return "InvalidUtf8"
	case KindEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Event is one logical unit handed to the tokenizer. Term events
// (IntegerLiteral, RawIdentifier) and error-term events (Unsupported,
// InvalidUtf8) carry their raw source range in Range; Ident is populated
// for Operator and Separator, where the exact spelling determines which
// built-in identifier (or freshly minted one) the token carries.
type Event struct {
	Kind  Kind
	Range diag.Range
	Ident ast.Identifier
}

// Sequencer drives a scanner.Scanner and groups its byte classes into
// Events.
type Sequencer struct {
	scan *scanner.Scanner
	src  []byte
	pool *ast.Pool
}

// New returns a sequencer over src. pool is used to resolve operator
// spellings (including compound ones like "==", "&&=") to a stable
// identifier, minting a fresh one for any spelling not already reserved or
// seen.
func New(src []byte, pool *ast.Pool) *Sequencer {
	return &Sequencer{scan: scanner.New(src), src: src, pool: pool}
}

// Next returns the next event. Once EOF has been returned, every
// subsequent call returns EOF again.
func (q *Sequencer) Next() Event {
	startPos := q.scan.Pos()
	ev := q.next()
	invariant.Invariant(ev.Range.End >= ev.Range.Start, "event range must not be inverted: %d..%d", ev.Range.Start, ev.Range.End)
	invariant.Invariant(ev.Kind == KindEOF || q.scan.Pos() > startPos, "sequencer must advance on every non-EOF event")
	return ev
}

func (q *Sequencer) next() Event {
	class := q.scan.Peek()

	switch class {
	case scanner.Eof:
		p := q.scan.Pos()
		return Event{Kind: KindEOF, Range: diag.Range{Start: p, End: p}}

	case scanner.Space, scanner.HorizontalWhitespace:
		start, end := q.scan.RunWhileHorizontalWhitespace()
		return Event{Kind: KindSpace, Range: diag.Range{Start: start, End: end}}

	case scanner.Newline, scanner.LineEnding:
		start, end := q.scan.AdvanceLineEnding()
		return Event{Kind: KindNewline, Range: diag.Range{Start: start, End: end}}

	case scanner.Hash:
		start := q.scan.Pos()
		q.scan.Advance() // consume '#'
		_, end := q.scan.RunUntilEndOfLine()
		return Event{Kind: KindComment, Range: diag.Range{Start: start, End: end}}

	case scanner.Digit, scanner.Identifier:
		start, end := q.scan.RunWhileIdentifier()
		kind := KindRawIdentifier
		if class == scanner.Digit {
			kind = KindIntegerLiteral
		}
		return Event{Kind: kind, Range: diag.Range{Start: start, End: end}}

	case scanner.Operator:
		start := q.scan.Pos()
		q.scan.AdvanceWhileClass(scanner.Operator)
		end := q.scan.Pos()
		spelling := string(q.src[start:end])
		id, ok := q.pool.Lookup(spelling)
		if !ok {
			id = q.pool.Intern(spelling)
		}
		return Event{Kind: KindOperator, Range: diag.Range{Start: start, End: end}, Ident: id}

	case scanner.OpenParen:
		start := q.scan.Pos()
		q.scan.Advance()
		return Event{Kind: KindOpenParen, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: ast.IdentLParen}

	case scanner.CloseParen:
		start := q.scan.Pos()
		q.scan.Advance()
		return Event{Kind: KindCloseParen, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: ast.IdentRParen}

	case scanner.OpenCurly:
		start := q.scan.Pos()
		q.scan.Advance()
		return Event{Kind: KindOpenCurly, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: ast.IdentLBrace}

	case scanner.CloseCurly:
		start := q.scan.Pos()
		q.scan.Advance()
		return Event{Kind: KindCloseCurly, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: ast.IdentRBrace}

	case scanner.Separator:
		start := q.scan.Pos()
		b := q.scan.PeekByte()
		q.scan.Advance()
		id := ast.IdentComma
		if b == ';' {
			id = ast.IdentSemicolon
		}
		return Event{Kind: KindSeparator, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: id}

	case scanner.Colon:
		start := q.scan.Pos()
		q.scan.Advance()
		return Event{Kind: KindColon, Range: diag.Range{Start: start, End: q.scan.Pos()}, Ident: ast.IdentColon}

	case scanner.Unsupported:
		start := q.scan.Pos()
		q.scan.AdvanceWhileClass(scanner.Unsupported)
		return Event{Kind: KindUnsupported, Range: diag.Range{Start: start, End: q.scan.Pos()}}

	case scanner.InvalidUtf8:
		start := q.scan.Pos()
		q.scan.AdvanceWhileClass(scanner.InvalidUtf8)
		return Event{Kind: KindInvalidUtf8, Range: diag.Range{Start: start, End: q.scan.Pos()}}

	default:
		p := q.scan.Pos()
		return Event{Kind: KindEOF, Range: diag.Range{Start: p, End: p}}
	}
}

// Text returns the raw source bytes underlying an event's range.
func (q *Sequencer) Text(e Event) string {
	return string(q.src[e.Range.Start:e.Range.End])
}
