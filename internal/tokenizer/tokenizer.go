// Package tokenizer wraps the sequencer and inserts the synthetic tokens
// that make fixity strictly alternate term/operator: Apply, NewlineSequence,
// MissingExpression, and CompoundTerm/Source Open/Close pairs (spec.md
// §4.3). It is grounded directly on
// original_source/berg-compiler/src/parser/tokenizer.rs's Tokenizer type —
// the in_term/prev_was_operator state machine and the
// emit_expression_token/emit_operator_token insertion rules are ported
// almost verbatim, adapted from Rust's trait-dispatched ExpressionToken/
// OperatorToken split to an explicit fixity classification table (see
// canPrefix/canPostfix below) since Go has no equivalent sum-type-per-token
// distinction to lean on.
package tokenizer

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/sequencer"
)

// Sink receives the fully-formed token stream, in source order. The
// grouper is the production Sink; tests may use a slice-collecting one.
type Sink interface {
	Emit(tok ast.Token)
}

// Tokenizer drives a sequencer and emits ast.Token values to a Sink.
type Tokenizer struct {
	seq      *sequencer.Sequencer
	sink     Sink
	pool     *ast.Pool
	numbers  *ast.LiteralPool
	rawTerms *ast.LiteralPool

	inTerm          bool
	prevWasOperator bool
	atLineStart     bool
}

// New returns a tokenizer reading from seq and emitting to sink. pool,
// numbers and rawTerms are the AST's shared interning pools.
func New(seq *sequencer.Sequencer, sink Sink, pool *ast.Pool, numbers, rawTerms *ast.LiteralPool) *Tokenizer {
	return &Tokenizer{
		seq:             seq,
		sink:            sink,
		pool:            pool,
		numbers:         numbers,
		rawTerms:        rawTerms,
		prevWasOperator: true, // the very start of a source expects an expression
		atLineStart:     true,
	}
}

// Run drives the tokenizer to completion, emitting the synthetic Source
// Open before the first real token and the synthetic Source Close after
// the last.
func (t *Tokenizer) Run() {
	t.emitExpressionToken(ast.Token{Kind: ast.TokOpen, Boundary: ast.BoundarySource}, diag.Range{})

	endPos := uint32(0)
	for {
		e := t.seq.Next()
		if e.Kind == sequencer.KindEOF {
			endPos = e.Range.Start
			break
		}
		t.dispatch(e)
	}

	t.closeTerm(endPos)
	t.emitOperatorToken(ast.Token{Kind: ast.TokClose, Boundary: ast.BoundarySource}, diag.Range{Start: endPos, End: endPos})
}

func (t *Tokenizer) dispatch(e sequencer.Event) {
	switch e.Kind {
	case sequencer.KindIntegerLiteral:
		lit := t.numbers.Add(t.seq.Text(e))
		t.onTermToken(ast.Token{Kind: ast.TokIntegerLiteral, Literal: lit}, e.Range)

	case sequencer.KindRawIdentifier:
		text := t.seq.Text(e)
		id, ok := t.pool.Lookup(text)
		if !ok {
			id = t.pool.Intern(text)
		}
		t.onTermToken(ast.Token{Kind: ast.TokRawIdentifier, Ident: id}, e.Range)

	case sequencer.KindOperator:
		t.onOperator(e)

	case sequencer.KindOpenParen:
		t.onOpen(ast.BoundaryParentheses, e.Range)
	case sequencer.KindOpenCurly:
		t.onOpen(ast.BoundaryCurlyBraces, e.Range)
	case sequencer.KindCloseParen:
		t.onClose(ast.BoundaryParentheses, e.Range)
	case sequencer.KindCloseCurly:
		t.onClose(ast.BoundaryCurlyBraces, e.Range)

	case sequencer.KindSeparator:
		t.onSeparator(e)
	case sequencer.KindColon:
		t.onColon(e)

	case sequencer.KindSpace:
		t.closeTerm(e.Range.Start)
	case sequencer.KindComment:
		t.closeTerm(e.Range.Start)
	case sequencer.KindNewline:
		t.closeTerm(e.Range.Start)
		t.atLineStart = true

	case sequencer.KindUnsupported:
		raw := t.rawTerms.Add(t.seq.Text(e))
		t.onTermToken(ast.Token{Kind: ast.TokRawErrorTerm, ErrorKind: diag.UnsupportedCharacters, Literal: raw}, e.Range)
	case sequencer.KindInvalidUtf8:
		raw := t.rawTerms.Add(t.seq.Text(e))
		t.onTermToken(ast.Token{Kind: ast.TokRawErrorTerm, ErrorKind: diag.InvalidUTF8, Literal: raw}, e.Range)
	}
}

// canPrefix reports whether id has a meaningful unary/prefix reading:
// +x, -x, !x, ++x, --x. ':' is handled separately in onColon since it
// arrives from the sequencer as its own event kind, not KindOperator.
func canPrefix(id ast.Identifier) bool {
	switch id {
	case ast.IdentPlus, ast.IdentMinus, ast.IdentNot, ast.IdentPlusOne, ast.IdentMinusOne:
		return true
	default:
		return false
	}
}

// canPostfix reports whether id has a meaningful postfix reading: x++, x--.
func canPostfix(id ast.Identifier) bool {
	switch id {
	case ast.IdentPlusOne, ast.IdentMinusOne:
		return true
	default:
		return false
	}
}

func isAssignment(id ast.Identifier) bool {
	switch id {
	case ast.IdentAssign, ast.IdentPlusAssign, ast.IdentMinusAssign, ast.IdentStarAssign, ast.IdentSlashAssign, ast.IdentAndAssign, ast.IdentOrAssign:
		return true
	default:
		return false
	}
}

func (t *Tokenizer) onOperator(e sequencer.Event) {
	if t.prevWasOperator && canPrefix(e.Ident) {
		t.onTermToken(ast.Token{Kind: ast.TokPrefixOperator, Ident: e.Ident}, e.Range)
		return
	}
	if !t.prevWasOperator && canPostfix(e.Ident) {
		t.onTermOperatorToken(ast.Token{Kind: ast.TokPostfixOperator, Ident: e.Ident}, e.Range)
		return
	}
	kind := ast.TokInfixOperator
	if isAssignment(e.Ident) {
		kind = ast.TokInfixAssignment
	}
	t.onTermOperatorToken(ast.Token{Kind: kind, Ident: e.Ident}, e.Range)
}

func (t *Tokenizer) onSeparator(e sequencer.Event) {
	t.closeTerm(e.Range.Start)
	t.emitOperatorToken(ast.Token{Kind: ast.TokInfixOperator, Ident: e.Ident}, e.Range)
}

// onColon handles ':', whose role depends on context: at the start of an
// expression it is a declaration-target marker (a prefix operator, as in
// `:x = 1`); after an expression it annotates/declares an existing field
// (an infix operator, as in `x: 1`) and — like the other separators —
// closes any open term rather than reopening one.
func (t *Tokenizer) onColon(e sequencer.Event) {
	if t.prevWasOperator {
		t.onTermToken(ast.Token{Kind: ast.TokPrefixOperator, Ident: ast.IdentColon}, e.Range)
		return
	}
	t.closeTerm(e.Range.Start)
	t.emitOperatorToken(ast.Token{Kind: ast.TokInfixOperator, Ident: ast.IdentColon}, e.Range)
}

// onTermToken signifies the token is inside a compound term with no
// surrounding whitespace; it opens a term if one hasn't started.
func (t *Tokenizer) onTermToken(tok ast.Token, r diag.Range) {
	t.openTerm(r.Start)
	t.emitExpressionToken(tok, r)
}

// onTermOperatorToken emits an infix or postfix operator. Inside a
// no-space run it stays part of the open compound term; standing alone
// between spaces it opens no term of its own.
func (t *Tokenizer) onTermOperatorToken(tok ast.Token, r diag.Range) {
	t.emitOperatorToken(tok, r)
}

func (t *Tokenizer) onOpen(boundary ast.Boundary, r diag.Range) {
	t.openTerm(r.Start)
	t.emitExpressionToken(ast.Token{Kind: ast.TokOpen, Boundary: boundary}, r)
	t.inTerm = false
}

func (t *Tokenizer) onClose(boundary ast.Boundary, r diag.Range) {
	t.closeTerm(r.Start)
	t.emitOperatorToken(ast.Token{Kind: ast.TokClose, Boundary: boundary}, r)
	t.inTerm = true
}

func (t *Tokenizer) openTerm(at uint32) {
	if !t.inTerm {
		t.emitExpressionToken(ast.Token{Kind: ast.TokOpen, Boundary: ast.BoundaryCompoundTerm}, diag.Range{Start: at, End: at})
		t.inTerm = true
	}
}

func (t *Tokenizer) closeTerm(at uint32) {
	if t.inTerm {
		t.inTerm = false
		t.emitOperatorToken(ast.Token{Kind: ast.TokClose, Boundary: ast.BoundaryCompoundTerm}, diag.Range{Start: at, End: at})
	}
}

// emitExpressionToken inserts Apply or NewlineSequence before tok if an
// expression wasn't already expected, then forwards tok to the sink.
func (t *Tokenizer) emitExpressionToken(tok ast.Token, r diag.Range) {
	if !t.prevWasOperator {
		if t.atLineStart {
			t.emitOperatorToken(ast.Token{Kind: ast.TokNewlineSequence, Ident: ast.IdentNewlineSequence}, diag.Range{Start: r.Start, End: r.Start})
		} else {
			t.emitOperatorToken(ast.Token{Kind: ast.TokApply, Ident: ast.IdentApply}, diag.Range{Start: r.Start, End: r.Start})
		}
	}
	tok.Range = r
	t.sink.Emit(tok)
	t.prevWasOperator = tok.Kind.Fixity().HasRightOperand()
	t.atLineStart = false
}

// emitOperatorToken inserts MissingExpression before tok if an operand was
// expected but not supplied, then forwards tok to the sink.
func (t *Tokenizer) emitOperatorToken(tok ast.Token, r diag.Range) {
	if t.prevWasOperator {
		t.emitExpressionToken(ast.Token{Kind: ast.TokMissingExpression}, diag.Range{Start: r.Start, End: r.Start})
	}
	tok.Range = r
	t.sink.Emit(tok)
	t.prevWasOperator = tok.Kind.Fixity().HasRightOperand()
	t.atLineStart = false
}
