// Package grouper consumes a tokenizer's alternating term/operator stream
// and turns it into a properly nested boundary structure (spec.md §4.4): it
// matches every explicit Open against its Close, computes the token-index
// delta between them, and inserts synthetic PrecedenceGroup boundaries so
// that a tighter-binding infix operator ends up nested inside a looser one
// rather than sitting as its sibling. A CompoundTerm boundary that ends up
// wrapping exactly one token is unwrapped again, since the tokenizer opens
// one around every space-delimited term (a lone `1` included) and most of
// those are uninteresting once the surrounding whitespace has done its job
// of separating terms.
//
// The matching/reduction algorithm is an operator-precedence (shunting
// yard) reduction running once per explicit boundary, generalized from the
// Open/Close/Token event emission in a recursive-descent parser's
// start/finish/token helpers: instead of building a pointer tree, each
// reduction splices a flat, self-contained token run (already carrying its
// own Open/Close delta) back into the enclosing boundary's pending operand
// list.
package grouper

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/core/invariant"
	"github.com/berg-lang/berg/diag"
)

// Sink receives the grouped token stream, in source order. The binder is
// the production Sink; tests may use a slice-collecting one.
type Sink interface {
	Emit(tok ast.Token)
}

type opEntry struct {
	tok  ast.Token
	prec ast.Precedence
}

// frame holds the in-progress shunting-yard state for one open boundary:
// operands reduced so far, operators still waiting for their right operand,
// and any prefix operators waiting for the term they attach to.
type frame struct {
	boundary ast.Boundary
	openTok  ast.Token
	operands [][]ast.Token
	ops      []opEntry
	prefix   []ast.Token
}

// Grouper matches boundaries and inserts precedence groups, forwarding the
// finished token stream to a downstream Sink once the outermost Source
// boundary closes.
type Grouper struct {
	sink   Sink
	frames []*frame
	errors []*diag.Error
}

// New returns a grouper that forwards its finished stream to sink.
func New(sink Sink) *Grouper {
	return &Grouper{sink: sink}
}

// Errors returns the boundary-balance diagnostics collected while grouping:
// OpenWithoutClose for a boundary the source never closed, CloseWithoutOpen
// for a closing token with nothing open to match.
func (g *Grouper) Errors() []*diag.Error {
	return g.errors
}

// Emit accepts one token from the tokenizer. It satisfies tokenizer.Sink by
// structural typing; the two packages do not import each other.
func (g *Grouper) Emit(tok ast.Token) {
	switch tok.Kind {
	case ast.TokOpen:
		g.pushFrame(tok)
	case ast.TokClose, ast.TokCloseBlock:
		g.handleClose(tok)
	default:
		g.dispatchTerm(g.top(), tok)
	}
}

func (g *Grouper) top() *frame {
	return g.frames[len(g.frames)-1]
}

func (g *Grouper) pushFrame(tok ast.Token) {
	g.frames = append(g.frames, &frame{boundary: tok.Boundary, openTok: tok})
}

// dispatchTerm routes one non-boundary token into f's shunting-yard state.
func (g *Grouper) dispatchTerm(f *frame, tok ast.Token) {
	switch tok.Kind {
	case ast.TokPrefixOperator:
		f.prefix = append(f.prefix, tok)
	case ast.TokPostfixOperator:
		g.attachPostfix(f, tok)
	case ast.TokInfixOperator, ast.TokInfixAssignment, ast.TokApply, ast.TokNewlineSequence:
		g.handleInfix(f, tok)
	default:
		// Term-fixity: IntegerLiteral, RawIdentifier, ErrorTerm,
		// RawErrorTerm, MissingExpression (FieldReference does not appear
		// until the binder runs).
		g.pushOperand(f, tok)
	}
}

func (g *Grouper) attachPostfix(f *frame, tok ast.Token) {
	if len(f.operands) == 0 {
		f.operands = append(f.operands, []ast.Token{tok})
		return
	}
	last := f.operands[len(f.operands)-1]
	f.operands[len(f.operands)-1] = append(last, tok)
}

func (g *Grouper) pushOperand(f *frame, tok ast.Token) {
	g.pushSegment(f, []ast.Token{tok})
}

// pushSegment adds a fully-formed operand (a bare token, or an already
// bracketed sub-boundary) to f, gluing on any prefix operators still
// waiting for their operand.
func (g *Grouper) pushSegment(f *frame, seg []ast.Token) {
	if len(f.prefix) > 0 {
		combined := make([]ast.Token, 0, len(f.prefix)+len(seg))
		combined = append(combined, f.prefix...)
		combined = append(combined, seg...)
		f.prefix = nil
		f.operands = append(f.operands, combined)
		return
	}
	f.operands = append(f.operands, seg)
}

// isRightAssociative reports the two precedence tiers that bind right to
// left: a chain of assignments or declarations nests the later ones inside
// the earlier one's right operand instead of reducing immediately.
func isRightAssociative(p ast.Precedence) bool {
	return p == ast.PrecedenceAssign || p == ast.PrecedenceColonDeclaration
}

func (g *Grouper) handleInfix(f *frame, tok ast.Token) {
	prec := ast.PrecedenceOf(tok.Ident)
	for len(f.ops) > 0 {
		top := f.ops[len(f.ops)-1]
		if top.prec > prec || (top.prec == prec && !isRightAssociative(prec)) {
			reduceOneIn(f)
			continue
		}
		break
	}
	f.ops = append(f.ops, opEntry{tok: tok, prec: prec})
}

// reduceOneIn pops the most recently pending operator in f along with its
// two operands and replaces them with one PrecedenceGroup-wrapped operand.
func reduceOneIn(f *frame) {
	n := len(f.ops)
	op := f.ops[n-1]
	f.ops = f.ops[:n-1]

	m := len(f.operands)
	if m < 2 {
		return
	}
	right := f.operands[m-1]
	left := f.operands[m-2]
	f.operands = f.operands[:m-2]
	f.operands = append(f.operands, wrapGroup(left, op.tok, right))
}

// wrapGroup builds a self-contained PrecedenceGroup segment: synthetic
// Open, the left operand, the operator, the right operand, synthetic
// Close. Both boundary tokens get their final Delta immediately since the
// segment's length is already known.
func wrapGroup(left []ast.Token, op ast.Token, right []ast.Token) []ast.Token {
	start, end := op.Range.Start, op.Range.End
	if len(left) > 0 {
		start = left[0].Range.Start
	}
	if len(right) > 0 {
		end = right[len(right)-1].Range.End
	}

	seg := make([]ast.Token, 0, len(left)+len(right)+3)
	seg = append(seg, ast.Token{Kind: ast.TokOpen, Boundary: ast.BoundaryPrecedenceGroup, Range: diag.Range{Start: start, End: start}})
	seg = append(seg, left...)
	seg = append(seg, op)
	seg = append(seg, right...)
	seg = append(seg, ast.Token{Kind: ast.TokClose, Boundary: ast.BoundaryPrecedenceGroup, Range: diag.Range{Start: end, End: end}})

	delta := int32(len(seg) - 1)
	seg[0].Delta = delta
	seg[len(seg)-1].Delta = delta
	return seg
}

func (g *Grouper) handleClose(tok ast.Token) {
	if tok.Boundary == ast.BoundarySource {
		g.finishDocument(tok)
		return
	}
	if len(g.frames) == 0 {
		g.recordError(diag.CloseWithoutOpen, tok.Range, "closing boundary with no matching open")
		return
	}

	top := g.frames[len(g.frames)-1]
	if top.boundary != tok.Boundary {
		tok.HasError = true
		tok.ErrorKind = diag.CloseWithoutOpen
		g.recordError(diag.CloseWithoutOpen, tok.Range, "closing boundary with no matching open")
		g.pushOperand(top, tok)
		return
	}

	g.frames = g.frames[:len(g.frames)-1]
	seg := g.finishFrame(top, tok)
	invariant.Invariant(len(g.frames) > 0, "closing a non-source boundary must leave a parent frame on the stack")
	parent := g.frames[len(g.frames)-1]
	g.attachToParent(parent, top.boundary, seg)
}

// attachToParent splices a just-closed boundary's content into its parent
// frame: a single-token CompoundTerm is unwrapped and re-dispatched as if
// it had arrived directly (so a lone term such as `1` wrapped by
// whitespace takes part in the parent's precedence reduction as a plain
// operand); anything else is pushed as one opaque operand.
func (g *Grouper) attachToParent(parent *frame, poppedBoundary ast.Boundary, seg []ast.Token) {
	switch {
	case len(seg) == 0:
		return
	case poppedBoundary == ast.BoundaryCompoundTerm && len(seg) == 1:
		g.dispatchTerm(parent, seg[0])
	default:
		g.pushSegment(parent, seg)
	}
}

// finishFrame reduces any operators still pending in f, then wraps the
// result in f's own boundary unless f is a CompoundTerm with at most one
// child, in which case the wrapper is dropped.
func (g *Grouper) finishFrame(f *frame, closeTok ast.Token) []ast.Token {
	for len(f.ops) > 0 {
		reduceOneIn(f)
	}

	var content []ast.Token
	switch len(f.operands) {
	case 0:
	case 1:
		content = f.operands[0]
	default:
		// Only reachable if a boundary closed with unreduced sibling
		// operands (shouldn't happen given the tokenizer's fixity
		// alternation); concatenate in order rather than drop content.
		for _, seg := range f.operands {
			content = append(content, seg...)
		}
	}

	if f.boundary == ast.BoundaryCompoundTerm && len(content) <= 1 {
		return content
	}

	seg := make([]ast.Token, 0, len(content)+2)
	seg = append(seg, f.openTok)
	seg = append(seg, content...)
	seg = append(seg, closeTok)

	delta := int32(len(seg) - 1)
	invariant.Invariant(delta >= 1, "a closed boundary's Open/Close delta must span at least the pair itself, got %d", delta)
	seg[0].Delta = delta
	seg[len(seg)-1].Delta = delta
	return seg
}

// finishDocument handles the synthetic Source Close that ends every token
// stream. Any boundary still open at this point was never closed in the
// source; it is force-closed and marked OpenWithoutClose so the rest of
// the pipeline still sees a well-formed tree.
func (g *Grouper) finishDocument(sourceClose ast.Token) {
	for len(g.frames) > 1 {
		f := g.frames[len(g.frames)-1]
		g.frames = g.frames[:len(g.frames)-1]

		g.recordError(diag.OpenWithoutClose, f.openTok.Range, "boundary never closed")
		f.openTok.HasError = true
		synthClose := ast.Token{
			Kind:      ast.TokClose,
			Boundary:  f.boundary,
			Range:     diag.Range{Start: sourceClose.Range.Start, End: sourceClose.Range.Start},
			HasError:  true,
			ErrorKind: diag.OpenWithoutClose,
		}
		seg := g.finishFrame(f, synthClose)
		parent := g.frames[len(g.frames)-1]
		g.attachToParent(parent, f.boundary, seg)
	}

	root := g.frames[0]
	g.frames = nil
	g.flush(g.finishFrame(root, sourceClose))
}

func (g *Grouper) flush(tokens []ast.Token) {
	for _, t := range tokens {
		g.sink.Emit(t)
	}
}

func (g *Grouper) recordError(kind diag.Kind, r diag.Range, msg string) {
	g.errors = append(g.errors, diag.New(kind, r, "%s", msg))
}
