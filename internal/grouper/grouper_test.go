package grouper_test

import (
	"testing"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/grouper"
	"github.com/berg-lang/berg/internal/sequencer"
	"github.com/berg-lang/berg/internal/tokenizer"
)

type collector struct {
	tokens []ast.Token
}

func (c *collector) Emit(tok ast.Token) {
	c.tokens = append(c.tokens, tok)
}

func group(t *testing.T, src string) ([]ast.Token, []*diag.Error) {
	t.Helper()
	pool := ast.NewPool()
	numbers := ast.NewLiteralPool()
	raw := ast.NewLiteralPool()
	seq := sequencer.New([]byte(src), pool)
	c := &collector{}
	g := grouper.New(c)
	tk := tokenizer.New(seq, g, pool, numbers, raw)
	tk.Run()
	return c.tokens, g.Errors()
}

func findAll(tokens []ast.Token, kind ast.TokenKind, boundary ast.Boundary) []int {
	var out []int
	for i, tok := range tokens {
		if tok.Kind == kind && tok.Boundary == boundary {
			out = append(out, i)
		}
	}
	return out
}

func TestParenthesesDeltaMatchesClose(t *testing.T) {
	tokens, errs := group(t, "(1)")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	opens := findAll(tokens, ast.TokOpen, ast.BoundaryParentheses)
	if len(opens) != 1 {
		t.Fatalf("expected exactly one Parentheses Open, got %d", len(opens))
	}
	i := opens[0]
	j := i + int(tokens[i].Delta)
	if tokens[j].Kind != ast.TokClose || tokens[j].Boundary != ast.BoundaryParentheses {
		t.Fatalf("Open's delta does not land on its Close: token at %d is %v/%v", j, tokens[j].Kind, tokens[j].Boundary)
	}
}

func TestSingleTokenCompoundTermIsOmitted(t *testing.T) {
	tokens, _ := group(t, "1")
	for _, tok := range tokens {
		if tok.Kind == ast.TokOpen && tok.Boundary == ast.BoundaryCompoundTerm {
			t.Fatalf("expected the lone-literal CompoundTerm wrapper to be omitted, found one")
		}
	}
}

func TestPlusTimesNestsTimesInsidePlus(t *testing.T) {
	tokens, errs := group(t, "1 + 2 * 3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	groups := findAll(tokens, ast.TokOpen, ast.BoundaryPrecedenceGroup)
	if len(groups) != 2 {
		t.Fatalf("expected two precedence groups (+ and *), got %d", len(groups))
	}

	// The '+' group must be the outermost: its Close must come after the
	// '*' group's Close (the '*' group nests inside '+' 's right operand).
	plusOpen, starOpen := groups[0], groups[1]
	if starOpen <= plusOpen {
		t.Fatalf("expected '*' group to open after '+' group, got plusOpen=%d starOpen=%d", plusOpen, starOpen)
	}
	plusClose := plusOpen + int(tokens[plusOpen].Delta)
	starClose := starOpen + int(tokens[starOpen].Delta)
	if !(starOpen > plusOpen && starClose < plusClose) {
		t.Fatalf("expected '*' group (%d..%d) nested inside '+' group (%d..%d)", starOpen, starClose, plusOpen, plusClose)
	}
}

func TestLeftAssociativeMinusChain(t *testing.T) {
	tokens, errs := group(t, "1 - 2 - 3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	groups := findAll(tokens, ast.TokOpen, ast.BoundaryPrecedenceGroup)
	if len(groups) != 2 {
		t.Fatalf("expected two precedence groups for a two-operator chain, got %d", len(groups))
	}
	// Left-associative: the outer group opens first and its Close is the
	// outermost; the inner ("1 - 2") group must be nested in the outer
	// group's LEFT operand, i.e. it closes before the outer group's own
	// infix operator token appears.
	outer, inner := groups[0], groups[1]
	if inner <= outer {
		t.Fatalf("expected the inner '1 - 2' group to open after the outer group, got outer=%d inner=%d", outer, inner)
	}
	innerClose := inner + int(tokens[inner].Delta)
	outerClose := outer + int(tokens[outer].Delta)
	if innerClose >= outerClose {
		t.Fatalf("expected inner group to close before outer group: innerClose=%d outerClose=%d", innerClose, outerClose)
	}
}

func TestUnterminatedParenIsOpenWithoutClose(t *testing.T) {
	_, errs := group(t, "(1")
	found := false
	for _, e := range errs {
		if e.Kind == diag.OpenWithoutClose {
			found = true
		}
	}
	if !found {
		t.Error("expected an OpenWithoutClose diagnostic for an unterminated '('")
	}
}

func TestStrayCloseParenIsCloseWithoutOpen(t *testing.T) {
	_, errs := group(t, ")")
	found := false
	for _, e := range errs {
		if e.Kind == diag.CloseWithoutOpen {
			found = true
		}
	}
	if !found {
		t.Error("expected a CloseWithoutOpen diagnostic for a stray ')'")
	}
}

func TestAssignmentChainIsRightAssociative(t *testing.T) {
	// "a = b = 1" should nest as a = (b = 1): the second '=' group must be
	// nested inside the first '=' group's right operand, not its sibling.
	tokens, errs := group(t, "a = b = 1")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	groups := findAll(tokens, ast.TokOpen, ast.BoundaryPrecedenceGroup)
	if len(groups) != 2 {
		t.Fatalf("expected two precedence groups, got %d", len(groups))
	}
	outer, inner := groups[0], groups[1]
	outerClose := outer + int(tokens[outer].Delta)
	innerClose := inner + int(tokens[inner].Delta)
	if !(inner > outer && innerClose < outerClose) {
		t.Fatalf("expected the second '=' to nest inside the first: outer=%d..%d inner=%d..%d", outer, outerClose, inner, innerClose)
	}
}

func TestSourceBoundaryWrapsWholeStream(t *testing.T) {
	tokens, _ := group(t, "1 + 1")
	if tokens[0].Kind != ast.TokOpen || tokens[0].Boundary != ast.BoundarySource {
		t.Fatalf("first token = %v/%v, want Open/Source", tokens[0].Kind, tokens[0].Boundary)
	}
	last := tokens[len(tokens)-1]
	if last.Kind != ast.TokClose || last.Boundary != ast.BoundarySource {
		t.Fatalf("last token = %v/%v, want Close/Source", last.Kind, last.Boundary)
	}
	delta := int(tokens[0].Delta)
	if 0+delta != len(tokens)-1 {
		t.Errorf("Source Open delta = %d, want %d", delta, len(tokens)-1)
	}
}
