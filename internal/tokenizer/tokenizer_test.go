package tokenizer_test

import (
	"testing"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/internal/sequencer"
	"github.com/berg-lang/berg/internal/tokenizer"
)

type collector struct {
	tokens []ast.Token
}

func (c *collector) Emit(tok ast.Token) {
	c.tokens = append(c.tokens, tok)
}

func tokenize(t *testing.T, src string) ([]ast.Token, *ast.Pool, *ast.LiteralPool) {
	t.Helper()
	pool := ast.NewPool()
	numbers := ast.NewLiteralPool()
	raw := ast.NewLiteralPool()
	seq := sequencer.New([]byte(src), pool)
	c := &collector{}
	tk := tokenizer.New(seq, c, pool, numbers, raw)
	tk.Run()
	return c.tokens, pool, numbers
}

func kinds(tokens []ast.Token) []ast.TokenKind {
	out := make([]ast.TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestOnePlusOneAlternatesFixity(t *testing.T) {
	tokens, _, _ := tokenize(t, "1 + 1")
	// Source Open, CompoundTerm Open, 1, CompoundTerm Close, +,
	// CompoundTerm Open, 1, CompoundTerm Close, Source Close
	var fixities []ast.Fixity
	for _, tok := range tokens {
		fixities = append(fixities, tok.Kind.Fixity())
	}
	for i := 1; i < len(fixities); i++ {
		left, right := fixities[i-1], fixities[i]
		if left.HasRightOperand() != right.IsExpressionFixity() {
			t.Fatalf("fixity does not alternate at %d: %v followed by %v", i, left, right)
		}
	}
}

func TestSourceOpenAndClosePresent(t *testing.T) {
	tokens, _, _ := tokenize(t, "1")
	if len(tokens) == 0 {
		t.Fatal("no tokens produced")
	}
	first := tokens[0]
	last := tokens[len(tokens)-1]
	if first.Kind != ast.TokOpen || first.Boundary != ast.BoundarySource {
		t.Errorf("first token = %v/%v, want Open/Source", first.Kind, first.Boundary)
	}
	if last.Kind != ast.TokClose || last.Boundary != ast.BoundarySource {
		t.Errorf("last token = %v/%v, want Close/Source", last.Kind, last.Boundary)
	}
}

func TestLeadingOperatorInsertsMissingExpression(t *testing.T) {
	tokens, _, _ := tokenize(t, "* 1")
	found := false
	for _, tok := range tokens {
		if tok.Kind == ast.TokMissingExpression {
			found = true
		}
	}
	if !found {
		t.Error("expected a MissingExpression token before a leading non-prefixable operator")
	}
}

func TestUnaryMinusIsPrefix(t *testing.T) {
	tokens, _, _ := tokenize(t, "-1")
	var gotPrefix bool
	for _, tok := range tokens {
		if tok.Kind == ast.TokPrefixOperator && tok.Ident == ast.IdentMinus {
			gotPrefix = true
		}
	}
	if !gotPrefix {
		t.Error("expected '-1' to tokenize '-' as a prefix operator")
	}
}

func TestPostfixIncrement(t *testing.T) {
	tokens, _, _ := tokenize(t, "x++")
	var gotPostfix bool
	for _, tok := range tokens {
		if tok.Kind == ast.TokPostfixOperator && tok.Ident == ast.IdentPlusOne {
			gotPostfix = true
		}
	}
	if !gotPostfix {
		t.Error("expected 'x++' to tokenize '++' as a postfix operator")
	}
}

func TestTwoTermsOnSameLineInsertsApply(t *testing.T) {
	tokens, _, _ := tokenize(t, "foo bar")
	var gotApply bool
	for _, tok := range tokens {
		if tok.Kind == ast.TokApply {
			gotApply = true
		}
	}
	if !gotApply {
		t.Error("expected an Apply token between two adjacent terms on one line")
	}
}

func TestTwoTermsOnSeparateLinesInsertsNewlineSequence(t *testing.T) {
	tokens, _, _ := tokenize(t, "foo\nbar")
	var gotNewlineSeq bool
	for _, tok := range tokens {
		if tok.Kind == ast.TokNewlineSequence {
			gotNewlineSeq = true
		}
	}
	if !gotNewlineSeq {
		t.Error("expected a NewlineSequence token between two terms on separate lines")
	}
}

func TestCompoundTermWrapsNoSpaceRun(t *testing.T) {
	tokens, _, _ := tokenize(t, "1+1")
	var opens, closes int
	for _, tok := range tokens {
		if tok.Kind == ast.TokOpen && tok.Boundary == ast.BoundaryCompoundTerm {
			opens++
		}
		if tok.Kind == ast.TokClose && tok.Boundary == ast.BoundaryCompoundTerm {
			closes++
		}
	}
	if opens != 1 || closes != 1 {
		t.Errorf("opens=%d closes=%d, want 1 and 1 for a single no-space run", opens, closes)
	}
}

func TestParenthesesOpenClose(t *testing.T) {
	tokens, _, _ := tokenize(t, "(1)")
	if kinds(tokens)[1] != ast.TokOpen {
		t.Fatalf("expected second token to be Open, got %v", tokens[1].Kind)
	}
	foundParenClose := false
	for _, tok := range tokens {
		if tok.Kind == ast.TokClose && tok.Boundary == ast.BoundaryParentheses {
			foundParenClose = true
		}
	}
	if !foundParenClose {
		t.Error("expected a Parentheses Close token")
	}
}

func TestAssignmentOperatorKind(t *testing.T) {
	tokens, _, _ := tokenize(t, "x = 1")
	found := false
	for _, tok := range tokens {
		if tok.Kind == ast.TokInfixAssignment && tok.Ident == ast.IdentAssign {
			found = true
		}
	}
	if !found {
		t.Error("expected '=' to tokenize as InfixAssignment")
	}
}

func TestIntegerLiteralInternsLexeme(t *testing.T) {
	tokens, _, numbers := tokenize(t, "42")
	for _, tok := range tokens {
		if tok.Kind == ast.TokIntegerLiteral {
			if numbers.Get(tok.Literal) != "42" {
				t.Errorf("interned lexeme = %q, want %q", numbers.Get(tok.Literal), "42")
			}
			return
		}
	}
	t.Fatal("no IntegerLiteral token produced")
}
