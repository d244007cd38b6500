package ast_test

import (
	"testing"

	"github.com/berg-lang/berg/ast"
)

func TestTakesRightChild(t *testing.T) {
	cases := []struct {
		left, right ast.Fixity
		want        bool
	}{
		{ast.FixityOpen, ast.FixityInfix, true},
		{ast.FixityInfix, ast.FixityTerm, true},
		{ast.FixityInfix, ast.FixityPostfix, true},
		{ast.FixityInfix, ast.FixityInfix, false},
		{ast.FixityInfix, ast.FixityClose, false},
		{ast.FixityTerm, ast.FixityTerm, false},
		{ast.FixityPrefix, ast.FixityTerm, true},
		{ast.FixityPrefix, ast.FixityInfix, false},
	}
	for _, c := range cases {
		if got := c.left.TakesRightChild(c.right); got != c.want {
			t.Errorf("%v.TakesRightChild(%v) = %v, want %v", c.left, c.right, got, c.want)
		}
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	if ast.PrecedenceDot.TakesRightChild(ast.PrecedenceDot) {
		t.Error("equal precedence should not take a right child (left associative)")
	}
	if ast.PrecedencePlusMinus.TakesRightChild(ast.PrecedenceTimesDivide) != true {
		t.Error("PlusMinus should take TimesDivide as a tighter-binding right child")
	}
	if ast.PrecedenceTimesDivide.TakesRightChild(ast.PrecedencePlusMinus) != false {
		t.Error("TimesDivide should not take looser-binding PlusMinus as a right child")
	}
}

func TestPrecedenceOfOperators(t *testing.T) {
	cases := []struct {
		id   ast.Identifier
		want ast.Precedence
	}{
		{ast.IdentPlus, ast.PrecedencePlusMinus},
		{ast.IdentStar, ast.PrecedenceTimesDivide},
		{ast.IdentDot, ast.PrecedenceDot},
		{ast.IdentAndAnd, ast.PrecedenceAnd},
		{ast.IdentOrOr, ast.PrecedenceOr},
		{ast.IdentComma, ast.PrecedenceCommaSequence},
		{ast.IdentAssign, ast.PrecedenceAssign},
		{ast.IdentColon, ast.PrecedenceColonDeclaration},
		{ast.IdentSemicolon, ast.PrecedenceSemicolonSequence},
	}
	for _, c := range cases {
		if got := ast.PrecedenceOf(c.id); got != c.want {
			t.Errorf("PrecedenceOf(%v) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestBoundaryIsBlock(t *testing.T) {
	blocks := []ast.Boundary{ast.BoundaryCurlyBraces, ast.BoundaryAutoBlock, ast.BoundaryIndentedBlock, ast.BoundarySource, ast.BoundaryRoot}
	for _, b := range blocks {
		if !b.IsBlock() {
			t.Errorf("%v.IsBlock() = false, want true", b)
		}
	}
	nonBlocks := []ast.Boundary{ast.BoundaryParentheses, ast.BoundaryCompoundTerm, ast.BoundaryPrecedenceGroup, ast.BoundaryIndentedExpression}
	for _, b := range nonBlocks {
		if b.IsBlock() {
			t.Errorf("%v.IsBlock() = true, want false", b)
		}
	}
}
