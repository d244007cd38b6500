package eval_test

import (
	"math/big"
	"testing"

	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/eval"
	"github.com/berg-lang/berg/internal/value"
	"github.com/berg-lang/berg/parser"
)

func run(t *testing.T, src string) (value.Value, *diag.Error) {
	t.Helper()
	tree, errs := parser.Parse("test", []byte(src))
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return eval.New(tree).Eval()
}

func rat(t *testing.T, v value.Value) *big.Rat {
	t.Helper()
	r, ok := v.(value.Rational)
	if !ok {
		t.Fatalf("expected a rational, got %T (%v)", v, v)
	}
	return r.Rat
}

func TestArithmetic(t *testing.T) {
	v, err := run(t, "1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat(t, v).Cmp(big.NewRat(7, 1)) != 0 {
		t.Errorf("1 + 2 * 3 = %v, want 7", v)
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := run(t, "1 / 0")
	if err == nil || err.Kind != diag.DivideByZero {
		t.Fatalf("expected DivideByZero, got %v", err)
	}
}

func TestReassignmentAcrossNestedBlock(t *testing.T) {
	v, err := run(t, "a = 1\n{ a += 2 }\na + 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat(t, v).Cmp(big.NewRat(6, 1)) != 0 {
		t.Errorf("got %v, want 6", v)
	}
}

func TestSelfReferentialDeclarationIsCircular(t *testing.T) {
	_, err := run(t, "a: a + 1\na")
	if err == nil || err.Kind != diag.CircularDependency {
		t.Fatalf("expected CircularDependency, got %v", err)
	}
}

func TestIfElse(t *testing.T) {
	v, err := run(t, "if true { 1 } else { 2 }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat(t, v).Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("got %v, want 1", v)
	}
}

func TestIfWithoutElseOnFalseConditionErrors(t *testing.T) {
	_, err := run(t, "if false { 1 }")
	if err == nil || err.Kind != diag.IfWithoutElse {
		t.Fatalf("expected IfWithoutElse, got %v", err)
	}
}

func TestWhileLoop(t *testing.T) {
	v, err := run(t, ":x = 1\nwhile { x <= 5 } { x = x + 1 }\nx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat(t, v).Cmp(big.NewRat(6, 1)) != 0 {
		t.Errorf("got %v, want 6", v)
	}
}

func TestPostfixIncrementReturnsOldValue(t *testing.T) {
	v, err := run(t, ":x = 1\nx++")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rat(t, v).Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("postfix ++ should yield the old value, got %v", v)
	}
}

func TestTrailingCommaMakesSingletonTuple(t *testing.T) {
	v, err := run(t, "(1,2),")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := v.(value.Tuple)
	if !ok || len(outer) != 1 {
		t.Fatalf("expected a one-element tuple, got %v", v)
	}
	inner, ok := outer[0].(value.Tuple)
	if !ok || len(inner) != 2 {
		t.Fatalf("expected the element to be a two-element tuple, got %v", outer[0])
	}
}

func TestMissingOperand(t *testing.T) {
	_, err := run(t, "1 +")
	if err == nil || err.Kind != diag.MissingOperand {
		t.Fatalf("expected MissingOperand, got %v", err)
	}
}

func TestUnterminatedParenReportsOpenWithoutClose(t *testing.T) {
	_, errs := parser.Parse("test", []byte("(1"))
	if len(errs) == 0 {
		t.Fatal("expected a boundary-balance error")
	}
	if errs[0].Kind != diag.OpenWithoutClose {
		t.Errorf("expected OpenWithoutClose, got %v", errs[0].Kind)
	}
}
