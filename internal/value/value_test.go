package value_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

func TestRationalArithmetic(t *testing.T) {
	pool := ast.NewPool()
	one := value.IntRational(1)
	two := value.IntRational(2)

	sum, err := one.Infix(ast.IdentPlus, pool, two)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sum.(value.Rational)
	if got.Cmp(big.NewRat(3, 1)) != 0 {
		t.Errorf("1 + 2 = %v, want 3", got)
	}
}

func TestRationalDivideByZero(t *testing.T) {
	pool := ast.NewPool()
	one := value.IntRational(1)
	zero := value.IntRational(0)

	_, err := one.Infix(ast.IdentSlash, pool, zero)
	if err == nil || err.Kind != diag.DivideByZero {
		t.Fatalf("expected DivideByZero, got %v", err)
	}
}

func TestBooleanShortCircuitOperatorsRequireBoolean(t *testing.T) {
	pool := ast.NewPool()
	_, err := value.Boolean(true).Infix(ast.IdentAndAnd, pool, value.IntRational(1))
	if err == nil || err.Kind != diag.BadOperandType {
		t.Fatalf("expected BadOperandType, got %v", err)
	}
}

func TestTupleStructuralEquality(t *testing.T) {
	pool := ast.NewPool()
	a := value.NewTuple(value.IntRational(1), value.IntRational(2))
	b := value.NewTuple(value.IntRational(1), value.IntRational(2))

	eq, err := a.Infix(ast.IdentEqualTo, pool, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq != value.Boolean(true) {
		t.Errorf("expected equal tuples to compare ==, got %v", eq)
	}
}

func TestTupleNextValPopsInLogicalOrder(t *testing.T) {
	tup := value.NewTuple(value.IntRational(1), value.IntRational(2), value.IntRational(3))

	head, tail, ok := tup.NextVal()
	if !ok {
		t.Fatal("expected a head")
	}
	if head.(value.Rational).Cmp(big.NewRat(1, 1)) != 0 {
		t.Errorf("expected first head to be 1, got %v", head)
	}
	rest := tail.(value.Tuple)
	if len(rest) != 2 {
		t.Fatalf("expected 2 remaining elements, got %d", len(rest))
	}
}

func TestNoSuchFieldSuggestsClosestName(t *testing.T) {
	pool := ast.NewPool()
	near := pool.Intern("nam")
	pool.Intern("name")

	_, err := value.Nothing{}.Field(pool, near)
	if err == nil || err.Kind != diag.NoSuchField {
		t.Fatalf("expected NoSuchField, got %v", err)
	}
	if !strings.Contains(err.Message, `did you mean "name"`) {
		t.Errorf("expected a suggestion of \"name\", got %q", err.Message)
	}
}
