package value

import (
	"math/big"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// Rational is Berg's only numeric type: arbitrary-precision exact
// fractions, grounded on original_source's use of a rational (not
// floating-point) number representation. math/big.Rat is the stdlib's
// exact-fraction type; no third-party bignum library in the retrieval pack
// offers anything Rat doesn't already provide for this (see SPEC_FULL §A.2).
type Rational struct {
	*big.Rat
}

// NewRational wraps r.
func NewRational(r *big.Rat) Rational {
	return Rational{r}
}

// IntRational returns the rational value of a plain int64, for literals
// and increment/decrement steps.
func IntRational(n int64) Rational {
	return Rational{big.NewRat(n, 1)}
}

func (r Rational) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	rr, ok := right.(Rational)
	if !ok {
		switch op {
		case ast.IdentEqualTo, ast.IdentNotEqualTo:
			return DefaultInfix(r, op, pool, right)
		default:
			return nil, diag.New(diag.BadOperandType, diag.Range{}, "%s requires a rational right operand, got %s", pool.String(op), right.TypeName())
		}
	}

	switch op {
	case ast.IdentPlus:
		return Rational{new(big.Rat).Add(r.Rat, rr.Rat)}, nil
	case ast.IdentMinus:
		return Rational{new(big.Rat).Sub(r.Rat, rr.Rat)}, nil
	case ast.IdentStar:
		return Rational{new(big.Rat).Mul(r.Rat, rr.Rat)}, nil
	case ast.IdentSlash:
		if rr.Sign() == 0 {
			return nil, diag.New(diag.DivideByZero, diag.Range{}, "division by zero")
		}
		return Rational{new(big.Rat).Quo(r.Rat, rr.Rat)}, nil
	case ast.IdentEqualTo:
		return Boolean(r.Cmp(rr.Rat) == 0), nil
	case ast.IdentNotEqualTo:
		return Boolean(r.Cmp(rr.Rat) != 0), nil
	case ast.IdentLessThan:
		return Boolean(r.Cmp(rr.Rat) < 0), nil
	case ast.IdentLessOrEqual:
		return Boolean(r.Cmp(rr.Rat) <= 0), nil
	case ast.IdentGreaterThan:
		return Boolean(r.Cmp(rr.Rat) > 0), nil
	case ast.IdentGreaterOrEqual:
		return Boolean(r.Cmp(rr.Rat) >= 0), nil
	default:
		return DefaultInfix(r, op, pool, right)
	}
}

func (r Rational) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	switch op {
	case ast.IdentPlus:
		return r, nil
	case ast.IdentMinus:
		return Rational{new(big.Rat).Neg(r.Rat)}, nil
	case ast.IdentPlusOne:
		return Rational{new(big.Rat).Add(r.Rat, big.NewRat(1, 1))}, nil
	case ast.IdentMinusOne:
		return Rational{new(big.Rat).Sub(r.Rat, big.NewRat(1, 1))}, nil
	default:
		return DefaultPrefix(r, op, pool)
	}
}

func (r Rational) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	switch op {
	case ast.IdentPlusOne:
		return Rational{new(big.Rat).Add(r.Rat, big.NewRat(1, 1))}, nil
	case ast.IdentMinusOne:
		return Rational{new(big.Rat).Sub(r.Rat, big.NewRat(1, 1))}, nil
	default:
		return DefaultPostfix(r, op, pool)
	}
}

func (r Rational) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return DefaultField(r, pool, name)
}

func (r Rational) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return DefaultSetField(r, pool, name)
}

func (r Rational) NextVal() (head Value, tail Value, ok bool) {
	return singleNextVal(r)
}

func (r Rational) TypeName() string {
	return "rational"
}
