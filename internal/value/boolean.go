package value

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// Boolean is Berg's boolean value. Short-circuit && and || are handled by
// the evaluator before either operand is fully evaluated (spec.md §5); by
// the time Infix runs here, both operands are already concrete values.
type Boolean bool

func (b Boolean) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	switch op {
	case ast.IdentAndAnd:
		rb, ok := right.(Boolean)
		if !ok {
			return nil, diag.New(diag.BadOperandType, diag.Range{}, "&& requires a boolean right operand, got %s", right.TypeName())
		}
		return Boolean(bool(b) && bool(rb)), nil
	case ast.IdentOrOr:
		rb, ok := right.(Boolean)
		if !ok {
			return nil, diag.New(diag.BadOperandType, diag.Range{}, "|| requires a boolean right operand, got %s", right.TypeName())
		}
		return Boolean(bool(b) || bool(rb)), nil
	default:
		return DefaultInfix(b, op, pool, right)
	}
}

func (b Boolean) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	if op == ast.IdentNot {
		return Boolean(!b), nil
	}
	return DefaultPrefix(b, op, pool)
}

func (b Boolean) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPostfix(b, op, pool)
}

func (b Boolean) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return DefaultField(b, pool, name)
}

func (b Boolean) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return DefaultSetField(b, pool, name)
}

func (b Boolean) NextVal() (head Value, tail Value, ok bool) {
	return singleNextVal(b)
}

func (b Boolean) TypeName() string {
	return "boolean"
}
