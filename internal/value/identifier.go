package value

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// IdentifierValue is a bare identifier used as a value: a RawIdentifier
// appearing on the right of `.` (spec.md §4.7), or one of the keyword
// spellings (if/else/while/foreach/try/catch/finally/throw) before the
// evaluator recognizes it as a control-flow constant and special-cases its
// Apply chain.
type IdentifierValue ast.Identifier

func (i IdentifierValue) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	return DefaultInfix(i, op, pool, right)
}

func (i IdentifierValue) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPrefix(i, op, pool)
}

func (i IdentifierValue) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPostfix(i, op, pool)
}

func (i IdentifierValue) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return DefaultField(i, pool, name)
}

func (i IdentifierValue) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return DefaultSetField(i, pool, name)
}

func (i IdentifierValue) NextVal() (head Value, tail Value, ok bool) {
	return singleNextVal(i)
}

func (i IdentifierValue) TypeName() string {
	return "identifier"
}
