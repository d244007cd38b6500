package value

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// ErrorValue carries a diagnostic as a value rather than an immediate Go
// error: the shape `catch` binds to its handler's parameter once `throw`
// has been intercepted, so code inside a catch block can inspect what was
// thrown (spec.md §4.7, §4.8). Every operation on it propagates the same
// diagnostic rather than producing a new one, mirroring how an evaluation
// error bubbles through an ordinary expression.
type ErrorValue struct {
	Err *diag.Error
}

func (e ErrorValue) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	return nil, e.Err
}

func (e ErrorValue) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return nil, e.Err
}

func (e ErrorValue) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return nil, e.Err
}

func (e ErrorValue) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return nil, e.Err
}

func (e ErrorValue) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return e.Err
}

func (e ErrorValue) NextVal() (head Value, tail Value, ok bool) {
	return singleNextVal(e)
}

func (e ErrorValue) TypeName() string {
	return "error"
}
