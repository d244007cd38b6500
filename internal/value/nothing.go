package value

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// Nothing is the value of an empty tuple/absent result: the argument-less
// end of a MissingExpression that escaped parentheses cleanly, or an empty
// block's result (spec.md §4.7).
type Nothing struct{}

func (n Nothing) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	return DefaultInfix(n, op, pool, right)
}

func (n Nothing) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPrefix(n, op, pool)
}

func (n Nothing) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPostfix(n, op, pool)
}

func (n Nothing) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return DefaultField(n, pool, name)
}

func (n Nothing) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return DefaultSetField(n, pool, name)
}

// NextVal reports Nothing as exhausted: it is the tail every scalar's
// single NextVal step ends on, and also an empty tuple's natural end.
func (n Nothing) NextVal() (head Value, tail Value, ok bool) {
	return nil, nil, false
}

func (n Nothing) TypeName() string {
	return "nothing"
}
