package value

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// Tuple is an ordered, discrete series of values built by `,` (spec.md
// §4.8). It is stored reversed, element [len-1] first logically, so
// NextVal (the typical "take the head, keep going" operation) pops from
// the end in O(1) rather than shifting the whole slice, grounded on
// original_source's Tuple storage note.
type Tuple []Value

// NewTuple builds a Tuple from values in logical (left-to-right) order.
func NewTuple(values ...Value) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[len(values)-1-i] = v
	}
	return t
}

// Prepend returns a new tuple with v as the new logical head, left of
// everything already in t, without re-reversing the stored slice. (A
// left-associative `,` chain is built with AppendLast instead.)
func (t Tuple) Prepend(v Value) Tuple {
	return append(append(Tuple{}, t...), v)
}

// AppendLast returns a new tuple with v as the new logical last element,
// right of everything already in t. `,` is left-associative, so
// `(1,2),3` folds as an existing (1,2) tuple gaining 3 on its right.
func (t Tuple) AppendLast(v Value) Tuple {
	out := make(Tuple, 0, len(t)+1)
	out = append(out, v)
	out = append(out, t...)
	return out
}

func (t Tuple) Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	return DefaultInfix(t, op, pool, right)
}

func (t Tuple) Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPrefix(t, op, pool)
}

func (t Tuple) Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return DefaultPostfix(t, op, pool)
}

func (t Tuple) Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	return DefaultField(t, pool, name)
}

func (t Tuple) SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error {
	return DefaultSetField(t, pool, name)
}

// NextVal pops the logical head (the last stored element) and returns the
// remaining tuple as the tail.
func (t Tuple) NextVal() (head Value, tail Value, ok bool) {
	if len(t) == 0 {
		return nil, nil, false
	}
	return t[len(t)-1], t[:len(t)-1], true
}

func (t Tuple) TypeName() string {
	return "tuple"
}
