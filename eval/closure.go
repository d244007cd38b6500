package eval

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

// Closure is what a block boundary (curly braces, an indented block, or
// the implicit grouping around a sequence of statements) evaluates to as a
// term: the code isn't run yet. Forcing it allocates a fresh Scope each
// time, which is what lets `while`/`foreach` re-enter a loop body with
// clean locals on every iteration (spec.md §4.7). A closure also doubles
// as the object `.` reads from: its own scope's public fields are
// reachable by name through Field, which runs the body to produce them.
type Closure struct {
	Eval     *Evaluator
	Parent   *Scope
	Tree     *ast.AST
	OpenIdx  int
	BlockIdx ast.BlockIndex
	Block    ast.Block
}

func (c *Closure) Infix(op ast.Identifier, pool *ast.Pool, right value.Value) (value.Value, *diag.Error) {
	return value.DefaultInfix(c, op, pool, right)
}

func (c *Closure) Prefix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	return value.DefaultPrefix(c, op, pool)
}

func (c *Closure) Postfix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	return value.DefaultPostfix(c, op, pool)
}

// Field runs the closure in a fresh scope on every call and looks that
// scope's public fields up by name, so `{ :x = 1 }.x`
// reads the block's declared field rather than being unsupported.
func (c *Closure) Field(pool *ast.Pool, name ast.Identifier) (value.Value, *diag.Error) {
	scope, _, err := c.Eval.runScope(c)
	if err != nil {
		return nil, err
	}
	start, end := c.Block.FieldRange()
	for idx := start; idx < end; idx++ {
		f := c.Tree.Fields[idx]
		if f.Name != name {
			continue
		}
		if !f.Public {
			return nil, diag.New(diag.PrivateField, diag.Range{}, "field %q is private", pool.String(name))
		}
		return c.Eval.getField(scope, idx)
	}
	return value.DefaultField(c, pool, name)
}

func (c *Closure) SetField(pool *ast.Pool, name ast.Identifier, v value.Value) *diag.Error {
	return value.DefaultSetField(c, pool, name)
}

func (c *Closure) NextVal() (head value.Value, tail value.Value, ok bool) {
	return c, value.Nothing{}, true
}

func (c *Closure) TypeName() string {
	return "block"
}

// runScope evaluates c's body in a fresh child scope, returning both the
// scope (so Field lookups can reach declared locals) and the body's
// result value.
func (e *Evaluator) runScope(c *Closure) (*Scope, value.Value, *diag.Error) {
	scope := NewScope(c.Parent, c.BlockIdx, c.Block.ScopeStart, c.Block.ScopeCount)
	inner := c.Tree.Inner(c.OpenIdx)
	if inner == -1 {
		return scope, value.Nothing{}, nil
	}
	result, err := e.evalExpr(inner, scope)
	if err != nil {
		return scope, nil, err
	}
	return scope, result, nil
}

// force evaluates a closure's body and repeats if the body itself produced
// another closure (a nested block used as the final expression of its
// enclosing one), so callers always get a concrete value back.
func (e *Evaluator) force(v value.Value) (value.Value, *diag.Error) {
	for {
		c, ok := v.(*Closure)
		if !ok {
			return v, nil
		}
		_, result, err := e.runScope(c)
		if err != nil {
			return nil, err
		}
		v = result
	}
}
