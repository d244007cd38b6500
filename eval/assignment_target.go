package eval

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

type targetKind int

const (
	targetFieldRef targetKind = iota
	targetFieldDecl
	targetObjectField
)

// AssignmentTarget is what a FieldReference or a `.` chain evaluates to: a
// settable place rather than an immediate value, so `=`/`:`/`++`/`--` can
// read-modify-write it while every other operator transparently reads
// through to the current value. Grounded on
// original_source/berg-compiler/src/eval/assignment_target.rs's three-way
// LocalFieldReference/LocalFieldDeclaration/ObjectFieldReference split.
type AssignmentTarget struct {
	eval *Evaluator
	kind targetKind

	scope *Scope
	field ast.FieldIndex

	object value.Value
	name   ast.Identifier
}

// Get reads the target's current value, forcing a deferred declaration's
// expression on first read.
func (a *AssignmentTarget) Get() (value.Value, *diag.Error) {
	switch a.kind {
	case targetFieldRef, targetFieldDecl:
		return a.eval.getField(a.scope, a.field)
	default:
		return a.object.Field(a.eval.tree.Identifiers, a.name)
	}
}

// Set overwrites the target's value immediately (no deferral).
func (a *AssignmentTarget) Set(v value.Value) *diag.Error {
	switch a.kind {
	case targetFieldRef, targetFieldDecl:
		return a.eval.setField(a.scope, a.field, v)
	default:
		return a.object.SetField(a.eval.tree.Identifiers, a.name, v)
	}
}

func (a *AssignmentTarget) Infix(op ast.Identifier, pool *ast.Pool, right value.Value) (value.Value, *diag.Error) {
	cur, err := a.Get()
	if err != nil {
		return nil, err
	}
	return cur.Infix(op, pool, right)
}

// Prefix special-cases ++/--: the stepped value is both written back and
// returned (prefix `++x` evaluates to the new value).
func (a *AssignmentTarget) Prefix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	cur, err := a.Get()
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.IdentPlusOne, ast.IdentMinusOne:
		next, err := cur.Prefix(op, pool)
		if err != nil {
			return nil, err
		}
		if err := a.Set(next); err != nil {
			return nil, err
		}
		return next, nil
	default:
		return cur.Prefix(op, pool)
	}
}

// Postfix special-cases ++/--: the stepped value is written back but the
// value from *before* the step is what the expression evaluates to.
func (a *AssignmentTarget) Postfix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	cur, err := a.Get()
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.IdentPlusOne, ast.IdentMinusOne:
		next, err := cur.Postfix(op, pool)
		if err != nil {
			return nil, err
		}
		if err := a.Set(next); err != nil {
			return nil, err
		}
		return cur, nil
	default:
		return cur.Postfix(op, pool)
	}
}

func (a *AssignmentTarget) Field(pool *ast.Pool, name ast.Identifier) (value.Value, *diag.Error) {
	cur, err := a.Get()
	if err != nil {
		return nil, err
	}
	return cur.Field(pool, name)
}

func (a *AssignmentTarget) SetField(pool *ast.Pool, name ast.Identifier, v value.Value) *diag.Error {
	cur, err := a.Get()
	if err != nil {
		return err
	}
	return cur.SetField(pool, name, v)
}

func (a *AssignmentTarget) NextVal() (head value.Value, tail value.Value, ok bool) {
	cur, err := a.Get()
	if err != nil {
		return value.ErrorValue{Err: err}, value.Nothing{}, true
	}
	return cur.NextVal()
}

func (a *AssignmentTarget) TypeName() string {
	cur, err := a.Get()
	if err != nil {
		return "error"
	}
	return cur.TypeName()
}

func combiningOp(assign ast.Identifier) ast.Identifier {
	switch assign {
	case ast.IdentPlusAssign:
		return ast.IdentPlus
	case ast.IdentMinusAssign:
		return ast.IdentMinus
	case ast.IdentStarAssign:
		return ast.IdentStar
	case ast.IdentSlashAssign:
		return ast.IdentSlash
	case ast.IdentAndAssign:
		return ast.IdentAndAnd
	case ast.IdentOrAssign:
		return ast.IdentOrOr
	default:
		return assign
	}
}

// InfixAssign handles `=`, `+=`, `-=`, `*=`, `/=`, `&&=`, `||=`. Every
// assignment evaluates to Nothing; its effect is the write.
func (a *AssignmentTarget) InfixAssign(op ast.Identifier, pool *ast.Pool, right value.Value) (value.Value, *diag.Error) {
	if op == ast.IdentAssign {
		if err := a.Set(right); err != nil {
			return nil, err
		}
		return value.Nothing{}, nil
	}
	cur, err := a.Get()
	if err != nil {
		return nil, err
	}
	combined, err := cur.Infix(combiningOp(op), pool, right)
	if err != nil {
		return nil, err
	}
	if err := a.Set(combined); err != nil {
		return nil, err
	}
	return value.Nothing{}, nil
}
