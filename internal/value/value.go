// Package value implements Berg's runtime value sum type (spec.md §4.8):
// Boolean, Rational, Identifier, Nothing, Tuple, plus the Default*
// fallbacks every variant falls back to for an operator it doesn't
// understand. Closure lives in package eval instead, since it needs to
// invoke the evaluator; it satisfies Value by structural typing, the same
// duck-typing already used to stitch the front-end pipeline stages
// together without import cycles.
//
// Grounded on original_source/berg-compiler/src/value/mod.rs: the
// infix/prefix/postfix/field/set_field/next_val method set and the
// default_infix/default_prefix/default_field fallback semantics. One
// deliberate simplification: the original's default_infix builds `==`
// generically by walking next_val pairwise so any two iterable values
// compare structurally regardless of concrete type; Go has no trait
// dispatch to lean on for that walk without risking infinite recursion on
// a scalar's own next_val, so equality here is a direct type switch
// (valuesEqual below) that recurses into nested tuples
// explicitly instead.
package value

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
)

// Value is a Berg runtime value. Every variant implements every method;
// pool is passed through so error messages and field-name suggestions can
// render identifiers as their source spelling.
type Value interface {
	Infix(op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error)
	Prefix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error)
	Postfix(op ast.Identifier, pool *ast.Pool) (Value, *diag.Error)
	Field(pool *ast.Pool, name ast.Identifier) (Value, *diag.Error)
	SetField(pool *ast.Pool, name ast.Identifier, v Value) *diag.Error
	// NextVal takes one step of iteration: ok is false once the sequence is
	// exhausted. Scalars behave as a single-element sequence (head is the
	// value itself, tail is Nothing); Tuple pops its logical head.
	NextVal() (head Value, tail Value, ok bool)
	TypeName() string
}

func unsupported(v Value, pool *ast.Pool, fixity ast.Fixity, op ast.Identifier) *diag.Error {
	return diag.New(diag.UnsupportedOperator, diag.Range{}, "%s does not support %s operator %q", v.TypeName(), fixity, pool.String(op))
}

// DefaultInfix handles the two operators every variant answers the same
// way (structural `==`/`!=`) and reports UnsupportedOperator for anything
// else, matching original_source's default_infix.
func DefaultInfix(left Value, op ast.Identifier, pool *ast.Pool, right Value) (Value, *diag.Error) {
	switch op {
	case ast.IdentEqualTo:
		return Boolean(valuesEqual(left, right)), nil
	case ast.IdentNotEqualTo:
		return Boolean(!valuesEqual(left, right)), nil
	default:
		return nil, unsupported(left, pool, ast.FixityInfix, op)
	}
}

// DefaultPrefix reports UnsupportedOperator. Adjacent operator characters
// are scanned as one operator spelling, so "!!x" does not reach a value as
// two chained Prefix(Not) calls.
func DefaultPrefix(v Value, op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return nil, unsupported(v, pool, ast.FixityPrefix, op)
}

func DefaultPostfix(v Value, op ast.Identifier, pool *ast.Pool) (Value, *diag.Error) {
	return nil, unsupported(v, pool, ast.FixityPostfix, op)
}

func DefaultField(v Value, pool *ast.Pool, name ast.Identifier) (Value, *diag.Error) {
	msg := fmt.Sprintf("%s has no field %q", v.TypeName(), pool.String(name))
	if suggestion, ok := suggestField(pool, name); ok {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
	}
	return nil, diag.New(diag.NoSuchField, diag.Range{}, "%s", msg)
}

func DefaultSetField(v Value, pool *ast.Pool, name ast.Identifier) *diag.Error {
	return diag.New(diag.NoSuchField, diag.Range{}, "%s has no field %q", v.TypeName(), pool.String(name))
}

// suggestField ranks every interned spelling against name by edit distance
// and returns the closest one other than name itself, for a NoSuchField
// "did you mean" hint.
func suggestField(pool *ast.Pool, name ast.Identifier) (string, bool) {
	target := pool.String(name)
	candidates := pool.Names()
	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Sort(ranks)
	for _, r := range ranks {
		if r.Target != target {
			return r.Target, true
		}
	}
	return "", false
}

// valuesEqual is Berg's structural equality: two tuples compare elementwise
// (recursing into nested tuples), anything else compares only against its
// own concrete type.
func valuesEqual(a, b Value) bool {
	at, aIsTuple := a.(Tuple)
	bt, bIsTuple := b.(Tuple)
	if aIsTuple || bIsTuple {
		if !aIsTuple || !bIsTuple || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !valuesEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	}

	switch av := a.(type) {
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Rational:
		bv, ok := b.(Rational)
		return ok && av.Cmp(bv.Rat) == 0
	case IdentifierValue:
		bv, ok := b.(IdentifierValue)
		return ok && av == bv
	case Nothing:
		_, ok := b.(Nothing)
		return ok
	default:
		return false
	}
}

// singleNextVal is the NextVal behavior shared by every scalar variant:
// one step yielding the value itself, then exhausted.
func singleNextVal(v Value) (head Value, tail Value, ok bool) {
	return v, Nothing{}, true
}
