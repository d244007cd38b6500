package eval

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

// missingValue is what a TokMissingExpression token evaluates to: source
// like `1 +` or `(, 2)` left a gap where an operand belongs. It isn't
// Nothing — combining it with any operator is itself the error — so it
// carries its own range for the MissingOperand diagnostic rather than
// silently acting like an empty tuple the way a genuinely empty group does.
//
// Grounded on original_source/berg-compiler/src/eval/ambiguous_syntax.rs's
// AmbiguousSyntax::MissingExpression carrier, simplified: the original
// threads several more ambiguous-syntax carriers (TrailingComma,
// PartialTuple, AssignmentTarget) through a shared enum so they can be
// resolved by whatever consumes them next; here each of those concerns is
// handled directly at its point of use (AssignmentTarget is its own type,
// comma-chains are built eagerly in evalComma) rather than threaded
// generically, since Go has no equivalent to the original's generic
// "downgrade to a concrete value if nothing more specific claims this"
// trait dispatch.
type missingValue struct {
	Range diag.Range
}

func (m missingValue) err() *diag.Error {
	return diag.New(diag.MissingOperand, m.Range, "expected an expression here")
}

func (m missingValue) Infix(op ast.Identifier, pool *ast.Pool, right value.Value) (value.Value, *diag.Error) {
	return nil, m.err()
}

func (m missingValue) Prefix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	return nil, m.err()
}

func (m missingValue) Postfix(op ast.Identifier, pool *ast.Pool) (value.Value, *diag.Error) {
	return nil, m.err()
}

func (m missingValue) Field(pool *ast.Pool, name ast.Identifier) (value.Value, *diag.Error) {
	return nil, m.err()
}

func (m missingValue) SetField(pool *ast.Pool, name ast.Identifier, v value.Value) *diag.Error {
	return m.err()
}

func (m missingValue) NextVal() (head value.Value, tail value.Value, ok bool) {
	return m, value.Nothing{}, true
}

func (m missingValue) TypeName() string {
	return "missing"
}

func isMissing(v value.Value) (missingValue, bool) {
	m, ok := v.(missingValue)
	return m, ok
}
