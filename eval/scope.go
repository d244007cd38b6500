// Package eval is the depth-first tree-walking evaluator (spec.md §4.7):
// term/prefix/infix/postfix dispatch over the flat ast.AST, block-scope
// allocation on Open/Close, lazy at-most-once declaration evaluation with
// cycle detection, and the control-flow keywords (if/while/foreach/try)
// applied via the tokenizer's synthetic Apply operator.
//
// Grounded on original_source/berg-compiler/src/eval/scope.rs (the
// local-field/walk-to-parent split that became Scope.resolve here) and
// original_source/berg-compiler/src/eval/assignment_target.rs (the
// LocalFieldReference/LocalFieldDeclaration/ObjectFieldReference split that
// became AssignmentTarget, in assignment_target.go).
package eval

import "github.com/berg-lang/berg/ast"
import "github.com/berg-lang/berg/internal/value"
import "github.com/berg-lang/berg/diag"

type slotState int

const (
	slotUnset slotState = iota
	slotDeferred
	slotInProgress
	slotDone
)

// slot is one declared field's storage. A plain `=` sets it straight to
// slotDone; a declaration (`:`) instead records the expression to run on
// first read (deferredExpr/deferredScope) so a self-referential
// declaration like `a: a + 1` can be caught as CircularDependency rather
// than silently reading an unset value.
type slot struct {
	state         slotState
	value         value.Value
	err           *diag.Error
	deferredExpr  int
	deferredScope *Scope
}

// Scope is one live block activation: the field slots it owns plus a link
// to the scope that was active when it was entered. A new Scope is
// allocated every time a block is forced (spec.md §4.7 "exiting returns a
// closure... enabling lazy re-entry"), so a while loop's body gets a fresh
// set of locals each iteration.
type Scope struct {
	Parent *Scope
	Block  ast.BlockIndex
	start  ast.FieldIndex
	slots  []slot
}

// NewScope allocates a scope for a block whose fields occupy
// [start, start+count) in the AST's flat Fields vector.
func NewScope(parent *Scope, block ast.BlockIndex, start ast.FieldIndex, count int32) *Scope {
	return &Scope{Parent: parent, Block: block, start: start, slots: make([]slot, count)}
}

// resolve finds the ancestor scope (possibly s itself) that owns field
// index idx: the binder always resolves a name to the FieldIndex of the
// block that actually declares it, so this is a simple range walk up the
// Parent chain rather than a by-name search.
func (s *Scope) resolve(idx ast.FieldIndex) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if idx >= cur.start && int(idx-cur.start) < len(cur.slots) {
			return cur
		}
	}
	return nil
}
