package eval

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

// Control-flow keywords (if/while/foreach/try/throw) aren't ordinary
// values: applying one to its arguments via the tokenizer's synthetic
// Apply operator (`if cond body` parses as nested Apply PrecedenceGroups)
// is recognized directly here by inspecting the Apply chain's shape,
// rather than threading control flow generically through value.Value.Infix
// with intermediate carrier types the way
// original_source/berg-compiler/src/eval/ambiguous_syntax.rs's
// ControlVal/AmbiguousSyntax machinery does. Simpler, at the cost of
// hardcoding the keyword set here instead of letting arbitrary
// user-defined callables hook into the same path — Berg has no
// user-defined callables in this implementation, so that cost is free.

// evalApply handles one Apply PrecedenceGroup: `left <apply> right`. It
// walks left through any further nested Apply groups to recover the full
// juxtaposition chain (`if cond body else altBody` is four nested Apply
// groups) before dispatching on the head.
func (e *Evaluator) evalApply(leftStart, rightStart int, scope *Scope) (value.Value, *diag.Error) {
	chain := e.collectApplyChain(leftStart, rightStart)
	headVal, err := resolve(e.evalExpr(chain[0], scope))
	if err != nil {
		return nil, err
	}
	if kw, ok := headVal.(value.IdentifierValue); ok {
		switch ast.Identifier(kw) {
		case ast.IdentIf:
			return e.evalIf(chain, scope)
		case ast.IdentWhile:
			return e.evalWhile(chain, scope)
		case ast.IdentForeach:
			return e.evalForeach(chain, scope)
		case ast.IdentTry:
			return e.evalTry(chain, scope)
		case ast.IdentThrow:
			return e.evalThrow(chain, scope)
		}
	}
	return nil, diag.New(diag.UnsupportedOperator, e.tree.Tokens[chain[0]].Range, "value is not callable")
}

func (e *Evaluator) collectApplyChain(leftStart, rightStart int) []int {
	if e.tree.Tokens[leftStart].Kind == ast.TokOpen && e.tree.Tokens[leftStart].Boundary == ast.BoundaryPrecedenceGroup {
		innerLeft := e.tree.Inner(leftStart)
		if innerLeft != -1 {
			innerOp := e.tree.EndOf(innerLeft)
			if e.tree.Tokens[innerOp].Kind == ast.TokApply {
				return append(e.collectApplyChain(innerLeft, innerOp+1), rightStart)
			}
		}
	}
	return []int{leftStart, rightStart}
}

// evalIf accepts an `if` without 'else' only while its condition is true:
// a false condition with no 'else' to take has no value to produce and
// reports IfWithoutElse.
func (e *Evaluator) evalIf(chain []int, scope *Scope) (value.Value, *diag.Error) {
	head := e.tree.Tokens[chain[0]].Range
	if len(chain) < 2 {
		return nil, diag.New(diag.IfWithoutCondition, head, "'if' requires a condition")
	}
	cond, err := resolve(e.evalExpr(chain[1], scope))
	if err != nil {
		return nil, err
	}
	condBool, ok := cond.(value.Boolean)
	if !ok {
		return nil, diag.New(diag.BadOperandType, e.tree.Tokens[chain[1]].Range, "'if' condition must be boolean, got %s", cond.TypeName())
	}
	if len(chain) < 3 {
		return nil, diag.New(diag.IfWithoutCode, head, "'if' requires a body")
	}
	hasElse := len(chain) >= 5
	if !hasElse && !bool(condBool) {
		return nil, diag.New(diag.IfWithoutElse, head, "'if' without 'else' requires its condition to be true")
	}
	branch := chain[2]
	if !bool(condBool) {
		branch = chain[4]
	}
	branchVal, err := e.evalExpr(branch, scope)
	if err != nil {
		return nil, err
	}
	return e.force(branchVal)
}

func (e *Evaluator) evalWhile(chain []int, scope *Scope) (value.Value, *diag.Error) {
	head := e.tree.Tokens[chain[0]].Range
	if len(chain) < 2 {
		return nil, diag.New(diag.WhileWithoutCondition, head, "'while' requires a condition block")
	}
	if len(chain) < 3 {
		return nil, diag.New(diag.WhileWithoutBlock, head, "'while' requires a body block")
	}
	for {
		condVal, err := e.evalExpr(chain[1], scope)
		if err != nil {
			return nil, err
		}
		condClosure, ok := condVal.(*Closure)
		if !ok {
			return nil, diag.New(diag.WhileConditionMustBeBlock, e.tree.Tokens[chain[1]].Range, "'while' condition must be a block")
		}
		condResult, err := e.force(condClosure)
		if err != nil {
			return nil, err
		}
		cb, ok := condResult.(value.Boolean)
		if !ok {
			return nil, diag.New(diag.BadOperandType, e.tree.Tokens[chain[1]].Range, "'while' condition must evaluate to a boolean, got %s", condResult.TypeName())
		}
		if !bool(cb) {
			return value.Nothing{}, nil
		}

		bodyVal, err := e.evalExpr(chain[2], scope)
		if err != nil {
			return nil, err
		}
		bodyClosure, ok := bodyVal.(*Closure)
		if !ok {
			return nil, diag.New(diag.WhileBlockMustBeBlock, e.tree.Tokens[chain[2]].Range, "'while' body must be a block")
		}
		if _, err := e.force(bodyClosure); err != nil {
			switch err.Kind {
			case diag.BreakOutsideLoop:
				return value.Nothing{}, nil
			case diag.ContinueOutsideLoop:
				continue
			default:
				return nil, err
			}
		}
	}
}

// evalForeach iterates a collection's NextVal sequence, binding each
// element to the body block's first declared field slot if it has one.
// The binding-by-first-slot convention is a deliberate simplification:
// nothing in this implementation lets foreach name its loop variable
// explicitly, so the body's own first local stands in for it.
func (e *Evaluator) evalForeach(chain []int, scope *Scope) (value.Value, *diag.Error) {
	head := e.tree.Tokens[chain[0]].Range
	if len(chain) < 3 {
		return nil, diag.New(diag.WhileWithoutBlock, head, "'foreach' requires a collection and a body block")
	}
	coll, err := resolve(e.evalExpr(chain[1], scope))
	if err != nil {
		return nil, err
	}
	bodyVal, err := e.evalExpr(chain[2], scope)
	if err != nil {
		return nil, err
	}
	body, ok := bodyVal.(*Closure)
	if !ok {
		return nil, diag.New(diag.WhileBlockMustBeBlock, e.tree.Tokens[chain[2]].Range, "'foreach' body must be a block")
	}

	cur := coll
	for {
		head, tail, ok := cur.NextVal()
		if !ok {
			return value.Nothing{}, nil
		}
		bodyScope := NewScope(body.Parent, body.BlockIdx, body.Block.ScopeStart, body.Block.ScopeCount)
		if body.Block.ScopeCount > 0 {
			if err := e.setField(bodyScope, body.Block.ScopeStart, head); err != nil {
				return nil, err
			}
		}
		inner := e.tree.Inner(body.OpenIdx)
		if inner != -1 {
			if _, err := e.evalExpr(inner, bodyScope); err != nil {
				switch err.Kind {
				case diag.BreakOutsideLoop:
					return value.Nothing{}, nil
				case diag.ContinueOutsideLoop:
					cur = tail
					continue
				default:
					return nil, err
				}
			}
		}
		cur = tail
	}
}

func (e *Evaluator) evalTry(chain []int, scope *Scope) (value.Value, *diag.Error) {
	head := e.tree.Tokens[chain[0]].Range
	if len(chain) < 2 {
		return nil, diag.New(diag.TryWithoutBlock, head, "'try' requires a body block")
	}
	tryVal, err := e.evalExpr(chain[1], scope)
	if err != nil {
		return nil, err
	}
	tryClosure, ok := tryVal.(*Closure)
	if !ok {
		return nil, diag.New(diag.TryBlockMustBeBlock, e.tree.Tokens[chain[1]].Range, "'try' body must be a block")
	}
	result, tryErr := e.force(tryClosure)

	idx := 2
	if idx+1 < len(chain) {
		if kw, rerr := resolve(e.evalExpr(chain[idx], scope)); rerr == nil {
			if id, isKw := kw.(value.IdentifierValue); isKw && ast.Identifier(id) == ast.IdentCatch {
				cv, cerr := e.evalExpr(chain[idx+1], scope)
				if cerr != nil {
					return nil, cerr
				}
				if catchClosure, isClosure := cv.(*Closure); isClosure && tryErr != nil {
					result, tryErr = e.runCatch(catchClosure, tryErr)
				}
				idx += 2
			}
		}
	}

	if idx+1 < len(chain) {
		if kw, rerr := resolve(e.evalExpr(chain[idx], scope)); rerr == nil {
			if id, isKw := kw.(value.IdentifierValue); isKw && ast.Identifier(id) == ast.IdentFinally {
				fv, ferr := e.evalExpr(chain[idx+1], scope)
				if ferr != nil {
					return nil, ferr
				}
				if finallyClosure, isClosure := fv.(*Closure); isClosure {
					if _, ferr := e.force(finallyClosure); ferr != nil {
						return nil, ferr
					}
				}
			}
		}
	}

	if tryErr != nil {
		return nil, tryErr
	}
	if result == nil {
		result = value.Nothing{}
	}
	return result, nil
}

func (e *Evaluator) runCatch(c *Closure, caught *diag.Error) (value.Value, *diag.Error) {
	scope := NewScope(c.Parent, c.BlockIdx, c.Block.ScopeStart, c.Block.ScopeCount)
	if c.Block.ScopeCount > 0 {
		if err := e.setField(scope, c.Block.ScopeStart, value.ErrorValue{Err: caught}); err != nil {
			return nil, err
		}
	}
	inner := e.tree.Inner(c.OpenIdx)
	if inner == -1 {
		return value.Nothing{}, nil
	}
	result, err := e.evalExpr(inner, scope)
	if err != nil {
		return nil, err
	}
	return e.force(result)
}

func (e *Evaluator) evalThrow(chain []int, scope *Scope) (value.Value, *diag.Error) {
	head := e.tree.Tokens[chain[0]].Range
	if len(chain) < 2 {
		return nil, diag.New(diag.ThrowWithoutException, head, "'throw' requires a value")
	}
	val, err := resolve(e.evalExpr(chain[1], scope))
	if err != nil {
		return nil, err
	}
	if ev, ok := val.(value.ErrorValue); ok {
		return nil, ev.Err
	}
	return nil, diag.New(diag.ThrowWithoutException, e.tree.Tokens[chain[1]].Range, "threw a %s value", val.TypeName())
}
