package eval

import (
	"math/big"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/value"
)

// Evaluator walks one parsed ast.AST, depth first, dispatching on each
// token's fixity (spec.md §4.7). It carries no mutable state of its own
// beyond the tree: all running state (field values, declaration progress)
// lives in the Scope chain threaded through every call.
type Evaluator struct {
	tree *ast.AST
}

// New returns an evaluator for tree.
func New(tree *ast.AST) *Evaluator {
	return &Evaluator{tree: tree}
}

// Eval runs the whole program: the Source boundary's body in a fresh root
// scope, forcing the final result if it came out as an unforced block.
func (e *Evaluator) Eval() (value.Value, *diag.Error) {
	srcIdx := e.tree.Tokens[e.tree.MatchingClose(0)].Block
	root := e.tree.Blocks[srcIdx]
	scope := NewScope(nil, srcIdx, root.ScopeStart, root.ScopeCount)
	inner := e.tree.Inner(0)
	if inner == -1 {
		return value.Nothing{}, nil
	}
	result, err := e.evalExpr(inner, scope)
	if err != nil {
		return nil, err
	}
	return e.finalize(result)
}

// finalize collapses a value down to something neither an AssignmentTarget
// (an unread settable place) nor a Closure (an unforced block), looping
// since either can unwrap into the other (a declaration whose deferred
// expression is itself a block literal, or a block whose final expression
// is a bare field reference).
func (e *Evaluator) finalize(v value.Value) (value.Value, *diag.Error) {
	for {
		if at, ok := v.(*AssignmentTarget); ok {
			next, err := at.Get()
			if err != nil {
				return nil, err
			}
			v = next
			continue
		}
		if c, ok := v.(*Closure); ok {
			_, next, err := e.runScope(c)
			if err != nil {
				return nil, err
			}
			v = next
			continue
		}
		return v, nil
	}
}

// evalExpr evaluates the expression-fixity token at i (term, prefix or
// open) and returns its value.
func (e *Evaluator) evalExpr(i int, scope *Scope) (value.Value, *diag.Error) {
	switch e.tree.Tokens[i].Kind.Fixity() {
	case ast.FixityPrefix:
		return e.evalPrefix(i, scope)
	case ast.FixityOpen:
		return e.evalOpenBoundary(i, scope)
	default:
		return e.evalTermAndPostfix(i, scope)
	}
}

func (e *Evaluator) evalTermAndPostfix(i int, scope *Scope) (value.Value, *diag.Error) {
	val, err := e.evalTerm(i, scope)
	if err != nil {
		return nil, err
	}
	j := i + 1
	for j < len(e.tree.Tokens) && e.tree.Tokens[j].Kind == ast.TokPostfixOperator {
		op := e.tree.Tokens[j]
		if m, ok := isMissing(val); ok {
			return nil, m.err()
		}
		val, err = val.Postfix(op.Ident, e.tree.Identifiers)
		if err != nil {
			return nil, err.Annotate(op.Kind.String(), diag.PostfixOperand)
		}
		j++
	}
	return val, nil
}

func (e *Evaluator) evalTerm(i int, scope *Scope) (value.Value, *diag.Error) {
	tok := e.tree.Tokens[i]
	switch tok.Kind {
	case ast.TokIntegerLiteral:
		text := e.tree.Numbers.Get(tok.Literal)
		r, ok := new(big.Rat).SetString(text)
		if !ok {
			return nil, diag.New(diag.BadOperandType, tok.Range, "malformed number literal %q", text)
		}
		return value.NewRational(r), nil
	case ast.TokRawIdentifier:
		switch tok.Ident {
		case ast.IdentTrue:
			return value.Boolean(true), nil
		case ast.IdentFalse:
			return value.Boolean(false), nil
		case ast.IdentBreak:
			return nil, diag.New(diag.BreakOutsideLoop, tok.Range, "'break' reached")
		case ast.IdentContinue:
			return nil, diag.New(diag.ContinueOutsideLoop, tok.Range, "'continue' reached")
		default:
			return value.IdentifierValue(tok.Ident), nil
		}
	case ast.TokFieldReference:
		return &AssignmentTarget{eval: e, kind: targetFieldRef, scope: scope, field: tok.Field}, nil
	case ast.TokMissingExpression:
		return missingValue{Range: tok.Range}, nil
	case ast.TokRawErrorTerm, ast.TokErrorTerm:
		return nil, diag.New(tok.ErrorKind, tok.Range, "%s", e.tree.Text(tok.Range))
	default:
		return nil, diag.New(diag.UnsupportedOperator, tok.Range, "unexpected token %s", tok.Kind)
	}
}

func (e *Evaluator) evalPrefix(i int, scope *Scope) (value.Value, *diag.Error) {
	tok := e.tree.Tokens[i]
	operand, err := e.evalExpr(i+1, scope)
	if err != nil {
		return nil, err
	}
	if tok.Ident == ast.IdentColon {
		target, ok := operand.(*AssignmentTarget)
		if !ok {
			return nil, diag.New(diag.AssignmentTargetMustBeIdentifier, tok.Range, "':' target must be a plain identifier")
		}
		decl := *target
		decl.kind = targetFieldDecl
		return &decl, nil
	}
	if m, ok := isMissing(operand); ok {
		return nil, m.err()
	}
	result, err := operand.Prefix(tok.Ident, e.tree.Identifiers)
	if err != nil {
		return nil, err.Annotate(tok.Kind.String(), diag.PrefixOperand)
	}
	return result, nil
}

func (e *Evaluator) evalOpenBoundary(i int, scope *Scope) (value.Value, *diag.Error) {
	tok := e.tree.Tokens[i]
	switch tok.Boundary {
	case ast.BoundaryPrecedenceGroup:
		return e.evalPrecedenceGroup(i, scope)
	case ast.BoundaryCurlyBraces, ast.BoundaryAutoBlock, ast.BoundaryIndentedBlock, ast.BoundaryIndentedExpression:
		return e.newClosure(i, scope), nil
	default: // CompoundTerm, Parentheses, Source, Root: transparent grouping
		inner := e.tree.Inner(i)
		if inner == -1 {
			return value.Nothing{}, nil
		}
		return e.evalExpr(inner, scope)
	}
}

func (e *Evaluator) newClosure(openIdx int, scope *Scope) *Closure {
	closeIdx := e.tree.MatchingClose(openIdx)
	blockIdx := e.tree.Tokens[closeIdx].Block
	return &Closure{
		Eval:     e,
		Parent:   scope,
		Tree:     e.tree,
		OpenIdx:  openIdx,
		BlockIdx: blockIdx,
		Block:    e.tree.Blocks[blockIdx],
	}
}

// resolve forces an AssignmentTarget down to its current concrete value.
// Used wherever a value must be inspected by concrete type (tuple
// construction, boolean conditions) rather than left open for further
// mutation.
func resolve(v value.Value, err *diag.Error) (value.Value, *diag.Error) {
	if err != nil {
		return nil, err
	}
	if at, ok := v.(*AssignmentTarget); ok {
		return at.Get()
	}
	return v, nil
}

func (e *Evaluator) evalPrecedenceGroup(i int, scope *Scope) (value.Value, *diag.Error) {
	pool := e.tree.Identifiers
	leftStart := e.tree.Inner(i)
	if leftStart == -1 {
		return value.Nothing{}, nil
	}
	opIdx := e.tree.EndOf(leftStart)
	opTok := e.tree.Tokens[opIdx]
	rightStart := opIdx + 1

	switch {
	case opTok.Kind == ast.TokInfixOperator && opTok.Ident == ast.IdentColon:
		leftVal, err := e.evalExpr(leftStart, scope)
		if err != nil {
			return nil, err
		}
		target, ok := leftVal.(*AssignmentTarget)
		if !ok {
			return nil, diag.New(diag.AssignmentTargetMustBeIdentifier, opTok.Range, "':' target must be a plain identifier")
		}
		e.declareDeferred(target, rightStart, scope)
		return value.Nothing{}, nil

	case opTok.Kind == ast.TokInfixAssignment:
		leftVal, err := e.evalExpr(leftStart, scope)
		if err != nil {
			return nil, err
		}
		target, ok := leftVal.(*AssignmentTarget)
		if !ok {
			return nil, diag.New(diag.AssignmentTargetMustBeIdentifier, opTok.Range, "%q target must be a plain identifier", pool.String(opTok.Ident))
		}
		if opTok.Ident == ast.IdentAssign && target.kind == targetFieldDecl {
			e.declareDeferred(target, rightStart, scope)
			return value.Nothing{}, nil
		}
		rightVal, err := e.evalExpr(rightStart, scope)
		if err != nil {
			return nil, err
		}
		if m, ok := isMissing(rightVal); ok {
			return nil, m.err()
		}
		result, err := target.InfixAssign(opTok.Ident, pool, rightVal)
		if err != nil {
			return nil, err.Annotate(opTok.Kind.String(), diag.Right)
		}
		return result, nil

	case opTok.Kind == ast.TokNewlineSequence || (opTok.Kind == ast.TokInfixOperator && opTok.Ident == ast.IdentSemicolon):
		leftVal, err := e.evalExpr(leftStart, scope)
		if err != nil {
			return nil, err
		}
		if c, ok := leftVal.(*Closure); ok {
			if _, _, err := e.runScope(c); err != nil {
				return nil, err
			}
		}
		return e.evalExpr(rightStart, scope)

	case opTok.Kind == ast.TokApply:
		return e.evalApply(leftStart, rightStart, scope)
	}

	switch opTok.Ident {
	case ast.IdentAndAnd, ast.IdentOrOr:
		return e.evalShortCircuit(opTok, leftStart, rightStart, scope)
	case ast.IdentComma:
		return e.evalComma(leftStart, rightStart, scope)
	case ast.IdentDot:
		return e.evalDot(leftStart, rightStart, scope)
	default:
		leftVal, err := e.evalExpr(leftStart, scope)
		if err != nil {
			return nil, err
		}
		if m, ok := isMissing(leftVal); ok {
			return nil, m.err()
		}
		rightVal, err := e.evalExpr(rightStart, scope)
		if err != nil {
			return nil, err
		}
		if m, ok := isMissing(rightVal); ok {
			return nil, m.err()
		}
		result, err := leftVal.Infix(opTok.Ident, pool, rightVal)
		if err != nil {
			return nil, err.Annotate(opTok.Kind.String(), diag.Right)
		}
		return result, nil
	}
}

// evalComma builds a tuple from a left-associative chain of `,`. A
// trailing comma (nothing follows it before the enclosing boundary
// closes) doesn't error: it wraps whatever is on the left into a
// singleton tuple, so `(1,2),` is a one-element tuple holding (1,2).
func (e *Evaluator) evalComma(leftStart, rightStart int, scope *Scope) (value.Value, *diag.Error) {
	leftVal, err := resolve(e.evalExpr(leftStart, scope))
	if err != nil {
		return nil, err
	}
	rightRaw, err := e.evalExpr(rightStart, scope)
	if err != nil {
		return nil, err
	}
	if _, ok := isMissing(rightRaw); ok {
		return value.NewTuple(leftVal), nil
	}
	rightVal, err := resolve(rightRaw, nil)
	if err != nil {
		return nil, err
	}
	if lt, ok := leftVal.(value.Tuple); ok {
		return lt.AppendLast(rightVal), nil
	}
	return value.NewTuple(leftVal, rightVal), nil
}

func (e *Evaluator) evalDot(leftStart, rightStart int, scope *Scope) (value.Value, *diag.Error) {
	obj, err := resolve(e.evalExpr(leftStart, scope))
	if err != nil {
		return nil, err
	}
	nameTok := e.tree.Tokens[rightStart]
	if nameTok.Kind != ast.TokRawIdentifier {
		return nil, diag.New(diag.BadOperandType, nameTok.Range, "right of '.' must be a plain identifier")
	}
	return &AssignmentTarget{eval: e, kind: targetObjectField, object: obj, name: nameTok.Ident}, nil
}

func (e *Evaluator) evalShortCircuit(opTok ast.Token, leftStart, rightStart int, scope *Scope) (value.Value, *diag.Error) {
	left, err := resolve(e.evalExpr(leftStart, scope))
	if err != nil {
		return nil, err
	}
	lb, ok := left.(value.Boolean)
	if !ok {
		return nil, diag.New(diag.BadOperandType, e.tree.Tokens[leftStart].Range, "%q requires a boolean left operand, got %s", e.tree.Identifiers.String(opTok.Ident), left.TypeName())
	}
	if opTok.Ident == ast.IdentAndAnd && !bool(lb) {
		return value.Boolean(false), nil
	}
	if opTok.Ident == ast.IdentOrOr && bool(lb) {
		return value.Boolean(true), nil
	}
	right, err := resolve(e.evalExpr(rightStart, scope))
	if err != nil {
		return nil, err
	}
	rb, ok := right.(value.Boolean)
	if !ok {
		return nil, diag.New(diag.BadOperandType, e.tree.Tokens[rightStart].Range, "%q requires a boolean right operand, got %s", e.tree.Identifiers.String(opTok.Ident), right.TypeName())
	}
	return rb, nil
}

// declareDeferred records a declaration's right-hand expression to run on
// first read instead of evaluating it now, so a self-reference inside the
// expression hits the in-progress slot and reports CircularDependency.
func (e *Evaluator) declareDeferred(target *AssignmentTarget, rhsExpr int, rhsScope *Scope) {
	owner := target.scope.resolve(target.field)
	s := &owner.slots[target.field-owner.start]
	s.state = slotDeferred
	s.deferredExpr = rhsExpr
	s.deferredScope = rhsScope
}

func (e *Evaluator) getField(scope *Scope, idx ast.FieldIndex) (value.Value, *diag.Error) {
	owner := scope.resolve(idx)
	if owner == nil {
		return nil, diag.New(diag.FieldNotSet, diag.Range{}, "field has not been set")
	}
	s := &owner.slots[idx-owner.start]
	switch s.state {
	case slotDone:
		return s.value, s.err
	case slotInProgress:
		return nil, diag.New(diag.CircularDependency, diag.Range{}, "field depends on its own value")
	case slotDeferred:
		s.state = slotInProgress
		v, err := e.evalExpr(s.deferredExpr, s.deferredScope)
		s.state = slotDone
		s.value, s.err = v, err
		return v, err
	default:
		return nil, diag.New(diag.FieldNotSet, diag.Range{}, "field has not been set")
	}
}

func (e *Evaluator) setField(scope *Scope, idx ast.FieldIndex, v value.Value) *diag.Error {
	owner := scope.resolve(idx)
	if owner == nil {
		return diag.New(diag.FieldNotSet, diag.Range{}, "field has not been set")
	}
	s := &owner.slots[idx-owner.start]
	s.state = slotDone
	s.value, s.err = v, nil
	return nil
}
