// Package binder performs the single walk that turns raw identifiers into
// resolved field slots and establishes block scoping (spec.md §4.5). It is
// the last stage before the AST is complete: it owns the ast.AST being
// built and appends to it directly rather than forwarding to a further
// Sink.
//
// Grounded on original_source/berg-compiler/src/parser/binder.rs: a raw
// identifier not immediately preceded by '.' is a field access or
// declaration (a reserved spelling such as `if` or `true` stays a raw
// identifier unless it follows the ':' declaration marker), resolved against a flat, truncate-on-scope-exit name stack
// (separate from the AST's own append-only Fields vector, which never
// shrinks); a ':' immediately before the identifier marks it a local
// declaration and searches only the innermost scope; a ':' arriving later,
// as an infix operator after an already-resolved field reference, flips
// that field public in place — forking it into a fresh local field first
// if it turned out to name something from an enclosing scope, since `x: 1`
// always declares a local no matter what `x` resolved to a moment earlier.
package binder

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/core/invariant"
	"github.com/berg-lang/berg/diag"
)

// openScope is the binder's bookkeeping for one currently-open block: which
// AST block it corresponds to, and where in the name-resolution stack its
// own declarations begin.
type openScope struct {
	block      ast.BlockIndex
	scopeStart int
}

// Binder consumes a grouped token stream and produces a complete ast.AST.
type Binder struct {
	tree       *ast.AST
	openScopes []openScope
	scope      []ast.FieldIndex
}

// New returns a binder that builds a fresh AST for name/source, with its
// implicit root scope already open.
func New(name string, source []byte) *Binder {
	b := &Binder{tree: ast.NewAST(name, source)}
	root := b.tree.PushBlock(ast.Block{Boundary: ast.BoundaryRoot, Parent: 0, ScopeStart: 0})
	b.openScopes = append(b.openScopes, openScope{block: root, scopeStart: 0})
	return b
}

// Result returns the AST built so far. Call once the grouped stream has
// been fully consumed.
func (b *Binder) Result() *ast.AST {
	return b.tree
}

// Emit accepts one token from the grouper. It satisfies grouper.Sink by
// structural typing; the two packages do not import each other.
func (b *Binder) Emit(tok ast.Token) {
	switch tok.Kind {
	case ast.TokRawIdentifier:
		if b.precededByDot() {
			b.push(tok)
			return
		}
		b.pushFieldReference(tok.Ident, tok.Range)

	case ast.TokOpen:
		if tok.Boundary.IsBlock() {
			b.pushOpenScope(tok.Boundary)
		}
		b.push(tok)

	case ast.TokClose:
		if tok.Boundary.IsBlock() {
			blockIdx := b.popScope(tok.Delta)
			tok.Kind = ast.TokCloseBlock
			tok.Block = blockIdx
		}
		b.push(tok)

	case ast.TokInfixOperator:
		if tok.Ident == ast.IdentColon {
			b.pushDeclarationColon(tok)
			return
		}
		b.push(tok)

	default:
		// TokIntegerLiteral, TokErrorTerm, TokRawErrorTerm,
		// TokMissingExpression, TokPrefixOperator (including the ':'
		// declaration marker itself, resolved when the identifier that
		// follows it is bound), TokPostfixOperator, TokInfixAssignment,
		// TokApply, TokNewlineSequence, TokCloseBlock (never produced
		// upstream of the binder) all pass through unchanged.
		b.push(tok)
	}
}

func (b *Binder) push(tok ast.Token) {
	b.tree.Push(tok)
}

func (b *Binder) lastToken() (ast.Token, bool) {
	n := len(b.tree.Tokens)
	if n == 0 {
		return ast.Token{}, false
	}
	return b.tree.Tokens[n-1], true
}

func (b *Binder) precededByDot() bool {
	last, ok := b.lastToken()
	return ok && last.Kind == ast.TokInfixOperator && last.Ident == ast.IdentDot
}

// pushFieldReference resolves a raw identifier to a field slot. A ':'
// immediately before it (the declaration-target prefix, e.g. ":x = 1")
// restricts the search to the current block's own declarations and marks
// the resolved field public.
func (b *Binder) pushFieldReference(name ast.Identifier, r diag.Range) {
	last, ok := b.lastToken()
	isDeclaration := ok && last.Kind == ast.TokPrefixOperator && last.Ident == ast.IdentColon
	if !isDeclaration && ast.IsReserved(name) {
		b.push(ast.Token{Kind: ast.TokRawIdentifier, Range: r, Ident: name})
		return
	}

	field, found := b.findField(name, isDeclaration)
	if !found {
		field = b.createField(name, isDeclaration)
	}
	if isDeclaration {
		b.tree.Fields[field].Public = true
	}
	b.push(ast.Token{Kind: ast.TokFieldReference, Range: r, Field: field})
}

// pushDeclarationColon handles ':' used as an infix operator after an
// already-resolved field reference (e.g. "x: 1"): it always declares a
// local, flipping the field public, and forking a fresh local copy first
// if the field actually belonged to an enclosing scope.
func (b *Binder) pushDeclarationColon(tok ast.Token) {
	n := len(b.tree.Tokens)
	if n > 0 && b.tree.Tokens[n-1].Kind == ast.TokFieldReference {
		field := b.tree.Tokens[n-1].Field
		if int(field) < b.currentScope().scopeStart {
			name := b.tree.Fields[field].Name
			newField := b.createField(name, true)
			b.tree.Tokens[n-1].Field = newField
		} else {
			b.tree.Fields[field].Public = true
		}
	}
	b.push(tok)
}

// findField searches the name-resolution stack for name: a declaration
// only ever searches the innermost block's own slots (so a nested
// redeclaration shadows rather than rebinding an outer field); a plain
// reference searches outward through every enclosing scope.
func (b *Binder) findField(name ast.Identifier, isDeclaration bool) (ast.FieldIndex, bool) {
	start := 0
	if isDeclaration {
		start = b.currentScope().scopeStart
	}
	for i := len(b.scope) - 1; i >= start; i-- {
		idx := b.scope[i]
		if b.tree.Fields[idx].Name == name {
			return idx, true
		}
	}
	return 0, false
}

func (b *Binder) createField(name ast.Identifier, public bool) ast.FieldIndex {
	idx := b.tree.PushField(ast.Field{Name: name, Public: public})
	b.scope = append(b.scope, idx)
	return idx
}

func (b *Binder) currentScope() openScope {
	return b.openScopes[len(b.openScopes)-1]
}

// pushOpenScope opens a new block nested in the current one. Parent
// records how many entries back in AST.Blocks the enclosing block sits,
// not always 1: sibling blocks opened and closed earlier at the same
// depth occupy positions in between.
func (b *Binder) pushOpenScope(boundary ast.Boundary) {
	parentIdx := b.currentScope().block
	newIdx := ast.BlockIndex(len(b.tree.Blocks))
	block := ast.Block{
		Boundary:   boundary,
		Parent:     int32(newIdx) - int32(parentIdx),
		ScopeStart: ast.FieldIndex(len(b.tree.Fields)),
	}
	b.tree.PushBlock(block)
	b.openScopes = append(b.openScopes, openScope{block: newIdx, scopeStart: len(b.scope)})
}

// popScope closes the current block: its ScopeCount covers every field
// declared since it opened, including its children's (the Fields vector is
// append-only and blocks nest, so that range is always contiguous), and
// Delta is the grouper-computed Open/Close token distance carried on the
// boundary token itself.
func (b *Binder) popScope(delta int32) ast.BlockIndex {
	invariant.Invariant(len(b.openScopes) > 1, "popScope must never close the implicit root scope")
	n := len(b.openScopes)
	top := b.openScopes[n-1]
	b.openScopes = b.openScopes[:n-1]

	block := b.tree.Blocks[top.block]
	block.ScopeCount = int32(len(b.tree.Fields)) - int32(block.ScopeStart)
	invariant.Invariant(block.ScopeCount >= 0, "scope count must not go negative: fields shrank while block %d was open", top.block)
	block.Delta = delta
	b.tree.Blocks[top.block] = block

	invariant.Precondition(top.scopeStart <= len(b.scope), "scope truncation index %d out of range for name stack of length %d", top.scopeStart, len(b.scope))
	b.scope = b.scope[:top.scopeStart]
	return top.block
}
