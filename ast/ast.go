// Package ast holds Berg's parsed representation: a flat, indexed token
// stream rather than a pointer tree (spec.md §4.6). Tokens, their byte
// ranges and their Open/Close deltas are stored as parallel slices; the
// tree structure used by the binder and evaluator is derived on the fly by
// walking those deltas rather than materialized as a second data structure.
package ast

import "github.com/berg-lang/berg/diag"

// AST is one parsed source file. Zero value is not usable; build one with
// NewAST.
type AST struct {
	Name   string
	Source []byte

	Tokens []Token
	Blocks []Block
	Fields []Field

	Identifiers *Pool
	Numbers     *LiteralPool
	RawTerms    *LiteralPool
}

// NewAST returns an empty AST ready to be populated by the parser pipeline.
func NewAST(name string, source []byte) *AST {
	return &AST{
		Name:        name,
		Source:      source,
		Identifiers: NewPool(),
		Numbers:     NewLiteralPool(),
		RawTerms:    NewLiteralPool(),
	}
}

// Push appends t and returns its index.
func (a *AST) Push(t Token) int {
	idx := len(a.Tokens)
	a.Tokens = append(a.Tokens, t)
	return idx
}

// PushBlock appends b and returns its index.
func (a *AST) PushBlock(b Block) BlockIndex {
	idx := BlockIndex(len(a.Blocks))
	a.Blocks = append(a.Blocks, b)
	return idx
}

// PushField appends f and returns its index.
func (a *AST) PushField(f Field) FieldIndex {
	idx := FieldIndex(len(a.Fields))
	a.Fields = append(a.Fields, f)
	return idx
}

// Text returns the source bytes spanned by r.
func (a *AST) Text(r diag.Range) string {
	if int(r.End) > len(a.Source) || r.Start > r.End {
		return ""
	}
	return string(a.Source[r.Start:r.End])
}

// TokenText returns the exact source bytes underlying a token.
func (a *AST) TokenText(i int) string {
	return a.Text(a.Tokens[i].Range)
}

// Len returns the number of tokens in the stream.
func (a *AST) Len() int {
	return len(a.Tokens)
}
