// Package parser wires scanner, sequencer, tokenizer, grouper and binder
// into the single public entry point for turning source bytes into a
// complete ast.AST (spec.md §2's pipeline table).
package parser

import (
	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/internal/binder"
	"github.com/berg-lang/berg/internal/grouper"
	"github.com/berg-lang/berg/internal/sequencer"
	"github.com/berg-lang/berg/internal/tokenizer"
)

// Parse runs the full front-end pipeline over source and returns the
// resulting AST along with any boundary-balance diagnostics collected
// along the way. A non-empty error slice does not mean the AST is unusable:
// the grouper recovers from unbalanced boundaries by folding the offending
// token back into the surrounding content, so the tree it hands to the
// binder is always well-formed.
func Parse(name string, source []byte) (*ast.AST, []*diag.Error) {
	b := binder.New(name, source)
	tree := b.Result()

	g := grouper.New(b)
	seq := sequencer.New(source, tree.Identifiers)
	tk := tokenizer.New(seq, g, tree.Identifiers, tree.Numbers, tree.RawTerms)
	tk.Run()

	return tree, g.Errors()
}
