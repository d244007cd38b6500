package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/diag"
	"github.com/berg-lang/berg/parser"
)

// shapeEvent is a flattened, comparable projection of one ast.Token: its
// kind, its boundary (for Open/Close), and its operator identifier (for
// infix/prefix operators). Literal/field payloads are deliberately dropped
// so a table-driven test can assert on nesting shape alone.
type shapeEvent struct {
	Kind     ast.TokenKind
	Boundary ast.Boundary
	Ident    ast.Identifier
}

func shapeOf(tree *ast.AST) []shapeEvent {
	events := make([]shapeEvent, 0, tree.Len())
	for i := 0; i < tree.Len(); i++ {
		tok := tree.Tokens[i]
		ev := shapeEvent{Kind: tok.Kind}
		switch tok.Kind {
		case ast.TokOpen, ast.TokClose, ast.TokCloseBlock:
			ev.Boundary = tok.Boundary
		case ast.TokInfixOperator, ast.TokPrefixOperator, ast.TokPostfixOperator:
			ev.Ident = tok.Ident
		}
		events = append(events, ev)
	}
	return events
}

func TestParseSimpleArithmetic(t *testing.T) {
	tree, errs := parser.Parse("test", []byte("1 + 2 * 3"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tree.Tokens[0].Kind != ast.TokOpen || tree.Tokens[0].Boundary != ast.BoundarySource {
		t.Fatalf("expected the stream to open with a Source boundary")
	}
}

func TestParseResolvesFields(t *testing.T) {
	tree, errs := parser.Parse("test", []byte("a = 1\na + 1"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var refs []ast.Token
	for _, tok := range tree.Tokens {
		if tok.Kind == ast.TokFieldReference {
			refs = append(refs, tok)
		}
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 field references, got %d", len(refs))
	}
	if refs[0].Field != refs[1].Field {
		t.Error("expected both references to 'a' to share a field")
	}
}

func TestParsePrecedenceNesting(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		events []shapeEvent
	}{
		{
			name:  "multiplication nests inside addition",
			input: "1 + 2 * 3",
			events: []shapeEvent{
				{Kind: ast.TokOpen, Boundary: ast.BoundarySource},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokInfixOperator, Ident: ast.IdentPlus},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokInfixOperator, Ident: ast.IdentStar},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokClose, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokClose, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokCloseBlock, Boundary: ast.BoundarySource},
			},
		},
		{
			name:  "parens override precedence",
			input: "(1 + 2) * 3",
			events: []shapeEvent{
				{Kind: ast.TokOpen, Boundary: ast.BoundarySource},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryCompoundTerm},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryParentheses},
				{Kind: ast.TokOpen, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokInfixOperator, Ident: ast.IdentPlus},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokClose, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokClose, Boundary: ast.BoundaryParentheses},
				{Kind: ast.TokClose, Boundary: ast.BoundaryCompoundTerm},
				{Kind: ast.TokInfixOperator, Ident: ast.IdentStar},
				{Kind: ast.TokIntegerLiteral},
				{Kind: ast.TokClose, Boundary: ast.BoundaryPrecedenceGroup},
				{Kind: ast.TokCloseBlock, Boundary: ast.BoundarySource},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, errs := parser.Parse("test", []byte(tt.input))
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if diff := cmp.Diff(tt.events, shapeOf(tree)); diff != "" {
				t.Errorf("unexpected token shape (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnterminatedParenReportsOpenWithoutClose(t *testing.T) {
	_, errs := parser.Parse("test", []byte("(1"))
	found := false
	for _, e := range errs {
		if e.Kind == diag.OpenWithoutClose {
			found = true
		}
	}
	if !found {
		t.Error("expected an OpenWithoutClose diagnostic")
	}
}
