package ast

import "github.com/berg-lang/berg/diag"

// TokenKind discriminates the token union from spec.md §3. A Token's Kind
// determines which of its payload fields are meaningful; unused fields are
// left zero.
type TokenKind uint8

const (
	// Expression tokens (appear where a term or prefix is expected).
	TokIntegerLiteral TokenKind = iota
	TokRawIdentifier
	TokFieldReference
	TokErrorTerm
	TokRawErrorTerm
	TokMissingExpression
	TokPrefixOperator
	TokOpen

	// Operator tokens (appear where an infix/postfix is expected).
	TokInfixOperator
	TokInfixAssignment
	TokPostfixOperator
	TokApply
	TokNewlineSequence
	TokClose
	TokCloseBlock
)

// Fixity returns the fixity implied by a token's kind (spec.md §3).
func (k TokenKind) Fixity() Fixity {
	switch k {
	case TokIntegerLiteral, TokRawIdentifier, TokFieldReference, TokErrorTerm, TokRawErrorTerm, TokMissingExpression:
		return FixityTerm
	case TokPrefixOperator:
		return FixityPrefix
	case TokOpen:
		return FixityOpen
	case TokInfixOperator, TokInfixAssignment, TokApply, TokNewlineSequence:
		return FixityInfix
	case TokPostfixOperator:
		return FixityPostfix
	case TokClose, TokCloseBlock:
		return FixityClose
	default:
		return FixityTerm
	}
}

func (k TokenKind) String() string {
	switch k {
	case TokIntegerLiteral:
		return "IntegerLiteral"
	case TokRawIdentifier:
		return "RawIdentifier"
	case TokFieldReference:
		return "FieldReference"
	case TokErrorTerm:
		return "ErrorTerm"
	case TokRawErrorTerm:
		return "RawErrorTerm"
	case TokMissingExpression:
		return "MissingExpression"
	case TokPrefixOperator:
		return "PrefixOperator"
	case TokOpen:
		return "Open"
	case TokInfixOperator:
		return "InfixOperator"
	case TokInfixAssignment:
		return "InfixAssignment"
	case TokPostfixOperator:
		return "PostfixOperator"
	case TokApply:
		return "Apply"
	case TokNewlineSequence:
		return "NewlineSequence"
	case TokClose:
		return "Close"
	case TokCloseBlock:
		return "CloseBlock"
	default:
		return "Unknown"
	}
}

// FieldIndex indexes into AST.Fields.
type FieldIndex int32

// BlockIndex indexes into AST.Blocks.
type BlockIndex int32

// LiteralIndex indexes into a literal pool (AST.Numbers or AST.RawTerms).
type LiteralIndex int32

// Token is one element of the flat, indexed token stream (spec.md §3/§4.6).
// Exactly one payload group is meaningful per Kind:
//
//	TokIntegerLiteral         -> Literal  (index into AST.Numbers)
//	TokRawIdentifier          -> Ident
//	TokFieldReference         -> Field
//	TokErrorTerm              -> ErrorKind, Literal (index into AST.Numbers, re-used for the lexeme)
//	TokRawErrorTerm           -> ErrorKind, Literal (index into AST.RawTerms)
//	TokPrefixOperator         -> Ident
//	TokOpen                   -> Boundary, Delta, HasError
//	TokInfixOperator          -> Ident
//	TokInfixAssignment        -> Ident (the operator combined with `=`, e.g. IdentPlusAssign)
//	TokPostfixOperator        -> Ident
//	TokClose                  -> Boundary, Delta
//	TokCloseBlock             -> Boundary, Delta, Block
type Token struct {
	Kind     TokenKind
	Range    diag.Range
	Ident    Identifier
	Field    FieldIndex
	Literal  LiteralIndex
	ErrorKind diag.Kind
	Boundary Boundary
	Delta    int32 // token-index distance to the matching Open/Close
	Block    BlockIndex
	HasError bool
}

// IsExpression reports whether this token occupies an expression-token
// (term-or-prefix) slot (spec.md §3).
func (t Token) IsExpression() bool {
	return t.Kind.Fixity().IsExpressionFixity()
}
