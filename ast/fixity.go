package ast

// Fixity is the syntactic position of a token: term, prefix, infix,
// postfix, open or close (spec.md §3, grounded on
// original_source/berg-compiler/src/syntax/fixity.rs).
type Fixity int

const (
	FixityTerm Fixity = iota
	FixityPrefix
	FixityInfix
	FixityPostfix
	FixityOpen
	FixityClose
)

func (f Fixity) String() string {
	switch f {
	case FixityTerm:
		return "term"
	case FixityPrefix:
		return "unary"
	case FixityInfix:
		return "binary"
	case FixityPostfix:
		return "postfix"
	case FixityOpen:
		return "open"
	case FixityClose:
		return "close"
	default:
		return "unknown"
	}
}

// NumOperands is how many operands a token of this fixity takes.
func (f Fixity) NumOperands() int {
	switch f {
	case FixityTerm:
		return 0
	case FixityInfix:
		return 2
	default:
		return 1
	}
}

// HasLeftOperand reports whether a token of this fixity expects a left
// operand already on the stack (infix, postfix, close).
func (f Fixity) HasLeftOperand() bool {
	switch f {
	case FixityInfix, FixityPostfix, FixityClose:
		return true
	default:
		return false
	}
}

// HasRightOperand reports whether a token of this fixity expects a right
// operand to follow (infix, prefix, open).
func (f Fixity) HasRightOperand() bool {
	switch f {
	case FixityInfix, FixityPrefix, FixityOpen:
		return true
	default:
		return false
	}
}

// IsExpressionFixity reports whether a token of this fixity appears where a
// term or prefix is expected (spec.md §3 "Expression tokens").
func (f Fixity) IsExpressionFixity() bool {
	switch f {
	case FixityTerm, FixityPrefix, FixityOpen:
		return true
	default:
		return false
	}
}

// TakesRightChild reports whether a token of fixity f can take, as its
// right child, a token whose fixity is right. This is the exact
// compatibility table from fixity.rs: terms/prefixes/opens are fine as the
// right child of any token that takes one; terms, postfixes and closes
// never take a right child at all; prefixes only ever descend into another
// term/prefix/open; opens take any operator; infix takes postfix (for
// `a++`-shaped right children) but never another infix or a close.
func (f Fixity) TakesRightChild(right Fixity) bool {
	expression := right == FixityTerm || right == FixityPrefix || right == FixityOpen
	switch f {
	case FixityTerm, FixityPostfix, FixityClose:
		return false
	case FixityPrefix:
		return expression
	case FixityOpen:
		return true
	case FixityInfix:
		return expression || right == FixityPostfix
	default:
		return false
	}
}

// Boundary names the kind of an Open/Close token pair (spec.md §3).
type Boundary int

const (
	BoundaryRoot Boundary = iota
	BoundarySource
	BoundaryParentheses
	BoundaryCurlyBraces
	BoundaryCompoundTerm
	BoundaryPrecedenceGroup
	BoundaryAutoBlock
	BoundaryIndentedBlock
	BoundaryIndentedExpression
)

func (b Boundary) String() string {
	switch b {
	case BoundaryRoot:
		return "root"
	case BoundarySource:
		return "source"
	case BoundaryParentheses:
		return "parentheses"
	case BoundaryCurlyBraces:
		return "curly braces"
	case BoundaryCompoundTerm:
		return "compound term"
	case BoundaryPrecedenceGroup:
		return "precedence group"
	case BoundaryAutoBlock:
		return "auto block"
	case BoundaryIndentedBlock:
		return "indented block"
	case BoundaryIndentedExpression:
		return "indented expression"
	default:
		return "unknown boundary"
	}
}

// IsBlock reports whether entering this boundary introduces a new lexical
// scope (spec.md §3: curly braces, auto-block, indented block, source,
// root).
func (b Boundary) IsBlock() bool {
	switch b {
	case BoundaryCurlyBraces, BoundaryAutoBlock, BoundaryIndentedBlock, BoundarySource, BoundaryRoot:
		return true
	default:
		return false
	}
}

// Precedence is the binding strength of an infix operator (spec.md §4.4).
// Lower values bind more loosely; an operator's right child must have
// strictly higher precedence to avoid a sub-boundary.
type Precedence int

const (
	PrecedenceNewlineSequence Precedence = iota
	PrecedenceSemicolonSequence
	PrecedenceFollowedBy
	PrecedenceColonDeclaration
	PrecedenceAssign
	PrecedenceCommaSequence
	PrecedenceOr
	PrecedenceAnd
	PrecedenceComparison
	PrecedencePlusMinus
	PrecedenceTimesDivide
	PrecedenceDot
)

// DefaultPrecedence is used for any infix identifier not named below,
// matching the original's DEFAULT_PRECEDENCE = PlusMinus.
const DefaultPrecedence = PrecedencePlusMinus

// PrecedenceOf returns the precedence of an infix operator identifier.
func PrecedenceOf(id Identifier) Precedence {
	switch id {
	case IdentDot:
		return PrecedenceDot
	case IdentStar, IdentSlash:
		return PrecedenceTimesDivide
	case IdentPlus, IdentMinus:
		return PrecedencePlusMinus
	case IdentEqualTo, IdentNotEqualTo, IdentLessThan, IdentLessOrEqual, IdentGreaterThan, IdentGreaterOrEqual:
		return PrecedenceComparison
	case IdentAndAnd:
		return PrecedenceAnd
	case IdentOrOr:
		return PrecedenceOr
	case IdentComma:
		return PrecedenceCommaSequence
	case IdentAssign, IdentPlusAssign, IdentMinusAssign, IdentStarAssign, IdentSlashAssign, IdentAndAssign, IdentOrAssign:
		return PrecedenceAssign
	case IdentColon:
		return PrecedenceColonDeclaration
	case IdentSemicolon:
		return PrecedenceSemicolonSequence
	case IdentApply:
		return PrecedenceFollowedBy
	case IdentNewlineSequence:
		return PrecedenceNewlineSequence
	default:
		return DefaultPrecedence
	}
}

// TakesRightChild reports whether an operator at precedence p can directly
// take, as its right child, an infix operator at precedence right — i.e.
// whether right binds strictly tighter. Equal precedence is left
// associative (the right side does NOT bind directly) except that Assign
// and ColonDeclaration are right-associative via the grouper's bracketing,
// handled separately in the grouper.
func (p Precedence) TakesRightChild(right Precedence) bool {
	return right > p
}
