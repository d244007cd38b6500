package ast

// MatchingClose returns the index of the Close (or CloseBlock) token that
// matches the Open token at index i, computed from the stored Delta rather
// than a materialized pointer.
func (a *AST) MatchingClose(i int) int {
	return i + int(a.Tokens[i].Delta)
}

// MatchingOpen returns the index of the Open token that matches the Close
// (or CloseBlock) token at index j.
func (a *AST) MatchingOpen(j int) int {
	return j - int(a.Tokens[j].Delta)
}

// EndOf returns the index just past the subtree rooted at the expression
// token i: for a Term, i+1; for a Prefix, the end of its operand subtree;
// for an Open, the index just past its matching Close. i must name an
// expression-fixity token.
func (a *AST) EndOf(i int) int {
	t := a.Tokens[i]
	switch t.Kind.Fixity() {
	case FixityTerm:
		return i + 1
	case FixityPrefix:
		return a.EndOf(i + 1)
	case FixityOpen:
		return a.MatchingClose(i) + 1
	default:
		return i + 1
	}
}

// RightChild returns the index of the token immediately to the right of an
// expression token that expects one (Open, Prefix), or -1 if i has no right
// child slot.
func (a *AST) RightChild(i int) int {
	if !a.Tokens[i].Kind.Fixity().HasRightOperand() {
		return -1
	}
	return i + 1
}

// Operand returns, for an infix/postfix/close token at index i, the index
// of the expression subtree immediately to its left — i.e. the start of
// the left operand's subtree, found by scanning backward for the token
// whose EndOf reaches i.
func (a *AST) Operand(i int) int {
	j := i - 1
	for j >= 0 {
		if a.Tokens[j].Kind.Fixity().IsExpressionFixity() && a.EndOf(j) == i {
			return j
		}
		if a.Tokens[j].Kind.Fixity() == FixityClose {
			j = a.MatchingOpen(j)
			continue
		}
		j--
	}
	return -1
}

// Inner returns the first token index strictly inside the boundary opened
// at i (i.e. i+1), or -1 if the boundary is empty (its Close immediately
// follows its Open).
func (a *AST) Inner(i int) int {
	if a.Tokens[i].Kind.Fixity() != FixityOpen {
		return -1
	}
	inner := i + 1
	if inner >= a.MatchingClose(i) {
		return -1
	}
	return inner
}

// BlockAt returns the block descriptor referenced by a CloseBlock token.
func (a *AST) BlockAt(closeBlockIdx int) Block {
	return a.Blocks[a.Tokens[closeBlockIdx].Block]
}
