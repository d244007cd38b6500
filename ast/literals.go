package ast

// LiteralPool is an append-only store of byte runs taken verbatim from
// source: number lexemes (kept as strings rather than parsed eagerly, so
// Berg can represent arbitrary-precision rationals exactly, spec.md §4.3)
// and the raw bytes underlying an ErrorTerm/RawErrorTerm token (spec.md
// §4.7), e.g. the unsupported characters or invalid UTF-8 run that produced
// the error.
type LiteralPool struct {
	entries []string
}

// NewLiteralPool returns an empty pool.
func NewLiteralPool() *LiteralPool {
	return &LiteralPool{}
}

// Add appends s and returns its index. Unlike the identifier Pool, literal
// pools are not deduplicated: two `1` literals at different source
// positions are two distinct entries, since each is tied to a single token.
func (p *LiteralPool) Add(s string) LiteralIndex {
	idx := LiteralIndex(len(p.entries))
	p.entries = append(p.entries, s)
	return idx
}

// Get returns the byte run stored at idx.
func (p *LiteralPool) Get(idx LiteralIndex) string {
	if int(idx) < 0 || int(idx) >= len(p.entries) {
		return ""
	}
	return p.entries[idx]
}

// Len returns the number of entries in the pool.
func (p *LiteralPool) Len() int {
	return len(p.entries)
}
