package main

import (
	"fmt"
	"strings"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/internal/value"
)

// formatValue renders a value the way the teacher's DisplayPlan renders a
// plan tree: a small per-variant switch producing plain text, not a
// generic reflection-based dump.
func formatValue(pool *ast.Pool, v value.Value) string {
	switch val := v.(type) {
	case value.Boolean:
		if val {
			return "true"
		}
		return "false"
	case value.Rational:
		return val.RatString()
	case value.IdentifierValue:
		return pool.String(ast.Identifier(val))
	case value.Nothing:
		return "()"
	case value.Tuple:
		parts := make([]string, len(val))
		for i := range val {
			parts[len(val)-1-i] = formatValue(pool, val[i])
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case value.ErrorValue:
		return fmt.Sprintf("error: %s", val.Err.Message)
	default:
		return fmt.Sprintf("<%s>", v.TypeName())
	}
}
