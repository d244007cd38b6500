package main

import (
	"fmt"
	"strings"

	"github.com/berg-lang/berg/diag"
)

// renderDiagnostic formats err in the Rust/Clang-style snippet-with-caret
// layout the teacher's ParseError.createCodeSnippet uses, resolving the
// error's byte range to a 1-based line/column against source.
func renderDiagnostic(name string, source []byte, err *diag.Error) string {
	line, col, lineText := locate(source, err.Range.Start)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", err.Kind, err.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", name, line, col)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%3d | %s\n", line, lineText)
	b.WriteString("    | ")
	if col > 0 && col <= len(lineText)+1 {
		b.WriteString(strings.Repeat(" ", col-1) + "^")
	}
	for i, f := range err.Frames {
		if i == 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n  in %s (%s)", f.Boundary, f.Position)
	}
	return b.String()
}

// locate converts a byte offset into a 1-based line, 1-based column, and
// the full text of that line. Spec.md §3 fixes byte positions as 0-based
// and line/column as 1-based.
func locate(source []byte, offset uint32) (line, col int, lineText string) {
	line = 1
	lineStart := 0
	for i := 0; i < int(offset) && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := lineStart
	for lineEnd < len(source) && source[lineEnd] != '\n' {
		lineEnd++
	}
	col = int(offset) - lineStart + 1
	return line, col, string(source[lineStart:lineEnd])
}
