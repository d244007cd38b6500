package main

import (
	"fmt"
	"os"

	"github.com/berg-lang/berg/ast"
	"github.com/berg-lang/berg/parser"
	"github.com/berg-lang/berg/source"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the bound token stream for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, derr := source.LoadFile(resolveRoot(), args[0])
		if derr != nil {
			return derr
		}
		tree, errs := parser.Parse(buf.Name, buf.Bytes)
		printTokens(tree)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, renderDiagnostic(buf.Name, buf.Bytes, e))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func printTokens(tree *ast.AST) {
	for i := 0; i < tree.Len(); i++ {
		tok := tree.Tokens[i]
		text := tree.TokenText(i)
		fmt.Printf("%5d  %-20s [%d,%d) %q", i, tok.Kind, tok.Range.Start, tok.Range.End, text)
		if tok.Kind == ast.TokRawIdentifier || tok.Kind == ast.TokFieldReference {
			fmt.Printf("  ident=%s", tree.Identifiers.String(tok.Ident))
		}
		if tok.Kind == ast.TokPrefixOperator || tok.Kind == ast.TokInfixOperator ||
			tok.Kind == ast.TokPostfixOperator || tok.Kind == ast.TokInfixAssignment {
			fmt.Printf("  op=%s", tree.Identifiers.String(tok.Ident))
		}
		if tok.Kind == ast.TokOpen || tok.Kind == ast.TokClose {
			fmt.Printf("  boundary=%v", tok.Boundary)
		}
		fmt.Println()
	}
}
