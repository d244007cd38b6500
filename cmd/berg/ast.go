package main

import (
	"fmt"
	"os"

	"github.com/berg-lang/berg/parser"
	"github.com/berg-lang/berg/source"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump the bound AST's blocks and fields for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, derr := source.LoadFile(resolveRoot(), args[0])
		if derr != nil {
			return derr
		}
		tree, errs := parser.Parse(buf.Name, buf.Bytes)

		fmt.Printf("blocks (%d):\n", len(tree.Blocks))
		for i, b := range tree.Blocks {
			start, end := b.FieldRange()
			fmt.Printf("  %3d  boundary=%v parent=%d fields=[%d,%d)\n", i, b.Boundary, b.Parent, start, end)
		}

		fmt.Printf("fields (%d):\n", len(tree.Fields))
		for i, f := range tree.Fields {
			vis := "private"
			if f.Public {
				vis = "public"
			}
			fmt.Printf("  %3d  %s (%s)\n", i, tree.Identifiers.String(f.Name), vis)
		}

		printTokens(tree)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, renderDiagnostic(buf.Name, buf.Bytes, e))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
