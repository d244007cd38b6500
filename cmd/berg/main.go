// Command berg is a thin driver for the interpreter: it loads a source
// file, runs it through the pipeline, and prints the resulting value or a
// formatted diagnostic. It is not the task-running CLI wrapper spec.md §1
// excludes — there is no task graph, no decorators, no shell execution,
// only load/parse/bind/evaluate (the run subcommand) and two small
// debugging subcommands (tokens and ast).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "berg",
	Short:         "Run and inspect Berg programs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a berg.yaml project file")

	if err := rootCmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		os.Exit(1)
	}
}

// resolveRoot returns the root directory to resolve relative source paths
// against: the first entry of --config's Roots, resolved relative to the
// directory containing berg.yaml when it is not absolute; otherwise ""
// (paths then resolve against the current directory).
func resolveRoot() string {
	if configPath == "" {
		return ""
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return ""
	}
	if len(cfg.Roots) > 0 {
		root := cfg.Roots[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(configPath), root)
		}
		return root
	}
	return ""
}
