package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/berg-lang/berg/eval"
	"github.com/berg-lang/berg/parser"
	"github.com/berg-lang/berg/source"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watch bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Load, parse, bind and evaluate a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if watch {
			return runWatch(args[0])
		}
		return runOnce(args[0])
	},
}

func init() {
	runCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever the file changes")
	rootCmd.AddCommand(runCmd)
}

func runOnce(path string) error {
	buf, derr := source.LoadFile(resolveRoot(), path)
	if derr != nil {
		fmt.Fprintln(os.Stderr, derr)
		return errExitCode(1)
	}

	tree, errs := parser.Parse(buf.Name, buf.Bytes)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, renderDiagnostic(buf.Name, buf.Bytes, e))
		}
		return errExitCode(1)
	}

	v, err := eval.New(tree).Eval()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderDiagnostic(buf.Name, buf.Bytes, err))
		return errExitCode(1)
	}

	fmt.Println(formatValue(tree.Identifiers, v))
	return nil
}

// runWatch re-runs path each time it changes, per spec.md §A.4's --watch
// flag; it exercises the file loader continuously rather than once.
func runWatch(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	target := filepath.Base(path)
	_ = runOnce(path)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "--- %s changed, re-running ---\n", path)
			_ = runOnce(path)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", werr)
		}
	}
}

// errExitCode is a sentinel error: main already printed the diagnostic, so
// cobra's own error-printing (disabled via SilenceErrors) must not run
// again, but the process still needs a non-zero exit.
type errExitCode int

func (e errExitCode) Error() string { return "" }
