// Package cmd wires the cobra command tree for the hikaya CLI: run,
// repl, and version. run and repl each build their own Host Invocation
// Service registry, Task Scheduler, and Evaluator.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/hostinvoke"
	"github.com/hikayalang/hikaya/internal/scheduler"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hikaya",
	Short: "hikaya interpreter",
	Long: `hikaya runs programs written in a small imperative, dynamically-typed
scripting language with Arabic-script surface syntax.

This binary wires the runtime core's Evaluator, Context Tree, Task
Scheduler, and Host Invocation Service into a command-line front end; it
does not itself implement the grammar, lexer, or parser, which are
supplied by an embedder's frontend.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "accepted; has no effect")
}

// ExitCodeFor maps a command error to the process exit code spec.md §6
// fixes: 0 on success (the zero value, never passed here), 1 for a
// user-visible error (bad input, a catchable runtime error kind, a
// frontend parse failure), 2 for an internal bug.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var rerr *herr.RuntimeError
	if errors.As(err, &rerr) && rerr.Kind == herr.InternalBug {
		return 2
	}
	return 1
}

func newRegistryAndScheduler() (*hostinvoke.Registry, *scheduler.Scheduler) {
	return hostinvoke.NewRegistry(), scheduler.New()
}
