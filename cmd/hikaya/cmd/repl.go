package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hikayalang/hikaya/internal/evaluator"
	"github.com/hikayalang/hikaya/internal/frontend"
	"github.com/hikayalang/hikaya/internal/repl"
)

var (
	scanHostClasspath       bool
	forceRescan             bool
	cacheScanningResults    bool
	includeAllInCompletions bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive hikaya session",
	Long: `Open the REPL Context: a persistent root scope that survives between
inputs, so variables, functions, and behaviors declared on one line
remain visible to the next.

--scan-host-classpath, --force-rescan, --cache-scanning-results, and
--include-all-in-completions are accepted and would be threaded to a
Host Invocation Service implementation that scans the host platform for
classes; this build runs with no such service registered, so these
flags are presently no-ops.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&scanHostClasspath, "scan-host-classpath", false, "scan the host classpath for invocable classes before starting")
	replCmd.Flags().BoolVar(&forceRescan, "force-rescan", false, "ignore any cached scan result and rescan")
	replCmd.Flags().BoolVar(&cacheScanningResults, "cache-scanning-results", false, "persist the scan result for reuse by a later session")
	replCmd.Flags().BoolVar(&includeAllInCompletions, "include-all-in-completions", false, "include host members with no hikaya-visible annotation in completions")
}

func runRepl(_ *cobra.Command, _ []string) error {
	hosts, sched := newRegistryAndScheduler()
	eval := evaluator.NewEvaluator(hosts, sched)

	session, err := repl.New(eval, frontend.Unimplemented())
	if err != nil {
		return err
	}

	fmt.Println("hikaya", Version, "- type a statement and press Enter; Ctrl+D to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line {
		case ":list":
			printDeclarations(session)
			continue
		}
		result, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(result.String())
	}
}

func printDeclarations(session *repl.Session) {
	decls := session.List()
	for _, v := range decls.Variables {
		fmt.Printf("var %s\n", v.Name)
	}
	for _, fn := range decls.Functions {
		fmt.Printf("fn %s/%d\n", fn.Name, fn.Arity())
	}
	for _, im := range decls.Implementations {
		fmt.Printf("behavior %s -> %s\n", im.Name, im.Target)
	}
}
