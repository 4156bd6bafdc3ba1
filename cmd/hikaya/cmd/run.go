package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hikayalang/hikaya/internal/context"
	"github.com/hikayalang/hikaya/internal/evaluator"
	"github.com/hikayalang/hikaya/internal/frontend"
	"github.com/hikayalang/hikaya/internal/values"
)

var (
	evalExpr string
	debug    bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a hikaya program",
	Long: `Execute a hikaya program from a file or inline expression.

Examples:
  hikaya run script.hky
  hikaya run -e "اطبع(\"مرحبا\")"
  hikaya run --debug script.hky`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&debug, "debug", false, "print the program's result to stderr after execution (no context-tree or task dump)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string
	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	parse := frontend.Unimplemented()
	program, perrs := parse.Parse(filename, source)
	if len(perrs) > 0 {
		for _, e := range perrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	hosts, sched := newRegistryAndScheduler()
	eval := evaluator.NewEvaluator(hosts, sched)

	root, err := context.Register(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to start runtime: %w", err)
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] running %s\n", filename)
	}

	argTuple := values.NewTuple(nil)
	result, err := eval.EvalProgram(root, program, argTuple)
	if err != nil {
		return err
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[debug] result: %s\n", result.String())
	}
	if _, isNone := result.(values.None); !isNone {
		fmt.Println(result.String())
	}
	return nil
}
