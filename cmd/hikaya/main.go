// Command hikaya runs programs written in the scripting language this
// module's runtime core interprets, and opens an interactive session
// against the same evaluator.
package main

import (
	"fmt"
	"os"

	"github.com/hikayalang/hikaya/cmd/hikaya/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
