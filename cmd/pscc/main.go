// Command pscc compiles the Pascal subset to the stack-VM's textual IR
// format. See cmd/pscc/cmd for the lex/parse/compile subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/hiperion-pscc/pscc/cmd/pscc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeFor(err))
	}
}
