package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pscc",
	Short: "Pascal-subset compiler for the hiperion stack VM",
	Long: `pscc lexes, parses, and compiles a small Pascal subset down to the
linear three-address IR consumed by the stack VM assembler.

Subcommands:
  lex     tokenize a source file and print the token stream
  parse   parse a source file and print the resulting tree
  compile run the full pipeline and print the assembled IR`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
