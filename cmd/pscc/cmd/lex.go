package cmd

import (
	"fmt"
	"os"

	"github.com/hiperion-pscc/pscc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a source file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's source line")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show each token's type name")
}

func runLex(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return withExitCode(ExitBadArgument, err)
	}
	defer f.Close()

	l := lexer.New(f)
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == lexer.ENDFILE {
			break
		}
	}

	for _, e := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error at line %d: %s\n", e.Line, e.Message)
		if e.Fatal {
			return withExitCode(ExitBadToken, fmt.Errorf("lexing failed"))
		}
	}
	return nil
}

func printToken(tok lexer.Token) {
	out := ""
	if lexShowType {
		out += fmt.Sprintf("[%-10s]", tok.Type)
	}
	if tok.Literal != "" {
		out += fmt.Sprintf(" %q", tok.Literal)
	} else {
		out += fmt.Sprintf(" %s", tok.Type)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d", tok.Pos.Line)
	}
	fmt.Println(out)
}
