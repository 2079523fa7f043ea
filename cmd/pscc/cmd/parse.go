package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/lexer"
	"github.com/hiperion-pscc/pscc/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpTree bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print the resulting tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-ast", false, "print an indented tree instead of the flat source rendering")
}

func runParse(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args[0])
	if err != nil {
		return withExitCode(ExitBadArgument, err)
	}

	l := lexer.New(strings.NewReader(src))
	p := parser.New(l, src, filename)
	prog := p.Parse()

	if p.Errors().HasErrors() {
		fmt.Fprint(os.Stderr, p.Errors().Format())
		return withExitCode(classifyDiagnostics(p.Errors()), fmt.Errorf("parsing failed"))
	}

	if parseDumpTree {
		dumpBlock(prog.Block, 0)
	} else {
		fmt.Println(prog.String())
	}
	return nil
}

func readSource(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func dumpBlock(b *ast.Block, indent int) {
	pad := strings.Repeat("  ", indent)
	for c := b.Consts; c != nil; c = c.Next {
		fmt.Printf("%sconst %s\n", pad, c.String())
	}
	for v := b.Vars; v != nil; v = v.Next {
		fmt.Printf("%svar %s\n", pad, v.String())
	}
	for d := b.PFDecl; d != nil; d = d.Next {
		if d.Proc != nil {
			fmt.Printf("%s%s\n", pad, d.Proc.String())
			dumpBlock(d.Proc.Body, indent+1)
		} else {
			fmt.Printf("%s%s\n", pad, d.Func.String())
			dumpBlock(d.Func.Body, indent+1)
		}
	}
	if b.Body != nil {
		fmt.Printf("%sbegin\n", pad)
		for s := b.Body.Stmts; s != nil; s = s.Next {
			fmt.Printf("%s  %s\n", pad, s.Stmt.String())
		}
		fmt.Printf("%send\n", pad)
	}
}
