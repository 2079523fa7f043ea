package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hiperion-pscc/pscc/internal/asm"
	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/lexer"
	"github.com/hiperion-pscc/pscc/internal/optimize"
	"github.com/hiperion-pscc/pscc/internal/parser"
	"github.com/hiperion-pscc/pscc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	compileOutput  string
	compileVerbose bool
	skipOptimize   bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a source file to the stack VM's textual IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
	compileCmd.Flags().BoolVar(&skipOptimize, "skip-optimize", false, "skip DAG/live-variable optimization passes")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	src, _, err := readSource(filename)
	if err != nil {
		return withExitCode(ExitBadArgument, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "compiling %s\n", filename)
	}

	l := lexer.New(strings.NewReader(src))
	p := parser.New(l, src, filename)
	prog := p.Parse()
	if p.Errors().HasErrors() {
		fmt.Fprint(os.Stderr, p.Errors().Format())
		return withExitCode(classifyDiagnostics(p.Errors()), fmt.Errorf("parsing failed"))
	}

	analyzer := semantic.New(src, filename)
	mainScope := analyzer.Analyze(prog)
	if analyzer.Errs.HasErrors() {
		fmt.Fprint(os.Stderr, analyzer.Errs.Format())
		return withExitCode(classifyDiagnostics(analyzer.Errs), fmt.Errorf("semantic analysis failed"))
	}

	gen := ir.New(analyzer.Table, analyzer.CallableParams())
	list, funcs := gen.Generate(prog, mainScope)

	if !skipOptimize {
		optimize.Run(analyzer.Table, list, funcs)
	}

	out := os.Stdout
	if compileOutput != "" {
		f, err := os.Create(compileOutput)
		if err != nil {
			return withExitCode(ExitBadArgument, err)
		}
		defer f.Close()
		out = f
	}

	if err := asm.New(out).Emit(funcs); err != nil {
		return withExitCode(ExitPanic, err)
	}

	if compileVerbose && compileOutput != "" {
		fmt.Fprintf(os.Stderr, "wrote IR to %s\n", compileOutput)
	}
	return nil
}
