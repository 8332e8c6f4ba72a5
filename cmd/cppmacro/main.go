package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gocc/macroexpand/pkg/cpp"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

var (
	lineFlag uint32
)

func newRootCmd(out, errOut *os.File) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cppmacro <fixture.yaml>",
		Short:         "cppmacro runs a macro-expansion fixture through the expansion engine",
		Long: `cppmacro loads a YAML fixture describing a directive table and an
input line, runs the macro expansion engine over it, and prints the
expanded output.`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixture(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.Flags().Uint32Var(&lineFlag, "line", 0, "override the fixture's query line (0 keeps the fixture's line)")
	return rootCmd
}

// fixture is the YAML shape loaded by cppmacro; it is the ambient
// driver spec.md §1 calls an external collaborator, not part of the
// engine itself.
type fixture struct {
	Defines []struct {
		Line uint32 `yaml:"line"`
		Def  string `yaml:"def"`
	} `yaml:"defines"`
	Undefines []struct {
		Line uint32 `yaml:"line"`
		Name string `yaml:"name"`
	} `yaml:"undefines"`
	Input string `yaml:"input"`
	Line  uint32 `yaml:"line"`
}

func runFixture(path string, out, errOut *os.File) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	table := cpp.NewTable()
	for _, d := range fx.Defines {
		table.AddDefine(d.Line, d.Def)
	}
	for _, u := range fx.Undefines {
		table.AddUndefine(u.Line, u.Name)
	}

	line := fx.Line
	if lineFlag != 0 {
		line = lineFlag
	}

	result, err := cpp.MacroExpand(fx.Input, table, line)
	if err != nil {
		fmt.Fprintf(errOut, "cppmacro: %v\n", err)
		return err
	}
	fmt.Fprintln(out, result)
	return nil
}
