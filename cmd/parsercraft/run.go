package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/parsercraft/parsercraft/backend"
	"github.com/parsercraft/parsercraft/parser"
)

type runParams struct {
	grammarPath string
	configPath  string
}

func newRunCommand() *cobra.Command {
	params := runParams{}

	cmd := &cobra.Command{
		Use:   "run [flags] <source-file>",
		Short: "Parse and execute a source file, printing top-level bindings",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRun(params, args[0])
		},
	}

	cmd.Flags().StringVarP(&params.grammarPath, "grammar", "g", "", "PEG grammar file (required)")
	cmd.Flags().StringVarP(&params.configPath, "config", "c", "", "language configuration file")
	_ = cmd.MarkFlagRequired("grammar")
	return cmd
}

func runRun(params runParams, sourcePath string) error {
	cfg, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}
	g, err := loadGrammar(params.grammarPath, cfg)
	if err != nil {
		return err
	}
	text, err := readSource(sourcePath)
	if err != nil {
		return err
	}

	p, err := parser.New(g)
	if err != nil {
		return err
	}
	root, err := p.Parse(sourcePath, text)
	if err != nil {
		return err
	}

	opts := backend.Options{}
	if cfg != nil {
		opts = cfg.Options()
	}
	bindings, err := backend.NewHighLevel(opts).Execute(root)
	if err != nil {
		return err
	}

	printBindings(bindings)
	return nil
}

func printBindings(bindings map[string]float64) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %s\n", name, formatNumber(bindings[name]))
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
