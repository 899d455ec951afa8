package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parsercraft/parsercraft/backend"
	"github.com/parsercraft/parsercraft/parser"
)

type translateParams struct {
	grammarPath string
	configPath  string
	target      *enumFlag
	outPath     string
	wrapMain    bool
	sourceMaps  bool
}

func newTranslateCommand() *cobra.Command {
	params := translateParams{target: newEnumFlag(backend.HighLevelName, backend.Names())}

	cmd := &cobra.Command{
		Use:   "translate [flags] <source-file>",
		Short: "Parse a source file and emit a target form",
		Long: "Parse a source file and emit a target form.\n\nTargets: " +
			strings.Join(backend.Names(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTranslate(params, args[0])
		},
	}

	cmd.Flags().StringVarP(&params.grammarPath, "grammar", "g", "", "PEG grammar file (required)")
	cmd.Flags().StringVarP(&params.configPath, "config", "c", "", "language configuration file")
	cmd.Flags().VarP(params.target, "target", "t", "target form")
	cmd.Flags().StringVarP(&params.outPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&params.wrapMain, "main", false, "wrap high-level output in a main guard")
	cmd.Flags().BoolVar(&params.sourceMaps, "source-maps", false, "emit source line comments")
	_ = cmd.MarkFlagRequired("grammar")
	return cmd
}

func runTranslate(params translateParams, sourcePath string) error {
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

	var b backend.Backend
	if params.target.String() == backend.HighLevelName {
		opts := backend.Options{WrapMain: params.wrapMain, SourceMaps: params.sourceMaps}
		if cfg != nil {
			opts = cfg.Options()
			opts.WrapMain = params.wrapMain
			opts.SourceMaps = params.sourceMaps
		}
		b = backend.NewHighLevel(opts)
	} else {
		b, err = backend.New(params.target.String())
		if err != nil {
			return err
		}
	}

	out, err := b.Translate(root)
	if err != nil {
		return err
	}

	if params.outPath != "" {
		return os.WriteFile(params.outPath, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}
