package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parsercraft/parsercraft/parser"
)

type parseParams struct {
	grammarPath string
	configPath  string
	asJSON      bool
}

func newParseCommand() *cobra.Command {
	params := parseParams{}

	cmd := &cobra.Command{
		Use:   "parse [flags] <source-file>",
		Short: "Parse a source file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runParse(params, args[0])
		},
	}

	cmd.Flags().StringVarP(&params.grammarPath, "grammar", "g", "", "PEG grammar file (required)")
	cmd.Flags().StringVarP(&params.configPath, "config", "c", "", "language configuration file")
	cmd.Flags().BoolVar(&params.asJSON, "json", false, "print the AST as JSON")
	_ = cmd.MarkFlagRequired("grammar")
	return cmd
}

func runParse(params parseParams, sourcePath string) error {
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

	started := time.Now()
	root, err := p.Parse(sourcePath, text)
	if err != nil {
		return err
	}
	log.Debugf("parsed %s in %s", sourcePath, time.Since(started))

	if params.asJSON {
		out, e := json.MarshalIndent(root.ToMap(), "", "  ")
		if e != nil {
			return e
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Print(root.Pretty())
	return nil
}
