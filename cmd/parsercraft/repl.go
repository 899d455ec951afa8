package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/parsercraft/parsercraft/backend"
	"github.com/parsercraft/parsercraft/incremental"
)

type replParams struct {
	grammarPath string
	configPath  string
}

func newReplCommand() *cobra.Command {
	params := replParams{}

	cmd := &cobra.Command{
		Use:   "repl [flags]",
		Short: "Interactive session over an incrementally parsed buffer",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepl(params)
		},
	}

	cmd.Flags().StringVarP(&params.grammarPath, "grammar", "g", "", "PEG grammar file (required)")
	cmd.Flags().StringVarP(&params.configPath, "config", "c", "", "language configuration file")
	_ = cmd.MarkFlagRequired("grammar")
	return cmd
}

func runRepl(params replParams) error {
	cfg, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}
	g, err := loadGrammar(params.grammarPath, cfg)
	if err != nil {
		return err
	}
	ip, err := incremental.New(g)
	if err != nil {
		return err
	}

	opts := backend.Options{}
	if cfg != nil {
		opts = cfg.Options()
	}
	hl := backend.NewHighLevel(opts)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("parsercraft repl; type \"exit\" to leave")
	buf := ""
	for {
		input, e := line.Prompt("> ")
		if e == io.EOF || e == liner.ErrPromptAborted {
			return nil
		}
		if e != nil {
			return e
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		line.AppendHistory(input)

		var parseErr error
		if buf == "" {
			_, parseErr = ip.Parse("repl", input+"\n")
		} else {
			_, parseErr = ip.ApplyEdit(len(buf), len(buf), input+"\n")
		}
		if parseErr != nil {
			fmt.Println(parseErr.Error())
			if buf != "" {
				// Roll the rejected statement back out of the buffer.
				_, _ = ip.ApplyEdit(len(buf), len(buf)+len(input)+1, "")
			}
			continue
		}
		buf = ip.Source()

		stats := ip.Stats()
		log.Debugf("parse #%d, %d memo cells reused", stats.Parses, stats.ReusedCells)

		bindings, e := hl.Execute(ip.AST())
		if e != nil {
			fmt.Println(e.Error())
			continue
		}
		printBindings(bindings)
	}
}
