package main

import (
	"os"
	"time"

	"github.com/parsercraft/parsercraft"
	"github.com/parsercraft/parsercraft/config"
	"github.com/parsercraft/parsercraft/grammar"
	"github.com/parsercraft/parsercraft/langdef"
)

// Error codes used by the command wrapper:
const fileError = parsercraft.GrammarErrors + 90

// loadGrammar reads and builds a grammar, applying an optional start-rule
// override from the configuration.
func loadGrammar(path string, cfg *config.Config) (*grammar.Grammar, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, parsercraft.FormatError(fileError, "cannot read grammar %s: %s", path, e)
	}

	started := time.Now()
	g, err := langdef.ParseBytes(path, data)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.StartRule != "" {
		if err = g.SetStart(cfg.StartRule); err != nil {
			return nil, err
		}
	}
	if err = g.Build(); err != nil {
		return nil, err
	}

	log.Debugf("grammar %s: %d rules, start %q, loaded in %s",
		path, g.Len(), g.Start(), time.Since(started))
	return g, nil
}

// loadConfig loads an optional language configuration; an empty path
// yields nil.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

func readSource(path string) (string, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return "", parsercraft.FormatError(fileError, "cannot read source %s: %s", path, e)
	}
	return string(data), nil
}
