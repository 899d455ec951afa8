// Package config loads the language-configuration document consumed by
// the backends. The document is YAML or JSON (JSON parses as YAML); all
// keys are optional and unknown keys are ignored.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/parsercraft/parsercraft"
	"github.com/parsercraft/parsercraft/backend"
)

// Error codes used by the config loader:
const (
	ReadError = parsercraft.GrammarErrors + 80 + iota
	UnmarshalError
)

// Config is a language configuration. Only these keys affect the core;
// anything else in the document belongs to external collaborators.
type Config struct {
	// KeywordMap maps source identifier text to the target's word.
	KeywordMap map[string]string `yaml:"keyword_map"`

	// FunctionMap maps source function names to target function names.
	FunctionMap map[string]string `yaml:"function_map"`

	// OperatorMap maps source operator text to target operator text.
	OperatorMap map[string]string `yaml:"operator_map"`

	// StartRule overrides the grammar's default start rule.
	StartRule string `yaml:"start_rule"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, parsercraft.FormatError(ReadError, "cannot read config %s: %s", path, e)
	}
	return Parse(path, data)
}

// Parse parses a configuration document.
func Parse(name string, data []byte) (*Config, error) {
	var c Config
	if e := yaml.Unmarshal(data, &c); e != nil {
		return nil, parsercraft.FormatError(UnmarshalError, "cannot parse config %s: %s", name, e)
	}
	return &c, nil
}

// Options converts the configuration to high-level transpile options.
func (c *Config) Options() backend.Options {
	return backend.Options{
		KeywordMap:  c.KeywordMap,
		FunctionMap: c.FunctionMap,
		OperatorMap: c.OperatorMap,
	}
}
