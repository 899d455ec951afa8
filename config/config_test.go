package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseYAML(t *testing.T) {
	doc := `
keyword_map:
  si: if
  mientras: while
function_map:
  imprimir: print
operator_map:
  y: and
start_rule: programa
name: ignored-by-core
presets: [also, ignored]
`
	c, e := Parse("test.yaml", []byte(doc))
	if e != nil {
		t.Fatal(e.Error())
	}
	if c.KeywordMap["si"] != "if" || c.KeywordMap["mientras"] != "while" {
		t.Errorf("unexpected keyword map: %v", c.KeywordMap)
	}
	if c.FunctionMap["imprimir"] != "print" {
		t.Errorf("unexpected function map: %v", c.FunctionMap)
	}
	if c.OperatorMap["y"] != "and" {
		t.Errorf("unexpected operator map: %v", c.OperatorMap)
	}
	if c.StartRule != "programa" {
		t.Errorf("unexpected start rule: %q", c.StartRule)
	}
}

func TestParseJSON(t *testing.T) {
	doc := `{"keyword_map": {"si": "if"}, "start_rule": "program"}`
	c, e := Parse("test.json", []byte(doc))
	if e != nil {
		t.Fatal(e.Error())
	}
	if c.KeywordMap["si"] != "if" || c.StartRule != "program" {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestParseEmpty(t *testing.T) {
	c, e := Parse("empty.yaml", nil)
	if e != nil {
		t.Fatal(e.Error())
	}
	if c.StartRule != "" || len(c.KeywordMap) != 0 {
		t.Errorf("expecting zero config, got %+v", c)
	}
}

func TestParseMalformed(t *testing.T) {
	_, e := Parse("bad.yaml", []byte("keyword_map: 5\n"))
	if e == nil {
		t.Fatal("expecting format error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lang.yaml")
	if e := os.WriteFile(path, []byte("start_rule: expr\n"), 0o644); e != nil {
		t.Fatal(e)
	}

	c, e := Load(path)
	if e != nil {
		t.Fatal(e.Error())
	}
	if c.StartRule != "expr" {
		t.Errorf("unexpected start rule: %q", c.StartRule)
	}

	if _, e = Load(filepath.Join(t.TempDir(), "missing.yaml")); e == nil {
		t.Fatal("expecting read error")
	}
}

func TestOptions(t *testing.T) {
	c := &Config{
		KeywordMap:  map[string]string{"si": "if"},
		FunctionMap: map[string]string{"f": "g"},
		OperatorMap: map[string]string{"y": "and"},
	}
	opts := c.Options()
	if opts.KeywordMap["si"] != "if" || opts.FunctionMap["f"] != "g" || opts.OperatorMap["y"] != "and" {
		t.Errorf("unexpected options: %+v", opts)
	}
}
