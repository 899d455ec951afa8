package source

import (
	"testing"
)

type posResult struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]posResult{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"ab\ncd\n\nefg": {
			{0, 1, 1},
			{1, 1, 2},
			{2, 1, 3},
			{3, 2, 1},
			{5, 2, 3},
			{6, 3, 1},
			{7, 4, 1},
			{9, 4, 3},
			{10, 4, 4},
			{-5, 1, 1},
		},
	}

	for text, results := range samples {
		s := New("test", []byte(text))
		for i, r := range results {
			line, col := s.LineCol(r.pos)
			if line != r.line || col != r.col {
				t.Errorf("%q sample #%d: expecting %d:%d, got %d:%d",
					text, i, r.line, r.col, line, col)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	s := New("test", []byte("ab\ncd\n\nefg"))
	for pos := 0; pos <= s.Len(); pos++ {
		line, col := s.LineCol(pos)
		back := s.Pos(line, col)
		if back != pos {
			t.Errorf("pos %d -> %d:%d -> %d", pos, line, col, back)
		}
	}

	if s.Pos(0, 0) != 0 {
		t.Error("expecting 0 for zero line/col")
	}
	if s.Pos(100, 1) != s.Len() {
		t.Error("expecting clamp to source length")
	}
}

func TestSourceAt(t *testing.T) {
	s := New("test.src", []byte("x = 1\ny = 2\n"))
	p := s.At(6)
	if p.SourceName() != "test.src" {
		t.Errorf("unexpected name %q", p.SourceName())
	}
	if p.Line() != 2 || p.Col() != 1 {
		t.Errorf("expecting 2:1, got %d:%d", p.Line(), p.Col())
	}
	if p.Offset() != 6 {
		t.Errorf("expecting offset 6, got %d", p.Offset())
	}
}
