package render

import (
	"strings"
	"testing"
)

func TestTerm_GridDimensions(t *testing.T) {
	out := string(Term(barPrimitives(), testSize))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 24 {
		t.Fatalf("row count = %d, want 24", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 80 {
			t.Errorf("row %d width = %d runes, want 80", i, n)
		}
	}
}

func TestTerm_WithTermSize(t *testing.T) {
	out := string(Term(linePrimitives(), testSize, WithTermSize(40, 10)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 10 {
		t.Fatalf("row count = %d, want 10", len(lines))
	}
	if n := len([]rune(lines[0])); n != 40 {
		t.Errorf("row width = %d runes, want 40", n)
	}
}

func TestTerm_DrawsSomething(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"line", string(Term(linePrimitives(), testSize))},
		{"bar", string(Term(barPrimitives(), testSize))},
		{"pie", string(Term(piePrimitives(), testSize))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := 0
			for _, r := range tt.out {
				if r >= 0x2800 && r <= 0x28FF {
					set++
				}
			}
			if set == 0 {
				t.Error("no braille cells set")
			}
		})
	}
}

func TestTerm_EmptyInput(t *testing.T) {
	out := string(Term(nil, testSize))
	for _, r := range out {
		if r != ' ' && r != '\n' {
			t.Fatalf("empty render contains %q, want blank grid", r)
		}
	}
}

func TestTerm_BarsFillCells(t *testing.T) {
	// A full-surface bar should set far more cells than a line stroke.
	bar := string(Term(barPrimitives(), testSize))
	line := string(Term(linePrimitives(), testSize))

	count := func(s string) int {
		n := 0
		for _, r := range s {
			if r >= 0x2800 && r <= 0x28FF {
				n++
			}
		}
		return n
	}
	if count(bar) <= count(line) {
		t.Errorf("bar cells = %d, line cells = %d; bars should fill", count(bar), count(line))
	}
}
