package chart

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPalette is returned by [PaletteByName] when the reference
// names neither a built-in scheme nor a shades expression.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette is an ordered list of colors assigned to series entries by
// position, wrapping around when the series is longer than the palette.
type Palette []Color

var (
	// Category10 is the classic d3 categorical scheme.
	Category10 = Palette{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}

	// Tableau10 is the default categorical scheme.
	Tableau10 = Palette{
		"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
		"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
	}
)

// Color returns the palette entry for position i, wrapping around.
// An empty palette returns DefaultColor.
func (p Palette) Color(i int) Color {
	if len(p) == 0 {
		return DefaultColor
	}
	return p[i%len(p)]
}

// PaletteByName resolves a palette reference: a built-in scheme name
// ("category10", "tableau10"), a "shades:#rrggbb" expression for a
// generated monochrome ramp, or the empty string for the default.
func PaletteByName(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case "", "tableau10":
		return Tableau10, nil
	case "category10":
		return Category10, nil
	}
	if base, ok := strings.CutPrefix(name, "shades:"); ok {
		return Shades(Color(base), 10)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// Shades builds an n-entry monochrome ramp starting at base and fading
// toward a light gray, blended in Lab space so the perceived lightness
// steps evenly. The base color must be a hex triplet.
func Shades(base Color, n int) (Palette, error) {
	c, err := colorful.Hex(string(base))
	if err != nil {
		return nil, fmt.Errorf("shades base color: %w", err)
	}
	if n < 1 {
		n = 1
	}

	light := colorful.Color{R: 0.96, G: 0.96, B: 0.96}
	ramp := make(Palette, n)
	ramp[0] = Color(c.Hex())
	for i := 1; i < n; i++ {
		t := 0.75 * float64(i) / float64(n-1)
		ramp[i] = Color(c.BlendLab(light, t).Clamped().Hex())
	}
	return ramp, nil
}
