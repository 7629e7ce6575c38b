package chart

// Kind identifies a chart family and selects which renderer a
// definition or render request dispatches to.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
)

// Valid reports whether k names a known chart kind.
func (k Kind) Valid() bool {
	switch k {
	case KindLine, KindBar, KindPie:
		return true
	}
	return false
}

// Kinds lists every chart kind in display order.
func Kinds() []Kind {
	return []Kind{KindLine, KindBar, KindPie}
}

// Color is a CSS color value, normally a #rrggbb hex triplet. Every
// primitive carries its own color so sinks never consult ambient theme
// state.
type Color string

// Point is one sample of an ordered series. Line and bar charts assign
// each point a horizontal slot in input order; the label is carried for
// sinks and tooling but does not influence geometry.
type Point struct {
	Label string
	Value float64
}

// Slice is one pie wedge. Values are expected to be non-negative; a
// slice without its own color takes one from the renderer's palette by
// position.
type Slice struct {
	Label string
	Value float64
	Color Color
}

// Defaults applied by renderers for configuration left at the zero
// value.
const (
	DefaultStrokeWidth  = 2.0
	DefaultMarkerRadius = 4.0
	DefaultBarWidth     = 0.8 // fraction of a slot
	DefaultCornerRadius = 3.0
)

// DefaultColor is the fallback used by line and bar renderers when no
// color is configured. It is the first Tableau10 entry.
const DefaultColor = Color("#4e79a7")
