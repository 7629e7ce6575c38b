package render

import (
	"math"
	"strings"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/geom"
)

// TermOption configures terminal rendering.
type TermOption func(*termRenderer)

type termRenderer struct {
	cols, rows int
}

// WithTermSize sets the output grid in terminal cells (default 80x24).
func WithTermSize(cols, rows int) TermOption {
	return func(r *termRenderer) {
		if cols > 0 {
			r.cols = cols
		}
		if rows > 0 {
			r.rows = rows
		}
	}
}

// Term sketches primitives as braille text for terminal preview. Each
// cell packs a 2x4 micro-pixel block, so an 80x24 grid gives a 160x96
// drawing surface. Bars render filled, pie sectors render as outlines,
// and lines render as Bresenham strokes.
func Term(prims []chart.Primitive, size geom.Size, opts ...TermOption) []byte {
	r := termRenderer{cols: 80, rows: 24}
	for _, opt := range opts {
		opt(&r)
	}

	canvas := newBrailleCanvas(r.cols, r.rows)
	if !size.Empty() {
		sx := float64(canvas.microW()-1) / size.Width
		sy := float64(canvas.microH()-1) / size.Height
		for _, p := range prims {
			drawTermPrimitive(canvas, p, sx, sy)
		}
	}

	return []byte(strings.Join(canvas.lines(), "\n") + "\n")
}

func drawTermPrimitive(c *brailleCanvas, p chart.Primitive, sx, sy float64) {
	micro := func(pt geom.Point) (int, int) {
		return int(math.Round(pt.X * sx)), int(math.Round(pt.Y * sy))
	}

	switch v := p.(type) {
	case chart.Polyline:
		for i := 1; i < len(v.Points); i++ {
			x0, y0 := micro(v.Points[i-1])
			x1, y1 := micro(v.Points[i])
			c.line(x0, y0, x1, y1)
		}

	case chart.Circle:
		cx, cy := micro(v.Center)
		rx, ry := v.Radius*sx, v.Radius*sy
		if rx < 1 {
			c.set(cx, cy)
			return
		}
		steps := max(8, int(2*math.Pi*rx))
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			c.set(cx+int(math.Round(rx*math.Cos(a))), cy+int(math.Round(ry*math.Sin(a))))
		}

	case chart.Rect:
		b := v.Bounds()
		x0, y0 := micro(geom.Point{X: b.MinX, Y: b.MinY})
		x1, y1 := micro(geom.Point{X: b.MaxX, Y: b.MaxY})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.set(x, y)
			}
		}

	case chart.Arc:
		cx, cy := micro(v.Center)
		rx := v.Radius * sx
		ry := v.Radius * sy
		end := v.Start + v.Sweep

		arcPoint := func(a float64) (int, int) {
			return cx + int(math.Round(rx*math.Cos(a))), cy + int(math.Round(ry*math.Sin(a)))
		}

		// Sector outline: both radii, then the arc itself.
		x, y := arcPoint(v.Start)
		c.line(cx, cy, x, y)
		x, y = arcPoint(end)
		c.line(cx, cy, x, y)

		steps := max(8, int(v.Sweep*rx))
		for i := 0; i <= steps; i++ {
			a := v.Start + v.Sweep*float64(i)/float64(steps)
			c.set(arcPoint(a))
		}
	}
}

// brailleCanvas accumulates micro-pixels and renders them as braille
// runes, 2x4 micro-pixels per cell.
type brailleCanvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell dot mask
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleCanvas{w: w, h: h, m: m}
}

func (c *brailleCanvas) microW() int { return c.w * 2 }
func (c *brailleCanvas) microH() int { return c.h * 4 }

// set marks the micro-pixel at (mx, my). The braille block assigns dot
// bits in column-major order with the bottom row split off, hence the
// irregular mask table.
func (c *brailleCanvas) set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cx >= c.w || cy >= c.h {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.m[cy][cx] |= bit
}

// line draws on the micro grid using Bresenham.
func (c *brailleCanvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *brailleCanvas) lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			if mask := c.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
