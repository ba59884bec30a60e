package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille terminal surface implementing render.Renderer. Drawing
// coordinates are logical pixels; Scale logical pixels map onto one braille
// dot. Each cell keeps the color of the last dot set in it.
type Canvas struct {
	Width, Height int
	Scale         float64
	Grid          [][]rune
	Colors        [][]colorful.Color
	frames        int
}

var _ render.Renderer = (*Canvas)(nil)

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	c.Width, c.Height = max(w, 1), max(h, 1)
	c.Grid = make([][]rune, c.Height)
	c.Colors = make([][]colorful.Color, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.Colors[i] = make([]colorful.Color, c.Width)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Set sets a dot at (x, y) in dot coordinates. The canvas is (Width*2) x
// (Height*4) dots.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) dot(p gg.Point) (int, int) {
	return int(math.Floor(p.X / c.Scale)), int(math.Floor(p.Y / c.Scale))
}

func (c *Canvas) Clear(colorful.Color) error {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = colorful.Color{}
		}
	}
	return nil
}

func (c *Canvas) FillCircle(center gg.Point, radius float64, col colorful.Color) error {
	cx, cy := c.dot(center)
	r := int(math.Round(radius / c.Scale))
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y, col)
			}
		}
	}
	return nil
}

func (c *Canvas) FillPolygon(pts []gg.Point, col colorful.Color) error {
	if len(pts) < 3 {
		return nil
	}
	dots := make([]gg.Point, len(pts))
	for i, p := range pts {
		dots[i] = gg.Pt(p.X/c.Scale, p.Y/c.Scale)
	}
	lo, hi := dots[0], dots[0]
	for _, p := range dots[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	for y := int(math.Floor(lo.Y)); y <= int(math.Ceil(hi.Y)); y++ {
		for x := int(math.Floor(lo.X)); x <= int(math.Ceil(hi.X)); x++ {
			if inside(dots, gg.Pt(float64(x)+0.5, float64(y)+0.5)) {
				c.Set(x, y, col)
			}
		}
	}
	return nil
}

// inside is the even-odd crossing test.
func inside(poly []gg.Point, p gg.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (c *Canvas) LineStrip(pts []gg.Point, _ float64, col colorful.Color) error {
	for i := 0; i+1 < len(pts); i++ {
		x0, y0 := c.dot(pts[i])
		x1, y1 := c.dot(pts[i+1])
		c.DrawLine(x0, y0, x1, y1, col)
	}
	return nil
}

func (c *Canvas) Present() error {
	c.frames++
	return nil
}

func (c *Canvas) Frames() int { return c.frames }

// Size reports the surface in logical pixels.
func (c *Canvas) Size() (int, int) {
	return int(float64(c.Width*2) * c.Scale), int(float64(c.Height*4) * c.Scale)
}

// Resize takes logical pixels and reallocates the cell grid to cover them.
func (c *Canvas) Resize(w, h int) error {
	cols := int(math.Ceil(float64(w) / (2 * c.Scale)))
	rows := int(math.Ceil(float64(h) / (4 * c.Scale)))
	if cols == c.Width && rows == c.Height {
		return nil
	}
	c.alloc(cols, rows)
	return nil
}

// String renders the grid with runs of equal color sharing one style.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != (colorful.Color{}) {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Plain renders the grid without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
