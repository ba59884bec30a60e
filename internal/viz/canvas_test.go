package viz

import (
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

var red = colorful.Color{R: 1}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(40, 10, 2)
	w, h := c.Size()
	if w != 160 || h != 80 {
		t.Errorf("expected 160x80 logical pixels, got %dx%d", w, h)
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2, 1)
	c.Set(3, 5, red)
	if !c.IsSet(3, 5) {
		t.Fatal("expected dot to be set")
	}
	if c.Grid[1][1] == blank {
		t.Error("expected cell (1,1) to hold a braille dot")
	}
	if err := c.Clear(colorful.Color{}); err != nil {
		t.Fatal(err)
	}
	if c.IsSet(3, 5) {
		t.Error("expected clear to reset dots")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2, 1)
	c.Set(-1, 0, red)
	c.Set(100, 100, red)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatalf("expected no dots, got %q", r)
			}
		}
	}
}

func TestCanvasLineStrip(t *testing.T) {
	c := NewCanvas(10, 2, 1)
	pts := []gg.Point{gg.Pt(0, 0), gg.Pt(19, 0)}
	if err := c.LineStrip(pts, 4, red); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("expected dot at x=%d", x)
		}
	}
	if c.IsSet(0, 1) {
		t.Error("line should be one dot thick")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5, 1)
	if err := c.FillCircle(gg.Pt(10, 10), 3, red); err != nil {
		t.Fatal(err)
	}
	if !c.IsSet(10, 10) || !c.IsSet(13, 10) || !c.IsSet(10, 7) {
		t.Error("expected center and axis extremes to be filled")
	}
	if c.IsSet(13, 13) {
		t.Error("corner outside radius should stay empty")
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(10, 5, 1)
	square := []gg.Point{gg.Pt(2, 2), gg.Pt(8, 2), gg.Pt(8, 8), gg.Pt(2, 8)}
	if err := c.FillPolygon(square, red); err != nil {
		t.Fatal(err)
	}
	if !c.IsSet(5, 5) {
		t.Error("expected interior dot")
	}
	if c.IsSet(10, 5) || c.IsSet(1, 1) {
		t.Error("expected exterior dots to stay empty")
	}
	if err := c.FillPolygon(square[:2], red); err != nil {
		t.Errorf("degenerate polygon should be ignored, got %v", err)
	}
}

func TestCanvasScale(t *testing.T) {
	c := NewCanvas(10, 5, 4)
	if err := c.FillCircle(gg.Pt(40, 40), 0, red); err != nil {
		t.Fatal(err)
	}
	if !c.IsSet(10, 10) {
		t.Error("logical (40,40) should land on dot (10,10) at scale 4")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(10, 5, 2)
	if err := c.Resize(100, 50); err != nil {
		t.Fatal(err)
	}
	if c.Width != 25 || c.Height != 7 {
		t.Errorf("expected 25x7 cells, got %dx%d", c.Width, c.Height)
	}
}

func TestCanvasPresentCountsFrames(t *testing.T) {
	c := NewCanvas(2, 2, 1)
	_ = c.Present()
	_ = c.Present()
	if c.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", c.Frames())
	}
}

func TestCanvasPlain(t *testing.T) {
	c := NewCanvas(3, 2, 1)
	c.Set(0, 0, red)
	lines := strings.Split(strings.TrimSuffix(c.Plain(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if []rune(lines[0])[0] != blank|0x1 {
		t.Errorf("expected top-left dot, got %q", lines[0])
	}
	if !strings.Contains(c.String(), "⠀") {
		t.Error("colored output should keep blank cells")
	}
}
