package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrClosed = errors.New("render: surface closed")

// Renderer is a drawing surface. Point slices passed to it are only valid
// for the duration of the call.
type Renderer interface {
	Clear(c colorful.Color) error
	// FillCircle draws a filled circle with an anti-aliased edge.
	FillCircle(center gg.Point, radius float64, c colorful.Color) error
	// FillPolygon draws a filled convex polygon with an anti-aliased edge.
	FillPolygon(pts []gg.Point, c colorful.Color) error
	LineStrip(pts []gg.Point, width float64, c colorful.Color) error
	Present() error
	Size() (width, height int)
	Resize(width, height int) error
}

type Style int

const (
	// Lines draws one line strip per path.
	Lines Style = iota
	// Blobs draws a filled circle at every vertex.
	Blobs
	// FatLines draws every segment as a quad with round caps.
	FatLines
)

func (s Style) String() string {
	switch s {
	case Lines:
		return "lines"
	case Blobs:
		return "blobs"
	case FatLines:
		return "fat-lines"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

func ParseStyle(name string) (Style, error) {
	for _, s := range []Style{Lines, Blobs, FatLines} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("render: unknown style %q", name)
}

// DrawError reports primitives that failed while drawing one path.
type DrawError struct {
	Failed int
	Total  int
	First  error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("render: %d of %d primitives failed: %v", e.Failed, e.Total, e.First)
}

func (e *DrawError) Unwrap() error {
	return e.First
}

type drawTally struct {
	failed, total int
	first         error
}

func (t *drawTally) add(err error) {
	t.total++
	if err != nil {
		t.failed++
		if t.first == nil {
			t.first = err
		}
	}
}

func (t *drawTally) err() error {
	if t.failed == 0 {
		return nil
	}
	return &DrawError{Failed: t.failed, Total: t.total, First: t.first}
}

// DrawPath draws pts in the given style. A failing primitive is skipped and
// the rest of the path is still drawn.
func DrawPath(r Renderer, style Style, pts []gg.Point, width float64, c colorful.Color) error {
	var tally drawTally
	switch style {
	case Lines:
		if len(pts) >= 2 {
			tally.add(r.LineStrip(pts, width+1, c))
		}
	case Blobs:
		for _, pt := range pts {
			tally.add(r.FillCircle(pt, width/2, c))
		}
	case FatLines:
		for i := 0; i+1 < len(pts); i++ {
			fatSegment(r, &tally, pts[i], pts[i+1], width, c)
		}
	}
	return tally.err()
}

func fatSegment(r Renderer, tally *drawTally, a, b gg.Point, width float64, c colorful.Color) {
	half := width / 2
	tally.add(r.FillCircle(a, half, c))
	tally.add(r.FillCircle(b, half, c))

	dir := b.Sub(a).Normalize()
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	n := gg.Pt(-dir.Y, dir.X).Mul(half)
	quad := [4]gg.Point{a.Add(n), a.Sub(n), b.Sub(n), b.Add(n)}
	tally.add(r.FillPolygon(quad[:], c))
}
