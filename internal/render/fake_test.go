package render_test

import (
	"errors"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

type call struct {
	op     string
	points int
	width  float64
	color  colorful.Color
}

// recorder is a Renderer that keeps a log of every call.
type recorder struct {
	calls     []call
	w, h      int
	failOp    string
	presented int
}

func newRecorder() *recorder { return &recorder{w: 1080, h: 720} }

func (r *recorder) fail(op string) error {
	if op == r.failOp {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) Clear(c colorful.Color) error {
	r.calls = append(r.calls, call{op: "clear", color: c})
	return r.fail("clear")
}

func (r *recorder) FillCircle(center gg.Point, radius float64, c colorful.Color) error {
	r.calls = append(r.calls, call{op: "circle", points: 1, width: radius, color: c})
	return r.fail("circle")
}

func (r *recorder) FillPolygon(pts []gg.Point, c colorful.Color) error {
	r.calls = append(r.calls, call{op: "polygon", points: len(pts), color: c})
	return r.fail("polygon")
}

func (r *recorder) LineStrip(pts []gg.Point, width float64, c colorful.Color) error {
	r.calls = append(r.calls, call{op: "strip", points: len(pts), width: width, color: c})
	return r.fail("strip")
}

func (r *recorder) Present() error {
	r.presented++
	return nil
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Resize(w, h int) error {
	r.w, r.h = w, h
	return nil
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.calls = nil }
