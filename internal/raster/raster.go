// Package raster draws paths off screen with gogpu/gg and writes PNG images.
package raster

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/render"
)

// Surface is a render.Renderer over a gg.Context. When Path is set, every
// Present writes the current frame there as PNG.
type Surface struct {
	Path string

	ctx    *gg.Context
	frames int
	closed bool
}

var _ render.Renderer = (*Surface)(nil)

func NewSurface(width, height int) *Surface {
	ctx := gg.NewContext(width, height)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	return &Surface{ctx: ctx}
}

func (s *Surface) Clear(c colorful.Color) error {
	if s.closed {
		return render.ErrClosed
	}
	s.ctx.ClearWithColor(gg.RGB(c.R, c.G, c.B))
	return nil
}

func (s *Surface) FillCircle(center gg.Point, radius float64, c colorful.Color) error {
	if s.closed {
		return render.ErrClosed
	}
	s.ctx.SetColor(c.Clamped())
	s.ctx.DrawCircle(center.X, center.Y, radius)
	return s.ctx.Fill()
}

func (s *Surface) FillPolygon(pts []gg.Point, c colorful.Color) error {
	if s.closed {
		return render.ErrClosed
	}
	if len(pts) < 3 {
		return nil
	}
	s.ctx.SetColor(c.Clamped())
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.ctx.ClosePath()
	return s.ctx.Fill()
}

func (s *Surface) LineStrip(pts []gg.Point, width float64, c colorful.Color) error {
	if s.closed {
		return render.ErrClosed
	}
	if len(pts) < 2 {
		return nil
	}
	s.ctx.SetColor(c.Clamped())
	s.ctx.SetLineWidth(width)
	s.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	return s.ctx.Stroke()
}

func (s *Surface) Present() error {
	if s.closed {
		return render.ErrClosed
	}
	s.frames++
	if s.Path == "" {
		return nil
	}
	if err := s.ctx.SavePNG(s.Path); err != nil {
		render.Logger().Error("save failed", "path", s.Path, "err", err)
		return err
	}
	render.Logger().Debug("frame saved", "path", s.Path, "frame", s.frames)
	return nil
}

func (s *Surface) Frames() int { return s.frames }

func (s *Surface) Size() (int, int) { return s.ctx.Width(), s.ctx.Height() }

func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return render.ErrClosed
	}
	return s.ctx.Resize(width, height)
}

// EncodePNG writes the current frame to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.closed {
		return render.ErrClosed
	}
	return s.ctx.EncodePNG(w)
}

func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ctx.Close()
}
