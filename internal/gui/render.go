package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/render"
)

// Supersample is the resolution factor of the off-screen texture. MSAA only
// covers the default framebuffer, so edges are smoothed by drawing at this
// scale and letting the bilinear filter average texels on the way down.
const Supersample = 2

// Window is the raylib surface and input source. Paths are drawn into an
// off-screen texture so they persist across frames; Present blits it to the
// screen and ends the frame, which is also when raylib polls input.
type Window struct {
	Status func() string

	target        rl.RenderTexture2D
	width, height int
	drawing       bool
	closed        bool

	events   []input.Event
	gathered bool
	verts    []rl.Vector2
}

var _ render.Renderer = (*Window)(nil)

func NewWindow(width, height int) *Window {
	w := &Window{width: width, height: height}
	w.target = loadTarget(width, height)
	rl.DisableBackfaceCulling()
	return w
}

func loadTarget(width, height int) rl.RenderTexture2D {
	t := rl.LoadRenderTexture(int32(width*Supersample), int32(height*Supersample))
	rl.SetTextureFilter(t.Texture, rl.FilterBilinear)
	return t
}

func (w *Window) begin() error {
	if w.closed {
		return render.ErrClosed
	}
	if !w.drawing {
		rl.BeginTextureMode(w.target)
		w.drawing = true
	}
	return nil
}

func (w *Window) end() {
	if w.drawing {
		rl.EndTextureMode()
		w.drawing = false
	}
}

func (w *Window) Clear(c colorful.Color) error {
	if err := w.begin(); err != nil {
		return err
	}
	rl.ClearBackground(toColor(c))
	return nil
}

func (w *Window) FillCircle(center gg.Point, radius float64, c colorful.Color) error {
	if err := w.begin(); err != nil {
		return err
	}
	rl.DrawCircleV(toVector(center, Supersample), float32(radius*Supersample), toColor(c))
	return nil
}

func (w *Window) FillPolygon(pts []gg.Point, c colorful.Color) error {
	if err := w.begin(); err != nil {
		return err
	}
	if len(pts) < 3 {
		return nil
	}
	w.verts = toVectors(w.verts[:0], pts, Supersample)
	rl.DrawTriangleFan(w.verts, toColor(c))
	return nil
}

func (w *Window) LineStrip(pts []gg.Point, width float64, c colorful.Color) error {
	if err := w.begin(); err != nil {
		return err
	}
	if len(pts) < 2 {
		return nil
	}
	w.verts = toVectors(w.verts[:0], pts, Supersample)
	rl.DrawSplineLinear(w.verts, float32(width*Supersample), toColor(c))
	return nil
}

// Present ends the off-screen pass and draws the texture scaled to the
// window plus the status line. Render textures are stored upside down, hence
// the negative source height.
func (w *Window) Present() error {
	if w.closed {
		return render.ErrClosed
	}
	w.end()
	rl.BeginDrawing()
	rl.ClearBackground(rl.White)
	src := rl.NewRectangle(0, 0, float32(w.target.Texture.Width), -float32(w.target.Texture.Height))
	dst := rl.NewRectangle(0, 0, float32(w.width), float32(w.height))
	rl.DrawTexturePro(w.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if w.Status != nil {
		rl.DrawText(w.Status(), 10, int32(w.height)-20, 10, ColTextDim)
	}
	rl.EndDrawing()
	w.gathered = false
	return nil
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) Resize(width, height int) error {
	if w.closed {
		return render.ErrClosed
	}
	if width == w.width && height == w.height {
		return nil
	}
	w.end()
	rl.UnloadRenderTexture(w.target)
	w.target = loadTarget(width, height)
	w.width, w.height = width, height
	return nil
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.end()
	rl.UnloadRenderTexture(w.target)
	w.closed = true
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func toVector(p gg.Point, scale float64) rl.Vector2 {
	return rl.NewVector2(float32(p.X*scale), float32(p.Y*scale))
}

func toVectors(dst []rl.Vector2, pts []gg.Point, scale float64) []rl.Vector2 {
	for _, p := range pts {
		dst = append(dst, toVector(p, scale))
	}
	return dst
}
