package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/hailstone/internal/render"
	"github.com/san-kum/hailstone/internal/view"
)

var ColTextDim = rl.NewColor(60, 60, 60, 200)

// Usage is the key reference printed when the window opens.
const Usage = `drag with the left mouse button to move the origin
left/right  shrink/grow the even turn angle
up/down     grow/shrink the odd turn angle
enter       print the current angles
r           redraw as blobs
a           animate the angles
d           back to line drawing
esc         quit`

type App struct {
	Window *Window
	Ctrl   *render.Controller
}

// initWindow opens a resizable window sized to the view, sets the target
// FPS and disables the default exit key so escape goes through the input
// source.
func initWindow(width, height int, title string, fps int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(0)
	if fps > 0 {
		rl.SetTargetFPS(fps)
	}
}

// NewApp needs an open window.
func NewApp(paths render.PathSource, st *view.State, opts render.Options) *App {
	w := NewWindow(st.Width, st.Height)
	a := &App{Window: w}
	a.Ctrl = render.NewController(paths, st, w, w, opts)
	w.Status = a.status
	return a
}

func (a *App) status() string {
	st := a.Ctrl.View()
	return fmt.Sprintf("%s  even %.5f  odd %.5f  %d FPS", st.Mode, st.Params.EvenDelta, st.Params.OddDelta, rl.GetFPS())
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, paths render.PathSource, st *view.State, opts render.Options, title string, fps int32) error {
	initWindow(st.Width, st.Height, title, fps)
	defer rl.CloseWindow()

	app := NewApp(paths, st, opts)
	defer app.Window.Close()
	return app.Ctrl.Run(ctx)
}
