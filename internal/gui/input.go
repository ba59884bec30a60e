package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/hailstone/internal/input"
)

var _ input.Source = (*Window)(nil)

var keys = map[int32]input.Key{
	rl.KeyEscape:  input.KeyEscape,
	rl.KeyUp:      input.ArrowUp,
	rl.KeyDown:    input.ArrowDown,
	rl.KeyLeft:    input.ArrowLeft,
	rl.KeyRight:   input.ArrowRight,
	rl.KeyEnter:   input.KeyReturn,
	rl.KeyKpEnter: input.KeyReturn,
	rl.KeyR:       input.KeyRender,
	rl.KeyA:       input.KeyAnimate,
	rl.KeyD:       input.KeyDefault,
}

func keyFor(code int32) (input.Key, bool) {
	k, ok := keys[code]
	return k, ok
}

func codeFor(k input.Key) (int32, bool) {
	switch k {
	case input.KeyEscape:
		return rl.KeyEscape, true
	case input.ArrowUp:
		return rl.KeyUp, true
	case input.ArrowDown:
		return rl.KeyDown, true
	case input.ArrowLeft:
		return rl.KeyLeft, true
	case input.ArrowRight:
		return rl.KeyRight, true
	case input.KeyReturn:
		return rl.KeyEnter, true
	case input.KeyRender:
		return rl.KeyR, true
	case input.KeyAnimate:
		return rl.KeyA, true
	case input.KeyDefault:
		return rl.KeyD, true
	}
	return 0, false
}

// gather collects the frame's input once; raylib refreshes it in EndDrawing.
func (w *Window) gather() {
	w.gathered = true
	if rl.WindowShouldClose() {
		w.events = append(w.events, input.Event{Kind: input.Quit})
	}
	for code := rl.GetKeyPressed(); code != 0; code = rl.GetKeyPressed() {
		if k, ok := keyFor(code); ok {
			w.events = append(w.events, input.KeyPress(k))
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		w.events = append(w.events, input.Event{Kind: input.MouseDown})
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			w.events = append(w.events, input.Motion(float64(d.X), float64(d.Y)))
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		w.events = append(w.events, input.Event{Kind: input.MouseUp})
	}
	if rl.IsWindowResized() {
		w.events = append(w.events, input.Resized(rl.GetScreenWidth(), rl.GetScreenHeight()))
	}
}

func (w *Window) Poll() (input.Event, bool) {
	if !w.gathered && !w.closed {
		w.gather()
	}
	if len(w.events) == 0 {
		return input.Event{}, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

func (w *Window) KeyHeld(k input.Key) bool {
	code, ok := codeFor(k)
	return ok && !w.closed && rl.IsKeyDown(code)
}
