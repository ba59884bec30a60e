// Package view holds the mutable interactive state of the visualiser and the
// single function that applies a tick's input to it.
package view

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/turtle"
)

type DrawMode int

const (
	Idle DrawMode = iota
	QuickDraggingDraw
	RenderedBlobDraw
	AnimatedDraw
	ContinuousDraw
)

func (m DrawMode) String() string {
	switch m {
	case Idle:
		return "idle"
	case QuickDraggingDraw:
		return "drag"
	case RenderedBlobDraw:
		return "render"
	case AnimatedDraw:
		return "animate"
	case ContinuousDraw:
		return "draw"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Animation modulates each turn angle as base*(1+amp*sin(clock/period)).
type Animation struct {
	EvenAmplitude float64
	EvenPeriod    float64
	OddAmplitude  float64
	OddPeriod     float64
	ClockMax      int
}

type Settings struct {
	Gain      float64
	Animation Animation
}

// Effects reports what an Update asks of the caller beyond the state change.
type Effects struct {
	Quit    bool
	Resized bool
	Width   int
	Height  int
	// Echo is set when the print key found angles not yet logged.
	Echo     bool
	EchoEven float64
	EchoOdd  float64
	Clamped  bool
}

// State is the whole interactive state. Params is the geometry the next
// projection uses; BaseEven and BaseOdd are the user-tuned angles that the
// animation modulates.
type State struct {
	Params   turtle.Params
	BaseEven float64
	BaseOdd  float64

	// Mode is the active draw mode. Style is the pass kind a redraw starts
	// in once the view changes: ContinuousDraw, RenderedBlobDraw or
	// AnimatedDraw.
	Mode     DrawMode
	Style    DrawMode
	Finished bool
	Pass     Pass

	Clock      int
	ButtonHeld bool
	Width      int
	Height     int

	settings   Settings
	lastValid  turtle.Params
	lastEven   float64
	lastOdd    float64
	logged     bool
	loggedEven float64
	loggedOdd  float64
}

// New returns a state for pathCount paths that will draw a first continuous
// pass on the next tick.
func New(params turtle.Params, settings Settings, pathCount, width, height int) *State {
	s := &State{
		Params:    params,
		BaseEven:  params.EvenDelta,
		BaseOdd:   params.OddDelta,
		Mode:      ContinuousDraw,
		Style:     ContinuousDraw,
		Pass:      NewPass(pathCount),
		Width:     width,
		Height:    height,
		settings:  settings,
		lastValid: params,
		lastEven:  params.EvenDelta,
		lastOdd:   params.OddDelta,
	}
	return s
}

func (s *State) Settings() Settings { return s.settings }

// Invalidate discards the current pass and schedules a redraw from index 0.
func (s *State) Invalidate() {
	s.Finished = false
	s.Pass.Reset()
	if s.Mode == Idle {
		s.Mode = s.Style
	}
}

// SwitchMode is a hard reset into mode.
func (s *State) SwitchMode(mode DrawMode) {
	s.Style = mode
	s.Mode = mode
	s.Invalidate()
}

// Complete marks the current pass as drawn.
func (s *State) Complete() {
	s.Finished = true
	s.Mode = Idle
}

// Update applies one tick of input. Discrete events are handled in order,
// then held arrow keys apply one gain step each; an arrow pressed this tick
// counts once even if it is also reported held.
func (s *State) Update(events []input.Event, keys input.Source) Effects {
	var eff Effects
	var pressed [input.KeyDefault + 1]bool
	tuned := false

	for _, ev := range events {
		switch ev.Kind {
		case input.Quit:
			eff.Quit = true
		case input.KeyDown:
			switch ev.Key {
			case input.KeyEscape:
				eff.Quit = true
			case input.KeyRender:
				s.SwitchMode(RenderedBlobDraw)
			case input.KeyAnimate:
				s.SwitchMode(AnimatedDraw)
			case input.KeyDefault:
				s.SwitchMode(ContinuousDraw)
			case input.KeyReturn:
				s.echo(&eff)
			case input.ArrowUp, input.ArrowDown, input.ArrowLeft, input.ArrowRight:
				pressed[ev.Key] = true
			}
		case input.Resize:
			if ev.Width > 0 && ev.Height > 0 {
				s.Width, s.Height = ev.Width, ev.Height
				eff.Resized, eff.Width, eff.Height = true, ev.Width, ev.Height
				s.Invalidate()
			}
		case input.MouseDown:
			s.ButtonHeld = true
		case input.MouseMotion:
			if s.ButtonHeld && (ev.DX != 0 || ev.DY != 0) {
				s.Params.Origin = gg.Pt(s.Params.Origin.X+ev.DX, s.Params.Origin.Y+ev.DY)
				s.Style = ContinuousDraw
				s.Mode = QuickDraggingDraw
				s.Invalidate()
			}
		case input.MouseUp:
			if s.ButtonHeld {
				s.ButtonHeld = false
				s.Mode = s.Style
				s.Invalidate()
			}
		}
	}

	if keys != nil {
		if keys.KeyHeld(input.KeyEscape) {
			eff.Quit = true
		}
		if keys.KeyHeld(input.KeyReturn) {
			s.echo(&eff)
		}
	}

	step := 1 + s.settings.Gain
	for _, k := range []input.Key{input.ArrowUp, input.ArrowDown, input.ArrowRight, input.ArrowLeft} {
		if !pressed[k] && (keys == nil || !keys.KeyHeld(k)) {
			continue
		}
		switch k {
		case input.ArrowUp:
			s.BaseOdd *= step
		case input.ArrowDown:
			s.BaseOdd /= step
		case input.ArrowRight:
			s.BaseEven *= step
		case input.ArrowLeft:
			s.BaseEven /= step
		}
		tuned = true
	}
	if tuned {
		s.Invalidate()
	}

	if s.Mode != AnimatedDraw {
		s.Params.EvenDelta = s.BaseEven
		s.Params.OddDelta = s.BaseOdd
	}
	// Base angles are validated in every mode; animation leaves Params as is.
	base := s.Params
	base.EvenDelta, base.OddDelta = s.BaseEven, s.BaseOdd
	if err := errors.Join(s.Params.Validate(), base.Validate()); err != nil {
		s.restore()
		eff.Clamped = true
	} else {
		s.lastValid = s.Params
		s.lastEven, s.lastOdd = s.BaseEven, s.BaseOdd
	}
	return eff
}

// Advance recomputes the animated angles from the clock, then steps the clock.
func (s *State) Advance() {
	a := s.settings.Animation
	t := float64(s.Clock)
	next := s.Params
	next.EvenDelta = s.BaseEven * (1 + a.EvenAmplitude*math.Sin(t/a.EvenPeriod))
	next.OddDelta = s.BaseOdd * (1 + a.OddAmplitude*math.Sin(t/a.OddPeriod))
	if next.Validate() == nil {
		s.Params = next
		s.lastValid = next
	}
	s.Clock++
	if s.Clock > a.ClockMax {
		s.Clock = 0
	}
}

func (s *State) echo(eff *Effects) {
	even, odd := s.Params.EvenDelta, s.Params.OddDelta
	if s.logged && even == s.loggedEven && odd == s.loggedOdd {
		return
	}
	s.logged, s.loggedEven, s.loggedOdd = true, even, odd
	eff.Echo, eff.EchoEven, eff.EchoOdd = true, even, odd
}

func (s *State) restore() {
	s.Params = s.lastValid
	s.BaseEven = s.lastEven
	s.BaseOdd = s.lastOdd
}
