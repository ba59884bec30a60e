// Package input defines the events the interactive loop consumes and a queue
// backed source for them.
//
// Two queries are kept apart: Poll is edge-triggered and drains discrete
// events, KeyHeld is level-triggered and reports whether a key is down right
// now.
package input

import "fmt"

type Kind int

const (
	Quit Kind = iota
	KeyDown
	MouseDown
	MouseUp
	MouseMotion
	Resize
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case KeyDown:
		return "key-down"
	case MouseDown:
		return "mouse-down"
	case MouseUp:
		return "mouse-up"
	case MouseMotion:
		return "mouse-motion"
	case Resize:
		return "resize"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Key int

const (
	KeyNone Key = iota
	KeyEscape
	ArrowUp
	ArrowDown
	ArrowLeft
	ArrowRight
	KeyReturn
	KeyRender  // R
	KeyAnimate // A
	KeyDefault // D
)

// Event is one discrete input. DX/DY are set for MouseMotion, Width/Height
// for Resize, Key for KeyDown.
type Event struct {
	Kind   Kind
	Key    Key
	DX, DY float64
	Width  int
	Height int
}

// Source is the capability the render loop polls each tick.
type Source interface {
	// Poll returns the next pending event without blocking.
	Poll() (Event, bool)
	// KeyHeld reports whether k is currently pressed.
	KeyHeld(k Key) bool
}

// Queue is a Source fed by Push and Hold. It backs the terminal front end and
// the tests.
type Queue struct {
	events []Event
	held   map[Key]bool
}

func NewQueue() *Queue {
	return &Queue{held: make(map[Key]bool)}
}

func (q *Queue) Push(evs ...Event) {
	q.events = append(q.events, evs...)
}

func (q *Queue) Hold(k Key, down bool) {
	if down {
		q.held[k] = true
	} else {
		delete(q.held, k)
	}
}

func (q *Queue) Len() int { return len(q.events) }

func (q *Queue) Poll() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

func (q *Queue) KeyHeld(k Key) bool {
	return q.held[k]
}

// Drain polls src until it is empty.
func Drain(src Source) []Event {
	var out []Event
	for {
		ev, ok := src.Poll()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func KeyPress(k Key) Event { return Event{Kind: KeyDown, Key: k} }

func Motion(dx, dy float64) Event { return Event{Kind: MouseMotion, DX: dx, DY: dy} }

func Resized(w, h int) Event { return Event{Kind: Resize, Width: w, Height: h} }
