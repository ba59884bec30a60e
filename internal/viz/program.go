package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/render"
)

// statusLines is the height of the bar under the canvas.
const statusLines = 2

type TickMsg time.Time

// Model drives a render.Controller from Bubble Tea messages. Keys and mouse
// messages are queued as input events; each TickMsg runs one controller tick
// against the braille canvas.
type Model struct {
	ctrl   *render.Controller
	queue  *input.Queue
	canvas *Canvas
	paths  int
	delay  time.Duration

	mouseX, mouseY int
	mouseSeen      bool
	showHelp       bool
}

// NewModel wires a controller over canvas. queue must be the source the
// controller polls.
func NewModel(ctrl *render.Controller, queue *input.Queue, canvas *Canvas, paths int, delay time.Duration) Model {
	if delay <= 0 {
		delay = time.Second / 60
	}
	return Model{
		ctrl:   ctrl,
		queue:  queue,
		canvas: canvas,
		paths:  paths,
		delay:  delay,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.queue.Push(input.Event{Kind: input.Quit})
		case "esc":
			m.queue.Push(input.KeyPress(input.KeyEscape))
		case "enter":
			m.queue.Push(input.KeyPress(input.KeyReturn))
		case "up", "k":
			m.queue.Push(input.KeyPress(input.ArrowUp))
		case "down", "j":
			m.queue.Push(input.KeyPress(input.ArrowDown))
		case "left", "h":
			m.queue.Push(input.KeyPress(input.ArrowLeft))
		case "right", "l":
			m.queue.Push(input.KeyPress(input.ArrowRight))
		case "r":
			m.queue.Push(input.KeyPress(input.KeyRender))
		case "a":
			m.queue.Push(input.KeyPress(input.KeyAnimate))
		case "d":
			m.queue.Push(input.KeyPress(input.KeyDefault))
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.WindowSizeMsg:
		w, h := m.logical(msg.Width, max(msg.Height-statusLines, 1))
		m.queue.Push(input.Resized(w, h))

	case TickMsg:
		if !m.ctrl.Tick() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// logical converts a cell extent to logical pixels.
func (m Model) logical(cols, rows int) (int, int) {
	s := m.canvas.Scale
	return int(float64(cols*2) * s), int(float64(rows*4) * s)
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.queue.Push(input.Event{Kind: input.MouseDown})
	case tea.MouseActionRelease:
		m.queue.Push(input.Event{Kind: input.MouseUp})
	case tea.MouseActionMotion:
		if m.mouseSeen {
			dx, dy := m.logical(msg.X-m.mouseX, msg.Y-m.mouseY)
			m.queue.Push(input.Motion(float64(dx), float64(dy)))
		}
	}
	m.mouseX, m.mouseY, m.mouseSeen = msg.X, msg.Y, true
}

func (m Model) View() string {
	st := m.ctrl.View()
	var b strings.Builder
	b.WriteString(m.canvas.String())

	done := 1.0
	if total := st.Pass.Total(); total > 0 && !st.Finished {
		done = float64(st.Pass.Cursor()) / float64(total)
	}
	status := lipgloss.JoinHorizontal(lipgloss.Center,
		AnimatedSpinner(m.ctrl.Ticks()), " ",
		modeBadge(st.Mode), "  ",
		ProgressBar(done, 20), "  ",
		MetricLabel.Render("even "), MetricValue.Render(fmt.Sprintf("%.5f", st.Params.EvenDelta)), "  ",
		MetricLabel.Render("odd "), MetricValue.Render(fmt.Sprintf("%.5f", st.Params.OddDelta)), "  ",
		MetricLabel.Render("paths "), MetricValue.Render(fmt.Sprint(m.paths)),
	)
	b.WriteString(status + "\n")
	if m.showHelp {
		b.WriteString(KeyHint.Render("drag: move origin  ←→: even angle  ↑↓: odd angle  enter: print  r: blobs  a: animate  d: lines  esc/q: quit"))
	} else {
		b.WriteString(KeyHint.Render("? help"))
	}
	return b.String()
}

// Run starts the terminal front end and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, ctrl *render.Controller, queue *input.Queue, canvas *Canvas, paths int, delay time.Duration) error {
	p := tea.NewProgram(NewModel(ctrl, queue, canvas, paths, delay),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
