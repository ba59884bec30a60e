// Package render drives the interactive frame loop: it applies input to the
// view state, projects the paths a tick has budget for and emits them to a
// Renderer.
package render

import (
	"context"
	"time"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/collatz"
	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/turtle"
	"github.com/san-kum/hailstone/internal/view"
)

// PathSource is the read-only path collection the controller draws from.
type PathSource interface {
	Count() int
	SequenceAt(index int) collatz.Sequence
	ColorAt(index int) colorful.Color
}

type Options struct {
	Background     colorful.Color
	PathWidth      float64
	BatchSize      int
	BlobBatchSize  int
	QuickDragLimit int
	TickDelay      time.Duration
}

func DefaultOptions() Options {
	return Options{
		Background:     colorful.Color{R: 1, G: 1, B: 1},
		PathWidth:      4,
		BatchSize:      300,
		BlobBatchSize:  75,
		QuickDragLimit: 1000,
		TickDelay:      time.Millisecond,
	}
}

type Controller struct {
	paths   PathSource
	view    *view.State
	out     Renderer
	in      input.Source
	opts    Options
	scratch []gg.Point
	running bool
	ticks   uint64
}

func NewController(paths PathSource, st *view.State, out Renderer, in input.Source, opts Options) *Controller {
	return &Controller{
		paths:   paths,
		view:    st,
		out:     out,
		in:      in,
		opts:    opts,
		scratch: make([]gg.Point, 0, 1024),
		running: true,
	}
}

func (c *Controller) View() *view.State { return c.view }

func (c *Controller) Running() bool { return c.running }

func (c *Controller) Ticks() uint64 { return c.ticks }

// Tick runs one iteration of the loop and reports whether the loop should
// continue.
func (c *Controller) Tick() bool {
	if !c.running {
		return false
	}
	c.ticks++
	log := Logger()

	eff := c.view.Update(input.Drain(c.in), c.in)
	if eff.Quit {
		c.running = false
		return false
	}
	if eff.Resized {
		if err := c.out.Resize(eff.Width, eff.Height); err != nil {
			log.Warn("resize failed", "width", eff.Width, "height", eff.Height, "err", err)
		}
	}
	if eff.Echo {
		log.Info("parameters", "even", eff.EchoEven, "odd", eff.EchoOdd)
	}
	if eff.Clamped {
		log.Warn("geometry not finite, restored last valid parameters",
			"even", c.view.Params.EvenDelta, "odd", c.view.Params.OddDelta)
	}

	if !c.view.Finished {
		c.drawStep()
	}

	if err := c.out.Present(); err != nil {
		log.Warn("present failed", "err", err)
	}
	return true
}

func (c *Controller) drawStep() {
	st := c.view
	switch st.Mode {
	case view.QuickDraggingDraw:
		c.clear()
		c.drawRange(0, min(c.paths.Count(), c.opts.QuickDragLimit), Lines)
	case view.AnimatedDraw:
		st.Advance()
		c.clear()
		c.drawRange(0, c.paths.Count(), Lines)
	case view.RenderedBlobDraw:
		c.drawBatch(c.opts.BlobBatchSize, Blobs)
	case view.ContinuousDraw:
		c.drawBatch(c.opts.BatchSize, Lines)
	}
}

func (c *Controller) drawBatch(batch int, style Style) {
	st := c.view
	if st.Pass.Cursor() == 0 {
		c.clear()
	}
	start, end := st.Pass.Next(batch)
	c.drawRange(start, end, style)
	if !st.Pass.Remaining() {
		st.Complete()
		Logger().Debug("pass complete", "mode", st.Style, "paths", end)
	}
}

func (c *Controller) clear() {
	if err := c.out.Clear(c.opts.Background); err != nil {
		Logger().Warn("clear failed", "err", err)
	}
}

func (c *Controller) drawRange(start, end int, style Style) {
	params := c.view.Params
	for i := start; i < end; i++ {
		var err error
		c.scratch, err = turtle.AppendProject(c.scratch[:0], c.paths.SequenceAt(i), params)
		if err != nil {
			Logger().Warn("projection rejected", "index", i, "err", err)
			return
		}
		if err := DrawPath(c.out, style, c.scratch, c.opts.PathWidth, c.paths.ColorAt(i)); err != nil {
			Logger().Warn("draw skipped", "index", i, "err", err)
		}
	}
}

// Run ticks until quit or until ctx is done, sleeping TickDelay between
// ticks.
func (c *Controller) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if c.opts.TickDelay > 0 {
		ticker := time.NewTicker(c.opts.TickDelay)
		defer ticker.Stop()
		tick = ticker.C
	}
	for c.Tick() {
		if tick == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
	return nil
}

// DrawAll draws every path in one pass and presents the result.
func DrawAll(r Renderer, paths PathSource, params turtle.Params, style Style, width float64, bg colorful.Color) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := r.Clear(bg); err != nil {
		return err
	}
	var buf []gg.Point
	for i := 0; i < paths.Count(); i++ {
		buf, _ = turtle.AppendProject(buf[:0], paths.SequenceAt(i), params)
		if err := DrawPath(r, style, buf, width, paths.ColorAt(i)); err != nil {
			Logger().Warn("draw skipped", "index", i, "err", err)
		}
	}
	return r.Present()
}
