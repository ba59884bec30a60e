package render_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/gogpu/gg"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/paths"
	"github.com/san-kum/hailstone/internal/render"
	"github.com/san-kum/hailstone/internal/turtle"
	"github.com/san-kum/hailstone/internal/view"
)

var box = paths.ColorBox{Lower: [3]uint8{64, 200, 200}, Upper: [3]uint8{128, 255, 255}}

func buildStore(n int64) *paths.Store {
	st, err := paths.Build(context.Background(), n, box, rand.New(rand.NewSource(1)))
	Expect(err).NotTo(HaveOccurred())
	return st
}

func defaultParams() turtle.Params {
	return turtle.Params{
		Origin:       gg.Pt(300, 670),
		StartHeading: -math.Pi / 2,
		EvenDelta:    0.125,
		OddDelta:     -0.225,
		StepLength:   2.5,
	}
}

func defaultSettings() view.Settings {
	return view.Settings{
		Gain: 0.003,
		Animation: view.Animation{
			EvenAmplitude: 0.004, EvenPeriod: 19,
			OddAmplitude: 0.01, OddPeriod: 17,
			ClockMax: 360 * 19 * 17,
		},
	}
}

var _ = Describe("Controller", func() {
	var (
		store *paths.Store
		out   *recorder
		queue *input.Queue
		ctrl  *render.Controller
		st    *view.State
		opts  render.Options
	)

	BeforeEach(func() {
		store = buildStore(1001)
		out = newRecorder()
		queue = input.NewQueue()
		st = view.New(defaultParams(), defaultSettings(), store.Count(), 1080, 720)
		opts = render.DefaultOptions()
		opts.TickDelay = 0
		ctrl = render.NewController(store, st, out, queue, opts)
	})

	AfterEach(func() {
		render.SetLogger(nil)
	})

	Describe("the default continuous pass", func() {
		It("clears once and draws batches in seed order until finished", func() {
			Expect(ctrl.Tick()).To(BeTrue())
			Expect(out.calls[0].op).To(Equal("clear"))
			Expect(out.count("strip")).To(Equal(300))
			Expect(st.Pass.Cursor()).To(Equal(300))

			// first strip belongs to seed 2: one turn, two points
			Expect(out.calls[1].points).To(Equal(2))
			Expect(out.calls[1].color).To(Equal(store.ColorAt(0)))
			Expect(out.calls[1].width).To(Equal(opts.PathWidth + 1))

			ctrl.Tick()
			ctrl.Tick()
			Expect(st.Finished).To(BeFalse())
			ctrl.Tick()
			Expect(st.Finished).To(BeTrue())
			Expect(st.Mode).To(Equal(view.Idle))
			Expect(st.Pass.Cursor()).To(Equal(1000))
			Expect(out.count("strip")).To(Equal(1000))
			Expect(out.count("clear")).To(Equal(1))
		})

		It("keeps the cursor inside [0, count] and non-decreasing", func() {
			prev := 0
			for i := 0; i < 10; i++ {
				ctrl.Tick()
				c := st.Pass.Cursor()
				Expect(c).To(BeNumerically(">=", prev))
				Expect(c).To(BeNumerically("<=", store.Count()))
				prev = c
			}
		})

		It("issues no drawing once finished", func() {
			for i := 0; i < 4; i++ {
				ctrl.Tick()
			}
			out.reset()
			ctrl.Tick()
			Expect(out.calls).To(BeEmpty())
			Expect(out.presented).To(Equal(5))
		})
	})

	Describe("RenderedBlobDraw", func() {
		It("draws blob batches and resets to Idle at the end", func() {
			queue.Push(input.KeyPress(input.KeyRender))
			ctrl.Tick()
			Expect(st.Mode).To(Equal(view.RenderedBlobDraw))
			Expect(st.Pass.Cursor()).To(Equal(opts.BlobBatchSize))
			Expect(out.count("strip")).To(Equal(0))
			Expect(out.count("circle")).To(BeNumerically(">", opts.BlobBatchSize))

			ticks := 1
			for !st.Finished {
				ctrl.Tick()
				ticks++
			}
			Expect(ticks).To(Equal(14))
			Expect(st.Mode).To(Equal(view.Idle))
		})

		It("restarts the pass in blob mode after a parameter change", func() {
			queue.Push(input.KeyPress(input.KeyRender))
			for i := 0; i < 20; i++ {
				ctrl.Tick()
			}
			Expect(st.Finished).To(BeTrue())
			out.reset()
			queue.Push(input.KeyPress(input.ArrowLeft))
			ctrl.Tick()
			Expect(st.Mode).To(Equal(view.RenderedBlobDraw))
			Expect(out.calls[0].op).To(Equal("clear"))
			Expect(out.count("circle")).To(BeNumerically(">", 0))
		})
	})

	Describe("mode switching", func() {
		It("resets the cursor and clears finished when leaving a blob pass mid-way", func() {
			st.SwitchMode(view.RenderedBlobDraw)
			st.Pass.Next(40)
			Expect(st.Pass.Cursor()).To(Equal(40))

			queue.Push(input.KeyPress(input.KeyAnimate))
			eff := st.Update(input.Drain(queue), queue)
			Expect(eff.Quit).To(BeFalse())
			Expect(st.Mode).To(Equal(view.AnimatedDraw))
			Expect(st.Pass.Cursor()).To(Equal(0))
			Expect(st.Finished).To(BeFalse())
		})
	})

	Describe("AnimatedDraw", func() {
		It("redraws every path each tick and advances the clock", func() {
			queue.Push(input.KeyPress(input.KeyAnimate))
			ctrl.Tick()
			Expect(out.count("clear")).To(Equal(1))
			Expect(out.count("strip")).To(Equal(1000))
			Expect(st.Clock).To(Equal(1))

			ctrl.Tick()
			Expect(out.count("clear")).To(Equal(2))
			Expect(out.count("strip")).To(Equal(2000))
			Expect(st.Clock).To(Equal(2))
			Expect(st.Finished).To(BeFalse())
			Expect(st.Params.OddDelta).NotTo(Equal(st.BaseOdd))
		})
	})

	Describe("QuickDraggingDraw", func() {
		It("caps the drag redraw at the configured limit and pans the origin", func() {
			store = buildStore(1500)
			st = view.New(defaultParams(), defaultSettings(), store.Count(), 1080, 720)
			ctrl = render.NewController(store, st, out, queue, opts)

			queue.Push(input.Event{Kind: input.MouseDown}, input.Motion(10, 20))
			ctrl.Tick()
			Expect(st.Mode).To(Equal(view.QuickDraggingDraw))
			Expect(st.Params.Origin).To(Equal(gg.Pt(310, 690)))
			Expect(out.count("strip")).To(Equal(1000))

			ctrl.Tick()
			Expect(out.count("clear")).To(Equal(2))

			out.reset()
			queue.Push(input.Event{Kind: input.MouseUp})
			ctrl.Tick()
			Expect(st.Mode).To(Equal(view.ContinuousDraw))
			Expect(st.Pass.Cursor()).To(Equal(300))
		})
	})

	Describe("arrow keys", func() {
		It("scales the odd angle by the gain and forces a fresh pass", func() {
			for i := 0; i < 4; i++ {
				ctrl.Tick()
			}
			Expect(st.Finished).To(BeTrue())

			odd, gain := -0.225, 0.003
			queue.Push(input.KeyPress(input.ArrowUp))
			st.Update(input.Drain(queue), queue)
			Expect(st.Params.OddDelta).To(Equal(odd * (1 + gain)))
			Expect(st.Finished).To(BeFalse())
			Expect(st.Pass.Cursor()).To(Equal(0))
		})
	})

	Describe("logging and failures", func() {
		var buf *bytes.Buffer

		BeforeEach(func() {
			buf = &bytes.Buffer{}
			render.SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
		})

		It("echoes parameters once per distinct value", func() {
			queue.Push(input.KeyPress(input.KeyReturn))
			ctrl.Tick()
			queue.Push(input.KeyPress(input.KeyReturn))
			ctrl.Tick()
			Expect(bytes.Count(buf.Bytes(), []byte("msg=parameters"))).To(Equal(1))
			Expect(buf.String()).To(ContainSubstring("odd=-0.225"))
		})

		It("logs and skips failing draw calls without stopping the pass", func() {
			out.failOp = "strip"
			Expect(ctrl.Tick()).To(BeTrue())
			Expect(out.count("strip")).To(Equal(300))
			Expect(buf.String()).To(ContainSubstring("draw skipped"))
			Expect(st.Pass.Cursor()).To(Equal(300))
		})

		It("resizes the renderer on window resize", func() {
			queue.Push(input.Resized(640, 480))
			ctrl.Tick()
			w, h := out.Size()
			Expect(w).To(Equal(640))
			Expect(h).To(Equal(480))
		})
	})

	Describe("Run", func() {
		It("returns nil once quit is requested", func() {
			queue.Push(input.Event{Kind: input.Quit})
			Expect(ctrl.Run(context.Background())).To(Succeed())
			Expect(ctrl.Running()).To(BeFalse())
		})

		It("stops on context cancellation", func() {
			opts.TickDelay = time.Millisecond
			ctrl = render.NewController(store, st, out, queue, opts)
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			Expect(ctrl.Run(ctx)).To(MatchError(context.DeadlineExceeded))
			Expect(ctrl.Ticks()).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("DrawPath", func() {
	pts := []gg.Point{gg.Pt(0, 0), gg.Pt(10, 0), gg.Pt(10, 0), gg.Pt(10, 5)}
	c := box.Sample(rand.New(rand.NewSource(2)))

	It("emits one strip in Lines style", func() {
		out := newRecorder()
		Expect(render.DrawPath(out, render.Lines, pts, 4, c)).To(Succeed())
		Expect(out.calls).To(HaveLen(1))
		Expect(out.calls[0].points).To(Equal(4))
	})

	It("emits one circle per vertex in Blobs style", func() {
		out := newRecorder()
		Expect(render.DrawPath(out, render.Blobs, pts, 4, c)).To(Succeed())
		Expect(out.count("circle")).To(Equal(4))
		Expect(out.calls[0].width).To(Equal(2.0))
	})

	It("emits caps and a quad per non-degenerate segment in FatLines style", func() {
		out := newRecorder()
		Expect(render.DrawPath(out, render.FatLines, pts, 4, c)).To(Succeed())
		Expect(out.count("circle")).To(Equal(6))
		Expect(out.count("polygon")).To(Equal(2))
	})

	It("reports partial failures as a DrawError", func() {
		out := newRecorder()
		out.failOp = "polygon"
		err := render.DrawPath(out, render.FatLines, pts, 4, c)
		var de *render.DrawError
		Expect(err).To(BeAssignableToTypeOf(de))
		Expect(errors.As(err, &de)).To(BeTrue())
		Expect(de.Failed).To(Equal(2))
		Expect(de.Total).To(Equal(8))
	})
})

var _ = Describe("DrawAll", func() {
	It("projects every path once and presents", func() {
		store := buildStore(10)
		out := newRecorder()
		Expect(render.DrawAll(out, store, defaultParams(), render.Lines, 4, render.DefaultOptions().Background)).To(Succeed())
		Expect(out.count("strip")).To(Equal(9))
		Expect(out.presented).To(Equal(1))
	})

	It("rejects non-finite parameters", func() {
		p := defaultParams()
		p.StepLength = math.Inf(1)
		err := render.DrawAll(newRecorder(), buildStore(10), p, render.Lines, 4, render.DefaultOptions().Background)
		Expect(err).To(MatchError(turtle.ErrInvalidParameters))
	})
})

var _ = Describe("ParseStyle", func() {
	It("accepts every style name", func() {
		for _, s := range []render.Style{render.Lines, render.Blobs, render.FatLines} {
			got, err := render.ParseStyle(s.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(s))
		}
	})

	It("rejects unknown names", func() {
		_, err := render.ParseStyle("sparkles")
		Expect(err).To(HaveOccurred())
	})
})
