package playback_test

import (
	"context"
	"iter"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/pathfinding"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/step"
)

var (
	unsorted = []int{64, 34, 25, 12, 22, 11, 90}
	sorted   = []int{11, 12, 22, 25, 34, 64, 90}
)

func bubble() *step.Producer {
	return step.Pull(sorting.Bubble(append([]int(nil), unsorted...)))
}

func scripted(steps ...step.Step) *step.Producer {
	return step.Pull(func(yield func(step.Step) bool) {
		for _, s := range steps {
			if !yield(s) {
				return
			}
		}
	})
}

// panicking yields steps and then panics the way a broken producer would.
func panicking(steps ...step.Step) *step.Producer {
	return step.Pull(func(yield func(step.Step) bool) {
		for _, s := range steps {
			if !yield(s) {
				return
			}
		}
		var count []int
		count[len(steps)-1]++
	})
}

type panickyObserver struct{}

func (panickyObserver) OnStep(playback.Entry)   { panic("observer blew up") }
func (panickyObserver) OnFinish(playback.Result) {}

func endless() iter.Seq[step.Step] {
	return func(yield func(step.Step) bool) {
		for i := 0; ; i++ {
			if !yield(step.Step{Line: 1, Comparing: []int{i}}) {
				return
			}
		}
	}
}

type recorder struct {
	mu       sync.Mutex
	steps    []playback.Entry
	finishes []playback.Result
}

func (r *recorder) OnStep(e playback.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, e)
}

func (r *recorder) OnFinish(res playback.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes = append(r.finishes, res)
}

func (r *recorder) finished() []playback.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]playback.Result(nil), r.finishes...)
}

func (r *recorder) stepCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

var _ = Describe("Controller", func() {
	var (
		ctx context.Context
		c   *playback.Controller
	)

	BeforeEach(func() {
		ctx = context.Background()
		c = playback.New(playback.WithSpeed(0), playback.WithPollInterval(5*time.Millisecond))
	})

	AfterEach(func() {
		c.Stop()
	})

	It("starts idle", func() {
		st := c.State()
		Expect(st.Mode).To(Equal(playback.Idle))
		Expect(st.HasActiveProducer).To(BeFalse())
		Expect(st.HistoryIndex).To(Equal(-1))
		Expect(st.HistoryLen).To(BeZero())
	})

	Describe("continuous runs", func() {
		It("runs a producer to completion and keeps the history", func() {
			p := bubble()
			res, err := c.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(playback.Completed))
			Expect(res.Steps).To(Equal(p.Pulled()))
			Expect(res.Metrics).To(HaveKeyWithValue("steps", float64(p.Pulled())))

			st := c.State()
			Expect(st.Mode).To(Equal(playback.Idle))
			Expect(st.HasActiveProducer).To(BeFalse())
			Expect(st.Current.Array).To(Equal(sorted))
			Expect(st.HistoryLen).To(Equal(res.Steps))
			Expect(st.HistoryIndex).To(Equal(st.HistoryLen - 1))
			Expect(p.Exhausted()).To(BeTrue())
		})

		It("lets a finished run be scrubbed", func() {
			_, err := c.Run(ctx, bubble())
			Expect(err).NotTo(HaveOccurred())

			Expect(c.StepBackward()).To(BeTrue())
			Expect(c.State().HistoryIndex).To(Equal(c.State().HistoryLen - 2))
			Expect(c.StepForward()).To(BeTrue())
			Expect(c.StepForward()).To(BeFalse())
		})

		It("ends the same way after a pause and resume", func() {
			c.SetSpeed(20 * time.Millisecond)
			Expect(c.Start(ctx, bubble())).To(Succeed())

			Eventually(func() int { return c.State().HistoryLen }).WithPolling(2 * time.Millisecond).Should(BeNumerically(">=", 3))
			c.TogglePause()
			Expect(c.State().Mode).To(Equal(playback.Paused))

			held := c.State().HistoryLen
			Consistently(func() int { return c.State().HistoryLen }, 40*time.Millisecond, 5*time.Millisecond).
				Should(BeNumerically("<=", held+1))

			c.TogglePause()
			Eventually(func() playback.Mode { return c.State().Mode }, 5*time.Second).Should(Equal(playback.Idle))
			Expect(c.State().Current.Array).To(Equal(sorted))

			reference := playback.New(playback.WithSpeed(0))
			_, err := reference.Run(ctx, bubble())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.State().Current).To(Equal(reference.State().Current))
			Expect(c.State().HistoryLen).To(Equal(reference.State().HistoryLen))
		})

		It("resumes when started again with the same producer", func() {
			p := bubble()
			Expect(c.Load(ctx, p)).To(Succeed())
			Expect(c.State().Mode).To(Equal(playback.Paused))
			Expect(p.Pulled()).To(BeZero())

			Expect(c.Start(ctx, p)).To(Succeed())
			Eventually(func() playback.Mode { return c.State().Mode }).Should(Equal(playback.Idle))
			Expect(c.State().Current.Array).To(Equal(sorted))
		})

		It("stops the current run when a different producer starts", func() {
			c.SetSpeed(time.Hour)
			first := step.Pull(endless())
			Expect(c.Start(ctx, first)).To(Succeed())
			Eventually(func() int { return c.State().HistoryLen }).Should(Equal(1))

			c.SetSpeed(0)
			second := bubble()
			Expect(c.Start(ctx, second)).To(Succeed())
			Expect(first.Exhausted()).To(BeTrue())

			Eventually(func() playback.Mode { return c.State().Mode }).Should(Equal(playback.Idle))
			Expect(c.State().Current.Array).To(Equal(sorted))
		})

		It("notices cancellation during a pacing wait", func() {
			c.SetSpeed(time.Hour)
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() {
				_, err := c.Run(runCtx, step.Pull(endless()))
				done <- err
			}()

			Eventually(func() int { return c.State().HistoryLen }).Should(Equal(1))
			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))

			st := c.State()
			Expect(st.Mode).To(Equal(playback.Idle))
			Expect(st.HistoryLen).To(Equal(1), "published state stays at the last applied step")
		})

		It("reports completion and every step to observers", func() {
			rec := &recorder{}
			c.AddObserver(rec)

			res, err := c.Run(ctx, bubble())
			Expect(err).NotTo(HaveOccurred())
			Eventually(rec.finished).Should(HaveLen(1))
			Expect(rec.finished()[0].Reason).To(Equal(playback.Completed))
			Expect(rec.stepCount()).To(Equal(res.Steps))
		})
	})

	Describe("manual stepping", func() {
		It("replays from history instead of pulling again", func() {
			p := bubble()
			Expect(c.Load(ctx, p)).To(Succeed())

			Expect(c.StepForward()).To(BeTrue())
			Expect(c.StepForward()).To(BeTrue())
			second := c.State().Current

			Expect(c.StepBackward()).To(BeTrue())
			Expect(c.State().HistoryIndex).To(Equal(0))
			Expect(c.StepForward()).To(BeTrue())

			Expect(c.State().Current).To(Equal(second))
			Expect(c.State().HistoryIndex).To(Equal(1))
			Expect(p.Pulled()).To(Equal(2))
		})

		It("restores the array of an earlier entry when stepping back", func() {
			p := scripted(
				step.Step{Array: []int{2, 1}},
				step.Step{Line: 2, Comparing: []int{0, 1}},
				step.Step{Line: 3, Array: []int{1, 2}, Comparing: []int{0, 1}},
			)
			Expect(c.Load(ctx, p)).To(Succeed())
			for i := 0; i < 3; i++ {
				Expect(c.StepForward()).To(BeTrue())
			}
			Expect(c.State().Current.Array).To(Equal([]int{1, 2}))

			Expect(c.StepBackward()).To(BeTrue())
			st := c.State()
			Expect(st.Current.Array).To(Equal([]int{2, 1}))
			Expect(st.Current.Line).To(Equal(2))
		})

		It("does nothing at either end", func() {
			Expect(c.StepForward()).To(BeFalse())
			Expect(c.StepBackward()).To(BeFalse())

			Expect(c.Load(ctx, scripted(step.Step{Line: 1}))).To(Succeed())
			Expect(c.StepForward()).To(BeTrue())
			Expect(c.StepBackward()).To(BeFalse())
			Expect(c.State().HistoryIndex).To(Equal(0))
		})

		It("goes idle once a hand-stepped producer runs dry", func() {
			rec := &recorder{}
			c.AddObserver(rec)
			Expect(c.Load(ctx, scripted(step.Step{Line: 1}))).To(Succeed())

			Expect(c.StepForward()).To(BeTrue())
			Expect(c.StepForward()).To(BeFalse())
			Eventually(func() bool { return c.State().HasActiveProducer }).Should(BeFalse())
			Eventually(rec.finished).Should(HaveLen(1))
			Expect(rec.finished()[0].Reason).To(Equal(playback.Completed))
		})
	})

	Describe("published state", func() {
		It("keeps the array on trace-only steps but always republishes highlights", func() {
			found := 1
			p := scripted(
				step.Step{Line: 1, Array: []int{5, 7}},
				step.Step{Line: 2, Comparing: []int{1}},
				step.Step{Line: 3, Comparing: []int{1}, Found: &found},
				step.Step{Line: 4},
			)
			Expect(c.Load(ctx, p)).To(Succeed())

			c.StepForward()
			c.StepForward()
			st := c.State()
			Expect(st.Current.Array).To(Equal([]int{5, 7}))
			Expect(st.Current.Comparing).To(Equal([]int{1}))
			Expect(st.Current.Line).To(Equal(2))

			c.StepForward()
			Expect(c.State().Current.Found).To(HaveValue(Equal(1)))

			c.StepForward()
			st = c.State()
			Expect(st.Current.Found).To(BeNil())
			Expect(st.Current.Comparing).To(BeEmpty())
			Expect(st.Current.Line).To(Equal(4))
			Expect(st.Current.Array).To(Equal([]int{5, 7}))
		})

		It("hands out copies", func() {
			Expect(c.Load(ctx, scripted(step.Step{Array: []int{1, 2}}))).To(Succeed())
			c.StepForward()
			c.State().Current.Array[0] = 99
			Expect(c.State().Current.Array).To(Equal([]int{1, 2}))
		})

		It("tracks the grid of pathfinding runs", func() {
			g := grid.New(3, 3)
			p := step.Pull(pathfinding.BFS(g, grid.Point{}, grid.Point{Row: 2, Col: 2}))
			_, err := c.Run(ctx, p)
			Expect(err).NotTo(HaveOccurred())

			st := c.State()
			Expect(st.Current.Grid).NotTo(BeNil())
			Expect(st.Current.Grid.At(grid.Point{Row: 2, Col: 2}).IsPath).To(BeTrue())
			Expect(c.Metrics()).To(HaveKeyWithValue("path_length", 5.0))
		})

		It("reports speed changes", func() {
			c.SetSpeed(250 * time.Millisecond)
			Expect(c.State().Speed).To(Equal(250 * time.Millisecond))
		})
	})

	Describe("stop", func() {
		It("clears history and highlights and releases the producer", func() {
			c.SetSpeed(time.Hour)
			p := step.Pull(endless())
			Expect(c.Start(ctx, p)).To(Succeed())
			Eventually(func() int { return c.State().HistoryLen }).Should(Equal(1))

			c.Stop()
			st := c.State()
			Expect(st.Mode).To(Equal(playback.Idle))
			Expect(st.HasActiveProducer).To(BeFalse())
			Expect(st.HistoryLen).To(BeZero())
			Expect(st.HistoryIndex).To(Equal(-1))
			Expect(st.Current.Line).To(BeZero())
			Expect(st.Current.Comparing).To(BeNil())
			Expect(p.Exhausted()).To(BeTrue())

			Expect(c.StepForward()).To(BeFalse())
		})

		It("is safe when idle", func() {
			c.Stop()
			c.Stop()
			Expect(c.State().Mode).To(Equal(playback.Idle))
		})

		It("reports the run as canceled", func() {
			rec := &recorder{}
			c.AddObserver(rec)
			c.SetSpeed(time.Hour)
			Expect(c.Start(ctx, step.Pull(endless()))).To(Succeed())
			Eventually(rec.stepCount).Should(Equal(1))

			c.Stop()
			Expect(rec.finished()).To(HaveLen(1))
			Expect(rec.finished()[0].Reason).To(Equal(playback.Canceled))
		})
	})

	Describe("history limit", func() {
		It("keeps only the newest entries", func() {
			limited := playback.New(playback.WithSpeed(0), playback.WithHistoryLimit(4))
			res, err := limited.Run(ctx, bubble())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(BeNumerically(">", 4))

			hist := limited.History()
			Expect(hist).To(HaveLen(4))
			Expect(hist[3].Index).To(Equal(res.Steps - 1))
			Expect(limited.State().Current.Array).To(Equal(sorted))
		})
	})

	Describe("failures", func() {
		It("fails the run when the producer panics", func() {
			rec := &recorder{}
			c.AddObserver(rec)

			res, err := c.Run(ctx, panicking(step.Step{Array: []int{2, 1}}, step.Step{Line: 2, Comparing: []int{0, 1}}))
			Expect(err).To(MatchError(step.ErrPanicked))
			Expect(res.Reason).To(Equal(playback.Failed))
			Expect(res.Outcome).To(Equal("failed"))
			Expect(res.Error).To(ContainSubstring("index out of range"))
			Expect(res.Steps).To(Equal(2))

			st := c.State()
			Expect(st.HasActiveProducer).To(BeFalse())
			Expect(st.HistoryLen).To(Equal(2))
			Expect(st.Current.Array).To(Equal([]int{2, 1}))
			Eventually(rec.finished).Should(HaveLen(1))
			Expect(rec.finished()[0].Reason).To(Equal(playback.Failed))
		})

		It("fails a hand-stepped run without locking up the controller", func() {
			Expect(c.Load(ctx, panicking(step.Step{Line: 1}))).To(Succeed())
			Expect(c.StepForward()).To(BeTrue())
			Expect(c.StepForward()).To(BeFalse())
			Eventually(func() bool { return c.State().HasActiveProducer }).Should(BeFalse())

			res, err := c.Run(ctx, bubble())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(playback.Completed))
		})

		It("fails the run when an observer panics", func() {
			c.AddObserver(panickyObserver{})
			res, err := c.Run(ctx, bubble())
			Expect(err).To(MatchError(playback.ErrRunPanicked))
			Expect(res.Reason).To(Equal(playback.Failed))
			Expect(res.Steps).To(Equal(1))
		})
	})

	Describe("invalid producers", func() {
		It("rejects nil", func() {
			Expect(c.Start(ctx, nil)).To(MatchError(playback.ErrNilProducer))
		})

		It("rejects an exhausted producer", func() {
			p := scripted()
			_, ok := p.Next()
			Expect(ok).To(BeFalse())
			Expect(c.Start(ctx, p)).To(MatchError(playback.ErrExhausted))
		})
	})
})
