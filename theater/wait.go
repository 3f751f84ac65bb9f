package theater

// Wait completes after a span of simulated time.
type Wait struct {
	Base

	delay   float64
	elapsed float64
}

func NewWait(ms float64) *Wait {
	if ms < 0 {
		panic("theater: negative wait")
	}
	return &Wait{delay: ms}
}

func (w *Wait) Kind() Kind { return KindWait }

func (w *Wait) Tick(in Inserter, dt float64) {
	w.elapsed += dt
	if w.elapsed >= w.delay {
		w.Complete(in)
	}
}
