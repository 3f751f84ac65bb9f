package theater

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scheduler is a FIFO of groups. Only the front group is ticked.
type Scheduler struct {
	queue []*Group

	// justCompleted keeps HasCommand true for the frame in which the last
	// command finished, so callers never unlock input mid-frame.
	justCompleted bool

	logger *log.Logger
}

func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{logger: logger}
}

// Submit enqueues c as a group of its own.
func (s *Scheduler) Submit(c Command) {
	if c == nil {
		panic("theater: submit nil command")
	}
	s.push(s.group(c))
}

// SubmitGroup enqueues cmds. Concurrent commands share one group; sequential
// ones each get a group, in order.
func (s *Scheduler) SubmitGroup(cmds []Command, sequential bool) {
	if len(cmds) == 0 {
		return
	}
	if sequential {
		for _, c := range cmds {
			s.Submit(c)
		}
		return
	}
	s.push(s.group(cmds...))
}

func (s *Scheduler) group(cmds ...Command) *Group {
	g := &Group{logger: s.logger}
	for _, c := range cmds {
		g.Add(c)
	}
	return g
}

func (s *Scheduler) push(g *Group) {
	s.queue = append(s.queue, g)
}

// Tick runs the front group for one frame and pops it once it is empty.
func (s *Scheduler) Tick(dt float64) {
	s.justCompleted = false
	if len(s.queue) == 0 {
		return
	}

	front := s.queue[0]
	if front.Tick(dt) {
		s.justCompleted = true
	}
	if front.Done() {
		front.close()
		s.queue[0] = nil
		s.queue = s.queue[1:]
	}
}

func (s *Scheduler) Draw(screen *ebiten.Image, camX, camY float64) {
	if len(s.queue) == 0 {
		return
	}
	s.queue[0].Draw(screen, camX, camY)
}

// HasCommand reports whether anything is queued or a command finished this frame.
func (s *Scheduler) HasCommand() bool {
	return len(s.queue) > 0 || s.justCompleted
}

// HasControl reports whether a running Move in the front group drives a.
func (s *Scheduler) HasControl(a Actor) bool {
	if a == nil || len(s.queue) == 0 {
		return false
	}
	for _, c := range s.queue[0].commands {
		m, ok := c.(*Move)
		if !ok || m.Completed() {
			continue
		}
		if m.actor == a {
			return true
		}
	}
	return false
}

// Pending reports how many groups are waiting, the front one included.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Front returns the running group, if any.
func (s *Scheduler) Front() (*Group, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	return s.queue[0], true
}
