package theater

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Group runs its commands side by side, one Tick each per frame.
//
// Commands added while the group is ticking are parked until the end of the
// frame, so they first run on the next one. A group that the scheduler has
// already popped drops further additions.
type Group struct {
	commands []Command
	pending  []Command
	ticking  bool
	closed   bool
	logger   *log.Logger
}

func NewGroup(cmds ...Command) *Group {
	g := &Group{logger: log.Default()}
	for _, c := range cmds {
		g.Add(c)
	}
	return g
}

// Add appends c to the group.
func (g *Group) Add(c Command) {
	if c == nil {
		panic("theater: add nil command")
	}
	if g.closed {
		g.logger.Warn("command added to finished group, dropping", "kind", c.Kind())
		return
	}
	if g.ticking {
		g.pending = append(g.pending, c)
		return
	}
	g.commands = append(g.commands, c)
}

// Len reports how many commands are still in the group.
func (g *Group) Len() int {
	return len(g.commands) + len(g.pending)
}

// Commands returns the live members in tick order.
func (g *Group) Commands() []Command {
	return g.commands
}

// Done reports whether every member has completed and been removed.
func (g *Group) Done() bool {
	return g.Len() == 0
}

// Tick advances every member by dt milliseconds and reports whether any of
// them completed during this frame.
func (g *Group) Tick(dt float64) bool {
	finished := false
	g.ticking = true

	kept := g.commands[:0]
	for _, c := range g.commands {
		if c.Completed() {
			finished = true
			continue
		}
		g.run(c, dt)
		if c.Completed() {
			finished = true
			continue
		}
		kept = append(kept, c)
	}
	clear(g.commands[len(kept):])
	g.commands = kept

	g.ticking = false
	if len(g.pending) > 0 {
		g.commands = append(g.commands, g.pending...)
		g.pending = nil
	}
	return finished
}

func (g *Group) run(c Command, dt float64) {
	st := c.state()
	if !st.started {
		st.started = true
		c.Start(g)
		if c.Completed() {
			return
		}
	}
	c.Tick(g, dt)
}

func (g *Group) Draw(screen *ebiten.Image, camX, camY float64) {
	for _, c := range g.commands {
		if c.Completed() {
			continue
		}
		c.Draw(screen, camX, camY)
	}
}

// ForceComplete completes every member that has not finished yet. Commands a
// member injects while completing are started and completed in turn, until
// the group is empty.
func (g *Group) ForceComplete() {
	g.commands = append(g.commands, g.pending...)
	g.pending = nil

	members := len(g.commands)
	for i := 0; i < len(g.commands); i++ {
		c := g.commands[i]
		if c.Completed() {
			continue
		}
		if i >= members && !c.Started() {
			c.state().started = true
			c.Start(g)
			if c.Completed() {
				continue
			}
		}
		c.Complete(g)
	}
	clear(g.commands)
	g.commands = nil
}

func (g *Group) close() {
	g.closed = true
}
