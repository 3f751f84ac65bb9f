package theater

import "github.com/charmbracelet/log"

// AddEntity puts a new actor on the stage. Names are unique; a clash is
// logged and the stage is left alone.
type AddEntity struct {
	Base

	stage  Stage
	spec   ActorSpec
	logger *log.Logger
}

func NewAddEntity(s Stage, spec ActorSpec, logger *log.Logger) *AddEntity {
	if s == nil {
		panic("theater: add entity nil stage")
	}
	if spec.Name == "" {
		panic("theater: add entity without a name")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &AddEntity{stage: s, spec: spec, logger: logger}
}

func (c *AddEntity) Kind() Kind { return KindAddEntity }

func (c *AddEntity) Start(in Inserter) {
	defer c.Complete(in)

	if _, ok := c.stage.Actor(c.spec.Name); ok {
		c.logger.Warn("actor already on stage", "name", c.spec.Name)
		return
	}
	if err := c.stage.AddActor(c.spec); err != nil {
		c.logger.Error("add actor", "name", c.spec.Name, "err", err)
	}
}

// RemoveEntity takes an actor off the stage by name.
type RemoveEntity struct {
	Base

	stage  Stage
	name   string
	logger *log.Logger
}

func NewRemoveEntity(s Stage, name string, logger *log.Logger) *RemoveEntity {
	if s == nil {
		panic("theater: remove entity nil stage")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RemoveEntity{stage: s, name: name, logger: logger}
}

func (c *RemoveEntity) Kind() Kind { return KindRemoveEntity }

func (c *RemoveEntity) Start(in Inserter) {
	if !c.stage.RemoveActor(c.name) {
		c.logger.Warn("actor not on stage", "name", c.name)
	}
	c.Complete(in)
}
