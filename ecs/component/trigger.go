package component

// Trigger cues a cutscene when the player's box enters it. A trigger is
// armed on the first frame it is seen, so spawning inside one does not fire.
type Trigger struct {
	ID       string
	Cutscene string
	Once     bool
	Width    float64
	Height   float64
	Fired    bool
	Inside   bool
	Armed    bool
}

var TriggerComponent = NewComponent[Trigger]()
