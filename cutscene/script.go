package cutscene

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrUnknownCutscene   = errors.New("cutscene: unknown cutscene")
	ErrDuplicateCutscene = errors.New("cutscene: duplicate cutscene")
	ErrCutsceneRunning   = errors.New("cutscene: another cutscene is running")
)

// Script is one cutscene. Start runs once when the cutscene is cued and
// Update runs every frame until the script calls Finish. Returning an error
// aborts the cutscene.
type Script interface {
	Start(d *Director) error
	Update(d *Director, dt float64) error
}

// Factory builds a fresh script instance for each activation.
type Factory func() (Script, error)

// Registry maps cutscene names to script factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("cutscene: register %q: empty name or factory", name)
	}
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCutscene, name)
	}
	r.factories[name] = f
	return nil
}

// Replace registers f under name whether or not it exists. Hot reload uses it.
func (r *Registry) Replace(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
