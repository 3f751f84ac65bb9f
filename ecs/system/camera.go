package system

import (
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/ecs/entity"
)

type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves the view toward whatever the camera follows. Smooth follows
// close a fixed fraction of the gap each frame; the rest snap.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}

	if cam.TargetName != "" {
		if target := findEntityByNameOrTag(w, cam.TargetName); target.Valid() {
			cam.Target = uint64(target)
			cam.HasPoint = false
			cam.Smooth = true
			cam.TargetName = ""
		}
	}

	view := entity.NewCameraView(w, cs.camEntity)
	focus := view.Focus()
	if focus == nil {
		return
	}
	desired := focus.Center().Sub(view.ViewSize().Scale(0.5))
	if !cam.Smooth || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.X, cam.Y = desired.X, desired.Y
		return
	}
	cam.X += (desired.X - cam.X) * cam.Smoothness
	cam.Y += (desired.Y - cam.Y) * cam.Smoothness
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if a, ok := entity.FindActor(w, name); ok {
		return a.Entity()
	}
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
