package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"golang.org/x/image/colornames"
)

const notchSize = 3.0

type RenderSystem struct {
	camEntity ecs.Entity
	// Debug outlines trigger rectangles.
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// View returns the camera's world-space top-left and zoom.
func (r *RenderSystem) View(w *ecs.World) (camX, camY, zoom float64) {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	zoom = 1
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok {
		camX, camY = cam.X, cam.Y
		if cam.Zoom > 0 {
			zoom = cam.Zoom
		}
	}
	return camX, camY, zoom
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := r.View(w)
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x - camX) * zoom), float32((y - camY) * zoom)
	}

	if e, ok := w.First(component.WallsComponent.Kind()); ok {
		walls, _ := ecs.Get(w, e, component.WallsComponent)
		ts := walls.TileSize
		size := float32(ts * zoom)
		for ty := 0; ty < walls.Height; ty++ {
			for tx := 0; tx < walls.Width; tx++ {
				if !walls.At(tx, ty) {
					continue
				}
				x, y := toScreen(float64(tx)*ts, float64(ty)*ts)
				vector.FillRect(screen, x, y, size, size, walls.Color, false)
			}
		}
	}

	if r.Debug {
		ecs.ForEach2(w, component.TriggerComponent, component.TransformComponent,
			func(_ ecs.Entity, tr *component.Trigger, t *component.Transform) {
				x, y := toScreen(t.X, t.Y)
				c := colornames.Yellow
				if tr.Once && tr.Fired {
					c = colornames.Gray
				}
				vector.StrokeRect(screen, x, y, float32(tr.Width*zoom), float32(tr.Height*zoom), 1, c, false)
			})
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		ti, _ := ecs.Get(w, entities[i], component.TransformComponent)
		tj, _ := ecs.Get(w, entities[j], component.TransformComponent)
		return ti.Y < tj.Y
	})
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, component.SpriteComponent)
		x, y := toScreen(t.X, t.Y)
		sw, sh := float32(s.Width*zoom), float32(s.Height*zoom)
		vector.FillRect(screen, x, y, sw, sh, s.Color, false)

		facing := common.FacingDown
		if f, ok := ecs.Get(w, e, component.FacingComponent); ok {
			facing = f.Dir
		}
		nx, ny, nw, nh := notch(facing, x, y, sw, sh, float32(notchSize*zoom))
		vector.FillRect(screen, nx, ny, nw, nh, color.Black, false)
	}
}

// notch is the small marker on the side of a sprite the actor faces.
func notch(f common.Facing, x, y, w, h, n float32) (nx, ny, nw, nh float32) {
	switch f {
	case common.FacingUp:
		return x + w/2 - n/2, y, n, n
	case common.FacingLeft:
		return x, y + h/2 - n/2, n, n
	case common.FacingRight:
		return x + w - n, y + h/2 - n/2, n, n
	default:
		return x + w/2 - n/2, y + h - n, n, n
	}
}
