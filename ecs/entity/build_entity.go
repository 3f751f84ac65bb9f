package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/milk9111/theater/common"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player":    addPlayer,
	"transform": addTransform,
	"facing":    addFacing,
	"collision": addCollision,
	"sprite":    addSprite,
	"camera":    addCamera,
	"inventory": addInventory,
}

var componentBuildOrder = []string{
	"player",
	"transform",
	"facing",
	"collision",
	"sprite",
	"camera",
	"inventory",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	return e, nil
}

// BuildActor builds a named actor from prefab (with or without ".yaml") and
// places its top-left at pos.
func BuildActor(w *ecs.World, prefab, name string, pos common.Vec, facing common.Facing) (ecs.Entity, error) {
	if name == "" {
		return 0, fmt.Errorf("build actor: empty name")
	}
	if _, exists := FindActor(w, name); exists {
		return 0, fmt.Errorf("build actor %q: %w", name, component.ErrDuplicateName)
	}
	path := prefab
	if !strings.HasSuffix(path, ".yaml") {
		path += ".yaml"
	}
	e, err := BuildEntity(w, path)
	if err != nil {
		return 0, err
	}
	prefabName := strings.TrimSuffix(prefab, ".yaml")
	if err := ecs.Add(w, e, component.NameComponent, &component.Name{Value: name, Prefab: prefabName}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build actor %q: add name: %w", name, err)
	}
	if err := SetEntityTransform(w, e, pos.X, pos.Y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build actor %q: %w", name, err)
	}
	NewActor(w, e).SetFacing(facing)
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent, &component.Input{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent, &component.Player{MoveSpeed: spec.MoveSpeed})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y})
}

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FacingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	dir, err := common.ParseFacing(spec.Dir)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FacingComponent, &component.Facing{Dir: dir})
}

func addCollision(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collision needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	col := &component.Collision{
		Width:          spec.Width,
		Height:         spec.Height,
		SolidVsStatic:  boolOr(spec.SolidVsStatic, true),
		SolidVsDynamic: boolOr(spec.SolidVsDynamic, true),
		Static:         spec.Static,
	}
	if err := ecs.Add(w, e, component.CollisionComponent, col); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if spec.Color != nil && spec.Color.Color != nil {
		c = color.RGBAModel.Convert(spec.Color.Color).(color.RGBA)
	}
	return ecs.Add(w, e, component.SpriteComponent, &component.Sprite{
		Color:  c,
		Width:  spec.Width,
		Height: spec.Height,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	if err := ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent, &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

func addInventory(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InventoryComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode inventory spec: %w", err)
	}
	inv := &component.Inventory{Items: make(map[string]int, len(spec.Items))}
	for item, n := range spec.Items {
		inv.Items[item] = n
		inv.Order = append(inv.Order, item)
	}
	sort.Strings(inv.Order)
	return ecs.Add(w, e, component.InventoryComponent, inv)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
