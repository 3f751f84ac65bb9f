package entity

import (
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/component"
	"github.com/milk9111/theater/theater"
)

// Controls reads the edge flags the input system wrote onto the player.
type Controls struct {
	w *ecs.World
}

var _ theater.Controls = Controls{}

func NewControls(w *ecs.World) Controls {
	return Controls{w: w}
}

func (c Controls) input() *component.Input {
	e, ok := c.w.First(component.InputComponent.Kind())
	if !ok {
		return &component.Input{}
	}
	in, _ := ecs.Get(c.w, e, component.InputComponent)
	return in
}

func (c Controls) Confirm() bool { return c.input().Confirm }
func (c Controls) Prev() bool    { return c.input().Prev }
func (c Controls) Next() bool    { return c.input().Next }

// Inventory is the player's item bag.
type Inventory struct {
	w *ecs.World
}

var _ theater.Inventory = Inventory{}

func NewInventory(w *ecs.World) Inventory {
	return Inventory{w: w}
}

func (inv Inventory) bag() *component.Inventory {
	e, ok := inv.w.First(component.InventoryComponent.Kind())
	if !ok {
		return nil
	}
	bag, _ := ecs.Get(inv.w, e, component.InventoryComponent)
	return bag
}

func (inv Inventory) Give(item string, count int) {
	bag := inv.bag()
	if bag == nil || count <= 0 {
		return
	}
	if bag.Items == nil {
		bag.Items = make(map[string]int)
	}
	if _, ok := bag.Items[item]; !ok {
		bag.Order = append(bag.Order, item)
	}
	bag.Items[item] += count
}

// Count reports how many of item the player holds.
func (inv Inventory) Count(item string) int {
	bag := inv.bag()
	if bag == nil {
		return 0
	}
	return bag.Items[item]
}
