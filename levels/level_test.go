package levels

import (
	"strings"
	"testing"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected at least two levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if lvl.Name != name {
				t.Fatalf("Name = %q", lvl.Name)
			}
			x, y, _ := lvl.PlayerSpawn()
			if lvl.Solid(x, y) {
				t.Fatalf("player spawns inside a wall at %d,%d", x, y)
			}
			for _, a := range lvl.Actors() {
				if lvl.Solid(a.X, a.Y) {
					t.Fatalf("actor %s inside a wall", a.Name)
				}
			}
		})
	}
}

func TestTownTriggers(t *testing.T) {
	lvl, err := Load("town.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var found bool
	for _, tr := range lvl.Triggers() {
		if tr.ID == "town_gate" {
			found = true
			if tr.Cutscene != "welcome" || !tr.Once || tr.W != 2 || tr.H != 4 {
				t.Fatalf("town_gate = %+v", tr)
			}
		}
	}
	if !found {
		t.Fatalf("town_gate trigger missing")
	}
}

func TestSolid(t *testing.T) {
	lvl := &Level{
		Width:     3,
		Height:    2,
		Layers:    [][]int{{0, 1, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 2}},
		LayerMeta: []LayerMeta{{Physics: true}, {Physics: false}},
	}
	tests := []struct {
		x, y int
		want bool
	}{
		{x: 0, y: 0, want: false},
		{x: 1, y: 0, want: true},
		{x: 2, y: 1, want: false},
		{x: -1, y: 0, want: true},
		{x: 0, y: 2, want: true},
	}
	for _, tt := range tests {
		if got := lvl.Solid(tt.x, tt.y); got != tt.want {
			t.Fatalf("Solid(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	spawn := Entity{Type: EntityPlayerSpawn, X: 1, Y: 1}
	tests := []struct {
		name    string
		lvl     Level
		wantErr string
	}{
		{
			name:    "short layer",
			lvl:     Level{Width: 2, Height: 2, Layers: [][]int{{0, 0, 0}}, Entities: []Entity{spawn}},
			wantErr: "cells",
		},
		{
			name:    "no spawn",
			lvl:     Level{Width: 1, Height: 1},
			wantErr: "player_spawn",
		},
		{
			name: "duplicate actor",
			lvl: Level{Width: 2, Height: 2, Entities: []Entity{
				spawn,
				{Type: EntityActor, Props: map[string]any{"name": "a", "prefab": "npc"}},
				{Type: EntityActor, Props: map[string]any{"name": "a", "prefab": "npc"}},
			}},
			wantErr: "duplicate actor",
		},
		{
			name: "trigger without cutscene",
			lvl: Level{Width: 2, Height: 2, Entities: []Entity{
				spawn,
				{Type: EntityTrigger, Props: map[string]any{"id": "t"}},
			}},
			wantErr: "cutscene",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lvl.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
