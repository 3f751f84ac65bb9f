package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is where on-disk overrides live, relative to the working directory.
const Dir = "levels"

// Level is a tile map plus the things placed on it. Each layer is a
// row-major Width*Height grid; non-zero cells of physics layers are walls.
type Level struct {
	Name      string      `json:"-"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

const (
	EntityPlayerSpawn = "player_spawn"
	EntityActor       = "actor"
	EntityTrigger     = "trigger"
)

// Load reads a level by name ("town" or "town.json"), preferring the copy
// on disk.
func Load(name string) (*Level, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join(Dir, file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", file, err)
	}
	lvl.Name = strings.TrimSuffix(file, ".json")
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", file, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels without their extension.
func Names() ([]string, error) {
	matches, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(m, ".json"))
	}
	return out, nil
}

func fileName(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(base, ".json") {
		base += ".json"
	}
	return base
}
