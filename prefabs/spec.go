package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CutsceneSpec binds a cutscene name to its script. An empty Script means
// the cutscene is written in Go and registered by the game itself.
type CutsceneSpec struct {
	Name        string `yaml:"name"`
	Script      string `yaml:"script"`
	Once        bool   `yaml:"once"`
	Description string `yaml:"description"`
}

type CutsceneTable struct {
	Cutscenes []CutsceneSpec `yaml:"cutscenes"`
}

func LoadCutscenes() (CutsceneTable, error) {
	table, err := LoadSpec[CutsceneTable]("cutscenes.yaml")
	if err != nil {
		return table, err
	}
	seen := map[string]bool{}
	for _, c := range table.Cutscenes {
		if c.Name == "" {
			return table, fmt.Errorf("prefabs: cutscenes.yaml: cutscene without a name")
		}
		if seen[c.Name] {
			return table, fmt.Errorf("prefabs: cutscenes.yaml: duplicate cutscene %q", c.Name)
		}
		seen[c.Name] = true
	}
	return table, nil
}

// Find returns the cutscene spec with the given name.
func (t CutsceneTable) Find(name string) (CutsceneSpec, bool) {
	for _, c := range t.Cutscenes {
		if c.Name == name {
			return c, true
		}
	}
	return CutsceneSpec{}, false
}

type ItemSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
}

type ItemTable struct {
	Items []ItemSpec `yaml:"items"`
}

func LoadItems() (ItemTable, error) {
	return LoadSpec[ItemTable]("items.yaml")
}

// Colors maps item names to their icon colors.
func (t ItemTable) Colors() map[string]color.Color {
	out := make(map[string]color.Color, len(t.Items))
	for _, it := range t.Items {
		if it.Color != nil {
			out[it.Name] = it.Color.Color
		}
	}
	return out
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseColor(v string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return nil, err
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
