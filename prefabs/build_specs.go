package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an actor prefab: a name plus raw component blocks that
// the entity builder decodes one by one.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	// MoveSpeed is in world units per millisecond.
	MoveSpeed float64 `yaml:"move_speed"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FacingComponentSpec struct {
	Dir string `yaml:"dir"`
}

type CollisionComponentSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	SolidVsStatic  *bool   `yaml:"solid_vs_static"`
	SolidVsDynamic *bool   `yaml:"solid_vs_dynamic"`
	Static         bool    `yaml:"static"`
}

type SpriteComponentSpec struct {
	Color  *YAMLColor `yaml:"color"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type InventoryComponentSpec struct {
	Items map[string]int `yaml:"items"`
}
